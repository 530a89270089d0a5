// Package model defines the provider-neutral completion contract used by
// the orchestrator. Concrete adapters live in sub-packages (openai,
// anthropic) so callers depend only on the Model interface and can swap
// providers at wiring time.
package model
