// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. A no-op implementation keeps logging optional for
// library consumers and tests.
package logging
