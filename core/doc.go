// Package core provides the foundational domain types and contracts used by
// VoxTutor. It defines:
//
//   - Messages (role-scoped conversation records)
//   - Sessions (append-only transcripts with an immutable system instruction)
//   - Pluggable stores for session transcripts and transient audio artifacts
//   - The error taxonomy shared by the orchestrator and its backend adapters
//
// The package intentionally keeps implementation concerns (storage backends,
// network adapters, orchestration) out of scope, exposing small interfaces so
// callers can substitute alternative implementations in tests or production.
package core
