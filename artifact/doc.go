// Package artifact contains concrete implementations of core.ArtifactStore.
//
// The canonical interface lives in the core package to keep domain
// contracts central. The orchestrator stages synthesized audio here for
// the duration of a response transfer; artifacts are transient and the
// staging code is responsible for deleting them on every exit path.
package artifact
