// Package phase provides the core value types for attractor convergence.
//
// The package defines the primitives shared by every stage of the pipeline:
//
//   - [Point]: position vector in phase space
//   - [Config]: parameters of a single convergence run
//   - [RunError]: error with the step at which it occurred
//
// # Determinism
//
// Everything built on these types is deterministic: re-invoking any operation
// with identical inputs reproduces identical outputs bit for bit, so callers
// recover from failures by re-parameterizing, never by retrying.
package phase
