// Package converge simulates the descent of inputs toward attractors.
//
// Each step scores every attractor through the field's affinity function,
// picks the winner, and moves a geometrically decaying fraction of the way
// toward it. The path taken is the product, not just the endpoint: the
// [Curve] records every position and which attractor dominated each step.
//
//	f, _ := field.New(4, 2, 42)
//	sim := converge.New(f)
//	curve, _ := sim.RunValue(ctx, 42, phase.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; metric accumulators carry state
// across steps. For parallel runs over a shared field use [Batch], which
// gives each worker its own simulator.
package converge
