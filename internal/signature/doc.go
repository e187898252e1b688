// Package signature reduces convergence curves to fixed-size feature
// vectors and scores their similarity.
//
// A [Signature] captures the shape of an approach: total path length,
// oscillation count, the run-length-collapsed sequence of dominant
// attractors, the velocity profile summary, and the final attractor. Two
// curves with identical positions always produce identical signatures, and
// the vector layout never depends on curve length, so signatures from runs
// of different durations stay comparable.
//
// [Similarity] combines per-feature distances under [Weights]; recovery
// searches rank candidates with it.
package signature
