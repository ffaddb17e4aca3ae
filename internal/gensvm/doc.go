// Package gensvm implements the GenSVM generalized multiclass support
// vector machine: a linear (or kernelized) classifier fit by Iterative
// Majorization (IM) that encodes its K classes as the vertices of a
// (K-1)-simplex and assigns new instances to the nearest vertex.
//
// # Core Types
//
//   - Dataset: instances, labels and the augmented feature matrix (dense
//     or sparse) the optimizer consumes.
//   - Model: hyperparameters (p, kappa, lambda, epsilon) plus the weight
//     matrix V and simplex tensors the optimizer updates in place.
//   - Workspace: scratch buffers owned by a single Train call.
//
// # Algorithm
//
// Training alternates computing the Huberized hinge margins at the
// current V, forming per-instance majorization coefficients, and solving
// the resulting weighted least-squares system for a new V, until the
// relative change in loss falls below the model's tolerance or max_iter
// is reached. See the package's *_test.go files for the seeded scenarios
// that pin down the exact numerics.
//
// # Matrix representation
//
// Matrix is implemented by *DenseMatrix and *SparseCSR so that row
// nonzero iteration, row materialization and multiplication by a dense
// (r+1) x (K-1) matrix are expressed once. The Z'AZ/Z'B accumulation is
// not part of the interface: Update selects a dense or a CSR
// accumulator depending on the live representation.
//
// # Thread Safety
//
// Dataset, Model and Workspace are not thread-safe. Concurrent training
// of independent models requires independent Model and Workspace values;
// none of their fields are shared.
package gensvm
