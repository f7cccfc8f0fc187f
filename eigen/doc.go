// Package eigen computes full eigendecompositions of real symmetric matrices
// behind a small Solver interface.
//
// Two solvers are provided:
//
//   - LAPACK delegates to gonum's mat.EigenSym (tridiagonal reduction plus
//     implicit QL/QR). It is the fast, default choice; its iteration limit is
//     fixed inside the LAPACK routine.
//   - Jacobi runs cyclic Jacobi rotations with an explicit sweep budget. It is
//     slower (O(n³) per sweep) but the caller decides exactly how much work is
//     allowed before ErrNotConverged is returned.
//
// Both return every eigenvalue together with a unit eigenvector per value and
// leave their input untouched. The ordering of eigenpairs is solver defined;
// callers that need a particular order select from Decomposition themselves.
package eigen
