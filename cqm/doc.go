// Package cqm provides the container types for a Constrained Quadratic
// Model (CQM): a set of typed, bounded decision variables, a quadratic
// objective expression, and an ordered list of quadratic constraints.
//
// A CQM is the data structure that the presolve package reduces; this
// package does no reduction of its own. It is intentionally close to the
// variable/expression/constraint vocabulary used by quadratic-model
// solvers: linear and quadratic biases are stored sparsely, constraints
// carry a sense (<=, ==, >=) and a right-hand side, and variables carry a
// Vartype plus a numeric [lower, upper] bound.
//
// Construction is via NewConstrainedQuadraticModel, variable and
// constraint addition via AddVariable and AddLinearConstraint, and bias
// edits directly against the Expression embedded in the objective or in a
// constraint.
package cqm
