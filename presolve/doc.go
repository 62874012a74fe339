// Package presolve rewrites a Constrained Quadratic Model (cqm.
// ConstrainedQuadraticModel) into an equivalent but smaller,
// better-conditioned model, and can map a feasible assignment of the
// reduced model back to an assignment of the original one.
//
// The entry point is Presolver: construct one from a model, pick which
// techniques to run via a TechniqueFlags mask, call Normalize and then
// Apply, and either DetachModel the reduced model or Restore samples back
// through the original variable space.
//
// Presolving does not preserve the objective value across reductions;
// see Presolver.Normalize for the canonical form the model is brought
// into.
package presolve
