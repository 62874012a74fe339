package presolve

import "github.com/pkg/errors"

// ErrInvalidModel is returned by Normalize when the model contains a NaN
// bias. The caller should discard the presolver; no further normalize or
// apply call is meaningful.
var ErrInvalidModel = errors.New("invalid model: biases cannot be NaN")

// ErrInfeasible is returned by Apply when a reduction step proves the
// model has no feasible assignment. Its text is intentionally the literal
// string "infeasible", which callers downstream match on.
var ErrInfeasible = errors.New("infeasible")

// ErrLogic is returned for programming errors: calling Normalize or Apply
// after DetachModel, or requesting an unsupported vartype transition.
var ErrLogic = errors.New("logic error")
