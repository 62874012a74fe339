package presolve

import (
	"github.com/pkg/errors"

	"github.com/arcondello/dwave-preprocessing/cqm"
)

// modelView wraps an owned CQM and intercepts every mutation that affects
// the sample space: variable addition, vartype change, variable fixing,
// appending one transform to log for each. Every other mutation (bias
// edits, bound edits, constraint add/remove) passes straight through to
// the embedded model untracked.
//
// modelView is not internally synchronized; the Presolver that owns one is
// a single-writer data structure.
type modelView struct {
	model *cqm.ConstrainedQuadraticModel
	log   transformLog
}

func newModelView(model *cqm.ConstrainedQuadraticModel) *modelView {
	if model == nil {
		model = cqm.NewConstrainedQuadraticModel()
	}
	return &modelView{model: model}
}

// ----- untracked reads -----

func (mv *modelView) numVariables() int { return mv.model.NumVariables() }
func (mv *modelView) numConstraints() int { return mv.model.NumConstraints() }
func (mv *modelView) vartype(v int) cqm.Vartype { return mv.model.Vartype(v) }
func (mv *modelView) lowerBound(v int) float64 { return mv.model.LowerBound(v) }
func (mv *modelView) upperBound(v int) float64 { return mv.model.UpperBound(v) }
func (mv *modelView) objective() *cqm.Expression { return mv.model.Objective() }
func (mv *modelView) constraintRef(i int) *cqm.Constraint { return mv.model.ConstraintRef(i) }
func (mv *modelView) constraints() []*cqm.Constraint { return mv.model.Constraints() }

// ----- untracked mutations -----

func (mv *modelView) setLowerBound(v int, lb float64) { mv.model.SetLowerBound(v, lb) }
func (mv *modelView) setUpperBound(v int, ub float64) { mv.model.SetUpperBound(v, ub) }

func (mv *modelView) addLinearConstraint(vars []int, coeffs []float64, sense cqm.Sense, rhs float64) int {
	return mv.model.AddLinearConstraint(vars, coeffs, sense, rhs)
}

func (mv *modelView) removeConstraint(i int) {
	mv.model.RemoveConstraint(i)
}

// ----- tracked mutations -----

// addVariable appends a variable and records an ADD transform.
func (mv *modelView) addVariable(vartype cqm.Vartype, lb, ub float64) int {
	v := mv.model.AddVariable(vartype, lb, ub)
	mv.log.appendAdd(v)
	return v
}

// changeVartype performs the only supported vartype transition, SPIN ->
// BINARY, and records the SUBSTITUTE transform that maps a binary sample
// back to a spin one (b -> 2b-1). The model-level substitution of s=2b-1
// into the objective and every constraint, and the bound reset to [0,1],
// are cqm.ChangeVartype's responsibility. Any other transition is a
// programming error.
func (mv *modelView) changeVartype(vartype cqm.Vartype, v int) error {
	if mv.model.Vartype(v) != cqm.Spin || vartype != cqm.Binary {
		return errors.Wrap(ErrLogic, "unsupported vartype change")
	}
	mv.log.appendSubstitute(v, 2, -1)
	mv.model.ChangeVartype(cqm.Binary, v)
	return nil
}

// fixVariable removes v from the model by fixing it to value, and records
// a FIX transform.
func (mv *modelView) fixVariable(v int, value float64) error {
	if err := mv.model.FixVariable(v, value); err != nil {
		return errors.Wrapf(err, "fixVariable(%d, %v)", v, value)
	}
	mv.log.appendFix(v, value)
	return nil
}

// detachModel moves the held model out, leaving an empty one in its place.
// The transform log is left untouched so Restore keeps working.
func (mv *modelView) detachModel() *cqm.ConstrainedQuadraticModel {
	detached := mv.model
	mv.model = cqm.NewConstrainedQuadraticModel()
	return detached
}
