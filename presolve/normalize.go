package presolve

import (
	"math"

	"github.com/arcondello/dwave-preprocessing/cqm"
)

// normalize brings the model into canonical form: no NaN biases, no SPIN
// variables, zero constraint offsets, senses restricted to {LE, EQ}, no
// self-loops, and valid discrete markers. It returns true if anything
// changed, and ErrInvalidModel if a NaN bias was found.
func (mv *modelView) normalize() (bool, error) {
	changed := false

	if err := mv.normalizationCheckNaN(); err != nil {
		return false, err
	}
	if mv.normalizationSpinToBinary() {
		changed = true
	}
	if mv.normalizationRemoveOffsets() {
		changed = true
	}
	if mv.normalizationRemoveSelfLoops() {
		changed = true
	}
	if mv.normalizationFlipConstraints() {
		changed = true
	}
	if mv.normalizationRemoveInvalidMarkers() {
		changed = true
	}

	return changed, nil
}

// normalizationCheckNaN scans the objective and every constraint for a NaN
// bias. It never mutates the model; it either returns ErrInvalidModel or
// nil.
func (mv *modelView) normalizationCheckNaN() error {
	if err := checkExpressionNaN(mv.objective()); err != nil {
		return err
	}
	for _, c := range mv.constraints() {
		if err := checkExpressionNaN(c.Expression); err != nil {
			return err
		}
	}
	return nil
}

func checkExpressionNaN(e *cqm.Expression) error {
	if math.IsNaN(e.Offset()) {
		return ErrInvalidModel
	}
	for _, v := range e.Variables() {
		if math.IsNaN(e.Linear(v)) {
			return ErrInvalidModel
		}
	}
	for _, uv := range e.Interactions() {
		if math.IsNaN(e.Quadratic(uv[0], uv[1])) {
			return ErrInvalidModel
		}
	}
	return nil
}

// normalizationSpinToBinary converts every SPIN variable to BINARY,
// emitting one SUBSTITUTE transform per variable.
func (mv *modelView) normalizationSpinToBinary() bool {
	changed := false
	for v := 0; v < mv.numVariables(); v++ {
		if mv.vartype(v) == cqm.Spin {
			// changeVartype only fails on an unsupported transition, which
			// this never is.
			_ = mv.changeVartype(cqm.Binary, v)
			changed = true
		}
	}
	return changed
}

// normalizationRemoveOffsets zeroes every constraint's offset, folding it
// into the rhs: `x + 1 <= 2` becomes `x <= 1`.
func (mv *modelView) normalizationRemoveOffsets() bool {
	changed := false
	for _, c := range mv.constraints() {
		if c.Offset() != 0 {
			c.Rhs -= c.Offset()
			c.SetOffset(0)
			changed = true
		}
	}
	return changed
}

// normalizationRemoveSelfLoops eliminates every x*x term by introducing,
// once per original variable with a self-loop, a fresh auxiliary variable
// that carries the same bias against the original, then tying the two
// together with a new equality constraint. The auxiliary-variable mapping
// is shared across the objective and every constraint so a variable that
// self-loops in more than one expression gets exactly one auxiliary, and
// the new constraints are only appended once every expression has been
// walked, to avoid invalidating the constraint list mid-walk.
func (mv *modelView) normalizationRemoveSelfLoops() bool {
	mapping := make(map[int]int)

	substitute := func(expr *cqm.Expression) {
		for _, v := range expr.Variables() {
			if !expr.HasInteraction(v, v) {
				continue
			}

			aux, ok := mapping[v]
			if !ok {
				aux = mv.addVariable(mv.vartype(v), mv.lowerBound(v), mv.upperBound(v))
				mapping[v] = aux
			}

			bias := expr.Quadratic(v, v)
			expr.AddQuadratic(v, aux, bias)
			expr.RemoveInteraction(v, v)
		}
	}

	substitute(mv.objective())
	for _, c := range mv.constraints() {
		substitute(c.Expression)
	}

	for v, aux := range mapping {
		mv.addLinearConstraint([]int{v, aux}, []float64{1, -1}, cqm.EQ, 0)
	}

	return len(mapping) > 0
}

// normalizationFlipConstraints rewrites every GE constraint into an
// equivalent LE one by scaling the expression and rhs by -1.
func (mv *modelView) normalizationFlipConstraints() bool {
	changed := false
	for _, c := range mv.constraints() {
		if c.Sense == cqm.GE {
			c.Scale(-1)
			c.Sense = cqm.LE
			changed = true
		}
	}
	return changed
}

// normalizationRemoveInvalidMarkers clears the discrete marker from any
// constraint that is not actually one-hot, then, among the remaining
// marked constraints (taken in index order), clears the marker from any
// constraint that shares a variable with an earlier-kept marked
// constraint.
func (mv *modelView) normalizationRemoveInvalidMarkers() bool {
	changed := false

	var discrete []int
	for i, c := range mv.constraints() {
		if !c.MarkedDiscrete() {
			continue
		}
		if mv.isOneHot(c) {
			discrete = append(discrete, i)
		} else {
			c.MarkDiscrete(false)
			changed = true
		}
	}

	kept := make([]int, 0, len(discrete))
	for _, i := range discrete {
		c := mv.constraintRef(i)
		overlap := false
		for _, j := range kept {
			if mv.constraintRef(j).SharesVariables(c) {
				overlap = true
				break
			}
		}
		if overlap {
			c.MarkDiscrete(false)
			changed = true
			continue
		}
		kept = append(kept, i)
	}

	return changed
}

// isOneHot applies cqm.Constraint's structural one-hot check and, on top of
// it, the vartype condition that Constraint itself cannot check since it has
// no access to the model's vartype table: every variable involved must be
// BINARY.
func (mv *modelView) isOneHot(c *cqm.Constraint) bool {
	if !c.IsOneHot() {
		return false
	}
	for _, v := range c.Variables() {
		if mv.vartype(v) != cqm.Binary {
			return false
		}
	}
	return true
}
