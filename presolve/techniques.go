package presolve

import (
	"math"

	"github.com/arcondello/dwave-preprocessing/cqm"
)

// Tolerances and sentinels used across the reduction techniques.
const (
	feasibilityTolerance          = 1.0e-6 // epsilon
	conditionalRemovalBiasLimit   = 1.0e-3 // CBL
	conditionalRemovalLimit       = 1.0e-2 // CL
	unconditionalRemovalBiasLimit = 1.0e-10 // UBL
	sumReductionLimit             = 1.0e-1 // SRL
	newBoundMax                   = 1.0e8  // M
	minChangeForBoundUpdate       = 1.0e-3 // MIN_CHANGE factor (times epsilon)
	inf                           = 1.0e30 // activity-arithmetic infinity sentinel, not IEEE Inf
)

// techniqueRemoveZeroBiases removes every quadratic interaction with bias
// exactly 0 and every variable with linear bias 0 and no interactions,
// from the objective and every constraint.
func (mv *modelView) techniqueRemoveZeroBiases() bool {
	changed := removeZeroBiases(mv.objective())
	for _, c := range mv.constraints() {
		if removeZeroBiases(c.Expression) {
			changed = true
		}
	}
	return changed
}

func removeZeroBiases(e *cqm.Expression) bool {
	changed := false

	for _, uv := range e.Interactions() {
		if e.Quadratic(uv[0], uv[1]) == 0 {
			e.RemoveInteraction(uv[0], uv[1])
			changed = true
		}
	}

	for _, v := range e.Variables() {
		if e.Linear(v) == 0 && e.NumInteractions(v) == 0 {
			e.RemoveVariable(v)
			changed = true
		}
	}

	return changed
}

// techniqueRemoveSmallBiases drops linear variables from linear
// constraints whose coefficient is negligible. It is a no-op on
// constraints that still have quadratic terms.
func (mv *modelView) techniqueRemoveSmallBiases() bool {
	changed := false
	for _, c := range mv.constraints() {
		if mv.removeSmallBiases(c) {
			changed = true
		}
	}
	return changed
}

func (mv *modelView) removeSmallBiases(c *cqm.Constraint) bool {
	if !c.IsLinear() {
		return false
	}

	n := float64(c.NumVariables())

	var unconditional, conditional []int
	var reduction, reductionMagnitude float64

	for _, v := range c.Variables() {
		a := c.Linear(v)
		r := mv.upperBound(v) - mv.lowerBound(v)

		if math.Abs(a) < conditionalRemovalBiasLimit && math.Abs(a)*r*n < conditionalRemovalLimit*feasibilityTolerance {
			conditional = append(conditional, v)
			reduction += a * mv.lowerBound(v)
			reductionMagnitude += math.Abs(a) * r
		}
		if math.Abs(a) < unconditionalRemovalBiasLimit {
			unconditional = append(unconditional, v)
		}
	}

	if reductionMagnitude < sumReductionLimit*feasibilityTolerance {
		c.Rhs -= reduction
		unconditional = append(unconditional, conditional...)
	}

	for _, v := range unconditional {
		c.RemoveVariable(v)
	}

	return len(unconditional) > 0
}

// techniqueRemoveSingleVariableConstraints absorbs empty and
// single-variable constraints into the bounds of the variables involved
// (or proves infeasibility), removing the constraint either way. Soft
// constraints are never absorbed into bounds: an empty soft constraint is
// dropped without a feasibility check, and a single-variable soft
// constraint is skipped entirely.
func (mv *modelView) techniqueRemoveSingleVariableConstraints() (bool, error) {
	changed := false

	c := 0
	for c < mv.numConstraints() {
		constraint := mv.constraintRef(c)

		switch constraint.NumVariables() {
		case 0:
			if !constraint.Soft {
				if err := checkEmptyConstraintFeasibility(constraint); err != nil {
					return changed, err
				}
			}
			mv.removeConstraint(c)
			changed = true
			continue

		case 1:
			if constraint.Soft {
				c++
				continue
			}

			v := constraint.Variables()[0]
			a := constraint.Linear(v)
			target := (constraint.Rhs - constraint.Offset()) / a

			switch {
			case constraint.Sense == cqm.EQ:
				mv.setLowerBound(v, math.Max(target, mv.lowerBound(v)))
				mv.setUpperBound(v, math.Min(target, mv.upperBound(v)))
			case (constraint.Sense == cqm.LE) != (a < 0):
				mv.setUpperBound(v, math.Min(target, mv.upperBound(v)))
			default:
				mv.setLowerBound(v, math.Max(target, mv.lowerBound(v)))
			}

			mv.removeConstraint(c)
			changed = true
			continue
		}

		c++
	}

	return changed, nil
}

func checkEmptyConstraintFeasibility(c *cqm.Constraint) error {
	lhs := c.Offset()
	var ok bool
	switch c.Sense {
	case cqm.EQ:
		ok = lhs == c.Rhs
	case cqm.LE:
		ok = lhs <= c.Rhs
	case cqm.GE:
		ok = lhs >= c.Rhs
	}
	if !ok {
		return ErrInfeasible
	}
	return nil
}

// techniqueTightenBounds rounds the bounds of every SPIN, BINARY, or
// INTEGER variable to the nearest feasible integers: the upper bound down,
// the lower bound up. REAL variables are left alone.
func (mv *modelView) techniqueTightenBounds() bool {
	changed := false
	for v := 0; v < mv.numVariables(); v++ {
		switch mv.vartype(v) {
		case cqm.Spin, cqm.Binary, cqm.Integer:
			if ub := mv.upperBound(v); ub != math.Floor(ub) {
				mv.setUpperBound(v, math.Floor(ub))
				changed = true
			}
			if lb := mv.lowerBound(v); lb != math.Ceil(lb) {
				mv.setLowerBound(v, math.Ceil(lb))
				changed = true
			}
		case cqm.Real:
			// unchanged
		}
	}
	return changed
}

// techniqueDomainPropagation tightens variable bounds using the min/max
// activity of each linear, non-soft constraint's remaining terms. It skips
// BINARY variables (their bounds are definitionally tight) and returns
// ErrInfeasible if a propagated bound would exclude the variable's entire
// current domain.
func (mv *modelView) techniqueDomainPropagation() (bool, error) {
	changed := false
	for _, c := range mv.constraints() {
		ok, err := mv.domainPropagation(c)
		if err != nil {
			return changed, err
		}
		if ok {
			changed = true
		}
	}
	return changed, nil
}

func (mv *modelView) domainPropagation(c *cqm.Constraint) (bool, error) {
	if !c.IsLinear() || c.Soft {
		return false, nil
	}

	changed := false
	equality := c.Sense == cqm.EQ

	for _, v := range c.Variables() {
		if mv.vartype(v) == cqm.Binary {
			continue
		}

		minAct, maxAct := mv.minMaxActivity(c, v)
		a := c.Linear(v)
		lb := mv.lowerBound(v)
		ub := mv.upperBound(v)

		pnb1 := (c.Rhs - minAct) / a
		pnb2 := (c.Rhs - maxAct) / a

		if math.Abs(pnb1) > newBoundMax {
			continue
		}
		if equality && math.Abs(pnb2) > newBoundMax {
			continue
		}

		if a > 0 {
			if minAct > -inf && c.Rhs < inf && ub-pnb1 > minChangeForBoundUpdate*feasibilityTolerance {
				switch {
				case pnb1 > lb && pnb1 < ub:
					mv.setUpperBound(v, pnb1)
					changed = true
				case pnb1 < lb:
					return changed, ErrInfeasible
				}
			}
			if equality && maxAct < inf && c.Rhs > -inf && pnb2-lb > minChangeForBoundUpdate*feasibilityTolerance {
				switch {
				case pnb2 > lb && pnb2 < ub:
					mv.setLowerBound(v, pnb2)
					changed = true
				case pnb2 > ub:
					return changed, ErrInfeasible
				}
			}
		} else { // a < 0
			if minAct > -inf && c.Rhs < inf && pnb1-lb > minChangeForBoundUpdate*feasibilityTolerance {
				switch {
				case pnb1 > lb && pnb1 < ub:
					mv.setLowerBound(v, pnb1)
					changed = true
				case pnb1 > ub:
					return changed, ErrInfeasible
				}
			}
			if equality && maxAct < inf && c.Rhs > -inf && ub-pnb2 > minChangeForBoundUpdate*feasibilityTolerance {
				switch {
				case pnb2 > lb && pnb2 < ub:
					mv.setUpperBound(v, pnb2)
					changed = true
				case pnb2 < lb:
					return changed, ErrInfeasible
				}
			}
		}
	}

	return changed, nil
}

// minMaxActivity returns the minimum and maximum value the constraint's
// expression can take over every variable except exclude, given their
// current bounds, using inf as the sentinel for an unbounded side.
func (mv *modelView) minMaxActivity(c *cqm.Constraint, exclude int) (min, max float64) {
	for _, v := range c.Variables() {
		if v == exclude {
			continue
		}

		a := c.Linear(v)
		lb := mv.lowerBound(v)
		ub := mv.upperBound(v)

		if a > 0 {
			if lb > -inf {
				min += a * lb
			} else {
				min = -inf
			}
			if ub < inf {
				max += a * ub
			} else {
				max = inf
			}
		} else {
			if ub < inf {
				min += a * ub
			} else {
				min = -inf
			}
			if lb > -inf {
				max += a * lb
			} else {
				max = inf
			}
		}
	}
	return
}

// techniqueRemoveFixedVariables fixes and removes every variable whose
// bounds have collapsed to a single value, emitting one FIX transform per
// variable.
func (mv *modelView) techniqueRemoveFixedVariables() (bool, error) {
	changed := false

	v := 0
	for v < mv.numVariables() {
		if mv.lowerBound(v) == mv.upperBound(v) {
			if err := mv.fixVariable(v, mv.lowerBound(v)); err != nil {
				return changed, err
			}
			changed = true
			continue
		}
		v++
	}

	return changed, nil
}
