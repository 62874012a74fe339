package cqm

import (
	"github.com/pkg/errors"
)

// variableData holds the per-variable attributes tracked by the model:
// type and bounds.
type variableData struct {
	vartype Vartype
	lb, ub  float64
}

// ConstrainedQuadraticModel is an ordered collection of variables and
// constraints plus a quadratic objective.
//
// Variables are identified by a dense, nonnegative index; removing one
// (via FixVariable) shifts every later index down by one. Constraints are
// identified by index too; RemoveConstraint compacts the list the same
// way. Neither operation is safe to call while iterating by index without
// accounting for the shift; see the presolve package's techniques for the
// idiom (iterate with an explicit cursor, re-checking the current index
// after a removal instead of advancing).
type ConstrainedQuadraticModel struct {
	variables   []variableData
	constraints []*Constraint
	objective   *Expression
}

// NewConstrainedQuadraticModel returns an empty CQM.
func NewConstrainedQuadraticModel() *ConstrainedQuadraticModel {
	return &ConstrainedQuadraticModel{
		objective: NewExpression(),
	}
}

// AddVariable appends a new variable of the given type and bounds,
// returning its index.
func (m *ConstrainedQuadraticModel) AddVariable(vartype Vartype, lb, ub float64) int {
	m.variables = append(m.variables, variableData{vartype: vartype, lb: lb, ub: ub})
	return len(m.variables) - 1
}

// NumVariables returns the number of variables in the model.
func (m *ConstrainedQuadraticModel) NumVariables() int {
	return len(m.variables)
}

// Vartype returns the type of variable v.
func (m *ConstrainedQuadraticModel) Vartype(v int) Vartype {
	return m.variables[v].vartype
}

// LowerBound returns the lower bound of variable v.
func (m *ConstrainedQuadraticModel) LowerBound(v int) float64 {
	return m.variables[v].lb
}

// UpperBound returns the upper bound of variable v.
func (m *ConstrainedQuadraticModel) UpperBound(v int) float64 {
	return m.variables[v].ub
}

// SetLowerBound overwrites the lower bound of variable v.
func (m *ConstrainedQuadraticModel) SetLowerBound(v int, lb float64) {
	m.variables[v].lb = lb
}

// SetUpperBound overwrites the upper bound of variable v.
func (m *ConstrainedQuadraticModel) SetUpperBound(v int, ub float64) {
	m.variables[v].ub = ub
}

// ChangeVartype overwrites the type of variable v. Converting a SPIN
// variable to BINARY substitutes s = 2b-1 into the objective and every
// constraint, preserving the model's feasible set, and resets v's bounds
// to [0, 1]. Any other transition just relabels v without touching its
// bounds; callers that need bounds renormalized for some other pair of
// types must set them explicitly.
func (m *ConstrainedQuadraticModel) ChangeVartype(vartype Vartype, v int) {
	if m.variables[v].vartype == Spin && vartype == Binary {
		substituteSpinToBinary(m.objective, v)
		for _, c := range m.constraints {
			substituteSpinToBinary(c.Expression, v)
		}
		m.variables[v].lb = 0
		m.variables[v].ub = 1
	}
	m.variables[v].vartype = vartype
}

// substituteSpinToBinary rewrites every term touching variable v under
// s = 2b-1, SPIN's encoding in terms of BINARY, so the expression keeps
// the same value at every corresponding pair of assignments: a linear
// bias a on v becomes 2a, shedding a -a that folds into the offset; a
// quadratic bias b on (v, u) becomes 2b, shedding a -b that folds into
// u's linear bias; a self-loop bias c on (v, v) becomes 4c, shedding a
// -4c that folds into v's own linear bias and a +c that folds into the
// offset.
func substituteSpinToBinary(e *Expression, v int) {
	if _, ok := e.linear[v]; !ok && e.NumInteractions(v) == 0 {
		return
	}

	newLinear := 2 * e.Linear(v)
	offsetDelta := -e.Linear(v)

	for _, uv := range e.Interactions() {
		u, w := uv[0], uv[1]
		switch {
		case u == v && w == v:
			c := e.Quadratic(v, v)
			e.SetQuadratic(v, v, 4*c)
			newLinear -= 4 * c
			offsetDelta += c
		case u == v:
			c := e.Quadratic(u, w)
			e.SetQuadratic(u, w, 2*c)
			e.SetLinear(w, e.Linear(w)-c)
		case w == v:
			c := e.Quadratic(u, w)
			e.SetQuadratic(u, w, 2*c)
			e.SetLinear(u, e.Linear(u)-c)
		}
	}

	e.SetLinear(v, newLinear)
	e.SetOffset(e.Offset() + offsetDelta)
}

// Objective returns the model's objective expression.
func (m *ConstrainedQuadraticModel) Objective() *Expression {
	return m.objective
}

// NumConstraints returns the number of constraints in the model.
func (m *ConstrainedQuadraticModel) NumConstraints() int {
	return len(m.constraints)
}

// ConstraintRef returns a pointer to constraint i for in-place editing.
func (m *ConstrainedQuadraticModel) ConstraintRef(i int) *Constraint {
	return m.constraints[i]
}

// Constraints returns every constraint, in index order.
func (m *ConstrainedQuadraticModel) Constraints() []*Constraint {
	return m.constraints
}

// AddLinearConstraint appends a linear constraint `sum(coeffs[i]*vars[i])
// sense rhs` and returns its index.
func (m *ConstrainedQuadraticModel) AddLinearConstraint(vars []int, coeffs []float64, sense Sense, rhs float64) int {
	c := NewConstraint(sense, rhs)
	for i, v := range vars {
		c.SetLinear(v, coeffs[i])
	}
	m.constraints = append(m.constraints, c)
	return len(m.constraints) - 1
}

// RemoveConstraint deletes constraint i, compacting the list so later
// constraints shift down by one index.
func (m *ConstrainedQuadraticModel) RemoveConstraint(i int) {
	m.constraints = append(m.constraints[:i], m.constraints[i+1:]...)
}

// FixVariable substitutes variable v's value into the objective and every
// constraint, then removes v from the model, shifting every later variable
// index down by one.
//
// Substitution folds v's contribution into the constant side of each
// expression it appears in: a linear bias a on v moves a*value to the
// constant side, subtracted from the rhs (for a constraint, whose offset
// is assumed to already be zero, true of any CQM that has been through
// presolve.Normalize) or added to the offset (for the objective); a quadratic bias b on
// (v, u) contributes b*value to u's linear bias in that same expression,
// since x_v*x_u with x_v fixed becomes (b*value)*x_u.
func (m *ConstrainedQuadraticModel) FixVariable(v int, value float64) error {
	if v < 0 || v >= len(m.variables) {
		return errors.Errorf("FixVariable: index %d out of range", v)
	}

	if a := m.objective.Linear(v); a != 0 {
		m.objective.SetOffset(m.objective.Offset() + a*value)
	}
	foldQuadratic(m.objective, v, value)

	for _, c := range m.constraints {
		// c.Offset() is 0 for any constraint that has been through
		// presolve.Normalize, so v's linear contribution moves to Rhs
		// directly rather than through the offset.
		c.Rhs -= c.Linear(v) * value
		foldQuadratic(c.Expression, v, value)
	}

	if err := m.objective.removeVariableIndex(v); err != nil {
		return errors.Wrapf(err, "FixVariable: objective")
	}
	for i, c := range m.constraints {
		if err := c.removeVariableIndex(v); err != nil {
			return errors.Wrapf(err, "FixVariable: constraint %d", i)
		}
	}

	m.variables = append(m.variables[:v], m.variables[v+1:]...)
	return nil
}

// foldQuadratic folds every interaction (v, u) into u's linear bias: with
// x_v fixed to value, the term b*x_v*x_u becomes the linear term
// (b*value)*x_u. Self-loops on v are not expected here; normalization
// removes them before any technique (including fixing) ever runs.
func foldQuadratic(expr *Expression, v int, value float64) {
	for _, uv := range expr.Interactions() {
		u, w := uv[0], uv[1]
		var other int
		switch {
		case u == v && w == v:
			continue
		case u == v:
			other = w
		case w == v:
			other = u
		default:
			continue
		}
		b := expr.Quadratic(u, w)
		expr.SetLinear(other, expr.Linear(other)+b*value)
	}
}
