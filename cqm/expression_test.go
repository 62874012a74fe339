package cqm

import "testing"

func almostEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}

func TestExpressionLinearDefaultsToZero(t *testing.T) {
	e := NewExpression()
	if got := e.Linear(0); got != 0 {
		t.Errorf("Linear(0) = %v, want 0", got)
	}
}

func TestExpressionSetLinear(t *testing.T) {
	e := NewExpression()
	e.SetLinear(2, 1.5)
	if got := e.Linear(2); got != 1.5 {
		t.Errorf("Linear(2) = %v, want 1.5", got)
	}
	if n := e.NumVariables(); n != 1 {
		t.Errorf("NumVariables() = %d, want 1", n)
	}
}

func TestExpressionQuadraticSymmetric(t *testing.T) {
	e := NewExpression()
	e.SetQuadratic(0, 1, 3)
	if got := e.Quadratic(1, 0); got != 3 {
		t.Errorf("Quadratic(1,0) = %v, want 3 (order shouldn't matter)", got)
	}
	if !e.HasInteraction(0, 1) || !e.HasInteraction(1, 0) {
		t.Errorf("HasInteraction should report true regardless of argument order")
	}
}

func TestExpressionAddQuadraticAccumulates(t *testing.T) {
	e := NewExpression()
	e.AddQuadratic(0, 1, 2)
	e.AddQuadratic(1, 0, 3)
	if got := e.Quadratic(0, 1); got != 5 {
		t.Errorf("Quadratic(0,1) = %v, want 5", got)
	}
}

func TestExpressionVariablesIncludesQuadraticOnly(t *testing.T) {
	e := NewExpression()
	e.SetQuadratic(0, 1, 1)
	vars := e.Variables()
	if len(vars) != 2 || vars[0] != 0 || vars[1] != 1 {
		t.Errorf("Variables() = %v, want [0 1]", vars)
	}
}

func TestExpressionRemoveInteraction(t *testing.T) {
	e := NewExpression()
	e.SetQuadratic(0, 1, 4)
	e.RemoveInteraction(0, 1)
	if e.HasInteraction(0, 1) {
		t.Errorf("interaction still present after removal")
	}
	if !e.IsLinear() {
		t.Errorf("IsLinear() = false after removing the only interaction")
	}
}

func TestExpressionRemoveVariableDropsInteractions(t *testing.T) {
	e := NewExpression()
	e.SetLinear(0, 1)
	e.SetQuadratic(0, 1, 2)
	e.SetQuadratic(1, 2, 3)
	e.RemoveVariable(0)

	if got := e.Linear(0); got != 0 {
		t.Errorf("Linear(0) = %v after removal, want 0", got)
	}
	if e.HasInteraction(0, 1) {
		t.Errorf("interaction (0,1) should be gone")
	}
	if !e.HasInteraction(1, 2) {
		t.Errorf("interaction (1,2) should survive, it doesn't touch the removed variable")
	}
}

func TestExpressionNumInteractionsCountsSelfLoop(t *testing.T) {
	e := NewExpression()
	e.SetQuadratic(0, 0, 1)
	e.SetQuadratic(0, 1, 1)
	if n := e.NumInteractions(0); n != 2 {
		t.Errorf("NumInteractions(0) = %d, want 2", n)
	}
}
