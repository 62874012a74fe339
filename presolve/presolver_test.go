package presolve

import (
	"testing"

	"github.com/arcondello/dwave-preprocessing/cqm"
	"github.com/pkg/errors"
)

func TestPresolverApplyWithNoTechniquesOnlyNormalizes(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	x0 := model.AddVariable(cqm.Spin, -1, 1)
	model.Objective().SetLinear(x0, 1)

	p := NewPresolver(model, FlagNone)
	changed, err := p.Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change from normalization (SPIN -> BINARY)")
	}
	if p.Model().Vartype(x0) != cqm.Binary {
		t.Errorf("vartype = %s, want BINARY", p.Model().Vartype(x0))
	}
	if p.Model().NumVariables() != 1 {
		t.Errorf("no technique should have removed the variable")
	}
}

// TestPresolverApplyReducesKnapsack runs the full technique loop over a
// small binary model and checks that fixed-variable removal, bound
// tightening, and single-variable-constraint absorption all fire.
func TestPresolverApplyReducesKnapsack(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	x0 := model.AddVariable(cqm.Binary, 0, 1)
	model.Objective().SetLinear(x0, -1)
	model.AddLinearConstraint([]int{x0}, []float64{3}, cqm.LE, 1)

	p := NewPresolver(model, FlagAll)
	changed, err := p.Apply()
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change")
	}

	reduced := p.DetachModel()
	if reduced.NumVariables() != 0 {
		t.Fatalf("NumVariables() = %d, want 0 (3x0<=1 over binary forces x0=0, then fixed-variable removal fires)", reduced.NumVariables())
	}
	if reduced.NumConstraints() != 0 {
		t.Errorf("NumConstraints() = %d, want 0", reduced.NumConstraints())
	}
}

func TestPresolverApplyDetectsInfeasibility(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	model.AddLinearConstraint(nil, nil, cqm.LE, -1)

	p := NewPresolver(model, FlagAll)
	_, err := p.Apply()
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want wrapping ErrInfeasible", err)
	}
	if p.Feasibility() != FeasibilityInfeasible {
		t.Errorf("Feasibility() = %s, want Infeasible", p.Feasibility())
	}
}

func TestPresolverApplyFailsAfterDetach(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	p := NewPresolver(model, FlagAll)
	p.DetachModel()

	if _, err := p.Apply(); !errors.Is(err, ErrLogic) {
		t.Errorf("err = %v, want wrapping ErrLogic", err)
	}
	if _, err := p.Normalize(); !errors.Is(err, ErrLogic) {
		t.Errorf("err = %v, want wrapping ErrLogic", err)
	}
}

// TestPresolverRestoreRoundTrip checks an end-to-end round trip: a SPIN
// variable normalized to BINARY, and a second variable that gets fixed
// during the technique loop. Restore must recover the original two-variable
// sample.
func TestPresolverRestoreRoundTrip(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	s := model.AddVariable(cqm.Spin, -1, 1)
	b := model.AddVariable(cqm.Binary, 1, 1) // pre-fixed to 1

	model.Objective().SetLinear(s, 1)
	model.Objective().SetLinear(b, 2)

	p := NewPresolver(model, FlagAll)
	if _, err := p.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	reduced := p.DetachModel()
	if reduced.NumVariables() != 1 {
		t.Fatalf("NumVariables() = %d, want 1 (b should have been fixed away)", reduced.NumVariables())
	}

	restored := p.Restore([]float64{0})
	want := []float64{-1, 1}
	if len(restored) != 2 || restored[0] != want[0] || restored[1] != want[1] {
		t.Errorf("Restore([0]) = %v, want %v", restored, want)
	}
}

// TestPresolverRestoreSatisfiesOriginalSpinConstraint checks the round
// trip for a SPIN variable that appears in a constraint, not just the
// objective: `s >= 0` over s in {-1,1} has the single feasible point s=1.
// Restore must recover that point, which requires the SPIN -> BINARY
// substitution to have actually rewritten the constraint (s=2b-1), not
// merely relabeled s's type and bounds.
func TestPresolverRestoreSatisfiesOriginalSpinConstraint(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	s := model.AddVariable(cqm.Spin, -1, 1)
	model.AddLinearConstraint([]int{s}, []float64{1}, cqm.GE, 0)

	p := NewPresolver(model, FlagAll)
	if _, err := p.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	reduced := p.DetachModel()
	if reduced.NumVariables() != 0 {
		t.Fatalf("NumVariables() = %d, want 0 (s >= 0 forces b=1, then fixed-variable removal fires)", reduced.NumVariables())
	}

	restored := p.Restore([]float64{})
	if len(restored) != 1 || restored[0] != 1 {
		t.Fatalf("Restore([]) = %v, want [1]", restored)
	}
	if restored[0] < 0 {
		t.Errorf("restored sample %v violates the original constraint s >= 0", restored)
	}
}

func TestPresolverRestoreWorksAfterDetach(t *testing.T) {
	model := cqm.NewConstrainedQuadraticModel()
	model.AddVariable(cqm.Binary, 0, 0)
	model.Objective().SetLinear(0, 1)

	p := NewPresolver(model, FlagAll)
	if _, err := p.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	p.DetachModel()

	restored := p.Restore([]float64{})
	if len(restored) != 1 || restored[0] != 0 {
		t.Errorf("Restore([]) = %v, want [0]", restored)
	}
}
