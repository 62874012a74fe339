package presolve

import (
	"github.com/pkg/errors"

	"github.com/arcondello/dwave-preprocessing/cqm"
)

// maxRounds bounds the number of passes the technique loop makes before
// giving up; it exists as a safety valve against floating-point
// oscillation, not because production models are expected to need
// anywhere near this many rounds.
const maxRounds = 100

// Presolver rewrites a CQM into a smaller, better-conditioned CQM by
// normalizing it and then iterating a configurable set of reduction
// techniques to a fixed point. It owns the model for its lifetime or
// until DetachModel is called.
//
// Presolver is not internally synchronized; callers must serialize calls
// against a single instance.
type Presolver struct {
	view *modelView

	techniques TechniqueFlags

	detached   bool
	normalized bool

	feasibility Feasibility
}

// NewPresolver constructs a presolver that owns model and will run the
// techniques selected by flags when Apply is called.
func NewPresolver(model *cqm.ConstrainedQuadraticModel, flags TechniqueFlags) *Presolver {
	return &Presolver{
		view:       newModelView(model),
		techniques: flags,
	}
}

// Model returns the CQM the presolver currently holds.
func (p *Presolver) Model() *cqm.ConstrainedQuadraticModel {
	return p.view.model
}

// Feasibility returns the presolver's current feasibility verdict.
func (p *Presolver) Feasibility() Feasibility {
	return p.feasibility
}

// Normalize brings the held model into canonical form: no NaN biases, no
// SPIN variables, zero constraint offsets, senses restricted to {LE, EQ},
// no self-loops, and valid discrete markers. It returns whether anything
// changed, and ErrInvalidModel if the model contains a NaN bias.
func (p *Presolver) Normalize() (bool, error) {
	if p.detached {
		return false, errors.Wrap(ErrLogic, "model has been detached, there is no model to normalize")
	}

	changed, err := p.view.normalize()
	if err != nil {
		return false, err
	}

	p.normalized = true
	return changed, nil
}

// Apply normalizes the model (Normalize runs on every call, even if it has
// already run) and then iterates the enabled techniques to a fixed point, up to maxRounds
// rounds. It returns whether anything changed, or ErrInfeasible if a
// technique proved the model infeasible.
//
// Round order is significant: zero/small-bias removal compacts
// expressions first, constraint absorption and bound tightening then feed
// domain propagation, and propagation in turn exposes variables whose
// bounds have collapsed for the fixed-variable removal step to clean up.
func (p *Presolver) Apply() (bool, error) {
	if p.detached {
		return false, errors.Wrap(ErrLogic, "model has been detached, there is no model to apply presolve to")
	}

	changedAny, err := p.Normalize()
	if err != nil {
		return false, err
	}

	if p.techniques == FlagNone {
		return changedAny, nil
	}

	changed := true
	for round := 0; round < maxRounds && changed; round++ {
		changed = false

		if p.techniques.Has(FlagRemoveZeroBiases) {
			if p.view.techniqueRemoveZeroBiases() {
				changed = true
			}
		}
		if p.techniques.Has(FlagRemoveSmallBiases) {
			if p.view.techniqueRemoveSmallBiases() {
				changed = true
			}
		}
		if p.techniques.Has(FlagRemoveSingleVariableConstraints) {
			ok, err := p.view.techniqueRemoveSingleVariableConstraints()
			if err != nil {
				return p.fail(err)
			}
			changed = changed || ok
		}
		if p.techniques.Has(FlagTightenBounds) {
			if p.view.techniqueTightenBounds() {
				changed = true
			}
		}
		if p.techniques.Has(FlagDomainPropagation) {
			ok, err := p.view.techniqueDomainPropagation()
			if err != nil {
				return p.fail(err)
			}
			changed = changed || ok
		}
		if p.techniques.Has(FlagRemoveFixedVariables) {
			ok, err := p.view.techniqueRemoveFixedVariables()
			if err != nil {
				return p.fail(err)
			}
			changed = changed || ok
		}

		changedAny = changedAny || changed
	}

	if p.view.normalizationRemoveInvalidMarkers() {
		changedAny = true
	}

	return changedAny, nil
}

// fail records that the model has been proven infeasible and returns the
// (wrapped, still errors.Is-comparable) error to the caller.
func (p *Presolver) fail(err error) (bool, error) {
	if errors.Is(err, ErrInfeasible) {
		p.feasibility = FeasibilityInfeasible
	}
	return false, err
}

// DetachModel moves the reduced CQM out of the presolver, leaving an
// empty model behind. The transform log survives detachment, so Restore
// keeps working afterward.
func (p *Presolver) DetachModel() *cqm.ConstrainedQuadraticModel {
	p.detached = true
	return p.view.detachModel()
}

// Restore lifts a sample of the (possibly reduced) model back into the
// original variable space by replaying the transform log in reverse.
// Restore is pure and works after DetachModel, since the log is never
// cleared.
func (p *Presolver) Restore(sample []float64) []float64 {
	return p.view.log.restore(sample)
}
