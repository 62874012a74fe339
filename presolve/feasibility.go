package presolve

// Feasibility is the presolver's running verdict on whether the model has
// a feasible assignment. It only ever moves from Unknown to Infeasible;
// presolve never proves feasibility, only infeasibility.
type Feasibility int

const (
	// FeasibilityUnknown is the initial state: no infeasibility has been
	// detected, but none has been ruled out either.
	FeasibilityUnknown Feasibility = iota
	// FeasibilityFeasible would mean the model's feasibility was
	// affirmatively established. This presolver never sets it, since it
	// only ever proves infeasibility, never feasibility.
	FeasibilityFeasible
	// FeasibilityInfeasible means a reduction step proved the model has
	// no feasible assignment.
	FeasibilityInfeasible
)

// String returns a human-readable name for the feasibility state.
func (f Feasibility) String() string {
	switch f {
	case FeasibilityUnknown:
		return "Unknown"
	case FeasibilityFeasible:
		return "Feasible"
	case FeasibilityInfeasible:
		return "Infeasible"
	default:
		return "Unknown"
	}
}
