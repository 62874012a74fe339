package cqm

import (
	"sort"

	"github.com/pkg/errors"
)

// pairKey normalizes an unordered pair (u, v) into a lookup key for the
// quadratic bias map. A self-loop has u == v.
type pairKey struct {
	u, v int
}

func makePairKey(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{u, v}
}

// Expression is a quadratic polynomial over a set of variables: a linear
// bias per variable, a quadratic bias per unordered pair of variables, and
// a scalar offset.
type Expression struct {
	linear    map[int]float64
	quadratic map[pairKey]float64
	offset    float64
}

// NewExpression returns an empty expression (all biases zero, offset zero).
func NewExpression() *Expression {
	return &Expression{
		linear:    make(map[int]float64),
		quadratic: make(map[pairKey]float64),
	}
}

// Variables returns the indices of every variable with a stored linear
// bias (a stored bias of zero included) or that participates in at least
// one interaction, in ascending order.
func (e *Expression) Variables() []int {
	seen := make(map[int]struct{}, len(e.linear))
	for v := range e.linear {
		seen[v] = struct{}{}
	}
	for k := range e.quadratic {
		seen[k.u] = struct{}{}
		seen[k.v] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// NumVariables returns the number of distinct variables appearing in the
// expression.
func (e *Expression) NumVariables() int {
	return len(e.Variables())
}

// Interactions returns the (u, v) pairs with a stored quadratic bias,
// self-loops (u == v) included, with u <= v, in no particular order.
func (e *Expression) Interactions() [][2]int {
	out := make([][2]int, 0, len(e.quadratic))
	for k := range e.quadratic {
		out = append(out, [2]int{k.u, k.v})
	}
	return out
}

// Linear returns the linear bias of variable v (0 if absent).
func (e *Expression) Linear(v int) float64 {
	return e.linear[v]
}

// SetLinear sets the linear bias of variable v.
func (e *Expression) SetLinear(v int, bias float64) {
	e.linear[v] = bias
}

// Quadratic returns the bias of the interaction (u, v) (0 if absent). Note
// that u == v addresses a self-loop.
func (e *Expression) Quadratic(u, v int) float64 {
	return e.quadratic[makePairKey(u, v)]
}

// SetQuadratic overwrites the bias of interaction (u, v).
func (e *Expression) SetQuadratic(u, v int, bias float64) {
	e.quadratic[makePairKey(u, v)] = bias
}

// AddQuadratic adds bias to the existing bias of interaction (u, v).
func (e *Expression) AddQuadratic(u, v int, bias float64) {
	key := makePairKey(u, v)
	e.quadratic[key] += bias
}

// HasInteraction reports whether (u, v) has a stored quadratic bias.
func (e *Expression) HasInteraction(u, v int) bool {
	_, ok := e.quadratic[makePairKey(u, v)]
	return ok
}

// RemoveInteraction deletes the (u, v) quadratic bias, if present.
func (e *Expression) RemoveInteraction(u, v int) {
	delete(e.quadratic, makePairKey(u, v))
}

// NumInteractions returns the number of interactions variable v
// participates in, including a self-loop.
func (e *Expression) NumInteractions(v int) int {
	n := 0
	for k := range e.quadratic {
		if k.u == v || k.v == v {
			n++
		}
	}
	return n
}

// RemoveVariable removes v's linear bias and every interaction involving
// v. It does not renumber other variables; callers that need index
// shifting (e.g. fixing a CQM variable) handle that at the model level.
func (e *Expression) RemoveVariable(v int) {
	delete(e.linear, v)
	for k := range e.quadratic {
		if k.u == v || k.v == v {
			delete(e.quadratic, k)
		}
	}
}

// Offset returns the scalar offset.
func (e *Expression) Offset() float64 {
	return e.offset
}

// SetOffset overwrites the scalar offset.
func (e *Expression) SetOffset(offset float64) {
	e.offset = offset
}

// IsLinear reports whether the expression has no quadratic terms.
func (e *Expression) IsLinear() bool {
	return len(e.quadratic) == 0
}

// removeVariableIndex is used by ConstrainedQuadraticModel.FixVariable to
// drop v from this expression and shift every index greater than v down by
// one, matching the index compaction the CQM performs when a variable is
// removed. It returns an error only for a negative index (which
// FixVariable's range check already excludes; the error return exists so
// callers can wrap failures uniformly, matching the rest of the package).
func (e *Expression) removeVariableIndex(v int) error {
	if v < 0 {
		return errors.Errorf("removeVariableIndex: negative index %d", v)
	}

	e.RemoveVariable(v)

	newLinear := make(map[int]float64, len(e.linear))
	for u, bias := range e.linear {
		if u > v {
			u--
		}
		newLinear[u] = bias
	}
	e.linear = newLinear

	newQuadratic := make(map[pairKey]float64, len(e.quadratic))
	for k, bias := range e.quadratic {
		u, w := k.u, k.v
		if u > v {
			u--
		}
		if w > v {
			w--
		}
		newQuadratic[makePairKey(u, w)] = bias
	}
	e.quadratic = newQuadratic

	return nil
}
