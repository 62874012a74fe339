package cqm

import (
	"math"
	"testing"
)

func TestVartypeDefaultBounds(t *testing.T) {
	cases := []struct {
		t      Vartype
		lb, ub float64
	}{
		{Binary, 0, 1},
		{Spin, -1, 1},
		{Integer, 0, math.Inf(1)},
		{Real, math.Inf(-1), math.Inf(1)},
	}
	for _, c := range cases {
		lb, ub := c.t.DefaultBounds()
		if lb != c.lb || ub != c.ub {
			t.Errorf("%s.DefaultBounds() = (%v, %v), want (%v, %v)", c.t, lb, ub, c.lb, c.ub)
		}
	}
}

func TestVartypeString(t *testing.T) {
	if Binary.String() != "BINARY" {
		t.Errorf("Binary.String() = %q, want BINARY", Binary.String())
	}
}
