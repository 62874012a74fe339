package presolve

// transformKind identifies which sample-space change a Transform records.
type transformKind int

const (
	// transformFix records that a variable was removed from the model by
	// fixing it to a known value.
	transformFix transformKind = iota
	// transformSubstitute records that a variable's value was rewritten
	// in place (currently only SPIN -> BINARY: b in {0,1} maps to
	// 2b-1 in {-1,+1}).
	transformSubstitute
	// transformAdd records that a fresh variable was appended to the
	// model and has no counterpart in the original sample space.
	transformAdd
)

// transform is one entry in a transformLog: a single sample-space change
// made by a tracked ModelView mutation.
type transform struct {
	kind       transformKind
	v          int     // variable index the transform applies to
	value      float64 // transformFix: the assigned value
	multiplier float64 // transformSubstitute: sample[v] <- multiplier*sample[v] + offset
	offset     float64
}

// transformLog is the ordered, append-only record of every sample-space
// change a ModelView's tracked mutations have made. Restore replays it in
// reverse to lift a reduced-space sample back into the original space.
type transformLog struct {
	entries []transform
}

func (l *transformLog) appendFix(v int, value float64) {
	l.entries = append(l.entries, transform{kind: transformFix, v: v, value: value})
}

func (l *transformLog) appendSubstitute(v int, multiplier, offset float64) {
	l.entries = append(l.entries, transform{kind: transformSubstitute, v: v, multiplier: multiplier, offset: offset})
}

func (l *transformLog) appendAdd(v int) {
	l.entries = append(l.entries, transform{kind: transformAdd, v: v})
}

// restore replays the log in reverse against a reduced-space sample,
// producing a sample with one entry per original variable in original
// index order. It is pure: it never mutates the log, and may be called any
// number of times, including after the presolver's model has been
// detached.
func (l *transformLog) restore(sample []float64) []float64 {
	out := append([]float64(nil), sample...)

	for i := len(l.entries) - 1; i >= 0; i-- {
		t := l.entries[i]
		switch t.kind {
		case transformFix:
			out = append(out, 0)
			copy(out[t.v+1:], out[t.v:])
			out[t.v] = t.value
		case transformSubstitute:
			out[t.v] = t.multiplier*out[t.v] + t.offset
		case transformAdd:
			out = append(out[:t.v], out[t.v+1:]...)
		}
	}

	return out
}
