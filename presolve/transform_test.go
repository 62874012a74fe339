package presolve

import (
	"reflect"
	"testing"
)

func TestTransformLogRestoreFix(t *testing.T) {
	var log transformLog
	log.appendFix(1, 1)

	got := log.restore([]float64{0})
	want := []float64{0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restore() = %v, want %v", got, want)
	}
}

func TestTransformLogRestoreSubstitute(t *testing.T) {
	var log transformLog
	log.appendSubstitute(0, 2, -1)

	got := log.restore([]float64{0})
	want := []float64{-1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restore() = %v, want %v", got, want)
	}
}

func TestTransformLogRestoreAdd(t *testing.T) {
	var log transformLog
	log.appendAdd(1)

	got := log.restore([]float64{5, 9})
	want := []float64{5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restore() = %v, want %v", got, want)
	}
}

// TestTransformLogRestoreSpinFixedBinary checks a SPIN variable converted
// to BINARY, and a BINARY variable fixed to 1, in that order. Restore must
// replay in reverse: undo the FIX first, then the SUBSTITUTE.
func TestTransformLogRestoreSpinFixedBinary(t *testing.T) {
	var log transformLog
	log.appendSubstitute(0, 2, -1) // spin s at index 0 -> binary
	log.appendFix(1, 1)            // binary b at index 1 fixed to 1

	got := log.restore([]float64{0})
	want := []float64{-1, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restore() = %v, want %v", got, want)
	}
}

func TestTransformLogRestoreEmptyIsNoop(t *testing.T) {
	var log transformLog
	sample := []float64{1, 2, 3}
	got := log.restore(sample)
	if !reflect.DeepEqual(got, sample) {
		t.Errorf("restore() = %v, want %v unchanged", got, sample)
	}
}
