// Package compare measures how far one numeric sequence is from another.
package compare

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Kind selects how per-element differences are combined.
type Kind int

const (
	// Mean is the mean absolute difference.
	Mean Kind = iota + 1
	// RMS is sqrt(sum of squared differences) / n.
	RMS
	// Max is the largest absolute difference.
	Max
)

func (k Kind) String() string {
	switch k {
	case Mean:
		return "mean"
	case RMS:
		return "rms"
	case Max:
		return "max"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "mean", "rms" or "max" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "mean":
		return Mean, nil
	case "rms":
		return RMS, nil
	case "max":
		return Max, nil
	}
	return 0, fmt.Errorf("compare: unknown diff kind %q", s)
}

// Element returns the difference between a single expected and actual value.
// For RMS it is the squared difference. When relative is set, the result
// is scaled by |expected| (or expected² for RMS).
func Element[T constraints.Float](kind Kind, relative bool, expected, result T) float64 {
	e, r := float64(expected), float64(result)
	if kind == RMS {
		d := (e - r) * (e - r)
		if relative {
			d /= e * e
		}
		return d
	}
	d := math.Abs(e - r)
	if relative {
		d /= math.Abs(e)
	}
	return d
}

// Diff combines element differences of two equal-length sequences. It panics
// if the lengths differ. Empty sequences yield zero.
func Diff[T constraints.Float](kind Kind, relative bool, expected, result []T) float64 {
	if len(expected) != len(result) {
		panic(fmt.Sprintf("compare: length mismatch %d vs %d", len(expected), len(result)))
	}
	n := len(expected)
	if n == 0 {
		return 0
	}

	acc := 0.0
	for i := range expected {
		d := Element(kind, relative, expected[i], result[i])
		if kind == Max {
			acc = math.Max(acc, d)
		} else {
			acc += d
		}
	}

	switch kind {
	case Mean:
		return acc / float64(n)
	case RMS:
		return math.Sqrt(acc) / float64(n)
	default:
		return acc
	}
}
