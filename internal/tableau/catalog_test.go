package tableau

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range Methods() {
		tab, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if tab.Name() != name {
			t.Errorf("Lookup(%q) returned %q", name, tab.Name())
		}
	}

	_, err := Lookup("gauss-legendre")
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestMethods_Sorted(t *testing.T) {
	names := Methods()
	if len(names) != 9 {
		t.Errorf("expected 9 methods, got %d", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("methods not sorted: %v", names)
	}
}

// Real methods satisfy sum(B) = 1 and sum(A[i]) = C[i].
func TestCatalog_Consistency(t *testing.T) {
	for _, name := range Methods() {
		tab, _ := Lookup(name)
		t.Run(name, func(t *testing.T) {
			sum := 0.0
			for _, b := range tab.B() {
				sum += b
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("sum(B) = %.15f", sum)
			}

			c := tab.C()
			for i := 0; i < tab.A().Rows(); i++ {
				rowSum := 0.0
				for _, a := range tab.A().Row(i) {
					rowSum += a
				}
				if math.Abs(rowSum-c[i]) > 1e-12 {
					t.Errorf("row %d sums to %.15f, C = %.15f", i, rowSum, c[i])
				}
			}
		})
	}
}
