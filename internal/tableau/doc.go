// Package tableau holds Butcher tableaus for explicit Runge-Kutta methods
// and the structural analysis derived from them.
//
// A tableau with N stages is written as
//
//	     |
//	c[0] | a[0][0]
//	c[1] | a[1][0] a[1][1]
//	...  | ...
//	-----|--------------------
//	     | b[0]    b[1]   ... b[N-1]
//
// Row i of A and C[i] describe stage i+1; stage 0 always evaluates at the
// start of the step. The package provides:
//
//   - [Tableau]: immutable coefficient store, validated at construction
//   - [Triangular]: the ragged lower-triangular A matrix
//   - sparsity queries ([Tableau.IsUseK], [Tableau.NeedRecordK],
//     [Tableau.NeedKNum]) based on exact zero coefficients
//   - a catalogue of named float64 methods ([Lookup], [Methods])
//
// # Thread Safety
//
// Tableau values never change after [New] returns, so they may be shared
// freely between goroutines.
package tableau
