package tableau

import "fmt"

// Triangular is a ragged lower-triangular matrix where row i holds i+1
// entries. Rows are packed into one backing slice; row i starts at the
// triangular number i*(i+1)/2.
type Triangular[T Float] struct {
	data []T
	rows int
}

func newTriangular[T Float](rows [][]T) Triangular[T] {
	data := make([]T, 0, len(rows)*(len(rows)+1)/2)
	for _, r := range rows {
		data = append(data, r...)
	}
	return Triangular[T]{data: data, rows: len(rows)}
}

func rowOffset(i int) int {
	return i * (i + 1) / 2
}

// Rows returns the number of rows.
func (m Triangular[T]) Rows() int { return m.rows }

// At returns the coefficient in row i, column j. It panics unless 0 <= j <= i < Rows().
func (m Triangular[T]) At(i, j int) T {
	if i < 0 || i >= m.rows || j < 0 || j > i {
		panic(fmt.Sprintf("tableau: index (%d, %d) outside triangular matrix with %d rows", i, j, m.rows))
	}
	return m.data[rowOffset(i)+j]
}

// Row returns a copy of row i.
func (m Triangular[T]) Row(i int) []T {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("tableau: row %d outside triangular matrix with %d rows", i, m.rows))
	}
	row := make([]T, i+1)
	copy(row, m.row(i))
	return row
}

// row aliases the backing storage; callers inside the package must not write to it.
func (m Triangular[T]) row(i int) []T {
	off := rowOffset(i)
	return m.data[off : off+i+1]
}
