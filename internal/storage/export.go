package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	RunMetadata
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`
}

// ExportJSON writes a run with its solution points as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, xs, ys []float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: meta, Xs: xs, Ys: ys})
}

// WriteCSV writes step,x,y rows. Values use the shortest representation
// that parses back to the same float64.
func WriteCSV(w io.Writer, xs, ys []float64) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "x", "y"}); err != nil {
		return err
	}
	for i := range xs {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(xs[i], 'g', -1, 64),
			strconv.FormatFloat(ys[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
