// Package stats summarizes the errors in tabular results measured
// against a reference column, the usual last step after collecting
// computed properties from a batch of output files.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// An ErrorSummary holds per-column error statistics against a
// reference column. Slices are indexed parallel to Cols.
type ErrorSummary struct {
	Cols      []string
	MAE       []float64 // mean absolute error
	MSE       []float64 // mean signed error
	AbsMin    []float64
	AbsMax    []float64
	AbsMinIdx []int // row of the minimal absolute error
	AbsMaxIdx []int // row of the maximal absolute error
	Count     int
}

// Summary computes error statistics for the subset columns of data
// against the ref column. cols names the columns of data in order.
func Summary(data *mat.Dense, cols, subset []string, ref string) (*ErrorSummary, error) {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	ri, ok := idx[ref]
	if !ok {
		return nil, fmt.Errorf("no reference column %q", ref)
	}
	rows, _ := data.Dims()
	if rows == 0 {
		return nil, fmt.Errorf("no rows to summarize")
	}
	refCol := mat.Col(nil, ri, data)
	s := &ErrorSummary{Count: rows}
	for _, name := range subset {
		ci, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		col := mat.Col(nil, ci, data)
		var (
			mae, mse float64
			amin     = math.Inf(1)
			amax     = math.Inf(-1)
			mini     int
			maxi     int
		)
		for i := range col {
			diff := col[i] - refCol[i]
			mse += diff
			abs := math.Abs(diff)
			mae += abs
			if abs < amin {
				amin, mini = abs, i
			}
			if abs > amax {
				amax, maxi = abs, i
			}
		}
		s.Cols = append(s.Cols, name)
		s.MAE = append(s.MAE, mae/float64(rows))
		s.MSE = append(s.MSE, mse/float64(rows))
		s.AbsMin = append(s.AbsMin, amin)
		s.AbsMax = append(s.AbsMax, amax)
		s.AbsMinIdx = append(s.AbsMinIdx, mini)
		s.AbsMaxIdx = append(s.AbsMaxIdx, maxi)
	}
	return s, nil
}
