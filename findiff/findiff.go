// Package findiff computes numerical derivatives of sampled data
// using finite-difference formulas. The coefficient tables are the
// standard ones, indexed by derivative order and then accuracy
// level, and are never written after initialization.
package findiff

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// forward-difference coefficients, [order][accuracy]
var fwd = map[int]map[int][]float64{
	1: {
		1: {-1, 1},
		2: {-3. / 2, 2, -1. / 2},
		3: {-11. / 6, 3, -3. / 2, 1. / 3},
		4: {-25. / 12, 4, -3, 4. / 3, -1. / 4},
		5: {-137. / 60, 5, -5, 10. / 3, -5. / 4, 1. / 5},
		6: {-49. / 20, 6, -15. / 2, 20. / 3, -15. / 4, 6. / 5, -1. / 6},
	},
	2: {
		1: {1, -2, 1},
		2: {2, -5, 4, -1},
		3: {35. / 12, -26. / 3, 19. / 2, -14. / 3, 11. / 12},
		4: {15. / 4, -77. / 6, 107. / 6, -13, 61. / 12, -5. / 6},
		5: {203. / 45, -87. / 5, 117. / 4, -254. / 9, 33. / 2,
			-27. / 5, 137. / 180},
		6: {469. / 90, -223. / 10, 879. / 20, -949. / 18, 41,
			-201. / 10, 1019. / 180},
	},
}

// central-difference coefficients up to and including the center
// point, [order][accuracy]; the full stencil is built by mirroring
var cen = map[int]map[int][]float64{
	1: {
		1: {-1. / 2, 0},
		2: {1. / 12, -2. / 3, 0},
		3: {-1. / 60, 3. / 20, -3. / 4, 0},
		4: {1. / 280, -4. / 105, 1. / 5, -4. / 5, 0},
	},
	2: {
		1: {1, -2},
		2: {-1. / 12, 4. / 3, -5. / 2},
		3: {1. / 90, -3. / 20, 3. / 2, -49. / 18},
		4: {-1. / 560, 8. / 315, -1. / 5, 8. / 5, -205. / 72},
	},
}

// Forward computes the deri-th derivative of data by forward
// differences at the given accuracy. start is the index of the
// element at step 0; a negative start means the first element. The
// stencil reads forward from start, and leftover elements are
// ignored.
func Forward(data []float64, step float64, deri, acc, start int) (float64, error) {
	coef, ok := fwd[deri][acc]
	if !ok {
		return 0, fmt.Errorf(
			"no forward coefficients for derivative %d at accuracy %d",
			deri, acc)
	}
	if start < 0 {
		start = 0
	}
	n := len(coef)
	if start+n > len(data) {
		return 0, fmt.Errorf(
			"not enough data: need %d points from index %d, have %d",
			n, start, len(data))
	}
	return floats.Dot(coef, data[start:start+n]) /
		math.Pow(math.Abs(step), float64(deri)), nil
}

// Backward computes the deri-th derivative of data by backward
// differences. start is the index of the element at step 0; a
// negative start means the last element. The stencil reads backward
// from start.
func Backward(data []float64, step float64, deri, acc, start int) (float64, error) {
	rev := make([]float64, len(data))
	for i, v := range data {
		rev[len(data)-1-i] = v
	}
	if start >= 0 {
		start = len(data) - start - 1
	}
	d, err := Forward(rev, -step, deri, acc, start)
	if deri%2 == 1 {
		d = -d
	}
	return d, err
}

// Central computes the deri-th derivative of data by central
// differences about mid. A negative mid selects the middle element.
// The stencil is symmetric about mid, with the mirrored half sign
// flipped for odd orders.
func Central(data []float64, step float64, deri, acc, mid int) (float64, error) {
	half, ok := cen[deri][acc]
	if !ok {
		return 0, fmt.Errorf(
			"no central coefficients for derivative %d at accuracy %d",
			deri, acc)
	}
	sign := 1.0
	if deri%2 == 1 {
		sign = -1
	}
	coef := make([]float64, 0, 2*len(half)-1)
	coef = append(coef, half...)
	for i := len(half) - 2; i >= 0; i-- {
		coef = append(coef, sign*half[i])
	}
	if mid < 0 {
		mid = len(data) / 2
	}
	n := len(coef)
	left := mid - n/2
	right := mid + n/2 + 1
	if left < 0 || right > len(data) {
		return 0, fmt.Errorf(
			"not enough data for a central difference about index %d",
			mid)
	}
	return floats.Dot(coef, data[left:right]) /
		math.Pow(step, float64(deri)), nil
}
