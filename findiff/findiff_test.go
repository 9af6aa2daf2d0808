package findiff

import (
	"math"
	"testing"
)

// sample f over n points starting at x0 with the given step
func sample(f func(float64) float64, x0, step float64, n int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = f(x0 + float64(i)*step)
	}
	return ret
}

func TestForward(t *testing.T) {
	square := func(x float64) float64 { return x * x }
	tests := []struct {
		data  []float64
		step  float64
		deri  int
		acc   int
		start int
		want  float64
	}{
		// d/dx x^2 at x=1, second order accuracy is exact
		{sample(square, 1, 0.5, 5), 0.5, 1, 2, 0, 2},
		// same derivative evaluated at x=2 via start
		{sample(square, 1, 0.5, 5), 0.5, 1, 2, 2, 4},
		// d2/dx2 x^2 = 2 everywhere
		{sample(square, 1, 0.5, 5), 0.5, 2, 1, -1, 2},
	}
	for _, test := range tests {
		got, err := Forward(test.data, test.step,
			test.deri, test.acc, test.start)
		if err != nil {
			t.Fatalf("got an error %v, didn't want one", err)
		}
		if math.Abs(got-test.want) > 1e-10 {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
	}
}

func TestForwardErrors(t *testing.T) {
	data := []float64{1, 2}
	if _, err := Forward(data, 0.5, 3, 1, 0); err == nil {
		t.Errorf("wanted an error for an unknown derivative order")
	}
	if _, err := Forward(data, 0.5, 2, 1, 0); err == nil {
		t.Errorf("wanted an error for too little data")
	}
}

func TestBackward(t *testing.T) {
	square := func(x float64) float64 { return x * x }
	data := sample(square, 1, 0.5, 4) // x = 1, 1.5, 2, 2.5
	got, err := Backward(data, 0.5, 1, 2, -1)
	if err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	if want := 5.0; math.Abs(got-want) > 1e-10 {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	// explicit start index at x=2
	got, err = Backward(data, 0.5, 1, 2, 2)
	if err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	if want := 4.0; math.Abs(got-want) > 1e-10 {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestCentral(t *testing.T) {
	cube := func(x float64) float64 { return x * x * x }
	square := func(x float64) float64 { return x * x }
	tests := []struct {
		data []float64
		step float64
		deri int
		acc  int
		mid  int
		want float64
	}{
		// d/dx x^3 at x=1, fourth order stencil is exact
		{sample(cube, 0, 0.5, 5), 0.5, 1, 2, -1, 3},
		// d2/dx2 x^2 = 2
		{sample(square, 0, 0.5, 5), 0.5, 2, 1, 2, 2},
		// off-center evaluation at x=1.5
		{sample(square, 0, 0.5, 5), 0.5, 1, 1, 3, 3},
	}
	for _, test := range tests {
		got, err := Central(test.data, test.step,
			test.deri, test.acc, test.mid)
		if err != nil {
			t.Fatalf("got an error %v, didn't want one", err)
		}
		if math.Abs(got-test.want) > 1e-10 {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
	}
}

func TestCentralErrors(t *testing.T) {
	data := []float64{1, 2, 3}
	if _, err := Central(data, 0.5, 1, 2, -1); err == nil {
		t.Errorf("wanted an error for a stencil wider than the data")
	}
	if _, err := Central(data, 0.5, 1, 1, 0); err == nil {
		t.Errorf("wanted an error for a stencil past the left edge")
	}
	if _, err := Central(data, 0.5, 3, 1, -1); err == nil {
		t.Errorf("wanted an error for an unknown derivative order")
	}
}
