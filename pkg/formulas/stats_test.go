package formulas

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %g, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %g, want 4", got)
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev([]float64{5}); got != 0 {
		t.Errorf("StdDev of single value = %g, want 0", got)
	}
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.138) > 0.01 {
		t.Errorf("StdDev = %g, want ~2.138", got)
	}
}

func TestCV(t *testing.T) {
	if got := CV([]float64{0, 0}); got != 0 {
		t.Errorf("CV with zero mean = %g, want 0", got)
	}
	if got := CV([]float64{100, 100, 100}); got != 0 {
		t.Errorf("CV of constant series = %g, want 0", got)
	}
}

func TestQuantile(t *testing.T) {
	data := []float64{9, 1, 5, 3, 7}
	if got := Quantile(0.5, data); got != 5 {
		t.Errorf("median = %g, want 5", got)
	}
	if data[0] != 9 {
		t.Error("Quantile must not reorder its input")
	}
	if got := Quantile(0.5, nil); got != 0 {
		t.Errorf("Quantile(nil) = %g, want 0", got)
	}
}
