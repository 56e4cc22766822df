// ABOUTME: Tests for the pooled two-sample t-test.
// ABOUTME: Verifies the statistic, symmetry, and degenerate-input errors.
package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestTTest(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{2, 3, 4, 5}

	result, err := TTest(a, b)
	if err != nil {
		t.Fatalf("TTest failed: %v", err)
	}

	// Pooled variance 5/3, se = sqrt((5/3) * 0.5), t = -1 / se.
	wantT := -1.0 / math.Sqrt((5.0/3.0)*0.5)
	if math.Abs(result.T-wantT) > 1e-9 {
		t.Errorf("T = %v, want %v", result.T, wantT)
	}
	if result.DF != 6 {
		t.Errorf("DF = %v, want 6", result.DF)
	}
	if result.P <= 0 || result.P >= 1 {
		t.Errorf("P = %v, want in (0, 1)", result.P)
	}
}

func TestTTestSymmetry(t *testing.T) {
	a := []float64{10, 12, 14, 16}
	b := []float64{9, 10, 11, 12}

	r1, err := TTest(a, b)
	if err != nil {
		t.Fatalf("TTest failed: %v", err)
	}
	r2, err := TTest(b, a)
	if err != nil {
		t.Fatalf("TTest failed: %v", err)
	}

	if math.Abs(r1.T+r2.T) > 1e-12 {
		t.Errorf("swapping samples should negate t: got %v and %v", r1.T, r2.T)
	}
	if math.Abs(r1.P-r2.P) > 1e-12 {
		t.Errorf("p-value should be symmetric: got %v and %v", r1.P, r2.P)
	}
}

func TestTTestTooFewObservations(t *testing.T) {
	_, err := TTest([]float64{1}, []float64{2, 3})
	var degenerate *DegenerateStatisticsError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateStatisticsError, got %v", err)
	}
}

func TestTTestZeroVariance(t *testing.T) {
	_, err := TTest([]float64{5, 5, 5}, []float64{5, 5})
	var degenerate *DegenerateStatisticsError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateStatisticsError, got %v", err)
	}
}
