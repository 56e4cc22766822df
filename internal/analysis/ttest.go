// ABOUTME: Pooled two-sample t-test for the dashboard KPI strip.
// ABOUTME: Two-sided p-value from the Student's t distribution.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult carries the test statistic and two-sided p-value of a pooled
// (equal-variance) two-sample t-test.
type TTestResult struct {
	T  float64 `json:"t"`
	P  float64 `json:"p"`
	DF float64 `json:"df"`
}

// TTest performs a pooled two-sample t-test between independent samples a
// and b. Each sample needs at least two observations and the pooled
// variance must be positive; degenerate input surfaces as
// DegenerateStatisticsError.
func TTest(a, b []float64) (TTestResult, error) {
	na, nb := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, &DegenerateStatisticsError{
			Metric: "t_test",
			Detail: fmt.Sprintf("need at least 2 observations per group, got %d and %d", len(a), len(b)),
		}
	}

	df := na + nb - 2
	pooledVar := ((na-1)*stat.Variance(a, nil) + (nb-1)*stat.Variance(b, nil)) / df
	if pooledVar <= 0 {
		return TTestResult{}, &DegenerateStatisticsError{
			Metric: "t_test",
			Detail: "pooled variance is zero",
		}
	}

	se := math.Sqrt(pooledVar * (1/na + 1/nb))
	t := (stat.Mean(a, nil) - stat.Mean(b, nil)) / se

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return TTestResult{T: t, P: p, DF: df}, nil
}
