// ABOUTME: Error types for the statistical analysis engine.
// ABOUTME: Degenerate statistics and missing data surface to callers, never silent defaults.
package analysis

import "fmt"

// MissingDataError reports a required column or series that is absent.
type MissingDataError struct {
	Metric string
	Detail string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data for %s: %s", e.Metric, e.Detail)
}

// DegenerateStatisticsError reports a computation whose variance terms are
// undefined: a group with fewer than two observations, or zero pooled
// variance. Callers see the condition instead of a silent 0, Inf, or NaN.
type DegenerateStatisticsError struct {
	Metric string
	Detail string
}

func (e *DegenerateStatisticsError) Error() string {
	return fmt.Sprintf("degenerate statistics for %s: %s", e.Metric, e.Detail)
}
