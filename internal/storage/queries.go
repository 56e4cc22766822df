// ABOUTME: Named canned analysis queries over the study schema.
// ABOUTME: A fixed registry of parameter-free SQL; results come back as generic tables.
package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/strengthlab/creatine/internal/analysis"
)

// ErrQueryNotFound reports a canned query name that is not in the registry.
type ErrQueryNotFound struct {
	Name string
}

func (e *ErrQueryNotFound) Error() string {
	return fmt.Sprintf("analysis query not found: %q", e.Name)
}

// analysisQueries is the fixed registry of canned breakdowns. Each query is
// parameter-free and aggregates the participants × measurements join.
var analysisQueries = map[string]string{
	"population_category": `
		SELECT
			p.population_category,
			COUNT(DISTINCT p.id) AS participants,
			COUNT(m.id) AS observations,
			AVG(m.strength_1rm_kg) AS avg_strength_1rm_kg,
			AVG(m.lean_mass_kg) AS avg_lean_mass_kg
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		GROUP BY p.population_category
		ORDER BY p.population_category`,

	"training_program": `
		SELECT
			p.training_status,
			p.group_assignment,
			COUNT(DISTINCT p.id) AS participants,
			AVG(m.strength_1rm_kg) AS avg_strength_1rm_kg,
			AVG(m.performance_score) AS avg_performance_score
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		GROUP BY p.training_status, p.group_assignment
		ORDER BY p.training_status, p.group_assignment`,

	"training_compliance": `
		SELECT
			p.training_status,
			COUNT(m.id) * 1.0 / COUNT(DISTINCT p.id) AS avg_measurements_per_participant,
			AVG(m.performance_score) AS avg_performance_score,
			AVG(m.fatigue_level) AS avg_fatigue_level
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		GROUP BY p.training_status
		ORDER BY p.training_status`,

	"age_group": `
		SELECT
			CASE WHEN p.age < 30 THEN 'young' ELSE 'older' END AS age_group,
			p.group_assignment,
			COUNT(DISTINCT p.id) AS participants,
			AVG(m.strength_1rm_kg) AS avg_strength_1rm_kg,
			AVG(m.lean_mass_kg) AS avg_lean_mass_kg
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		GROUP BY age_group, p.group_assignment
		ORDER BY age_group, p.group_assignment`,

	"dosing_protocol": `
		SELECT
			p.dosing_protocol,
			p.group_assignment,
			COUNT(DISTINCT p.id) AS participants,
			AVG(m.strength_1rm_kg) AS avg_strength_1rm_kg,
			AVG(m.lean_mass_kg) AS avg_lean_mass_kg
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		WHERE p.dosing_protocol IS NOT NULL
		GROUP BY p.dosing_protocol, p.group_assignment
		ORDER BY p.dosing_protocol, p.group_assignment`,

	"fatigue_level": `
		SELECT
			p.group_assignment,
			AVG(m.fatigue_level) AS avg_fatigue_level,
			MIN(m.fatigue_level) AS min_fatigue_level,
			MAX(m.fatigue_level) AS max_fatigue_level
		FROM participants p
		JOIN measurements m ON p.id = m.participant_id
		WHERE m.fatigue_level IS NOT NULL
		GROUP BY p.group_assignment
		ORDER BY p.group_assignment`,
}

// AnalysisQueryNames returns the canned query names in sorted order.
func AnalysisQueryNames() []string {
	names := make([]string, 0, len(analysisQueries))
	for name := range analysisQueries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunAnalysisQuery executes a named canned query and returns its rows as a
// generic table. Unknown names yield ErrQueryNotFound.
func (d *DB) RunAnalysisQuery(name string) (*analysis.Table, error) {
	query, ok := analysisQueries[name]
	if !ok {
		return nil, &ErrQueryNotFound{Name: name}
	}

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("run analysis query %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns for %s: %w", name, err)
	}

	table := analysis.NewTable(columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", name, err)
		}
		for i, v := range values {
			values[i] = normalizeCell(v)
		}
		table.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", name, err)
	}

	return table, nil
}

// normalizeCell converts driver-specific scan results to plain Go values.
func normalizeCell(v any) any {
	switch x := v.(type) {
	case []byte:
		s := string(x)
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		return s
	case string:
		if t, err := time.Parse(time.RFC3339, x); err == nil {
			return t
		}
		return x
	default:
		return v
	}
}
