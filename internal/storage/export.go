// ABOUTME: Export and import functionality for study data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/strengthlab/creatine/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for study data.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Participants []*models.Participant `json:"participants" yaml:"participants"`
	Measurements []*models.Measurement `json:"measurements" yaml:"measurements"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	participants, err := d.ListParticipants(nil)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	measurements, err := d.ListMeasurements(MeasurementFilter{})
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}

	return &ExportData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		Tool:         "creatine",
		Participants: participants,
		Measurements: measurements,
	}, nil
}

// ImportData imports data from an export file. Participants come first so
// measurement foreign keys resolve.
func (d *DB) ImportData(data *ExportData) error {
	for _, p := range data.Participants {
		if err := d.CreateParticipant(p); err != nil {
			return fmt.Errorf("import participant: %w", err)
		}
	}

	for _, m := range data.Measurements {
		if err := d.CreateMeasurement(m); err != nil {
			return fmt.Errorf("import measurement: %w", err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML with measurements grouped by participant.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version      string                   `yaml:"version"`
		ExportedAt   string                   `yaml:"exported_at"`
		Tool         string                   `yaml:"tool"`
		Participants []yamlParticipant        `yaml:"participants"`
		Measurements map[string][]yamlReading `yaml:"measurements"`
	}{
		Version:      data.Version,
		ExportedAt:   data.ExportedAt.Format(time.RFC3339),
		Tool:         data.Tool,
		Measurements: make(map[string][]yamlReading),
	}

	for _, p := range data.Participants {
		yamlData.Participants = append(yamlData.Participants, yamlParticipant{
			ID:                 p.ID.String()[:8],
			Age:                p.Age,
			Gender:             p.Gender,
			TrainingStatus:     string(p.TrainingStatus),
			GroupAssignment:    string(p.GroupAssignment),
			DosingProtocol:     string(p.DosingProtocol),
			PopulationCategory: p.PopulationCategory,
		})
	}

	for _, m := range data.Measurements {
		key := m.ParticipantID.String()[:8]
		r := yamlReading{
			Date:          m.MeasurementDate.Format("2006-01-02"),
			Strength1RMKg: m.Strength1RMKg,
			LeanMassKg:    m.LeanMassKg,
		}
		if m.PerformanceScore != nil {
			r.PerformanceScore = *m.PerformanceScore
		}
		if m.FatigueLevel != nil {
			r.FatigueLevel = *m.FatigueLevel
		}
		yamlData.Measurements[key] = append(yamlData.Measurements[key], r)
	}

	return yaml.Marshal(yamlData)
}

type yamlParticipant struct {
	ID                 string `yaml:"id"`
	Age                int    `yaml:"age"`
	Gender             string `yaml:"gender"`
	TrainingStatus     string `yaml:"training_status"`
	GroupAssignment    string `yaml:"group_assignment"`
	DosingProtocol     string `yaml:"dosing_protocol,omitempty"`
	PopulationCategory string `yaml:"population_category"`
}

type yamlReading struct {
	Date             string  `yaml:"date"`
	Strength1RMKg    float64 `yaml:"strength_1rm_kg"`
	LeanMassKg       float64 `yaml:"lean_mass_kg"`
	PerformanceScore float64 `yaml:"performance_score,omitempty"`
	FatigueLevel     float64 `yaml:"fatigue_level,omitempty"`
}

// ExportMarkdown exports data as Markdown tables, optionally limited to one
// trial arm and to measurements on or after since.
func (d *DB) ExportMarkdown(group *models.GroupAssignment, since *time.Time) (string, error) {
	participants, err := d.ListParticipants(group)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Creatine Study Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Participants\n\n")
	sb.WriteString("| ID | Age | Group | Training | Dosing | Category |\n")
	sb.WriteString("|----|-----|-------|----------|--------|----------|\n")
	for _, p := range participants {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s |\n",
			p.ID.String()[:8], p.Age, p.GroupAssignment, p.TrainingStatus,
			p.DosingProtocol, p.PopulationCategory))
	}
	sb.WriteString("\n")

	for _, p := range participants {
		measurements, err := d.ParticipantMeasurements(p.ID)
		if err != nil {
			return "", err
		}

		if since != nil {
			var filtered []*models.Measurement
			for _, m := range measurements {
				if m.MeasurementDate.After(*since) || m.MeasurementDate.Equal(*since) {
					filtered = append(filtered, m)
				}
			}
			measurements = filtered
		}
		if len(measurements) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("## Measurements — %s (%s)\n\n", p.ID.String()[:8], p.GroupAssignment))
		sb.WriteString("| Date | 1RM (kg) | Lean Mass (kg) | Performance | Fatigue |\n")
		sb.WriteString("|------|----------|----------------|-------------|--------|\n")
		for _, m := range measurements {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %s | %s |\n",
				m.MeasurementDate.Format("2006-01-02"),
				m.Strength1RMKg, m.LeanMassKg,
				formatOptional(m.PerformanceScore),
				formatOptional(m.FatigueLevel)))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(&exportData)
}
