// ABOUTME: Participant CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for participants.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/models"
)

// CreateParticipant validates and stores a new participant.
func (d *DB) CreateParticipant(p *models.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO participants (
			id, age, gender, weight_kg, height_cm, training_experience_years,
			training_status, group_assignment, dosing_protocol, population_category, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		p.ID.String(),
		p.Age,
		p.Gender,
		p.WeightKg,
		p.HeightCm,
		p.TrainingExperienceYears,
		string(p.TrainingStatus),
		string(p.GroupAssignment),
		nullableString(string(p.DosingProtocol)),
		p.PopulationCategory,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID or ID prefix.
func (d *DB) GetParticipant(idOrPrefix string) (*models.Participant, error) {
	id, err := d.resolveID("participants", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, age, gender, weight_kg, height_cm, training_experience_years,
		       training_status, group_assignment, dosing_protocol, population_category, created_at
		FROM participants
		WHERE id = ?
	`
	return scanParticipant(d.db.QueryRow(query, id))
}

// ListParticipants retrieves participants, optionally filtered by trial arm.
// Results are ordered by enrollment time.
func (d *DB) ListParticipants(group *models.GroupAssignment) ([]*models.Participant, error) {
	var query string
	var args []interface{}

	if group != nil {
		query = `
			SELECT id, age, gender, weight_kg, height_cm, training_experience_years,
			       training_status, group_assignment, dosing_protocol, population_category, created_at
			FROM participants
			WHERE group_assignment = ?
			ORDER BY created_at
		`
		args = append(args, string(*group))
	} else {
		query = `
			SELECT id, age, gender, weight_kg, height_cm, training_experience_years,
			       training_status, group_assignment, dosing_protocol, population_category, created_at
			FROM participants
			ORDER BY created_at
		`
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipantRow(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// UpdateParticipant applies an administrative correction to an existing
// participant. Participants are otherwise immutable after enrollment.
func (d *DB) UpdateParticipant(p *models.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE participants
		SET age = ?, gender = ?, weight_kg = ?, height_cm = ?, training_experience_years = ?,
		    training_status = ?, group_assignment = ?, dosing_protocol = ?, population_category = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		p.Age,
		p.Gender,
		p.WeightKg,
		p.HeightCm,
		p.TrainingExperienceYears,
		string(p.TrainingStatus),
		string(p.GroupAssignment),
		nullableString(string(p.DosingProtocol)),
		p.PopulationCategory,
		p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", p.ID)
	}
	return nil
}

// resolveID finds the full ID in the named table from a prefix.
// The table name comes from a fixed internal set, never from user input.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE id LIKE ? || '%%'`, table)
	rows, err := d.db.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanParticipant(row *sql.Row) (*models.Participant, error) {
	p, err := scanParticipantFields(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("not found")
	}
	return p, err
}

func scanParticipantRow(rows *sql.Rows) (*models.Participant, error) {
	return scanParticipantFields(rows)
}

func scanParticipantFields(s rowScanner) (*models.Participant, error) {
	var p models.Participant
	var idStr, trainingStatus, group, createdAt string
	var dosing sql.NullString

	err := s.Scan(&idStr, &p.Age, &p.Gender, &p.WeightKg, &p.HeightCm,
		&p.TrainingExperienceYears, &trainingStatus, &group, &dosing,
		&p.PopulationCategory, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan participant: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.TrainingStatus = models.TrainingStatus(trainingStatus)
	p.GroupAssignment = models.GroupAssignment(group)
	if dosing.Valid {
		p.DosingProtocol = models.DosingProtocol(dosing.String)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &p, nil
}

// nullableString converts an empty string to a SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
