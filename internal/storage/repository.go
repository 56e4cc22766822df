// ABOUTME: Repository interface for the creatine study store.
// ABOUTME: Defines the contract for participant, measurement, and query operations.
package storage

import (
	"github.com/google/uuid"
	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/models"
)

// Repository defines the storage interface for study data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Participant operations
	CreateParticipant(p *models.Participant) error
	GetParticipant(idOrPrefix string) (*models.Participant, error)
	ListParticipants(group *models.GroupAssignment) ([]*models.Participant, error)
	UpdateParticipant(p *models.Participant) error

	// Measurement operations
	CreateMeasurement(m *models.Measurement) error
	ListMeasurements(filter MeasurementFilter) ([]*models.Measurement, error)
	ParticipantMeasurements(participantID uuid.UUID) ([]*models.Measurement, error)

	// Analysis inputs
	GetProgressData() ([]models.ProgressRecord, error)
	RunAnalysisQuery(name string) (*analysis.Table, error)

	// Maintenance
	Backup(path string) (string, error)
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
