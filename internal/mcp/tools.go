// ABOUTME: MCP tool implementations for the creatine study.
// ABOUTME: Enrollment, measurement logging, and on-demand statistics.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/models"
)

func (s *Server) registerTools() {
	// add_participant
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_participant",
		Description: "Enroll a study participant into a trial arm",
	}, s.handleAddParticipant)

	// list_participants
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_participants",
		Description: "List enrolled participants, optionally filtered by trial arm",
	}, s.handleListParticipants)

	// add_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record a measurement timepoint for a participant",
	}, s.handleAddMeasurement)

	// get_effect_sizes
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_effect_sizes",
		Description: "Compute Cohen's d between trial arms for each tracked metric",
	}, s.handleGetEffectSizes)

	// get_progression_rates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progression_rates",
		Description: "Fit per-participant progression rates and summarize by study cell",
	}, s.handleGetProgressionRates)

	// run_report
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "run_report",
		Description: "Generate the full study analysis report",
	}, s.handleRunReport)
}

// Tool input/output types

type addParticipantInput struct {
	Age             int     `json:"age" jsonschema:"description=Participant age in years,required"`
	Gender          string  `json:"gender,omitempty" jsonschema:"description=Participant gender"`
	GroupAssignment string  `json:"group_assignment" jsonschema:"description=Trial arm (creatine or placebo),required"`
	TrainingStatus  string  `json:"training_status" jsonschema:"description=Training status (trained or untrained),required"`
	DosingProtocol  string  `json:"dosing_protocol,omitempty" jsonschema:"description=Dosing protocol (loading or maintenance)"`
	WeightKg        float64 `json:"weight_kg,omitempty" jsonschema:"description=Body weight in kg"`
	HeightCm        float64 `json:"height_cm,omitempty" jsonschema:"description=Height in cm"`
}

type participantOutput struct {
	ID                 string `json:"id"`
	GroupAssignment    string `json:"group_assignment"`
	PopulationCategory string `json:"population_category"`
	Message            string `json:"message"`
}

type listParticipantsInput struct {
	Group string `json:"group,omitempty" jsonschema:"description=Filter by trial arm (creatine or placebo)"`
}

type addMeasurementInput struct {
	ParticipantID    string   `json:"participant_id" jsonschema:"description=Participant ID or prefix,required"`
	Date             string   `json:"date,omitempty" jsonschema:"description=Measurement date (YYYY-MM-DD), defaults to today"`
	Strength1RMKg    float64  `json:"strength_1rm_kg" jsonschema:"description=One-rep max strength in kg,required"`
	LeanMassKg       float64  `json:"lean_mass_kg" jsonschema:"description=Lean body mass in kg,required"`
	PerformanceScore *float64 `json:"performance_score,omitempty" jsonschema:"description=Composite performance score"`
	FatigueLevel     *float64 `json:"fatigue_level,omitempty" jsonschema:"description=Self-reported fatigue (1-10)"`
}

type measurementOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type emptyInput struct{}

// Tool handlers

func (s *Server) handleAddParticipant(ctx context.Context, req *mcp.CallToolRequest, input addParticipantInput) (*mcp.CallToolResult, participantOutput, error) {
	p := models.NewParticipant(
		input.Age,
		input.Gender,
		models.GroupAssignment(input.GroupAssignment),
		models.TrainingStatus(input.TrainingStatus),
	)
	p.DosingProtocol = models.DosingProtocol(input.DosingProtocol)
	p.WeightKg = input.WeightKg
	p.HeightCm = input.HeightCm

	if err := s.repo.CreateParticipant(p); err != nil {
		return nil, participantOutput{}, fmt.Errorf("failed to enroll participant: %w", err)
	}

	return nil, participantOutput{
		ID:                 p.ID.String()[:8],
		GroupAssignment:    string(p.GroupAssignment),
		PopulationCategory: p.PopulationCategory,
		Message:            fmt.Sprintf("Enrolled %s participant (ID: %s)", p.GroupAssignment, p.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListParticipants(ctx context.Context, req *mcp.CallToolRequest, input listParticipantsInput) (*mcp.CallToolResult, any, error) {
	var group *models.GroupAssignment
	if input.Group != "" {
		g := models.GroupAssignment(input.Group)
		group = &g
	}

	participants, err := s.repo.ListParticipants(group)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list participants: %w", err)
	}

	if len(participants) == 0 {
		return nil, map[string]any{"message": "No participants found."}, nil
	}

	return nil, participants, nil
}

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, measurementOutput, error) {
	p, err := s.repo.GetParticipant(input.ParticipantID)
	if err != nil {
		return nil, measurementOutput{}, fmt.Errorf("participant not found: %s", input.ParticipantID)
	}

	date := time.Now()
	if input.Date != "" {
		date, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, measurementOutput{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", input.Date)
		}
	}

	m := models.NewMeasurement(p.ID, date, input.Strength1RMKg, input.LeanMassKg)
	if input.PerformanceScore != nil {
		m.WithPerformance(*input.PerformanceScore)
	}
	if input.FatigueLevel != nil {
		m.WithFatigue(*input.FatigueLevel)
	}

	if err := s.repo.CreateMeasurement(m); err != nil {
		return nil, measurementOutput{}, fmt.Errorf("failed to record measurement: %w", err)
	}

	return nil, measurementOutput{
		ID:      m.ID.String()[:8],
		Message: fmt.Sprintf("Recorded measurement for %s on %s", p.ID.String()[:8], date.Format("2006-01-02")),
	}, nil
}

func (s *Server) handleGetEffectSizes(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	records, err := s.repo.GetProgressData()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load progress data: %w", err)
	}

	effects, err := analysis.EffectSizes(records)
	if err != nil {
		return nil, nil, fmt.Errorf("effect size computation failed: %w", err)
	}

	return nil, effects, nil
}

func (s *Server) handleGetProgressionRates(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	result, err := s.engine.AnalyzeProgressionRates()
	if err != nil {
		return nil, nil, fmt.Errorf("progression analysis failed: %w", err)
	}
	return nil, result, nil
}

func (s *Server) handleRunReport(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	report, err := s.engine.GenerateSummaryReport()
	if err != nil {
		return nil, nil, fmt.Errorf("report generation failed: %w", err)
	}
	return nil, report, nil
}
