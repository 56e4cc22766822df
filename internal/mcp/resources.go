// ABOUTME: MCP resource implementations for the creatine study.
// ABOUTME: Provides study://cohort and study://report read-only resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/strengthlab/creatine/internal/models"
)

func (s *Server) registerResources() {
	// study://cohort - enrollment summary by trial arm and study cell
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "study://cohort",
		Name:        "Study Cohort",
		Description: "Enrollment counts by trial arm, training status, and dosing protocol",
		MIMEType:    "application/json",
	}, s.handleCohortResource)

	// study://report - full analysis report
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "study://report",
		Name:        "Analysis Report",
		Description: "Full study analysis: effect sizes, progression rates, recovery patterns",
		MIMEType:    "application/json",
	}, s.handleReportResource)
}

// Resource handlers

func (s *Server) handleCohortResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	participants, err := s.repo.ListParticipants(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	byGroup := make(map[string]int)
	byCategory := make(map[string]int)
	byProtocol := make(map[string]int)
	for _, p := range participants {
		byGroup[string(p.GroupAssignment)]++
		byCategory[p.PopulationCategory]++
		if p.DosingProtocol != "" {
			byProtocol[string(p.DosingProtocol)]++
		}
	}

	result := map[string]any{
		"generated_at":           time.Now().Format(time.RFC3339),
		"total":                  len(participants),
		"by_group":               byGroup,
		"by_population_category": byCategory,
		"by_dosing_protocol":     byProtocol,
		"tracked_metrics":        models.TrackedMetrics,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "study://cohort",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleReportResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	report, err := s.engine.GenerateSummaryReport()
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "study://report",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
