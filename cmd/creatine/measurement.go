// ABOUTME: CLI commands for recording and listing measurements.
// ABOUTME: Handles optional outcome columns and date filtering.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/models"
	"github.com/strengthlab/creatine/internal/storage"
)

var (
	measurementDate        string
	measurementPerformance float64
	measurementFatigue     float64
	measurementThickness   float64
	measurementKinase      float64
	measurementParticipant string
	measurementSince       string
)

var measurementCmd = &cobra.Command{
	Use:     "measurement",
	Aliases: []string{"m"},
	Short:   "Manage study measurements",
}

var measurementAddCmd = &cobra.Command{
	Use:   "add <participant-id> <strength-1rm-kg> <lean-mass-kg>",
	Short: "Record a measurement timepoint",
	Long: `Record a measurement timepoint for a participant.

Strength (1RM in kg) and lean mass (kg) are required at every timepoint.
Performance score, fatigue level, muscle thickness, and creatine kinase are
optional and omitted unless flagged.

EXAMPLES:

  creatine measurement add abc123 102.5 65.4
  creatine measurement add abc123 105.0 65.8 --date 2026-03-14
  creatine measurement add abc123 105.0 65.8 --performance 8.7 --fatigue 3`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetParticipant(args[0])
		if err != nil {
			return fmt.Errorf("participant not found: %s", args[0])
		}

		strength, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid strength value: %s", args[1])
		}
		leanMass, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid lean mass value: %s", args[2])
		}

		date := time.Now()
		if measurementDate != "" {
			date, err = time.Parse("2006-01-02", measurementDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", measurementDate)
			}
		}

		m := models.NewMeasurement(p.ID, date, strength, leanMass)
		if cmd.Flags().Changed("performance") {
			m.WithPerformance(measurementPerformance)
		}
		if cmd.Flags().Changed("fatigue") {
			m.WithFatigue(measurementFatigue)
		}
		if cmd.Flags().Changed("thickness") {
			m.WithMuscleThickness(measurementThickness)
		}
		if cmd.Flags().Changed("kinase") {
			m.WithCreatineKinase(measurementKinase)
		}

		if err := repo.CreateMeasurement(m); err != nil {
			return fmt.Errorf("failed to record measurement: %w", err)
		}

		color.Green("✓ Recorded measurement for %s", p.ID.String()[:8])
		fmt.Printf("  %s %s  1RM %.1f kg  lean %.1f kg\n",
			color.New(color.Faint).Sprint(m.ID.String()[:8]),
			date.Format("2006-01-02"),
			strength, leanMass)

		return nil
	},
}

var measurementListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List measurements",
	Long: `List recorded measurements in chronological order.

FILTERING:

  --participant   Limit to one participant (ID or prefix)
  --since         Only measurements on or after this date (YYYY-MM-DD)

EXAMPLES:

  creatine measurement list
  creatine measurement list --participant abc123
  creatine measurement list --since 2026-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter storage.MeasurementFilter

		if measurementParticipant != "" {
			p, err := repo.GetParticipant(measurementParticipant)
			if err != nil {
				return fmt.Errorf("participant not found: %s", measurementParticipant)
			}
			filter.ParticipantID = &p.ID
		}
		if measurementSince != "" {
			t, err := time.Parse("2006-01-02", measurementSince)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", measurementSince)
			}
			filter.Since = &t
		}

		measurements, err := repo.ListMeasurements(filter)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}

		if len(measurements) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range measurements {
			extras := ""
			if m.PerformanceScore != nil {
				extras += fmt.Sprintf("  perf %.1f", *m.PerformanceScore)
			}
			if m.FatigueLevel != nil {
				extras += fmt.Sprintf("  fatigue %.0f", *m.FatigueLevel)
			}
			fmt.Printf("%s %s %s  1RM %.1f kg  lean %.1f kg%s\n",
				faint.Sprint(m.ID.String()[:8]),
				faint.Sprint(m.ParticipantID.String()[:8]),
				m.MeasurementDate.Format("2006-01-02"),
				m.Strength1RMKg, m.LeanMassKg, extras)
		}

		return nil
	},
}

func init() {
	measurementAddCmd.Flags().StringVar(&measurementDate, "date", "", "measurement date (YYYY-MM-DD)")
	measurementAddCmd.Flags().Float64Var(&measurementPerformance, "performance", 0, "composite performance score")
	measurementAddCmd.Flags().Float64Var(&measurementFatigue, "fatigue", 0, "self-reported fatigue (1-10)")
	measurementAddCmd.Flags().Float64Var(&measurementThickness, "thickness", 0, "muscle thickness in mm")
	measurementAddCmd.Flags().Float64Var(&measurementKinase, "kinase", 0, "creatine kinase level in U/L")

	measurementListCmd.Flags().StringVarP(&measurementParticipant, "participant", "p", "", "filter by participant ID or prefix")
	measurementListCmd.Flags().StringVar(&measurementSince, "since", "", "only measurements since date (YYYY-MM-DD)")

	measurementCmd.AddCommand(measurementAddCmd)
	measurementCmd.AddCommand(measurementListCmd)
	rootCmd.AddCommand(measurementCmd)
}
