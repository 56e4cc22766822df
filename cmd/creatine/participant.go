// ABOUTME: CLI commands for managing study participants.
// ABOUTME: Enrollment and cohort listing with trial-arm filtering.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/strengthlab/creatine/internal/models"
)

var (
	participantDosing string
	participantGender string
	participantWeight float64
	participantHeight float64
	participantExp    float64
	participantGroup  string
)

var participantCmd = &cobra.Command{
	Use:     "participant",
	Aliases: []string{"p"},
	Short:   "Manage study participants",
}

var participantAddCmd = &cobra.Command{
	Use:   "add <age> <group> <training-status>",
	Short: "Enroll a participant",
	Long: `Enroll a participant into a trial arm.

ARGUMENTS:

  age              Age in years
  group            Trial arm: creatine or placebo
  training-status  trained or untrained

The population category (young/older x trained/untrained) is derived from
age and training status; the age cutoff is 50.

EXAMPLES:

  creatine participant add 25 creatine trained
  creatine participant add 55 placebo untrained --dosing maintenance
  creatine participant add 30 creatine trained --weight 78.5 --height 180`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid age: %s", args[0])
		}

		p := models.NewParticipant(
			age,
			participantGender,
			models.GroupAssignment(args[1]),
			models.TrainingStatus(args[2]),
		)
		p.DosingProtocol = models.DosingProtocol(participantDosing)
		p.WeightKg = participantWeight
		p.HeightCm = participantHeight
		p.TrainingExperienceYears = participantExp

		if err := repo.CreateParticipant(p); err != nil {
			return fmt.Errorf("failed to enroll participant: %w", err)
		}

		color.Green("✓ Enrolled %s participant", p.GroupAssignment)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(p.ID.String()[:8]),
			p.PopulationCategory)

		return nil
	},
}

var participantListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List enrolled participants",
	Long: `List enrolled participants.

OUTPUT FORMAT:

  Each line shows: ID  AGE  GROUP  TRAINING  DOSING  CATEGORY

  The ID is an 8-character prefix you can use with measurement commands.

EXAMPLES:

  creatine participant list                  # Full cohort
  creatine participant list --group creatine # One arm only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var group *models.GroupAssignment
		if participantGroup != "" {
			g := models.GroupAssignment(participantGroup)
			group = &g
		}

		participants, err := repo.ListParticipants(group)
		if err != nil {
			return fmt.Errorf("failed to list participants: %w", err)
		}

		if len(participants) == 0 {
			fmt.Println("No participants found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range participants {
			dosing := string(p.DosingProtocol)
			if dosing == "" {
				dosing = "-"
			}
			fmt.Printf("%s %3d %s %s %s %s\n",
				faint.Sprint(p.ID.String()[:8]),
				p.Age,
				padRight(string(p.GroupAssignment), 9),
				padRight(string(p.TrainingStatus), 10),
				padRight(dosing, 12),
				faint.Sprint(p.PopulationCategory))
		}

		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	participantAddCmd.Flags().StringVar(&participantDosing, "dosing", "", "dosing protocol (loading or maintenance)")
	participantAddCmd.Flags().StringVar(&participantGender, "gender", "", "participant gender")
	participantAddCmd.Flags().Float64Var(&participantWeight, "weight", 0, "body weight in kg")
	participantAddCmd.Flags().Float64Var(&participantHeight, "height", 0, "height in cm")
	participantAddCmd.Flags().Float64Var(&participantExp, "experience", 0, "training experience in years")

	participantListCmd.Flags().StringVarP(&participantGroup, "group", "g", "", "filter by trial arm")

	participantCmd.AddCommand(participantAddCmd)
	participantCmd.AddCommand(participantListCmd)
	rootCmd.AddCommand(participantCmd)
}
