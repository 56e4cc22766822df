// ABOUTME: Sample cohort generator for demos and local development.
// ABOUTME: Four participants across the study cells with six weekly measurements each.
package storage

import (
	"fmt"
	"time"

	"github.com/strengthlab/creatine/internal/models"
)

type seedProfile struct {
	age               int
	gender            string
	weightKg          float64
	heightCm          float64
	experienceYears   float64
	status            models.TrainingStatus
	group             models.GroupAssignment
	dosing            models.DosingProtocol
	strengthIncrement float64
	massIncrement     float64
}

// seedProfiles covers the four study cells with progression rates that fall
// off by age and arm, matching the original trial generator.
var seedProfiles = []seedProfile{
	{25, "male", 75.5, 180.0, 3.5, models.StatusTrained, models.GroupCreatine, models.DosingLoading, 5.0, 0.5},
	{28, "male", 78.0, 175.0, 4.0, models.StatusTrained, models.GroupPlacebo, models.DosingLoading, 3.0, 0.3},
	{52, "male", 82.0, 178.0, 0.5, models.StatusUntrained, models.GroupCreatine, models.DosingMaintenance, 2.5, 0.25},
	{55, "male", 80.0, 176.0, 0.2, models.StatusUntrained, models.GroupPlacebo, models.DosingMaintenance, 2.0, 0.2},
}

// Seed populates the store with the sample cohort: six weekly measurements
// per participant starting at start. Idempotent per call only in the sense
// that it always appends a fresh cohort; callers seed an empty store.
func (d *DB) Seed(start time.Time) error {
	for _, profile := range seedProfiles {
		p := models.NewParticipant(profile.age, profile.gender, profile.group, profile.status)
		p.WeightKg = profile.weightKg
		p.HeightCm = profile.heightCm
		p.TrainingExperienceYears = profile.experienceYears
		p.DosingProtocol = profile.dosing

		if err := d.CreateParticipant(p); err != nil {
			return fmt.Errorf("seed participant: %w", err)
		}

		for week := 0; week < 6; week++ {
			date := start.AddDate(0, 0, 7*week)
			w := float64(week)

			m := models.NewMeasurement(p.ID, date,
				100.0+profile.strengthIncrement*w,
				65.0+profile.massIncrement*w)
			m.WithMuscleThickness(35.0 + w*0.2).
				WithCreatineKinase(150.0 + w*10).
				WithPerformance(8.5 + w*0.2).
				WithFatigue(3)

			if err := d.CreateMeasurement(m); err != nil {
				return fmt.Errorf("seed measurement: %w", err)
			}
		}
	}
	return nil
}
