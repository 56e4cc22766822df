// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the participants and measurements tables for the study.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS participants (
		id TEXT PRIMARY KEY,
		age INTEGER NOT NULL,
		gender TEXT NOT NULL,
		weight_kg REAL NOT NULL,
		height_cm REAL NOT NULL,
		training_experience_years REAL NOT NULL DEFAULT 0,
		training_status TEXT NOT NULL CHECK (training_status IN ('trained', 'untrained')),
		group_assignment TEXT NOT NULL CHECK (group_assignment IN ('creatine', 'placebo')),
		dosing_protocol TEXT,
		population_category TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS measurements (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		measurement_date DATETIME NOT NULL,
		strength_1rm_kg REAL NOT NULL,
		lean_mass_kg REAL NOT NULL,
		muscle_thickness_mm REAL,
		creatine_kinase_level REAL,
		performance_score REAL,
		fatigue_level REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (participant_id) REFERENCES participants(id)
	);

	CREATE INDEX IF NOT EXISTS idx_participants_group ON participants(group_assignment);
	CREATE INDEX IF NOT EXISTS idx_participants_category ON participants(population_category);
	CREATE INDEX IF NOT EXISTS idx_measurements_participant ON measurements(participant_id);
	CREATE INDEX IF NOT EXISTS idx_measurements_date ON measurements(measurement_date);
	CREATE INDEX IF NOT EXISTS idx_measurements_participant_date ON measurements(participant_id, measurement_date);
	`

	_, err := d.db.Exec(schema)
	return err
}
