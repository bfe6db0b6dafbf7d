// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: The partial unique index enforces one current PB per key.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS training_sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		rpe REAL,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_groups (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		order_index INTEGER NOT NULL,
		notes TEXT,
		FOREIGN KEY (session_id) REFERENCES training_sessions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		category TEXT NOT NULL,
		sets INTEGER,
		reps INTEGER,
		weight_kg REAL,
		distance_m REAL,
		time_s REAL,
		recovery_s REAL,
		notes TEXT,
		FOREIGN KEY (group_id) REFERENCES workout_groups(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS performance_records (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		category TEXT NOT NULL,
		record_key TEXT NOT NULL,
		date TEXT NOT NULL,
		distance_m REAL,
		time_s REAL,
		exercise_name TEXT NOT NULL DEFAULT '',
		exercise_category TEXT NOT NULL DEFAULT '',
		weight_kg REAL,
		reps INTEGER,
		exercise_type TEXT NOT NULL DEFAULT '',
		performance_value REAL,
		performance_unit TEXT NOT NULL DEFAULT '',
		is_personal_best INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS injury_history (
		id TEXT PRIMARY KEY,
		injury_type TEXT NOT NULL,
		body_part TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		severity TEXT NOT NULL,
		cause_session_id TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON training_sessions(date DESC);
	CREATE INDEX IF NOT EXISTS idx_groups_session ON workout_groups(session_id);
	CREATE INDEX IF NOT EXISTS idx_sets_group ON workout_sets(group_id);
	CREATE INDEX IF NOT EXISTS idx_records_session ON performance_records(session_id);
	CREATE INDEX IF NOT EXISTS idx_records_key ON performance_records(category, record_key);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_records_current_best
		ON performance_records(category, record_key) WHERE is_personal_best = 1;
	CREATE INDEX IF NOT EXISTS idx_injuries_start ON injury_history(start_date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
