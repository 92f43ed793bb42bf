// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for exercises, workout sets, body weights, message logs, and training principles.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL,
		description TEXT,
		guidance TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		batch_id INTEGER NOT NULL,
		set_date DATETIME NOT NULL,
		exercise_id TEXT NOT NULL,
		set_number INTEGER NOT NULL,
		reps INTEGER,
		weight REAL,
		weight_unit TEXT NOT NULL DEFAULT 'lbs',
		duration_minutes INTEGER,
		distance REAL,
		notes TEXT,
		raw_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (exercise_id) REFERENCES exercises(id)
	);

	CREATE TABLE IF NOT EXISTS body_weights (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		weight REAL NOT NULL,
		unit TEXT NOT NULL DEFAULT 'lbs',
		notes TEXT,
		recorded_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS message_logs (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		message TEXT NOT NULL,
		intent TEXT NOT NULL,
		confidence REAL NOT NULL,
		response TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS training_principles (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		priority INTEGER NOT NULL DEFAULT 10
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_muscle_group ON exercises(muscle_group);
	CREATE INDEX IF NOT EXISTS idx_sets_user_batch ON workout_sets(user_id, batch_id);
	CREATE INDEX IF NOT EXISTS idx_sets_user_exercise ON workout_sets(user_id, exercise_id);
	CREATE INDEX IF NOT EXISTS idx_sets_user_date ON workout_sets(user_id, set_date DESC);
	CREATE INDEX IF NOT EXISTS idx_body_weights_user ON body_weights(user_id, recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_message_logs_user ON message_logs(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_principles_category ON training_principles(category, priority);
	`

	_, err := d.db.Exec(schema)
	return err
}
