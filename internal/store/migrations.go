package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Runs table - one row per completed pipeline run
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			video_path TEXT NOT NULL,
			sample_rate REAL NOT NULL,
			frames_processed INTEGER NOT NULL,
			success INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Frame results table - per-frame metrics, analyzer outputs as JSON
		`CREATE TABLE IF NOT EXISTS frame_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			frame_number INTEGER NOT NULL,
			timestamp_s REAL NOT NULL,
			has_person INTEGER NOT NULL,
			pose_json TEXT,
			head_json TEXT,
			hands_json TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_frame_results_run_id ON frame_results(run_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
