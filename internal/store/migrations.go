package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Recordings table - one row per captured session
		`CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Recording frames table - detector output per tick, JSON encoded
		`CREATE TABLE IF NOT EXISTS recording_frames (
			recording_id TEXT NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			hands TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (recording_id, tick)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_recording_frames_recording_id ON recording_frames(recording_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
