package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Recording describes a stored landmark session. Width and Height are the
// camera frame size the session was captured at.
type Recording struct {
	ID        string
	Name      string
	Width     int
	Height    int
	CreatedAt time.Time
}

// Frame is the detector output of a single tick.
type Frame struct {
	Tick  int64
	Hands json.RawMessage
}

// RecordingRepository provides access to recordings and their frames.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new recording. An empty ID is filled with a fresh UUID.
func (r *RecordingRepository) Create(rec *Recording) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, name, width, height, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Width, rec.Height, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recording %q: %w", rec.Name, err)
	}
	return nil
}

// GetByName retrieves a recording by its unique name.
func (r *RecordingRepository) GetByName(name string) (*Recording, error) {
	rec := &Recording{}
	err := r.db.QueryRow(
		`SELECT id, name, width, height, created_at FROM recordings WHERE name = ?`,
		name,
	).Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List retrieves all recordings ordered by name.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, name, width, height, created_at FROM recordings ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*Recording
	for rows.Next() {
		rec := &Recording{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes a recording and, through the cascade, all of its frames.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Resize updates the frame size of a recording.
func (r *RecordingRepository) Resize(id string, width, height int) error {
	result, err := r.db.Exec(`UPDATE recordings SET width = ?, height = ? WHERE id = ?`, width, height, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendFrame stores the hands seen at tick. A nil payload is stored as an
// empty list.
func (r *RecordingRepository) AppendFrame(recordingID string, tick int64, hands json.RawMessage) error {
	if len(hands) == 0 {
		hands = json.RawMessage("[]")
	}
	_, err := r.db.Exec(
		`INSERT INTO recording_frames (recording_id, tick, hands) VALUES (?, ?, ?)`,
		recordingID, tick, string(hands),
	)
	return err
}

// Frames returns every frame of a recording in tick order.
func (r *RecordingRepository) Frames(recordingID string) ([]Frame, error) {
	rows, err := r.db.Query(
		`SELECT tick, hands FROM recording_frames WHERE recording_id = ? ORDER BY tick`,
		recordingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var data string
		if err := rows.Scan(&f.Tick, &data); err != nil {
			return nil, err
		}
		f.Hands = json.RawMessage(data)
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// CountFrames returns the number of frames stored for a recording.
func (r *RecordingRepository) CountFrames(recordingID string) (int, error) {
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM recording_frames WHERE recording_id = ?`,
		recordingID,
	).Scan(&n)
	return n, err
}
