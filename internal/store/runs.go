package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/kinesics/internal/analyze"
	"github.com/ayusman/kinesics/internal/pipeline"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Run represents a stored pipeline run.
type Run struct {
	ID              string
	VideoPath       string
	SampleRate      float64
	FramesProcessed int
	Success         bool
	CreatedAt       time.Time
}

// RunRepository provides access to stored runs and their frame results.
type RunRepository struct {
	db *sql.DB
}

// Runs returns the run repository for this store.
func (s *Store) Runs() *RunRepository {
	return &RunRepository{db: s.db}
}

// SaveReport stores a pipeline report and all of its frame results in
// one transaction under the given run ID.
func (r *RunRepository) SaveReport(runID string, report *pipeline.Report) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, video_path, sample_rate, frames_processed, success)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, report.VideoPath, report.SampleRate, report.FramesProcessed, report.Success,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO frame_results (run_id, frame_number, timestamp_s, has_person, pose_json, head_json, hands_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, fr := range report.Results {
		poseJSON, err := marshalNullable(fr.Pose)
		if err != nil {
			return err
		}
		headJSON, err := marshalNullable(fr.Head)
		if err != nil {
			return err
		}
		handsJSON, err := marshalNullable(fr.Hands)
		if err != nil {
			return err
		}

		if _, err := stmt.Exec(runID, fr.FrameNumber, fr.Timestamp, fr.HasPersonDetected,
			poseJSON, headJSON, handsJSON); err != nil {
			return fmt.Errorf("insert frame %d: %w", fr.FrameNumber, err)
		}
	}

	return tx.Commit()
}

// List returns all stored runs, newest first.
func (r *RunRepository) List() ([]Run, error) {
	rows, err := r.db.Query(
		`SELECT id, video_path, sample_rate, frames_processed, success, created_at
		 FROM runs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.VideoPath, &run.SampleRate,
			&run.FramesProcessed, &run.Success, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(id string) (*Run, error) {
	run := &Run{}

	err := r.db.QueryRow(
		`SELECT id, video_path, sample_rate, frames_processed, success, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.VideoPath, &run.SampleRate, &run.FramesProcessed, &run.Success, &run.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return run, nil
}

// FrameResults reloads the frame results of a run in frame order.
func (r *RunRepository) FrameResults(runID string) ([]pipeline.FrameResult, error) {
	rows, err := r.db.Query(
		`SELECT frame_number, timestamp_s, has_person, pose_json, head_json, hands_json
		 FROM frame_results WHERE run_id = ? ORDER BY frame_number`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []pipeline.FrameResult
	for rows.Next() {
		var fr pipeline.FrameResult
		var poseJSON, headJSON, handsJSON sql.NullString

		if err := rows.Scan(&fr.FrameNumber, &fr.Timestamp, &fr.HasPersonDetected,
			&poseJSON, &headJSON, &handsJSON); err != nil {
			return nil, err
		}

		if poseJSON.Valid {
			fr.Pose = &analyze.PoseMetrics{}
			if err := json.Unmarshal([]byte(poseJSON.String), fr.Pose); err != nil {
				return nil, fmt.Errorf("frame %d pose: %w", fr.FrameNumber, err)
			}
		}
		if headJSON.Valid {
			fr.Head = &analyze.HeadMetrics{}
			if err := json.Unmarshal([]byte(headJSON.String), fr.Head); err != nil {
				return nil, fmt.Errorf("frame %d head: %w", fr.FrameNumber, err)
			}
		}
		if handsJSON.Valid {
			fr.Hands = &analyze.HandMetrics{}
			if err := json.Unmarshal([]byte(handsJSON.String), fr.Hands); err != nil {
				return nil, fmt.Errorf("frame %d hands: %w", fr.FrameNumber, err)
			}
		}

		results = append(results, fr)
	}

	return results, rows.Err()
}

// marshalNullable serializes a metric to JSON, mapping nil to SQL NULL.
func marshalNullable[T any](m *T) (any, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
