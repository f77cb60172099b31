// Package model provisions the pretrained landmark model artifacts,
// fetching each one from its upstream URL on first use and reusing the
// local copy on every run after that.
package model

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Model artifact names and their upstream locations.
const (
	PoseModelName = "pose_landmarker_heavy.task"
	PoseModelURL  = "https://storage.googleapis.com/mediapipe-models/pose_landmarker/pose_landmarker_heavy/float16/latest/pose_landmarker_heavy.task"

	HandModelName = "hand_landmarker.task"
	HandModelURL  = "https://storage.googleapis.com/mediapipe-models/hand_landmarker/hand_landmarker/float16/latest/hand_landmarker.task"

	FaceModelName = "face_landmarker.task"
	FaceModelURL  = "https://storage.googleapis.com/mediapipe-models/face_landmarker/face_landmarker/float16/latest/face_landmarker.task"
)

// DownloadError reports a failed artifact fetch. The pipeline cannot
// run without all three models, so callers treat it as fatal.
type DownloadError struct {
	Name string
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s from %s: %v", e.Name, e.URL, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Store is a name-addressed local artifact store. It is passed as an
// explicit dependency to whoever needs model files; there is no global
// cache state.
type Store struct {
	dir    string
	client *http.Client
	logger *zap.Logger
}

// NewStore creates a Store rooted at dir, creating the directory if
// needed.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:    dir,
		client: http.DefaultClient,
		logger: logger,
	}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ensure returns the local path of the named artifact, fetching it from
// url if it is not already present. Idempotent: once the file exists no
// network access happens. A failed or truncated fetch never leaves a
// partial file behind, so a retry starts clean.
func (s *Store) Ensure(name, url string) (string, error) {
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		s.logger.Debug("model already present", zap.String("model", name))
		return path, nil
	}

	s.logger.Info("downloading model", zap.String("model", name))

	if err := s.download(name, url, path); err != nil {
		return "", &DownloadError{Name: name, URL: url, Err: err}
	}

	s.logger.Info("downloaded model", zap.String("model", name))
	return path, nil
}

// download fetches url into path via a temporary file, renaming only
// after the full body has been written.
func (s *Store) download(name, url, path string) error {
	resp, err := s.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	partial := path + ".partial"
	f, err := os.Create(partial)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
	)
	written, err := io.Copy(io.MultiWriter(f, bar), resp.Body)

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && resp.ContentLength >= 0 && written != resp.ContentLength {
		err = fmt.Errorf("truncated body: %d of %d bytes", written, resp.ContentLength)
	}
	if err != nil {
		os.Remove(partial)
		return err
	}

	if err := os.Rename(partial, path); err != nil {
		os.Remove(partial)
		return err
	}

	return nil
}
