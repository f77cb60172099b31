// Package video provides frame-by-frame access to video files using
// GoCV (OpenCV).
package video

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// ErrSourceNotOpen is returned when reading from a source that is not open.
var ErrSourceNotOpen = errors.New("video source is not open")

// Source defines the interface for video frame sources.
// ReadFrame returns io.EOF once the stream is exhausted.
type Source interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	FPS() float64
	FrameCount() int
	IsOpen() bool
}

// fileSource reads frames sequentially from a video file using GoCV.
type fileSource struct {
	path    string
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
}

// NewFileSource creates a Source for the video file at path.
// The file must exist; decodability is established by Open.
func NewFileSource(path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file %s: %w", path, err)
	}
	return &fileSource{path: path}, nil
}

// Open opens the video file for reading.
func (s *fileSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(s.path)
	if err != nil {
		return fmt.Errorf("open video %s: %w", s.path, err)
	}

	s.capture = capture
	s.running = true

	return nil
}

// Close closes the video file and releases resources.
func (s *fileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.capture == nil {
		s.running = false
		return nil
	}

	err := s.capture.Close()
	s.capture = nil
	s.running = false

	return err
}

// ReadFrame reads the next frame from the video.
// The caller is responsible for closing the returned Mat.
//
// OpenCV does not distinguish a decode failure from the end of the
// stream; a failed read is reported as io.EOF either way.
func (s *fileSource) ReadFrame() (*gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.capture == nil {
		return nil, ErrSourceNotOpen
	}

	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok {
		mat.Close()
		return nil, io.EOF
	}

	if mat.Empty() {
		mat.Close()
		return nil, io.EOF
	}

	return &mat, nil
}

// FPS returns the frame rate reported by the video container.
// Zero or negative means the video is unreadable.
func (s *fileSource) FPS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.capture == nil {
		return 0
	}

	return s.capture.Get(gocv.VideoCaptureFPS)
}

// FrameCount returns the total number of frames reported by the
// container, or 0 when unknown.
func (s *fileSource) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.capture == nil {
		return 0
	}

	n := int(s.capture.Get(gocv.VideoCaptureFrameCount))
	if n < 0 {
		return 0
	}
	return n
}

// IsOpen returns true if the source is currently open.
func (s *fileSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
