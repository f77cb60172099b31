package video

import (
	"io"
	"sync"

	"gocv.io/x/gocv"
)

// MockSource plays back a fixed set of frames for testing. Each frame
// is cloned on read so the pipeline's close-after-use ownership rule
// holds without consuming the originals.
type MockSource struct {
	frames  []*gocv.Mat
	fps     float64
	index   int
	mu      sync.Mutex
	running bool

	// ReadErr, when set, is returned by ReadFrame at the frame index
	// given by FailAt instead of that frame.
	ReadErr error
	FailAt  int
}

// NewMockSource creates a MockSource over the given frames.
func NewMockSource(frames []*gocv.Mat, fps float64) *MockSource {
	return &MockSource{
		frames: frames,
		fps:    fps,
		FailAt: -1,
	}
}

func (s *MockSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.index = 0
	return nil
}

func (s *MockSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return nil
}

func (s *MockSource) ReadFrame() (*gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil, ErrSourceNotOpen
	}

	if s.ReadErr != nil && s.index == s.FailAt {
		return nil, s.ReadErr
	}

	if s.index >= len(s.frames) {
		return nil, io.EOF
	}

	clone := s.frames[s.index].Clone()
	s.index++
	return &clone, nil
}

func (s *MockSource) FPS() float64 {
	return s.fps
}

func (s *MockSource) FrameCount() int {
	return len(s.frames)
}

func (s *MockSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
