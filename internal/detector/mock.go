package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results per call.
type MockDetector struct {
	results []Result
	calls   int
	err     error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetResult sets a single result returned by every Detect call.
func (m *MockDetector) SetResult(r Result) {
	m.results = []Result{r}
}

// SetResults sets a sequence of results returned by successive Detect
// calls. The last result repeats once the sequence is exhausted.
func (m *MockDetector) SetResults(results []Result) {
	m.results = results
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured result or error.
func (m *MockDetector) Detect(frame *gocv.Mat, timestampMs int64) (Result, error) {
	m.calls++
	if m.err != nil {
		return Result{}, m.err
	}
	if len(m.results) == 0 {
		return Result{}, nil
	}
	i := m.calls - 1
	if i >= len(m.results) {
		i = len(m.results) - 1
	}
	return m.results[i], nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// SeatedPoseLandmarks returns a preset pose landmark set for an upright
// seated subject facing the camera, shoulders level and arms at rest.
func SeatedPoseLandmarks() Landmarks {
	lm := make(Landmarks, NumPoseLandmarks)

	lm[PoseNose] = Point{X: 0.5, Y: 0.2}
	lm[PoseLeftShoulder] = Point{X: 0.4, Y: 0.35}
	lm[PoseRightShoulder] = Point{X: 0.6, Y: 0.35}
	lm[PoseLeftElbow] = Point{X: 0.37, Y: 0.5}
	lm[PoseRightElbow] = Point{X: 0.63, Y: 0.5}
	lm[PoseLeftWrist] = Point{X: 0.36, Y: 0.62}
	lm[PoseRightWrist] = Point{X: 0.64, Y: 0.62}
	lm[PoseLeftHip] = Point{X: 0.43, Y: 0.7}
	lm[PoseRightHip] = Point{X: 0.57, Y: 0.7}

	return lm
}

// CrossedArmsPoseLandmarks returns a preset pose landmark set with each
// wrist across the torso midline.
func CrossedArmsPoseLandmarks() Landmarks {
	lm := SeatedPoseLandmarks()
	lm[PoseLeftWrist] = Point{X: 0.58, Y: 0.5}
	lm[PoseRightWrist] = Point{X: 0.42, Y: 0.5}
	return lm
}

// FaceLandmarksAt returns a minimal face landmark set with the nose tip
// at the given vertical position.
func FaceLandmarksAt(noseY float64) Landmarks {
	lm := make(Landmarks, FaceNoseTip+1)
	lm[FaceNoseTip] = Point{X: 0.5, Y: noseY}
	return lm
}

// SingleHandLandmarks returns one detected hand landmark set.
func SingleHandLandmarks() Landmarks {
	lm := make(Landmarks, NumHandLandmarks)
	for i := range lm {
		lm[i] = Point{X: 0.3 + float64(i)*0.01, Y: 0.6}
	}
	return lm
}
