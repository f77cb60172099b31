package detector

import "gocv.io/x/gocv"

// Kind identifies which landmark model a detector instance runs.
type Kind string

const (
	KindPose Kind = "pose"
	KindHand Kind = "hand"
	KindFace Kind = "face"
)

// Detector defines the interface for landmark detection implementations.
// A single instance runs one model in video mode, so timestamps passed
// to Detect must be strictly increasing across a run.
type Detector interface {
	// Detect analyzes a video frame at the given timestamp and returns
	// the detected landmark subjects. A frame with no detected subject
	// returns an empty Result, not an error.
	Detect(frame *gocv.Mat, timestampMs int64) (Result, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MinDetectionConf is the minimum detection confidence threshold (0.0-1.0).
	MinDetectionConf float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// MaxHands is the maximum number of hands to detect.
	// Only consulted by hand detectors (default: 2).
	MaxHands int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinDetectionConf: 0.5,
		MinTrackingConf:  0.5,
		MaxHands:         2,
	}
}
