// Package detector provides landmark detection interfaces and types for
// body-language analysis.
package detector

// Pose landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	PoseNose          = 0
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftElbow     = 13
	PoseRightElbow    = 14
	PoseLeftWrist     = 15
	PoseRightWrist    = 16
	PoseLeftHip       = 23
	PoseRightHip      = 24
	NumPoseLandmarks  = 33
)

// FaceNoseTip is the approximate nose-tip point in the face landmark
// mesh, used for tracking head movement between frames.
const FaceNoseTip = 1

// NumHandLandmarks is the number of points in one hand landmark set.
const NumHandLandmarks = 21

// Point represents a landmark position in normalized image coordinates,
// x and y nominally in [0,1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Landmarks is the ordered landmark set for one detected subject.
type Landmarks []Point

// Result holds the subjects detected in a single frame: one landmark
// set per detected person, hand, or face. Empty means nothing was
// detected, which is a normal outcome rather than an error.
type Result struct {
	Subjects []Landmarks `json:"subjects"`
}

// Empty reports whether no subject was detected.
func (r Result) Empty() bool {
	return len(r.Subjects) == 0
}

// First returns the first detected subject's landmarks, or nil when the
// result is empty.
func (r Result) First() Landmarks {
	if len(r.Subjects) == 0 {
		return nil
	}
	return r.Subjects[0]
}
