package analyze

import (
	"math"

	"github.com/ayusman/kinesics/internal/detector"
	"github.com/ayusman/kinesics/internal/geometry"
)

// Pose derives posture metrics from one pose detection result.
// Returns nil when no pose subject was detected. Metrics whose
// landmarks are missing are null; the rest are still computed.
func Pose(result detector.Result) *PoseMetrics {
	landmarks := result.First()
	if landmarks == nil {
		return nil
	}

	leftShoulder := geometry.Coords(landmarks, detector.PoseLeftShoulder)
	rightShoulder := geometry.Coords(landmarks, detector.PoseRightShoulder)
	leftWrist := geometry.Coords(landmarks, detector.PoseLeftWrist)
	rightWrist := geometry.Coords(landmarks, detector.PoseRightWrist)
	leftHip := geometry.Coords(landmarks, detector.PoseLeftHip)
	rightHip := geometry.Coords(landmarks, detector.PoseRightHip)

	m := &PoseMetrics{}

	// Forward lean: torso angle from vertical, via shoulder and hip
	// midpoints.
	if leftShoulder != nil && rightShoulder != nil && leftHip != nil && rightHip != nil {
		shoulderMid := geometry.Midpoint(*leftShoulder, *rightShoulder)
		hipMid := geometry.Midpoint(*leftHip, *rightHip)

		torsoAngle := math.Atan2(shoulderMid.X-hipMid.X, hipMid.Y-shoulderMid.Y) * 180 / math.Pi
		lean := math.Abs(torsoAngle)
		m.ForwardLeanAngle = &lean
	}

	// Arms crossed: each wrist past the torso midline.
	if leftWrist != nil && rightWrist != nil && leftShoulder != nil && rightShoulder != nil {
		torsoCenter := (leftShoulder.X + rightShoulder.X) / 2
		m.ArmsCrossed = leftWrist.X > torsoCenter && rightWrist.X < torsoCenter
	}

	if leftShoulder != nil && rightShoulder != nil {
		width := geometry.Distance(*leftShoulder, *rightShoulder)
		m.ShoulderWidth = &width

		orientation := math.Atan2(rightShoulder.Y-leftShoulder.Y, rightShoulder.X-leftShoulder.X) * 180 / math.Pi
		m.BodyOrientation = &orientation

		open := width > openPostureMinWidth
		m.OpenPosture = &open
	}

	return m
}
