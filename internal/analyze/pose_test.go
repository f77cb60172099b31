package analyze

import (
	"math"
	"testing"

	"github.com/ayusman/kinesics/internal/detector"
)

func poseResult(lm detector.Landmarks) detector.Result {
	return detector.Result{Subjects: []detector.Landmarks{lm}}
}

func TestPose_NoSubject(t *testing.T) {
	if m := Pose(detector.Result{}); m != nil {
		t.Errorf("Pose() = %+v, want nil for empty result", m)
	}
}

func TestPose_SeatedSubject(t *testing.T) {
	m := Pose(poseResult(detector.SeatedPoseLandmarks()))
	if m == nil {
		t.Fatal("Pose() = nil, want metrics")
	}

	// Fixture shoulders are at (0.4, 0.35) and (0.6, 0.35)
	if m.ShoulderWidth == nil {
		t.Fatal("ShoulderWidth = nil, want 0.2")
	}
	if math.Abs(*m.ShoulderWidth-0.2) > 1e-9 {
		t.Errorf("ShoulderWidth = %f, want 0.2", *m.ShoulderWidth)
	}

	if m.OpenPosture == nil || !*m.OpenPosture {
		t.Error("OpenPosture should be true for shoulder width 0.2 > 0.15")
	}

	// Level shoulders: orientation along the x-axis
	if m.BodyOrientation == nil {
		t.Fatal("BodyOrientation = nil, want 0")
	}
	if math.Abs(*m.BodyOrientation) > 1e-9 {
		t.Errorf("BodyOrientation = %f, want 0", *m.BodyOrientation)
	}

	// Upright torso: shoulder and hip midpoints share an x coordinate
	if m.ForwardLeanAngle == nil {
		t.Fatal("ForwardLeanAngle = nil, want 0")
	}
	if math.Abs(*m.ForwardLeanAngle) > 1e-9 {
		t.Errorf("ForwardLeanAngle = %f, want 0", *m.ForwardLeanAngle)
	}

	if m.ArmsCrossed {
		t.Error("ArmsCrossed = true for arms at rest")
	}
}

func TestPose_ArmsCrossed(t *testing.T) {
	m := Pose(poseResult(detector.CrossedArmsPoseLandmarks()))
	if m == nil {
		t.Fatal("Pose() = nil, want metrics")
	}
	if !m.ArmsCrossed {
		t.Error("ArmsCrossed = false, want true for crossed-arms fixture")
	}
}

func TestPose_ArmsCrossedMidlineRule(t *testing.T) {
	// Shoulders at x=0.3 and x=0.5 put the torso midline at 0.4.
	// Left wrist at 0.6 and right wrist at 0.3 straddle it.
	lm := make(detector.Landmarks, detector.NumPoseLandmarks)
	lm[detector.PoseLeftShoulder] = detector.Point{X: 0.3, Y: 0.3}
	lm[detector.PoseRightShoulder] = detector.Point{X: 0.5, Y: 0.3}
	lm[detector.PoseLeftWrist] = detector.Point{X: 0.6, Y: 0.5}
	lm[detector.PoseRightWrist] = detector.Point{X: 0.3, Y: 0.5}

	m := Pose(poseResult(lm))
	if m == nil {
		t.Fatal("Pose() = nil, want metrics")
	}
	if !m.ArmsCrossed {
		t.Error("ArmsCrossed = false, want true for wrists across midline 0.4")
	}

	// Only one wrist across the midline is not crossed arms
	lm[detector.PoseRightWrist] = detector.Point{X: 0.45, Y: 0.5}
	if m := Pose(poseResult(lm)); m.ArmsCrossed {
		t.Error("ArmsCrossed = true with right wrist on its own side")
	}
}

func TestPose_ForwardLean(t *testing.T) {
	lm := make(detector.Landmarks, detector.NumPoseLandmarks)
	lm[detector.PoseLeftShoulder] = detector.Point{X: 0.45, Y: 0.3}
	lm[detector.PoseRightShoulder] = detector.Point{X: 0.55, Y: 0.3}
	lm[detector.PoseLeftHip] = detector.Point{X: 0.35, Y: 0.7}
	lm[detector.PoseRightHip] = detector.Point{X: 0.45, Y: 0.7}

	m := Pose(poseResult(lm))
	if m == nil || m.ForwardLeanAngle == nil {
		t.Fatal("ForwardLeanAngle = nil, want a value")
	}

	// Shoulder midpoint (0.5, 0.3), hip midpoint (0.4, 0.7):
	// atan2(0.1, 0.4) in degrees
	want := math.Atan2(0.1, 0.4) * 180 / math.Pi
	if math.Abs(*m.ForwardLeanAngle-want) > 1e-9 {
		t.Errorf("ForwardLeanAngle = %f, want %f", *m.ForwardLeanAngle, want)
	}

	// Lean direction is discarded: mirroring the tilt gives the same angle
	lm[detector.PoseLeftHip] = detector.Point{X: 0.55, Y: 0.7}
	lm[detector.PoseRightHip] = detector.Point{X: 0.65, Y: 0.7}
	back := Pose(poseResult(lm))
	if back == nil || back.ForwardLeanAngle == nil {
		t.Fatal("ForwardLeanAngle = nil for mirrored lean")
	}
	if math.Abs(*back.ForwardLeanAngle-want) > 1e-9 {
		t.Errorf("mirrored lean = %f, want %f", *back.ForwardLeanAngle, want)
	}
}

func TestPose_MissingHips(t *testing.T) {
	// Landmark set too short to contain the hip indices
	lm := detector.SeatedPoseLandmarks()[:detector.PoseRightWrist+1]

	m := Pose(poseResult(lm))
	if m == nil {
		t.Fatal("Pose() = nil, want partial metrics")
	}
	if m.ForwardLeanAngle != nil {
		t.Error("ForwardLeanAngle should be nil without hips")
	}
	if m.ShoulderWidth == nil {
		t.Error("ShoulderWidth should still be computed without hips")
	}
}

func TestPose_MissingShoulders(t *testing.T) {
	// Only the left shoulder index is in range
	lm := detector.SeatedPoseLandmarks()[:detector.PoseRightShoulder]

	m := Pose(poseResult(lm))
	if m == nil {
		t.Fatal("Pose() = nil, want metrics with null fields")
	}
	if m.ShoulderWidth != nil || m.BodyOrientation != nil || m.OpenPosture != nil {
		t.Error("shoulder-derived metrics should be nil without both shoulders")
	}
	if m.ForwardLeanAngle != nil {
		t.Error("ForwardLeanAngle should be nil without both shoulders")
	}
	if m.ArmsCrossed {
		t.Error("ArmsCrossed should stay false without both shoulders")
	}
}

func TestPose_NarrowShoulders(t *testing.T) {
	lm := detector.SeatedPoseLandmarks()
	lm[detector.PoseLeftShoulder] = detector.Point{X: 0.46, Y: 0.35}
	lm[detector.PoseRightShoulder] = detector.Point{X: 0.54, Y: 0.35}

	m := Pose(poseResult(lm))
	if m == nil || m.OpenPosture == nil {
		t.Fatal("OpenPosture = nil, want false")
	}
	if *m.OpenPosture {
		t.Error("OpenPosture = true for shoulder width 0.08 <= 0.15")
	}
}
