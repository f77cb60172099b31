// Package analyze converts raw per-frame landmark detections into
// body-language metrics. The analyzers are pure functions: a missing
// subject or landmark yields a null metric, never an error.
package analyze

// Heuristic thresholds. These are uncalibrated cutoffs, not validated
// measures.
const (
	// openPostureMinWidth is the normalized shoulder width above which
	// a posture counts as open.
	openPostureMinWidth = 0.15

	// noddingMinMovement is the normalized vertical nose-tip movement
	// between consecutive sampled frames that counts as nodding.
	noddingMinMovement = 0.01
)

// PoseMetrics describes posture features derived from one pose
// landmark set. Pointer fields are null when the required landmarks
// were not detected.
type PoseMetrics struct {
	// ForwardLeanAngle is the torso tilt from vertical in degrees.
	// Sign-independent: forward and backward lean are not distinguished.
	ForwardLeanAngle *float64 `json:"forward_lean_angle"`

	// ArmsCrossed is true when each wrist is across the torso midline.
	// "Left" and "right" follow the landmark source's convention.
	ArmsCrossed bool `json:"arms_crossed"`

	// ShoulderWidth is the distance between the shoulder landmarks in
	// normalized image units.
	ShoulderWidth *float64 `json:"shoulder_width"`

	// BodyOrientation is the angle in degrees of the left-to-right
	// shoulder vector relative to the image x-axis.
	BodyOrientation *float64 `json:"body_orientation"`

	// OpenPosture is true when the shoulder width exceeds the open
	// posture threshold.
	OpenPosture *bool `json:"open_posture"`
}

// HeadMetrics describes head movement between the current and the
// immediately preceding sampled frame.
type HeadMetrics struct {
	VerticalMovement float64 `json:"vertical_movement"`
	IsNodding        bool    `json:"is_nodding"`
}

// HandMetrics describes hand visibility for one frame. Left/right is
// an ordinal-position approximation, not true handedness
// classification.
type HandMetrics struct {
	LeftHandVisible  bool `json:"left_hand_visible"`
	RightHandVisible bool `json:"right_hand_visible"`
	Gesturing        bool `json:"gesturing"`
}
