package analyze

import (
	"math"

	"github.com/ayusman/kinesics/internal/detector"
	"github.com/ayusman/kinesics/internal/geometry"
)

// Head derives head-movement metrics by comparing the nose-tip position
// of the current face detection against the immediately preceding
// sampled frame's. Returns nil unless both frames contain a detected
// face with the nose-tip landmark.
func Head(current, previous detector.Result) *HeadMetrics {
	currentNose := geometry.Coords(current.First(), detector.FaceNoseTip)
	previousNose := geometry.Coords(previous.First(), detector.FaceNoseTip)
	if currentNose == nil || previousNose == nil {
		return nil
	}

	// No sign correction for camera orientation: positive is downward
	// in image space.
	movement := currentNose.Y - previousNose.Y

	return &HeadMetrics{
		VerticalMovement: movement,
		IsNodding:        math.Abs(movement) > noddingMinMovement,
	}
}
