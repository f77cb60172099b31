package analyze

import "github.com/ayusman/kinesics/internal/detector"

// Hands derives hand visibility metrics from one hand detection result.
// Visibility is assigned by ordinal position among the detected hands,
// not by the model's handedness classification, and any visible hand
// counts as gesturing.
func Hands(result detector.Result) *HandMetrics {
	count := len(result.Subjects)

	return &HandMetrics{
		LeftHandVisible:  count > 0,
		RightHandVisible: count > 1,
		Gesturing:        count > 0,
	}
}
