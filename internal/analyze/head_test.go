package analyze

import (
	"math"
	"testing"

	"github.com/ayusman/kinesics/internal/detector"
)

func faceResult(noseY float64) detector.Result {
	return detector.Result{Subjects: []detector.Landmarks{detector.FaceLandmarksAt(noseY)}}
}

func TestHead_Nodding(t *testing.T) {
	m := Head(faceResult(0.52), faceResult(0.50))
	if m == nil {
		t.Fatal("Head() = nil, want metrics")
	}

	if math.Abs(m.VerticalMovement-0.02) > 1e-9 {
		t.Errorf("VerticalMovement = %f, want 0.02", m.VerticalMovement)
	}
	if !m.IsNodding {
		t.Error("IsNodding = false for movement 0.02 > 0.01")
	}
}

func TestHead_SmallMovement(t *testing.T) {
	m := Head(faceResult(0.505), faceResult(0.50))
	if m == nil {
		t.Fatal("Head() = nil, want metrics")
	}
	if m.IsNodding {
		t.Errorf("IsNodding = true for movement %f <= 0.01", m.VerticalMovement)
	}
}

func TestHead_UpwardMovement(t *testing.T) {
	// Movement is signed; nodding uses the magnitude
	m := Head(faceResult(0.48), faceResult(0.50))
	if m == nil {
		t.Fatal("Head() = nil, want metrics")
	}
	if m.VerticalMovement >= 0 {
		t.Errorf("VerticalMovement = %f, want negative for upward motion", m.VerticalMovement)
	}
	if !m.IsNodding {
		t.Error("IsNodding = false for |movement| 0.02 > 0.01")
	}
}

func TestHead_MissingFace(t *testing.T) {
	present := faceResult(0.5)
	absent := detector.Result{}

	tests := []struct {
		name          string
		current, prev detector.Result
	}{
		{"no current face", absent, present},
		{"no previous face", present, absent},
		{"no face at all", absent, absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := Head(tt.current, tt.prev); m != nil {
				t.Errorf("Head() = %+v, want nil", m)
			}
		})
	}
}

func TestHead_TruncatedLandmarks(t *testing.T) {
	// A face result whose landmark set lacks the nose-tip index
	short := detector.Result{Subjects: []detector.Landmarks{{{X: 0.5, Y: 0.5}}}}
	if m := Head(short, faceResult(0.5)); m != nil {
		t.Errorf("Head() = %+v, want nil for truncated landmarks", m)
	}
}
