// Package pipeline drives the per-frame analysis of a video: sampling
// frames, invoking the three landmark detectors, and assembling the
// ordered sequence of frame results.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/kinesics/internal/analyze"
	"github.com/ayusman/kinesics/internal/detector"
	"github.com/ayusman/kinesics/internal/video"
)

// progressLogInterval is how many source frames pass between progress
// log lines.
const progressLogInterval = 30

// FrameResult holds the metrics derived from one sampled frame.
// FrameNumber is the zero-based index within the original unsampled
// stream, not within the sampled subsequence.
type FrameResult struct {
	Timestamp         float64              `json:"timestamp"`
	FrameNumber       int                  `json:"frame_number"`
	Pose              *analyze.PoseMetrics `json:"pose"`
	Head              *analyze.HeadMetrics `json:"head"`
	Hands             *analyze.HandMetrics `json:"hands"`
	HasPersonDetected bool                 `json:"has_person_detected"`
}

// Report is the complete output of one pipeline run. Success is false
// when the run aborted mid-stream; Results then holds the frames
// completed before the failure.
type Report struct {
	Success         bool          `json:"success"`
	VideoPath       string        `json:"video_path"`
	SampleRate      float64       `json:"sample_rate"`
	FramesProcessed int           `json:"frames_processed"`
	Results         []FrameResult `json:"results"`
}

// Config holds the collaborators of a Pipeline.
type Config struct {
	Pose detector.Detector
	Hand detector.Detector
	Face detector.Detector

	Logger *zap.Logger

	// OnFrame, if set, is called once per source frame (sampled or
	// not) with its zero-based index. Used for progress reporting.
	OnFrame func(frameNumber int)
}

// Pipeline runs the sequential frame-sampling and analysis loop.
type Pipeline struct {
	pose    detector.Detector
	hand    detector.Detector
	face    detector.Detector
	logger  *zap.Logger
	onFrame func(int)
}

// New creates a Pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		pose:    cfg.Pose,
		hand:    cfg.Hand,
		face:    cfg.Face,
		logger:  logger,
		onFrame: cfg.OnFrame,
	}
}

// Process reads src frame by frame, analyzing every frameInterval-th
// frame where frameInterval = fps/sampleRate (minimum 1). The source is
// opened here and released on every exit path.
//
// A mid-stream read failure aborts the run: the returned Report carries
// the frames completed so far with Success set to false, alongside the
// error.
func (p *Pipeline) Process(src video.Source, videoPath string, sampleRate float64) (*Report, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %g", sampleRate)
	}

	if err := src.Open(); err != nil {
		return nil, fmt.Errorf("open video source: %w", err)
	}
	defer src.Close()

	fps := src.FPS()
	if fps <= 0 {
		return nil, fmt.Errorf("video reports non-positive frame rate %g", fps)
	}

	frameInterval := int(fps / sampleRate)
	if frameInterval < 1 {
		frameInterval = 1
	}

	p.logger.Info("processing video",
		zap.String("video", videoPath),
		zap.Float64("fps", fps),
		zap.Float64("sample_rate", sampleRate),
		zap.Int("frame_interval", frameInterval),
	)

	report := &Report{
		VideoPath:  videoPath,
		SampleRate: sampleRate,
		Results:    []FrameResult{},
	}

	// Previous face detection, threaded frame to frame for the
	// head-movement comparison. Overwritten after every sampled frame
	// even when empty, so continuity resets across detection gaps.
	var prevFace detector.Result

	for frameNumber := 0; ; frameNumber++ {
		frame, err := src.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.FramesProcessed = len(report.Results)
			return report, fmt.Errorf("read frame %d: %w", frameNumber, err)
		}

		if p.onFrame != nil {
			p.onFrame(frameNumber)
		}
		if frameNumber > 0 && frameNumber%progressLogInterval == 0 {
			p.logger.Info("progress",
				zap.Int("frame", frameNumber),
				zap.Float64("seconds", float64(frameNumber)/fps),
			)
		}

		if frameNumber%frameInterval != 0 {
			frame.Close()
			continue
		}

		result, face, err := p.analyzeFrame(frame, frameNumber, fps, prevFace)
		frame.Close()
		if err != nil {
			report.FramesProcessed = len(report.Results)
			return report, fmt.Errorf("frame %d: %w", frameNumber, err)
		}

		report.Results = append(report.Results, result)
		prevFace = face
	}

	report.Success = true
	report.FramesProcessed = len(report.Results)

	p.logger.Info("completed processing", zap.Int("frames_processed", report.FramesProcessed))

	return report, nil
}

// analyzeFrame runs the three detectors and analyzers on one sampled
// frame. Returns the frame's result and its face detection, which
// becomes the next frame's previous-face state.
func (p *Pipeline) analyzeFrame(frame *gocv.Mat, frameNumber int, fps float64, prevFace detector.Result) (FrameResult, detector.Result, error) {
	// Detectors expect RGB; video frames arrive BGR
	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(*frame, &rgb, gocv.ColorBGRToRGB)

	timestampMs := int64(math.Round(float64(frameNumber) / fps * 1000))

	poseResult, err := p.pose.Detect(&rgb, timestampMs)
	if err != nil {
		return FrameResult{}, detector.Result{}, fmt.Errorf("pose detection: %w", err)
	}
	handResult, err := p.hand.Detect(&rgb, timestampMs)
	if err != nil {
		return FrameResult{}, detector.Result{}, fmt.Errorf("hand detection: %w", err)
	}
	faceResult, err := p.face.Detect(&rgb, timestampMs)
	if err != nil {
		return FrameResult{}, detector.Result{}, fmt.Errorf("face detection: %w", err)
	}

	result := FrameResult{
		Timestamp:         float64(frameNumber) / fps,
		FrameNumber:       frameNumber,
		Pose:              analyze.Pose(poseResult),
		Head:              analyze.Head(faceResult, prevFace),
		Hands:             analyze.Hands(handResult),
		HasPersonDetected: !poseResult.Empty(),
	}

	return result, faceResult, nil
}
