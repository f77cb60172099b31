// Command kinesics extracts per-frame body-language metrics from a
// video file and writes a single JSON report to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/kinesics/internal/detector"
	"github.com/ayusman/kinesics/internal/logging"
	"github.com/ayusman/kinesics/internal/model"
	"github.com/ayusman/kinesics/internal/pipeline"
	"github.com/ayusman/kinesics/internal/store"
	"github.com/ayusman/kinesics/internal/video"
)

// Version is the application version.
const Version = "0.1.0"

var (
	modelDir string
	dbPath   string
	quiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "kinesics <video_path> [sample_rate]",
	Short: "Extract body-language metrics from a video",
	Long: `Kinesics samples frames from a video at a configurable rate, runs
pose, hand, and face landmark detection on each sampled frame, and
derives posture, head-movement, and hand-visibility metrics.

The report is written to stdout as a single JSON document; all
diagnostics go to stderr.`,
	Version:      Version,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath := args[0]

		sampleRate := 1.0
		if len(args) > 1 {
			var err error
			sampleRate, err = strconv.ParseFloat(args[1], 64)
			if err != nil || sampleRate <= 0 {
				return fmt.Errorf("invalid sample rate %q", args[1])
			}
		}

		return run(videoPath, sampleRate)
	},
}

func init() {
	defaultModelDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		defaultModelDir = filepath.Join(home, ".kinesics", "models")
	}

	rootCmd.Flags().StringVarP(&modelDir, "model-dir", "m", defaultModelDir, "Directory for downloaded model artifacts")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite database to record the run in (optional)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
}

func run(videoPath string, sampleRate float64) error {
	// Reject a missing video before any model download happens
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video file %s: %w", videoPath, err)
	}

	logger, err := logging.NewLogger(quiet)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger.Info("starting run",
		zap.String("run_id", runID),
		zap.String("video", videoPath),
		zap.Float64("sample_rate", sampleRate),
	)

	pose, hand, face, err := buildDetectors(logger)
	if err != nil {
		return err
	}
	defer pose.Close()
	defer hand.Close()
	defer face.Close()

	src, err := video.NewFileSource(videoPath)
	if err != nil {
		return err
	}

	// Opening early exposes the container's frame count for the
	// progress bar; the pipeline's own Open is a no-op after this.
	if err := src.Open(); err != nil {
		return err
	}
	barTotal := src.FrameCount()
	if barTotal <= 0 {
		barTotal = -1 // spinner mode
	}
	bar := progressbar.NewOptions(barTotal,
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	pipe := pipeline.New(pipeline.Config{
		Pose:    pose,
		Hand:    hand,
		Face:    face,
		Logger:  logger,
		OnFrame: func(int) { bar.Add(1) },
	})

	report, runErr := pipe.Process(src, videoPath, sampleRate)
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	if runErr != nil {
		logger.Error("run aborted", zap.Error(runErr))
		if report == nil {
			return runErr
		}
		// Fall through: a partial report is still emitted, with
		// success=false, and the exit code stays non-zero.
	}

	if dbPath != "" {
		if err := saveRun(runID, report); err != nil {
			logger.Warn("failed to record run", zap.Error(err))
		} else {
			logger.Info("run recorded", zap.String("run_id", runID), zap.String("db", dbPath))
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(out))

	return runErr
}

// buildDetectors provisions the three model artifacts and constructs a
// detector per kind.
func buildDetectors(logger *zap.Logger) (pose, hand, face detector.Detector, err error) {
	models, err := model.NewStore(modelDir, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	posePath, err := models.Ensure(model.PoseModelName, model.PoseModelURL)
	if err != nil {
		return nil, nil, nil, err
	}
	handPath, err := models.Ensure(model.HandModelName, model.HandModelURL)
	if err != nil {
		return nil, nil, nil, err
	}
	facePath, err := models.Ensure(model.FaceModelName, model.FaceModelURL)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg := detector.DefaultConfig()

	pose, err = detector.NewMediaPipeDetector(detector.KindPose, posePath, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	hand, err = detector.NewMediaPipeDetector(detector.KindHand, handPath, cfg)
	if err != nil {
		pose.Close()
		return nil, nil, nil, err
	}
	face, err = detector.NewMediaPipeDetector(detector.KindFace, facePath, cfg)
	if err != nil {
		pose.Close()
		hand.Close()
		return nil, nil, nil, err
	}

	return pose, hand, face, nil
}

// saveRun records a completed report in the run-history database.
func saveRun(runID string, report *pipeline.Report) error {
	st, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.Runs().SaveReport(runID, report)
}
