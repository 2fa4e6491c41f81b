// Package pipeline orchestrates one combine request end to end: input
// validation, probing, planning, encoding with fallback, and artifact
// verification. Each invocation is a single synchronous one-shot run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/ffmpeg"
	flog "github.com/framefuse/framefuse/internal/log"
	"github.com/framefuse/framefuse/internal/planner"
	"github.com/framefuse/framefuse/internal/probe"
)

// minInputSize rejects files too small to be a real video container,
// catching truncated uploads before ffprobe does.
const minInputSize = 1000

// ErrArtifactMissing means the encoder reported success but the declared
// output path does not exist or is empty. Treated as a fatal encoding
// failure.
var ErrArtifactMissing = errors.New("encoder reported success but produced no output")

// Prober abstracts metadata probing so tests can substitute fixed metadata.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.VideoInfo, error)
}

// FFProber is the real Prober backed by ffprobe.
type FFProber struct {
	Path string // ffprobe binary
}

func (p FFProber) Probe(ctx context.Context, path string) (*probe.VideoInfo, error) {
	return probe.Probe(ctx, p.Path, path)
}

// Orchestrator executes a finished plan; satisfied by *ffmpeg.Orchestrator.
type Orchestrator interface {
	Execute(ctx context.Context, plan *planner.CombinePlan) error
}

// Combiner runs the combine pipeline for a single request.
type Combiner struct {
	cfg    *config.Config
	prober Prober
	orch   Orchestrator
	log    zerolog.Logger
}

// New wires a Combiner from its collaborators.
func New(cfg *config.Config, prober Prober, orch Orchestrator) *Combiner {
	return &Combiner{
		cfg:    cfg,
		prober: prober,
		orch:   orch,
		log:    flog.WithComponent("pipeline"),
	}
}

// Run validates and probes both inputs, builds the plan, and encodes the
// combined output. It returns the produced artifact path; on any terminal
// failure a partially written artifact is removed before the error is
// surfaced.
func (c *Combiner) Run(ctx context.Context) (string, error) {
	for _, path := range []string{c.cfg.Input1, c.cfg.Input2} {
		if err := validateInput(path); err != nil {
			return "", err
		}
	}

	info1, err := c.prober.Probe(ctx, c.cfg.Input1)
	if err != nil {
		return "", fmt.Errorf("probe input 1: %w", err)
	}
	info2, err := c.prober.Probe(ctx, c.cfg.Input2)
	if err != nil {
		return "", fmt.Errorf("probe input 2: %w", err)
	}

	c.log.Info().
		Str("input1", info1.Resolution()).Float64("duration1", info1.Duration).Bool("audio1", info1.HasAudio).
		Str("input2", info2.Resolution()).Float64("duration2", info2.Duration).Bool("audio2", info2.HasAudio).
		Msg("inputs probed")

	outputPath := c.cfg.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(os.TempDir(), fmt.Sprintf("framefuse-%s.mp4", uuid.NewString()))
	}

	plan := planner.BuildPlan(c.cfg, info1, info2, outputPath)

	c.log.Info().
		Int("width", plan.Geometry.OutputWidth).
		Int("height", plan.Geometry.OutputHeight).
		Float64("duration", plan.TargetDuration).
		Str("filter", plan.FilterGraph).
		Msg("plan built")

	if c.cfg.DryRun {
		fmt.Println(strings.Join(ffmpeg.Build(c.cfg, plan, config.AccelNone), " "))
		return outputPath, nil
	}

	if err := c.orch.Execute(ctx, plan); err != nil {
		removePartial(outputPath)
		return "", err
	}

	if fi, err := os.Stat(outputPath); err != nil || fi.Size() == 0 {
		removePartial(outputPath)
		return "", ErrArtifactMissing
	}

	return outputPath, nil
}

// validateInput checks that an input exists and is plausibly a video file.
func validateInput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input not found: %s", path)
	}
	if fi.Size() < minInputSize {
		return fmt.Errorf("input too small (possibly corrupt): %s", path)
	}
	return nil
}

func removePartial(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}
