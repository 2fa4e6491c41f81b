// Package planner turns probed metadata and user choices into a CombinePlan:
// output geometry, per-input transform chains, the rendered filter graph,
// the audio mapping, and the encoder parameter lookup that the ffmpeg
// package consumes.
package planner

import (
	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/layout"
	"github.com/framefuse/framefuse/internal/probe"
)

// BuildPlan produces a complete CombinePlan from config and probe data.
// Pure plan construction: no error conditions exist here; malformed metadata
// must be rejected by the probe layer.
//
// Flow:
//  1. Target duration from the configured duration source
//  2. Geometry (content-sized or standard-frame policy)
//  3. Per-input transform chains (loop → crop → scale)
//  4. Filter graph rendering (chains + hstack/vstack)
//  5. Audio source selection with silent-track fallback
func BuildPlan(cfg *config.Config, v1, v2 *probe.VideoInfo, outputPath string) *CombinePlan {
	targetDuration := v1.Duration
	if cfg.DurationSource == config.InputSecond {
		targetDuration = v2.Duration
	}

	geo := layout.ComputeGeometry(v1, v2, cfg.Layout, cfg.Policy, layout.Bounds{
		MaxWidth:  cfg.MaxOutputWidth,
		MaxHeight: cfg.MaxOutputHeight,
	})

	chains := [2]layout.Chain{
		layout.TransformChain(v1, geo.Cells[0], cfg.LoopShorter, targetDuration, cfg.LoopSizeCap, cfg.OutputFPS),
		layout.TransformChain(v2, geo.Cells[1], cfg.LoopShorter, targetDuration, cfg.LoopSizeCap, cfg.OutputFPS),
	}

	audioMap, silent := SelectAudio(cfg.AudioSource, v1.HasAudio, v2.HasAudio)

	return &CombinePlan{
		Input1:         cfg.Input1,
		Input2:         cfg.Input2,
		Geometry:       geo,
		Chains:         chains,
		FilterGraph:    RenderFilterGraph(chains, geo.Orientation),
		AudioMap:       audioMap,
		SilentAudio:    silent,
		TargetDuration: targetDuration,
		Quality:        cfg.Quality,
		OutputPath:     outputPath,
	}
}
