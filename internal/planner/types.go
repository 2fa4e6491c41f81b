package planner

import (
	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/layout"
)

// CombinePlan holds the complete set of decisions for one combine request.
// It is produced by BuildPlan and consumed by the ffmpeg package to construct
// command arguments. The plan is acceleration-mode independent: the filter
// graph and geometry never change on a hardware→software fallback, only the
// encoder-parameter segment of the rendered command does.
type CombinePlan struct {
	Input1 string
	Input2 string

	Geometry layout.Geometry
	Chains   [2]layout.Chain

	// FilterGraph is the rendered filter_complex expression producing the
	// named [output] stream.
	FilterGraph string

	// Audio selection. When SilentAudio is set, a synthetic silent stereo
	// source is added as a third input and AudioMap references it.
	AudioMap    string // e.g. "0:a:0", "1:a:0", or "2:a:0" for the silent source.
	SilentAudio bool

	TargetDuration float64 // seconds; the output is truncated to exactly this.
	Quality        config.QualityPreset
	OutputPath     string
}
