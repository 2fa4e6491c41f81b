// Package ffmpeg builds and executes ffmpeg commands: the complete argument
// skeleton for a combine plan, an injectable process runner with timeout, the
// hardware→software fallback orchestrator, and hardware capability probing.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/planner"
)

// silentSource generates the synthetic silent stereo track when neither
// input has audio.
const silentSourceFmt = "anullsrc=channel_layout=stereo:sample_rate=%d"

// Build constructs the complete ffmpeg argument slice for a plan at the
// given acceleration mode. The skeleton and ordering are fixed: preamble,
// inputs (plus the optional silent source), filter graph, stream maps,
// duration and timing flags, the mode-specific encoder segment, audio and
// container flags, output path. Rebuilding with a different mode changes
// only the encoder segment.
func Build(cfg *config.Config, plan *planner.CombinePlan, mode config.AccelMode) []string {
	args := make([]string, 0, 64)

	// --- Preamble ---
	args = append(args, cfg.FFmpegPath, "-y", "-threads", strconv.Itoa(threadCount(cfg.MaxThreads)))

	// --- Inputs ---
	args = append(args, "-i", plan.Input1, "-i", plan.Input2)

	// --- Filter graph ---
	args = append(args, "-filter_complex", plan.FilterGraph)

	// --- Audio source (silent lavfi input must exist before it is mapped) ---
	if plan.SilentAudio {
		args = append(args, "-f", "lavfi", "-i", fmt.Sprintf(silentSourceFmt, cfg.AudioSampleRate))
	}

	// --- Stream maps: exactly one audio stream, then the composed video ---
	args = append(args, "-map", plan.AudioMap)
	args = append(args, "-map", "[output]")

	// --- Exact output duration ---
	args = append(args, "-t", formatDuration(plan.TargetDuration))

	// --- Timing: constant frame rate, normalized timestamps ---
	args = append(args,
		"-vsync", "cfr",
		"-r", strconv.Itoa(cfg.OutputFPS),
		"-avoid_negative_ts", "make_zero",
	)

	// --- Video encoder segment (the only mode-dependent part) ---
	args = append(args, planner.EncoderArgs(mode, plan.Quality)...)

	// --- Audio encoder: always stereo AAC at a fixed bitrate ---
	args = append(args, "-c:a", "aac", "-b:a", cfg.AudioBitrate, "-ac", "2")

	// --- Container: fast start, regenerated timestamps ---
	args = append(args, "-movflags", "+faststart", "-fflags", "+genpts")

	// --- Output ---
	args = append(args, plan.OutputPath)

	return args
}

// formatDuration renders seconds for -t without trailing float noise.
func formatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// threadCount caps ffmpeg's thread pool at maxThreads, using the logical CPU
// count when it is lower. Falls back to 4 when the count is unavailable.
func threadCount(maxThreads int) int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = 4
	}
	if n > maxThreads {
		return maxThreads
	}
	return n
}
