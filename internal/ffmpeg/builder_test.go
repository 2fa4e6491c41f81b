package ffmpeg

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/planner"
	"github.com/framefuse/framefuse/internal/probe"
)

func testCfg() *config.Config {
	cfg := config.Default()
	cfg.Input1 = "a.mp4"
	cfg.Input2 = "b.mp4"
	return &cfg
}

func testPlan(t *testing.T, cfg *config.Config, hasAudio1, hasAudio2 bool) *planner.CombinePlan {
	t.Helper()
	v1 := &probe.VideoInfo{Width: 1280, Height: 720, Duration: 5, FrameRate: 30, HasAudio: hasAudio1}
	v2 := &probe.VideoInfo{Width: 1280, Height: 720, Duration: 5, FrameRate: 30, HasAudio: hasAudio2}
	return planner.BuildPlan(cfg, v1, v2, "out.mp4")
}

func TestBuild_ArgumentOrder(t *testing.T) {
	cfg := testCfg()
	args := Build(cfg, testPlan(t, cfg, true, true), config.AccelNone)

	// The skeleton is order-sensitive: inputs, filter graph, maps, duration,
	// timing, codec, output.
	iInput := slices.Index(args, "-i")
	iFilter := slices.Index(args, "-filter_complex")
	iMap := slices.Index(args, "-map")
	iDuration := slices.Index(args, "-t")
	iCodec := slices.Index(args, "-c:v")

	require.NotEqual(t, -1, iInput)
	require.NotEqual(t, -1, iFilter)
	require.NotEqual(t, -1, iMap)
	require.NotEqual(t, -1, iDuration)
	require.NotEqual(t, -1, iCodec)

	assert.Less(t, iInput, iFilter)
	assert.Less(t, iFilter, iMap)
	assert.Less(t, iMap, iDuration)
	assert.Less(t, iDuration, iCodec)
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestBuild_CoreFlags(t *testing.T) {
	cfg := testCfg()
	args := Build(cfg, testPlan(t, cfg, true, true), config.AccelNone)

	assert.Equal(t, "ffmpeg", args[0])
	assert.Equal(t, "-y", args[1])

	iT := slices.Index(args, "-t")
	assert.Equal(t, "5", args[iT+1])

	iR := slices.Index(args, "-r")
	assert.Equal(t, "30", args[iR+1])

	assert.Contains(t, args, "-vsync")
	assert.Contains(t, args, "cfr")
	assert.Contains(t, args, "make_zero")
	assert.Contains(t, args, "+faststart")
	assert.Contains(t, args, "+genpts")

	// Audio is always stereo AAC at the configured bitrate.
	iCA := slices.Index(args, "-c:a")
	assert.Equal(t, "aac", args[iCA+1])
	assert.Contains(t, args, "128k")
	iAC := slices.Index(args, "-ac")
	assert.Equal(t, "2", args[iAC+1])
}

func TestBuild_ThreadsCapped(t *testing.T) {
	cfg := testCfg()
	args := Build(cfg, testPlan(t, cfg, true, true), config.AccelNone)

	iThreads := slices.Index(args, "-threads")
	require.NotEqual(t, -1, iThreads)
	n, err := strconv.Atoi(args[iThreads+1])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, cfg.MaxThreads)
}

func TestBuild_SilentAudioInput(t *testing.T) {
	cfg := testCfg()
	args := Build(cfg, testPlan(t, cfg, false, false), config.AccelNone)

	assert.Contains(t, args, "lavfi")
	assert.Contains(t, args, "anullsrc=channel_layout=stereo:sample_rate=48000")

	// The synthetic input is declared before anything maps it.
	iLavfi := slices.Index(args, "lavfi")
	iMap := slices.Index(args, "-map")
	assert.Less(t, iLavfi, iMap)
	assert.Contains(t, args, "2:a:0")
}

func TestBuild_NoSilentInputWhenAudioExists(t *testing.T) {
	cfg := testCfg()
	args := Build(cfg, testPlan(t, cfg, true, false), config.AccelNone)
	assert.NotContains(t, args, "lavfi")
}

// A mode change swaps only the encoder segment; everything before it is
// byte-identical, which is what makes the fallback retry safe.
func TestBuild_ModeChangesOnlyEncoderSegment(t *testing.T) {
	cfg := testCfg()
	plan := testPlan(t, cfg, true, true)

	hw := Build(cfg, plan, config.AccelNVENC)
	sw := Build(cfg, plan, config.AccelNone)

	iHW := slices.Index(hw, "-c:v")
	iSW := slices.Index(sw, "-c:v")
	require.Equal(t, iHW, iSW)
	assert.Equal(t, sw[:iSW], hw[:iHW])

	assert.Contains(t, hw, "h264_nvenc")
	assert.Contains(t, sw, "libx264")
	assert.Equal(t, sw[len(sw)-1], hw[len(hw)-1])
}
