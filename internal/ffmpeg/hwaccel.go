package ffmpeg

import (
	"context"
	"sync"

	"github.com/framefuse/framefuse/internal/config"
	flog "github.com/framefuse/framefuse/internal/log"
)

// accelCandidates lists hardware encoders in detection priority order
// (most-capable first). Each is verified with a minimal real encode; listing
// an encoder in `ffmpeg -encoders` does not mean the device behind it works.
var accelCandidates = []struct {
	mode  config.AccelMode
	codec string
}{
	{config.AccelNVENC, "h264_nvenc"},
	{config.AccelQSV, "h264_qsv"},
	{config.AccelVideoToolbox, "h264_videotoolbox"},
}

// DetectAccel probes hardware encoding capability by test-encoding one
// second of testsrc with each candidate codec in priority order. NVENC is
// additionally gated on nvidia-smi responding, matching the legacy detector.
// Returns the first mode whose test encode succeeds, or AccelNone.
func DetectAccel(ctx context.Context, cfg *config.Config, runner Runner) config.AccelMode {
	log := flog.WithComponent("hwaccel")

	for _, cand := range accelCandidates {
		if cand.mode == config.AccelNVENC {
			smi := runner.Run(ctx, []string{"nvidia-smi"}, cfg.DetectTimeout)
			if smi.Err != nil || smi.TimedOut {
				continue
			}
		}

		res := runner.Run(ctx, testEncodeArgs(cfg.FFmpegPath, cand.codec), cfg.DetectTimeout)
		if res.Err == nil && !res.TimedOut {
			log.Info().Str("mode", string(cand.mode)).Msg("hardware acceleration available")
			return cand.mode
		}
		log.Debug().Str("mode", string(cand.mode)).Msg("hardware test encode failed")
	}

	log.Info().Msg("no hardware acceleration available, using software encoding")
	return config.AccelNone
}

func testEncodeArgs(ffmpegPath, codec string) []string {
	return []string{
		ffmpegPath,
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=1",
		"-c:v", codec,
		"-f", "null", "-",
	}
}

// CapabilityCache resolves the acceleration mode once per process lifetime.
// Hardware capability does not change during a run, so the first resolution
// is cached behind a sync.Once; concurrent callers see the same mode with no
// redundant probing.
type CapabilityCache struct {
	once    sync.Once
	mode    config.AccelMode
	resolve func(ctx context.Context, runner Runner) config.AccelMode
}

// NewCapabilityCache returns a cache that performs real detection with the
// given config on first use.
func NewCapabilityCache(cfg *config.Config) *CapabilityCache {
	return &CapabilityCache{
		resolve: func(ctx context.Context, runner Runner) config.AccelMode {
			return DetectAccel(ctx, cfg, runner)
		},
	}
}

// FixedCapability returns a cache pinned to a known mode: forced via
// --accel, or injected by tests.
func FixedCapability(mode config.AccelMode) *CapabilityCache {
	c := &CapabilityCache{}
	c.once.Do(func() {})
	c.mode = mode
	return c
}

// Mode returns the cached acceleration mode, resolving it on first call.
func (c *CapabilityCache) Mode(ctx context.Context, runner Runner) config.AccelMode {
	c.once.Do(func() {
		c.mode = c.resolve(ctx, runner)
	})
	return c.mode
}
