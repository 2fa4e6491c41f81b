// Package config holds runtime configuration: defaults, viper registration,
// and validation. Composition defaults match the legacy predictor for parity.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// --- Enum types for validated string fields ---

// Layout selects the split-screen orientation.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal" // Side by side (default).
	LayoutVertical   Layout = "vertical"   // Top and bottom.
)

// LayoutPolicy selects how output dimensions are derived.
type LayoutPolicy string

const (
	// PolicyContent derives output dimensions from the inputs' own sizes,
	// uniformly downscaled when over the maximum bound. Never crops.
	PolicyContent LayoutPolicy = "content"
	// PolicyStandard fixes the output to a canonical 16:9 or 9:16 frame and
	// center-crops each input to fit its half-frame cell.
	PolicyStandard LayoutPolicy = "standard"
)

// InputSlot identifies one of the two input videos.
type InputSlot string

const (
	InputFirst  InputSlot = "video1"
	InputSecond InputSlot = "video2"
)

// QualityPreset is the speed vs quality tradeoff.
type QualityPreset string

const (
	QualityFastest  QualityPreset = "fastest"
	QualityFast     QualityPreset = "fast" // Default.
	QualityBalanced QualityPreset = "balanced"
)

// AccelMode identifies the encoding path.
type AccelMode string

const (
	AccelNone         AccelMode = "none" // Software libx264.
	AccelNVENC        AccelMode = "nvenc"
	AccelQSV          AccelMode = "qsv"
	AccelVideoToolbox AccelMode = "videotoolbox"
	// AccelAuto is a config-only value: probe hardware once and use the best
	// mode that passes a real test encode.
	AccelAuto AccelMode = "auto"
)

// Config holds all runtime settings for a single combine invocation. It is
// populated by [Default] and then overridden from viper/flags before being
// passed (by pointer) to packages that need it.
type Config struct {
	// Inputs and output.
	Input1     string
	Input2     string
	OutputPath string // Empty: a unique temp .mp4 is chosen by the pipeline.

	// Composition choices.
	Layout         Layout
	Policy         LayoutPolicy
	DurationSource InputSlot // Which input's duration becomes the target.
	LoopShorter    bool      // Loop an input shorter than the target duration.
	AudioSource    InputSlot
	Quality        QualityPreset
	Accel          AccelMode

	// Output normalization (fixed in the legacy predictor, configurable here).
	OutputFPS       int
	AudioBitrate    string // e.g. "128k"
	AudioSampleRate int
	MaxOutputWidth  int // Content-policy bound on the horizontal split axis.
	MaxOutputHeight int // Content-policy bound on the vertical split axis.
	LoopSizeCap     int // Frame cap for the loop filter; 32767 is its maximum.

	// Process control.
	FFmpegPath    string
	FFprobePath   string
	EncodeTimeout time.Duration // Wall-clock bound per encode attempt.
	DetectTimeout time.Duration // Bound per hardware capability test.
	MaxThreads    int           // Cap on ffmpeg -threads.

	// Behavior.
	DryRun    bool
	LogLevel  string
	LogFormat string
}

// Default returns a Config with all defaults matching legacy predictor
// behavior. Used as the base before viper/flag overrides apply.
func Default() Config {
	return Config{
		Layout:          LayoutHorizontal,
		Policy:          PolicyStandard,
		DurationSource:  InputFirst,
		LoopShorter:     true,
		AudioSource:     InputFirst,
		Quality:         QualityFast,
		Accel:           AccelAuto,
		OutputFPS:       30,
		AudioBitrate:    "128k",
		AudioSampleRate: 48000,
		MaxOutputWidth:  1920,
		MaxOutputHeight: 1080,
		LoopSizeCap:     32767,
		FFmpegPath:      "ffmpeg",
		FFprobePath:     "ffprobe",
		EncodeTimeout:   600 * time.Second,
		DetectTimeout:   10 * time.Second,
		MaxThreads:      8,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// SetDefaults registers every tunable under its viper key so env overrides
// (FRAMEFUSE_*) and config files resolve before flag binding.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("layout", string(d.Layout))
	v.SetDefault("policy", string(d.Policy))
	v.SetDefault("duration-source", string(d.DurationSource))
	v.SetDefault("loop", d.LoopShorter)
	v.SetDefault("audio-source", string(d.AudioSource))
	v.SetDefault("quality", string(d.Quality))
	v.SetDefault("accel", string(d.Accel))
	v.SetDefault("fps", d.OutputFPS)
	v.SetDefault("audio-bitrate", d.AudioBitrate)
	v.SetDefault("audio-sample-rate", d.AudioSampleRate)
	v.SetDefault("max-width", d.MaxOutputWidth)
	v.SetDefault("max-height", d.MaxOutputHeight)
	v.SetDefault("loop-size-cap", d.LoopSizeCap)
	v.SetDefault("ffmpeg", d.FFmpegPath)
	v.SetDefault("ffprobe", d.FFprobePath)
	v.SetDefault("encode-timeout", d.EncodeTimeout)
	v.SetDefault("detect-timeout", d.DetectTimeout)
	v.SetDefault("max-threads", d.MaxThreads)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
}

// FromViper builds a Config from resolved viper state (defaults < config
// file < env < bound flags). Inputs and output path are positional/flag-only
// and are filled in by the command layer.
func FromViper(v *viper.Viper) Config {
	return Config{
		Layout:          Layout(v.GetString("layout")),
		Policy:          LayoutPolicy(v.GetString("policy")),
		DurationSource:  InputSlot(v.GetString("duration-source")),
		LoopShorter:     v.GetBool("loop"),
		AudioSource:     InputSlot(v.GetString("audio-source")),
		Quality:         QualityPreset(v.GetString("quality")),
		Accel:           AccelMode(v.GetString("accel")),
		OutputFPS:       v.GetInt("fps"),
		AudioBitrate:    v.GetString("audio-bitrate"),
		AudioSampleRate: v.GetInt("audio-sample-rate"),
		MaxOutputWidth:  v.GetInt("max-width"),
		MaxOutputHeight: v.GetInt("max-height"),
		LoopSizeCap:     v.GetInt("loop-size-cap"),
		FFmpegPath:      v.GetString("ffmpeg"),
		FFprobePath:     v.GetString("ffprobe"),
		EncodeTimeout:   v.GetDuration("encode-timeout"),
		DetectTimeout:   v.GetDuration("detect-timeout"),
		MaxThreads:      v.GetInt("max-threads"),
		LogLevel:        v.GetString("log-level"),
		LogFormat:       v.GetString("log-format"),
	}
}

// Validate checks that enum fields hold valid values, both inputs are set,
// and numeric tunables are positive. The audio bitrate is canonicalized.
func (c *Config) Validate() error {
	switch c.Layout {
	case LayoutHorizontal, LayoutVertical:
	default:
		return errors.New("invalid layout (use 'horizontal' or 'vertical')")
	}

	switch c.Policy {
	case PolicyContent, PolicyStandard:
	default:
		return errors.New("invalid policy (use 'content' or 'standard')")
	}

	switch c.DurationSource {
	case InputFirst, InputSecond:
	default:
		return errors.New("invalid duration source (use 'video1' or 'video2')")
	}

	switch c.AudioSource {
	case InputFirst, InputSecond:
	default:
		return errors.New("invalid audio source (use 'video1' or 'video2')")
	}

	switch c.Quality {
	case QualityFastest, QualityFast, QualityBalanced:
	default:
		return errors.New("invalid quality (use 'fastest', 'fast' or 'balanced')")
	}

	switch c.Accel {
	case AccelAuto, AccelNone, AccelNVENC, AccelQSV, AccelVideoToolbox:
	default:
		return errors.New("invalid accel (use 'auto', 'none', 'nvenc', 'qsv' or 'videotoolbox')")
	}

	normalized, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalized

	if c.OutputFPS <= 0 {
		return errors.New("fps must be positive")
	}
	if c.MaxOutputWidth <= 0 || c.MaxOutputHeight <= 0 {
		return errors.New("max output bounds must be positive")
	}
	if c.LoopSizeCap <= 0 {
		return errors.New("loop size cap must be positive")
	}
	if c.EncodeTimeout <= 0 {
		return errors.New("encode timeout must be positive")
	}
	if c.MaxThreads <= 0 {
		return errors.New("max threads must be positive")
	}

	if c.Input1 == "" || c.Input2 == "" {
		return errors.New("need exactly two input files")
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "128", "128k", "128K", "128kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 128k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
