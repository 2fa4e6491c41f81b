package planner

import (
	"fmt"

	"github.com/framefuse/framefuse/internal/config"
)

// encoderTable maps (acceleration mode, quality preset) to the video codec
// and tuning arguments for that combination. Values match the legacy
// predictor's encoder settings. Each mode uses its own parameter vocabulary:
// NVENC constant-quality (-cq), QSV global quality, VideoToolbox -q:v, and
// libx264 CRF.
var encoderTable = map[config.AccelMode]map[config.QualityPreset][]string{
	config.AccelNVENC: {
		config.QualityFastest:  {"-c:v", "h264_nvenc", "-rc", "vbr", "-gpu", "0", "-preset", "p1", "-cq", "28"},
		config.QualityFast:     {"-c:v", "h264_nvenc", "-rc", "vbr", "-gpu", "0", "-preset", "p3", "-cq", "25"},
		config.QualityBalanced: {"-c:v", "h264_nvenc", "-rc", "vbr", "-gpu", "0", "-preset", "p4", "-cq", "23"},
	},
	config.AccelQSV: {
		config.QualityFastest:  {"-c:v", "h264_qsv", "-preset", "veryfast", "-global_quality", "28"},
		config.QualityFast:     {"-c:v", "h264_qsv", "-preset", "faster", "-global_quality", "25"},
		config.QualityBalanced: {"-c:v", "h264_qsv", "-preset", "fast", "-global_quality", "23"},
	},
	config.AccelVideoToolbox: {
		config.QualityFastest:  {"-c:v", "h264_videotoolbox", "-realtime", "1", "-q:v", "80"},
		config.QualityFast:     {"-c:v", "h264_videotoolbox", "-realtime", "1", "-q:v", "65"},
		config.QualityBalanced: {"-c:v", "h264_videotoolbox", "-realtime", "1", "-q:v", "50"},
	},
	config.AccelNone: {
		config.QualityFastest:  {"-c:v", "libx264", "-preset", "ultrafast", "-crf", "28", "-x264-params", x264Params},
		config.QualityFast:     {"-c:v", "libx264", "-preset", "veryfast", "-crf", "25", "-x264-params", x264Params},
		config.QualityBalanced: {"-c:v", "libx264", "-preset", "fast", "-crf", "23", "-x264-params", x264Params},
	},
}

const x264Params = "scenecut=0:bframes=2:b-adapt=1:ref=1"

// encoderModes lists every mode the table must cover. AccelAuto is excluded:
// it resolves to one of these before any command is built.
var encoderModes = []config.AccelMode{
	config.AccelNone, config.AccelNVENC, config.AccelQSV, config.AccelVideoToolbox,
}

var qualityPresets = []config.QualityPreset{
	config.QualityFastest, config.QualityFast, config.QualityBalanced,
}

// The table is closed over two small enumerations; verify completeness once
// at package init so an unmapped combination cannot surface at encode time.
func init() {
	for _, mode := range encoderModes {
		presets, ok := encoderTable[mode]
		if !ok {
			panic(fmt.Sprintf("planner: encoder table missing mode %q", mode))
		}
		for _, preset := range qualityPresets {
			if len(presets[preset]) == 0 {
				panic(fmt.Sprintf("planner: encoder table missing %q/%q", mode, preset))
			}
		}
	}
}

// EncoderArgs returns the video codec arguments for the given mode and
// preset. Unknown combinations fall back to software at the same preset, and
// an unknown preset to "fast"; the init check makes both paths unreachable
// for declared enum values.
func EncoderArgs(mode config.AccelMode, preset config.QualityPreset) []string {
	presets, ok := encoderTable[mode]
	if !ok {
		presets = encoderTable[config.AccelNone]
	}
	args, ok := presets[preset]
	if !ok {
		args = presets[config.QualityFast]
	}
	return args
}
