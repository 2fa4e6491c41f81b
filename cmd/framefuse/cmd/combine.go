package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/ffmpeg"
	"github.com/framefuse/framefuse/internal/log"
	"github.com/framefuse/framefuse/internal/pipeline"
)

var combineCmd = &cobra.Command{
	Use:   "combine <input1> <input2>",
	Short: "Combine two videos into one split-screen output",
	Args:  cobra.ExactArgs(2),
	RunE:  runCombine,
}

func init() {
	f := combineCmd.Flags()
	f.String("layout", string(config.LayoutHorizontal), "split orientation: horizontal | vertical")
	f.String("policy", string(config.PolicyStandard), "output sizing: standard | content")
	f.String("duration-source", string(config.InputFirst), "which input's duration to use: video1 | video2")
	f.Bool("loop", true, "loop the shorter video to fill the target duration")
	f.String("audio-source", string(config.InputFirst), "which input's audio to use: video1 | video2")
	f.String("quality", string(config.QualityFast), "speed vs quality: fastest | fast | balanced")
	f.String("accel", string(config.AccelAuto), "acceleration: auto | none | nvenc | qsv | videotoolbox")
	f.StringP("output", "o", "", "output file path (default: temp .mp4)")
	f.Duration("encode-timeout", config.Default().EncodeTimeout, "wall-clock timeout per encode attempt")
	f.Bool("dry-run", false, "print the planned ffmpeg command without encoding")

	for _, key := range []string{
		"layout", "policy", "duration-source", "loop", "audio-source",
		"quality", "accel", "encode-timeout",
	} {
		_ = viper.BindPFlag(key, f.Lookup(key))
	}

	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	cfg := config.FromViper(viper.GetViper())
	cfg.Input1 = args[0]
	cfg.Input2 = args[1]
	cfg.OutputPath, _ = cmd.Flags().GetString("output")
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")

	if err := cfg.Validate(); err != nil {
		return err
	}

	runner := ffmpeg.CommandRunner{}
	ctx := cmd.Context()

	// The legacy predictor verifies ffmpeg before doing any work; a missing
	// binary should fail immediately, not after probing both inputs.
	if res := runner.Run(ctx, []string{cfg.FFmpegPath, "-version"}, cfg.DetectTimeout); res.Err != nil {
		return fmt.Errorf("ffmpeg is not available: %w", res.Err)
	}

	caps := ffmpeg.NewCapabilityCache(&cfg)
	if cfg.Accel != config.AccelAuto {
		caps = ffmpeg.FixedCapability(cfg.Accel)
	}

	orch := ffmpeg.NewOrchestrator(&cfg, runner, caps)
	combiner := pipeline.New(&cfg, pipeline.FFProber{Path: cfg.FFprobePath}, orch)

	outputPath, err := combiner.Run(ctx)
	if err != nil {
		return err
	}

	cliLog := log.WithComponent("cli")
	cliLog.Info().Str("output", outputPath).Msg("combine finished")
	fmt.Println(outputPath)
	return nil
}
