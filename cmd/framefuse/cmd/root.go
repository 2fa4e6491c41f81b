// Package cmd implements the CLI commands for framefuse.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/log"
)

var rootCmd = &cobra.Command{
	Use:     "framefuse",
	Short:   "Split-screen video combiner",
	Version: version,
	Long: `framefuse combines two input videos into a single split-screen output,
side by side or top and bottom. It handles mismatched durations (looping),
aspect ratios (centered cropping), and audio tracks, and encodes with
hardware acceleration when available, falling back to software.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log.Configure(log.Config{
			Level:  viper.GetString("log-level"),
			Format: viper.GetString("log-format"),
		})
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "framefuse: %v\n", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig registers defaults and binds FRAMEFUSE_* environment variables.
func initConfig() {
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("FRAMEFUSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
