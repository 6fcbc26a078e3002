package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "unctool",
	Short: "Inspect and convert UNC format MRI files",
	Long: `unctool reads the legacy UNC fixed-layout binary MRI container.

It can print the decoded metadata and pixel statistics, and convert the
pixel volume to NIfTI-1, splitting multi-echo and multi-volume
acquisitions into separate output files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		if !verbose {
			logger = logger.Level(zerolog.WarnLevel)
		}
	},
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
