package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "keyquest",
})

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "keyquest",
	Short: "A 2D platformer with keys, doors, switches and AI partners",
	Long: `Key Quest is a small 2D platformer. Collect the key, open the door,
and do it fast for more stars. Play alone, with a chat-commanded AI
companion, or race an AI opponent to the door.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
}
