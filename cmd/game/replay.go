package main

import (
	"github.com/spf13/cobra"

	"github.com/mcavus/keyquest/internal/application/replay"
	"github.com/mcavus/keyquest/internal/infrastructure/config"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := replay.LoadReplay(args[0])
		if err != nil {
			return err
		}
		mode, err := config.ParseMode(data.Mode)
		if err != nil {
			return err
		}

		logger.Info("replaying", "file", args[0], "mode", mode, "level", data.Level, "frames", len(data.Frames))
		return startGame(mode, data.Level, "", replay.NewReplayer(*data))
	},
}
