package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/mcavus/keyquest/internal/application/game"
	"github.com/mcavus/keyquest/internal/application/replay"
	"github.com/mcavus/keyquest/internal/application/scene/playing"
	"github.com/mcavus/keyquest/internal/infrastructure/config"
	"github.com/mcavus/keyquest/internal/level"
	"github.com/mcavus/keyquest/internal/persist"
	"github.com/mcavus/keyquest/internal/session"
	"github.com/mcavus/keyquest/levels"
)

const screenWidth = 800

var (
	playMode   string
	playLevel  int
	playUser   string
	playServer string
	recordPath string
	tuningPath string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	RunE: func(_ *cobra.Command, _ []string) error {
		mode, err := config.ParseMode(playMode)
		if err != nil {
			return err
		}
		return startGame(mode, playLevel, recordPath, nil)
	},
}

func init() {
	playCmd.Flags().StringVarP(&playMode, "mode", "m", "single", "play mode: single, coop or race")
	playCmd.Flags().IntVarP(&playLevel, "level", "l", 1, "level number")
	playCmd.Flags().StringVarP(&playUser, "username", "u", "guest", "player name for coin persistence")
	playCmd.Flags().StringVar(&playServer, "server", "", "account service base URL (empty plays offline)")
	playCmd.Flags().StringVar(&recordPath, "record", "", "record input to this file")
	playCmd.Flags().StringVar(&tuningPath, "tuning", "", "custom gameplay tuning file")
}

// startGame loads everything for one mode/level and hands control to the
// ebiten loop. A non-nil replayer substitutes recorded input for the
// keyboard.
func startGame(mode config.Mode, number int, recordTo string, rp *replay.Replayer) error {
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		return err
	}

	loader := config.NewFSLoader(levels.FS)
	cfg, err := loader.LoadLevel(mode, number)
	if err != nil {
		return err
	}
	lvl := level.FromConfig(cfg)

	var saver persist.Saver = persist.NopSaver{}
	if playServer != "" {
		saver = persist.NewHTTPSaver(playServer)
	}

	sess := session.New(playUser, 0)
	p := playing.New(mode, number, lvl, tuning, sess, saver, logger, recordTo)
	if rp != nil {
		p.SetReplayer(rp)
	}

	logger.Info("starting level", "mode", mode, "level", number, "username", playUser)

	g := game.New(p, screenWidth, int(lvl.Height))
	ebiten.SetWindowSize(screenWidth, int(lvl.Height))
	ebiten.SetWindowTitle("Key Quest")
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}
