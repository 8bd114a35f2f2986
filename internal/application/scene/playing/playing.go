// Package playing provides the level gameplay scene for all three modes.
package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mcavus/keyquest/internal/application/levelrun"
	"github.com/mcavus/keyquest/internal/application/replay"
	"github.com/mcavus/keyquest/internal/application/scene"
	"github.com/mcavus/keyquest/internal/application/state"
	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/infrastructure/config"
	"github.com/mcavus/keyquest/internal/level"
	"github.com/mcavus/keyquest/internal/persist"
	"github.com/mcavus/keyquest/internal/session"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorPlatform   = color.RGBA{80, 80, 100, 255}
	colorMover      = color.RGBA{110, 110, 140, 255}
	colorBridge     = color.RGBA{140, 100, 60, 255}
	colorSwitch     = color.RGBA{200, 60, 60, 255}
	colorKey        = color.RGBA{255, 215, 0, 255}
	colorDoorShut   = color.RGBA{120, 70, 40, 255}
	colorDoorOpen   = color.RGBA{100, 200, 100, 255}
	colorBox        = color.RGBA{170, 130, 70, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorCompanion  = color.RGBA{100, 150, 240, 255}
	colorRacer      = color.RGBA{220, 100, 100, 255}
	colorHUDOverlay = color.RGBA{0, 0, 0, 150}
)

// Playing is the gameplay scene. It owns the current attempt and rebuilds
// it wholesale on restart or fall.
type Playing struct {
	logger *log.Logger
	mode   config.Mode
	number int
	lvl    *level.Level
	tuning *config.Tuning
	sess   *session.Session
	saver  persist.Saver

	run *levelrun.Run

	screenW int
	screenH int

	// Chat entry (coop mode)
	chatActive bool
	chatBuffer string

	// Input recording and optional playback
	recorder   *Recorder
	recordPath string
	replayer   *replay.Replayer
}

// New creates the gameplay scene for one mode/level. If recordPath is not
// empty, every attempt's input is recorded there.
func New(mode config.Mode, number int, lvl *level.Level, tuning *config.Tuning,
	sess *session.Session, saver persist.Saver, logger *log.Logger, recordPath string) *Playing {
	return &Playing{
		logger:     logger,
		mode:       mode,
		number:     number,
		lvl:        lvl,
		tuning:     tuning,
		sess:       sess,
		saver:      saver,
		screenW:    800,
		screenH:    int(lvl.Height),
		recordPath: recordPath,
	}
}

// SetReplayer switches the scene to replay input instead of reading the
// keyboard.
func (p *Playing) SetReplayer(r *replay.Replayer) {
	p.replayer = r
}

// OnEnter builds the first attempt (implements scene.Scene).
func (p *Playing) OnEnter() {
	p.startAttempt()
}

// startAttempt discards any current attempt and builds a fresh one. All
// transient flags live in the Run, so nothing needs resetting piecemeal.
func (p *Playing) startAttempt() {
	if p.run != nil {
		p.run.Close()
	}
	p.run = levelrun.New(p.mode, p.lvl, p.tuning, p.sess, p.saver, p.logger)
	p.chatActive = false
	p.chatBuffer = ""

	if p.recordPath != "" {
		p.recorder = NewRecorder(string(p.mode), p.number)
	}
	if p.replayer != nil {
		p.replayer.Reset()
	}
}

// Update advances the scene (implements scene.Scene).
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.run.ResetRequested() {
		p.startAttempt()
		return nil, nil
	}

	if p.run.Phase() == state.PhaseCompleted {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.saveRecording()
			p.startAttempt()
			return nil, nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.saveRecording()
			return nil, ebiten.Termination
		}
		return nil, nil
	}

	if !p.chatActive && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.saveRecording()
		return nil, ebiten.Termination
	}

	if p.mode == config.ModeCoop && p.replayer == nil {
		p.updateChat()
	}

	in := p.sampleInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	p.run.Update(dt, in)
	return nil, nil
}

func (p *Playing) sampleInput() levelrun.Input {
	if p.replayer != nil {
		ri, ok := p.replayer.GetInput()
		if !ok {
			return levelrun.Input{}
		}
		return levelrun.Input{Left: ri.Left, Right: ri.Right, Jump: ri.Jump}
	}

	if p.chatActive {
		return levelrun.Input{} // typing a command, not steering
	}
	return levelrun.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Jump: ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) ||
			ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// updateChat handles the companion command entry: Enter opens the field and
// sends, Escape cancels, Backspace edits.
func (p *Playing) updateChat() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if p.chatActive {
			if p.chatBuffer != "" {
				p.run.Command(p.chatBuffer)
			}
			p.chatBuffer = ""
		}
		p.chatActive = !p.chatActive
		return
	}
	if !p.chatActive {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.chatActive = false
		p.chatBuffer = ""
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.chatBuffer) > 0 {
		runes := []rune(p.chatBuffer)
		p.chatBuffer = string(runes[:len(runes)-1])
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r >= ' ' {
			p.chatBuffer += string(r)
		}
	}
}

// saveRecording writes the current recording, if any.
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordPath
	if filename == "" {
		filename = GenerateFilename()
	}
	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "file", filename, "err", err)
		return
	}
	p.logger.Info("recording saved", "file", filename, "frames", p.recorder.FrameCount())
}

// Draw renders the level (implements scene.Scene).
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX := p.cameraX()
	inst := p.run.Instance()

	for _, b := range inst.Platforms {
		p.drawBody(screen, b, camX, colorPlatform)
	}
	for _, m := range inst.Moving {
		p.drawBody(screen, m.Body, camX, colorMover)
	}
	for _, b := range inst.Bridges {
		if b.Enabled {
			p.drawBody(screen, b, camX, colorBridge)
		}
	}
	for _, s := range inst.Switches {
		p.drawBody(screen, s, camX, colorSwitch)
	}
	if inst.Key != nil && inst.Key.Enabled {
		p.drawBody(screen, inst.Key, camX, colorKey)
	}
	if inst.Door != nil {
		c := colorDoorShut
		if p.run.HasKey() || p.run.Phase() == state.PhaseCompleting || p.run.Phase() == state.PhaseCompleted {
			c = colorDoorOpen
		}
		p.drawBody(screen, inst.Door, camX, c)
	}
	if inst.Box != nil {
		p.drawBody(screen, inst.Box, camX, colorBox)
	}

	if p.run.AIActor != nil {
		c := colorCompanion
		if p.mode == config.ModeRace {
			c = colorRacer
		}
		p.drawBody(screen, p.run.AIActor.Body, camX, c)
	}
	if p.run.Player.Body.Enabled {
		p.drawBody(screen, p.run.Player.Body, camX, colorPlayer)
	}

	p.drawHUD(screen)

	switch p.run.Phase() {
	case state.PhaseCountdown:
		p.drawCountdown(screen)
	case state.PhaseCompleted:
		p.drawSummary(screen)
	}
}

// cameraX follows the player horizontally, clamped to the level bounds.
func (p *Playing) cameraX() float64 {
	camX := p.run.Player.Body.Pos.X - float64(p.screenW)/2
	maxCamX := p.lvl.Width - float64(p.screenW)
	if camX > maxCamX {
		camX = maxCamX
	}
	if camX < 0 {
		camX = 0
	}
	return camX
}

func (p *Playing) drawBody(screen *ebiten.Image, b *entity.Body, camX float64, c color.Color) {
	r := b.AABB()
	ebitenutil.DrawRect(screen, r.Left()-camX, r.Top(), r.Width(), r.Height(), c)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	keyText := "no"
	if p.run.HasKey() {
		keyText = "yes"
	}
	ebitenutil.DebugPrint(screen,
		fmt.Sprintf("Time: %.1fs | Key: %s | Coins: %d", p.run.Elapsed(), keyText, p.sess.Coins()))

	controls := "Arrows/WASD: Move | Space: Jump | ESC: Quit"
	if p.mode == config.ModeCoop {
		controls += " | Enter: Chat"
	}
	ebitenutil.DebugPrintAt(screen, controls, 10, p.screenH-15)

	if p.mode == config.ModeCoop {
		p.drawChat(screen)
	}
}

// drawChat shows the last few exchange lines plus the entry field.
func (p *Playing) drawChat(screen *ebiten.Image) {
	lines := p.run.Chat()
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}

	y := p.screenH - 110
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, y)
		y += 15
	}
	if p.chatActive {
		ebitenutil.DebugPrintAt(screen, "> "+p.chatBuffer+"_", 10, y)
	}
}

func (p *Playing) drawCountdown(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorHUDOverlay)
	n := int(math.Ceil(p.run.Countdown()))
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Race starts in %d...", n),
		p.screenW/2-60, p.screenH/2-10)
}

func (p *Playing) drawSummary(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorHUDOverlay)

	var text string
	if p.run.RacerWon() {
		text = "The racer beat you to the door!\n\nNo reward this time.\n\nPress R to race again | ESC to quit"
	} else if res := p.run.Result(); res != nil {
		stars := ""
		for i := 0; i < res.Stars; i++ {
			stars += "*"
		}
		text = fmt.Sprintf("LEVEL COMPLETE!\n\nTime: %.1fs\nStars: %s\nCoins: +%d (total %d)\n\nPress R to restart | ESC to quit",
			res.Elapsed, stars, res.Coins, p.sess.Coins())
	}
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-110, p.screenH/2-40)
}

// OnExit tears down the attempt and flushes any recording (implements
// scene.Scene).
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.run != nil {
		p.run.Close()
	}
}
