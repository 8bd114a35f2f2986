// Package game owns the ebiten loop: it drives the current scene at a
// fixed timestep and applies the scene transitions it requests.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mcavus/keyquest/internal/application/scene"
)

// dt is the fixed simulation timestep. The window runs at 60 TPS, so one
// Update call is one simulated frame.
const dt = 1.0 / 60.0

// Game implements ebiten.Game on top of a current Scene.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
}

// New wraps the initial scene, entering it immediately.
func New(initial scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
	}
	g.current.OnEnter()
	return g
}

// Update advances the current scene one frame and applies any transition
// it requests. Implements ebiten.Game.
func (g *Game) Update() error {
	next, err := g.current.Update(dt)
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene. Implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout reports the logical screen size chosen at startup. Implements
// ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
