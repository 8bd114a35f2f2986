// Package scene defines the contract between the game loop and the
// screens it drives.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. The loop in game.Game calls Update and
// Draw on the current scene and applies the transitions Update returns.
type Scene interface {
	// Update advances the scene by dt seconds. Returning a non-nil next
	// scene requests a transition; returning an error (conventionally
	// ebiten.Termination) stops the loop.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene.
	Draw(screen *ebiten.Image)

	// OnEnter runs when the scene becomes current. The playing scene
	// builds its first attempt here.
	OnEnter()

	// OnExit runs when the scene is left. Used to flush recordings and
	// tear the attempt down.
	OnExit()
}
