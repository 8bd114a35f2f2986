package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mcavus/keyquest/internal/application/scene"
)

// stubScene records lifecycle calls and can script a transition or error.
type stubScene struct {
	updates int
	draws   int
	enters  int
	exits   int
	lastDT  float64
	next    scene.Scene
	err     error
}

func (s *stubScene) Update(dt float64) (scene.Scene, error) {
	s.updates++
	s.lastDT = dt
	return s.next, s.err
}

func (s *stubScene) Draw(*ebiten.Image) { s.draws++ }
func (s *stubScene) OnEnter()           { s.enters++ }
func (s *stubScene) OnExit()            { s.exits++ }

func TestNew_EntersInitialScene(t *testing.T) {
	initial := &stubScene{}

	g := New(initial, 800, 600)

	assert.NotNil(t, g)
	assert.Equal(t, 1, initial.enters)
}

func TestGame_UpdateRunsFixedTimestep(t *testing.T) {
	initial := &stubScene{}
	g := New(initial, 800, 600)

	assert.NoError(t, g.Update())
	assert.Equal(t, 1, initial.updates)
	assert.Equal(t, 1.0/60.0, initial.lastDT)
}

func TestGame_DrawDelegates(t *testing.T) {
	initial := &stubScene{}
	g := New(initial, 800, 600)

	g.Draw(ebiten.NewImage(800, 600))

	assert.Equal(t, 1, initial.draws)
}

func TestGame_SceneTransition(t *testing.T) {
	second := &stubScene{}
	first := &stubScene{next: second}
	g := New(first, 800, 600)

	// The first update exits the first scene and enters the second.
	assert.NoError(t, g.Update())
	assert.Equal(t, 1, first.updates)
	assert.Equal(t, 1, first.exits)
	assert.Equal(t, 1, second.enters)

	// Further updates go to the second scene.
	assert.NoError(t, g.Update())
	assert.Equal(t, 1, second.updates)
}

func TestGame_NilNextStaysOnScene(t *testing.T) {
	initial := &stubScene{}
	g := New(initial, 800, 600)

	for i := 0; i < 5; i++ {
		assert.NoError(t, g.Update())
	}

	assert.Equal(t, 5, initial.updates)
	assert.Zero(t, initial.exits)
}

func TestGame_ErrorStopsTheLoop(t *testing.T) {
	initial := &stubScene{err: assert.AnError}
	g := New(initial, 800, 600)

	assert.Error(t, g.Update())
}

func TestGame_Layout(t *testing.T) {
	g := New(&stubScene{}, 800, 600)

	w, h := g.Layout(1600, 1200)

	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
