package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/domain/geom"
)

func testRacerTuning() RacerTuning {
	return RacerTuning{Speed: 248, JumpImpulse: -475, FinishDistance: 40}
}

func createTestRacer(goalX float64, platforms []geom.Rect) (*Racer, *entity.Actor) {
	actor := entity.NewActor(entity.KindRacer, 100, 435, 50, 50)
	r := NewRacer(testRacerTuning(), actor, goalX, func() []geom.Rect { return platforms })
	return r, actor
}

func TestRacer_RunsTowardGoal(t *testing.T) {
	floor := []geom.Rect{geom.RectFromSize(2000, 480, 4000, 40)}

	r, actor := createTestRacer(900, floor)
	r.Update()
	assert.Equal(t, testRacerTuning().Speed, actor.Body.Vel.X)
	assert.True(t, actor.FacingRight)

	// Goal behind: runs left.
	r, actor = createTestRacer(-500, floor)
	r.Update()
	assert.Equal(t, -testRacerTuning().Speed, actor.Body.Vel.X)
	assert.False(t, actor.FacingRight)
}

func TestRacer_JumpsAtGap(t *testing.T) {
	// Floor ends at x=300; the racer at x=280 heading right probes x=320.
	floor := []geom.Rect{geom.RectFromSize(150, 480, 300, 40)}
	r, actor := createTestRacer(900, floor)
	actor.Body.Pos.X = 280
	actor.Body.Grounded = true

	r.Update()

	assert.Equal(t, testRacerTuning().JumpImpulse, actor.Body.Vel.Y)
}

func TestRacer_NoJumpWhileAirborne(t *testing.T) {
	floor := []geom.Rect{geom.RectFromSize(150, 480, 300, 40)}
	r, actor := createTestRacer(900, floor)
	actor.Body.Pos.X = 280
	actor.Body.Grounded = false
	actor.Body.Vel.Y = 200 // already falling

	r.Update()

	assert.Equal(t, 200.0, actor.Body.Vel.Y)
}

func TestRacer_JumpsAtReachableLedge(t *testing.T) {
	platforms := []geom.Rect{
		geom.RectFromSize(2000, 480, 4000, 40), // floor
		geom.RectFromSize(120, 390, 200, 20),   // ledge 70px overhead
	}
	r, actor := createTestRacer(900, platforms)
	actor.Body.Grounded = true

	r.Update()

	assert.Equal(t, testRacerTuning().JumpImpulse, actor.Body.Vel.Y)
}

func TestRacer_IgnoresLedgeOutOfReach(t *testing.T) {
	platforms := []geom.Rect{
		geom.RectFromSize(2000, 480, 4000, 40), // floor
		geom.RectFromSize(120, 300, 200, 20),   // 135px overhead, too high
	}
	r, actor := createTestRacer(900, platforms)
	actor.Body.Grounded = true

	r.Update()

	assert.Zero(t, actor.Body.Vel.Y)
}

func TestRacer_FinishIsTerminal(t *testing.T) {
	floor := []geom.Rect{geom.RectFromSize(2000, 480, 4000, 40)}
	r, actor := createTestRacer(900, floor)

	var finishCount int
	r.OnFinish = func() { finishCount++ }

	actor.Body.Pos.X = 870 // within finish distance
	r.Update()

	require.True(t, r.Finished())
	assert.Zero(t, actor.Body.Vel.X)
	assert.Zero(t, actor.Body.Vel.Y)
	assert.Equal(t, 1, finishCount)

	// Further frames are inert: no steering, no second callback.
	actor.Body.Vel.X = 99
	r.Update()
	assert.Equal(t, 99.0, actor.Body.Vel.X)
	assert.Equal(t, 1, finishCount)
}
