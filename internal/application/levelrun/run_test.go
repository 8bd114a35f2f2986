package levelrun

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcavus/keyquest/internal/application/state"
	"github.com/mcavus/keyquest/internal/domain/geom"
	"github.com/mcavus/keyquest/internal/infrastructure/config"
	"github.com/mcavus/keyquest/internal/level"
	"github.com/mcavus/keyquest/internal/persist"
	"github.com/mcavus/keyquest/internal/session"
)

const testDT = 1.0 / 60.0

type recordingSaver struct {
	calls chan int
}

func (r *recordingSaver) SaveCoins(username string, total int) error {
	r.calls <- total
	return nil
}

// createTestLevel builds a flat run: floor from x=0 to 1200 with its top at
// y=460, key at x=300, door at x=600. Actors are 50x50, so a spawn at
// y=435 rests exactly on the floor.
func createTestLevel() *level.Level {
	key := geom.RectFromSize(300, 435, 30, 30)
	door := geom.RectFromSize(600, 430, 50, 100)
	return &level.Level{
		Width:       1200,
		Height:      600,
		PlayerSpawn: geom.Vec2{X: 100, Y: 435},
		Platforms:   []geom.Rect{geom.RectFromSize(600, 480, 1200, 40)},
		Key:         &key,
		Door:        &door,
	}
}

func createTestRun(t *testing.T, mode config.Mode, lvl *level.Level) (*Run, *session.Session, *recordingSaver) {
	t.Helper()
	tuning := config.DefaultTuning()
	if mode == config.ModeRace {
		tuning.CountdownSeconds = 0 // tests don't wait out the real countdown
	}
	sess := session.New("dana", 100)
	saver := &recordingSaver{calls: make(chan int, 1)}
	return New(mode, lvl, tuning, sess, saver, log.Default()), sess, saver
}

// stepUntil runs frames with the given input until cond holds, failing the
// test if it never does.
func stepUntil(t *testing.T, r *Run, in Input, maxFrames int, cond func() bool) int {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if cond() {
			return i
		}
		r.Update(testDT, in)
	}
	require.True(t, cond(), "condition not reached in %d frames", maxFrames)
	return maxFrames
}

func TestRun_KeyThenDoorCompletesOnce(t *testing.T) {
	r, sess, saver := createTestRun(t, config.ModeSinglePlayer, createTestLevel())

	// Walk right into the key.
	stepUntil(t, r, Input{Right: true}, 120, r.HasKey)
	assert.False(t, r.Instance().Key.Enabled, "collected key is a ghost")

	// Keep walking into the door; count Completing entries.
	transitions := 0
	prev := r.Phase()
	for i := 0; i < 400 && r.Phase() != state.PhaseCompleted; i++ {
		r.Update(testDT, Input{Right: true})
		if r.Phase() == state.PhaseCompleting && prev != state.PhaseCompleting {
			transitions++
		}
		prev = r.Phase()
	}

	require.Equal(t, state.PhaseCompleted, r.Phase())
	assert.Equal(t, 1, transitions)

	res := r.Result()
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Stars) // a few seconds of walking is well under 90
	assert.Equal(t, 150, res.Coins)
	assert.Equal(t, 250, sess.Coins())
	assert.Equal(t, 250, <-saver.calls)

	// Single-player: the player body is torn down after the door opens.
	assert.False(t, r.Player.Body.Enabled)
}

func TestRun_DoorBeforeKeyDoesNotComplete(t *testing.T) {
	lvl := createTestLevel()
	// Key far beyond the door, so the player reaches the door first.
	lvl.Key.X = 1100
	r, sess, _ := createTestRun(t, config.ModeSinglePlayer, lvl)

	// Walk right until well past the door position.
	stepUntil(t, r, Input{Right: true}, 400, func() bool {
		return r.Player.Body.Pos.X > 700
	})

	assert.Equal(t, state.PhaseRunning, r.Phase())
	assert.Nil(t, r.Result())
	assert.Equal(t, 100, sess.Coins())
}

func TestRun_SwitchTogglesBridges(t *testing.T) {
	lvl := createTestLevel()
	lvl.Switches = []geom.Rect{
		geom.RectFromSize(100, 455, 40, 10), // on the floor, under the spawn
		geom.RectFromSize(800, 455, 40, 10), // nobody near this one
	}
	lvl.Bridges = []level.BridgeSpec{
		{Rect: geom.RectFromSize(900, 460, 200, 20)},
		{Rect: geom.RectFromSize(1100, 460, 200, 20)},
	}
	r, _, _ := createTestRun(t, config.ModeSinglePlayer, lvl)

	// Spawned standing on the first switch only: any pressed switch
	// enables every segment.
	r.Update(testDT, Input{})
	require.True(t, r.BridgeActive())
	for _, b := range r.Instance().Bridges {
		assert.True(t, b.Enabled)
	}

	// Step off both switches: every segment disables again.
	r.Player.Body.Pos.X = 400
	r.Update(testDT, Input{})
	require.False(t, r.BridgeActive())
	for _, b := range r.Instance().Bridges {
		assert.False(t, b.Enabled)
	}
}

func TestRun_BoxHoldsSwitch(t *testing.T) {
	lvl := createTestLevel()
	lvl.Switches = []geom.Rect{geom.RectFromSize(400, 455, 40, 10)}
	lvl.Bridges = []level.BridgeSpec{{Rect: geom.RectFromSize(900, 460, 200, 20)}}
	lvl.Box = &level.BoxSpec{Rect: geom.RectFromSize(400, 435, 50, 50), DragX: 700}
	r, _, _ := createTestRun(t, config.ModeSinglePlayer, lvl)

	// The box rests on the switch while the player stands elsewhere.
	r.Update(testDT, Input{})

	assert.True(t, r.BridgeActive())
}

func TestRun_FallDetectorRequestsReset(t *testing.T) {
	lvl := createTestLevel()
	// Floor only under the spawn; a detector strip across the bottom.
	lvl.Platforms = []geom.Rect{geom.RectFromSize(100, 480, 200, 40)}
	lvl.FallDetectors = []geom.Rect{geom.RectFromSize(600, 590, 1200, 20)}
	r, _, _ := createTestRun(t, config.ModeSinglePlayer, lvl)

	// Walk off the ledge and fall into the detector.
	stepUntil(t, r, Input{Right: true}, 400, r.ResetRequested)

	assert.Equal(t, state.PhaseRunning, r.Phase())
	assert.Nil(t, r.Result())
}

func TestRun_HasKeyIsMonotonic(t *testing.T) {
	r, _, _ := createTestRun(t, config.ModeSinglePlayer, createTestLevel())

	stepUntil(t, r, Input{Right: true}, 120, r.HasKey)

	// Walking back over the key's old position changes nothing.
	for i := 0; i < 60; i++ {
		r.Update(testDT, Input{Left: true})
	}
	assert.True(t, r.HasKey())
}

func TestRun_RaceCountdownGatesMovement(t *testing.T) {
	lvl := createTestLevel()
	lvl.Key = nil
	lvl.AISpawn = &geom.Vec2{X: 100, Y: 375}
	tuning := config.DefaultTuning()
	tuning.CountdownSeconds = 0.5
	sess := session.New("dana", 0)
	r := New(config.ModeRace, lvl, tuning, sess, persist.NopSaver{}, log.Default())

	require.Equal(t, state.PhaseCountdown, r.Phase())

	// Held input does nothing during the countdown and the timer waits.
	for i := 0; i < 10; i++ {
		r.Update(testDT, Input{Right: true})
	}
	assert.Equal(t, state.PhaseCountdown, r.Phase())
	assert.Zero(t, r.Player.Body.Vel.X)
	assert.Zero(t, r.Elapsed())

	// After the countdown runs out, play begins.
	stepUntil(t, r, Input{}, 60, func() bool { return r.Phase() == state.PhaseRunning })
	r.Update(testDT, Input{Right: true})
	r.Update(testDT, Input{Right: true})
	assert.Positive(t, r.Player.Body.Vel.X)
	assert.Positive(t, r.Elapsed())
}

func TestRun_RacerWinPaysNothing(t *testing.T) {
	lvl := createTestLevel()
	lvl.Key = nil
	lvl.AISpawn = &geom.Vec2{X: 450, Y: 435} // racer starts near the door
	r, sess, _ := createTestRun(t, config.ModeRace, lvl)
	require.NotNil(t, r.Racer)

	// The idle player loses the race.
	stepUntil(t, r, Input{}, 300, r.RacerWon)
	stepUntil(t, r, Input{}, 60, func() bool { return r.Phase() == state.PhaseCompleted })

	assert.Nil(t, r.Result())
	assert.Equal(t, 100, sess.Coins())
	assert.True(t, r.Racer.Finished())
}

func TestRun_PlayerWinsRace(t *testing.T) {
	lvl := createTestLevel()
	lvl.Key = nil
	lvl.PlayerSpawn = geom.Vec2{X: 500, Y: 435}
	lvl.AISpawn = &geom.Vec2{X: 100, Y: 435} // racer starts far away
	r, sess, saver := createTestRun(t, config.ModeRace, lvl)

	stepUntil(t, r, Input{Right: true}, 200, func() bool { return r.Phase() != state.PhaseRunning })

	assert.False(t, r.RacerWon())
	require.NotNil(t, r.Result())
	assert.Equal(t, 150, r.Result().Coins)
	assert.Equal(t, 250, sess.Coins())
	assert.Equal(t, 250, <-saver.calls)
}

func TestRun_CompanionCommandAndChat(t *testing.T) {
	lvl := createTestLevel()
	lvl.AISpawn = &geom.Vec2{X: 40, Y: 435}
	r, _, _ := createTestRun(t, config.ModeCoop, lvl)
	require.NotNil(t, r.Companion)

	reply := r.Command("get key")

	assert.Equal(t, "Going to the key!", reply)
	require.Len(t, r.Chat(), 2)
	assert.Equal(t, "You: get key", r.Chat()[0])
	assert.Equal(t, "Buddy: Going to the key!", r.Chat()[1])
}

func TestRun_CompanionCollectsKeyForTeam(t *testing.T) {
	lvl := createTestLevel()
	lvl.AISpawn = &geom.Vec2{X: 40, Y: 435}
	r, _, _ := createTestRun(t, config.ModeCoop, lvl)
	r.Command("get key")

	// The player stands still; the companion fetches the key alone.
	stepUntil(t, r, Input{}, 600, r.HasKey)

	assert.True(t, r.HasKey())
}

func TestRun_CompanionTriggersDoor(t *testing.T) {
	lvl := createTestLevel()
	lvl.Key.X = 100 // the player spawns onto the key
	lvl.AISpawn = &geom.Vec2{X: 200, Y: 435}
	r, sess, saver := createTestRun(t, config.ModeCoop, lvl)

	// The player stays put. Once the key is in hand the companion heads
	// for the door on its own, and its touch opens it for the team.
	stepUntil(t, r, Input{}, 60, r.HasKey)
	stepUntil(t, r, Input{}, 600, func() bool { return r.Phase() != state.PhaseRunning })

	assert.Less(t, r.Player.Body.Pos.X, 500.0, "the player never reached the door")
	require.Equal(t, state.PhaseCompleting, r.Phase())
	require.NotNil(t, r.Result())
	assert.Equal(t, 250, sess.Coins())
	assert.Equal(t, 250, <-saver.calls)
}

func TestRun_CommandOutsideCoopIsIgnored(t *testing.T) {
	r, _, _ := createTestRun(t, config.ModeSinglePlayer, createTestLevel())

	assert.Empty(t, r.Command("follow"))
	assert.Empty(t, r.Chat())
}

func TestRun_CloseCancelsPendingCompletion(t *testing.T) {
	r, _, _ := createTestRun(t, config.ModeSinglePlayer, createTestLevel())

	stepUntil(t, r, Input{Right: true}, 400, func() bool {
		return r.Phase() == state.PhaseCompleting
	})

	r.Close()
	for i := 0; i < 120; i++ {
		r.Update(testDT, Input{})
	}

	assert.NotEqual(t, state.PhaseCompleted, r.Phase())
}
