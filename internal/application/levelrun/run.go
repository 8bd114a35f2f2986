// Package levelrun drives a single level attempt: it owns the physics
// world, the actors, the per-attempt flags and the completion state
// machine, and advances them in a fixed per-frame order.
//
// A Run is created fresh for every attempt and discarded wholesale on
// restart; no state carries over.
package levelrun

import (
	"github.com/charmbracelet/log"

	"github.com/mcavus/keyquest/internal/ai"
	"github.com/mcavus/keyquest/internal/application/state"
	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/domain/geom"
	"github.com/mcavus/keyquest/internal/infrastructure/config"
	"github.com/mcavus/keyquest/internal/level"
	"github.com/mcavus/keyquest/internal/persist"
	"github.com/mcavus/keyquest/internal/physics"
	"github.com/mcavus/keyquest/internal/score"
	"github.com/mcavus/keyquest/internal/session"
)

// Input is the per-frame snapshot of movement keys.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

// Run is one level attempt in progress.
type Run struct {
	mode   config.Mode
	tuning *config.Tuning
	logger *log.Logger

	world *physics.World
	inst  *level.Instance

	// Player is always present. AIActor and exactly one of
	// Companion/Racer are set in the AI modes.
	Player    *entity.Actor
	AIActor   *entity.Actor
	Companion *ai.Companion
	Racer     *ai.Racer

	phase        state.Phase
	countdown    float64
	elapsed      float64
	timerRunning bool

	hasKey       bool
	doorOpening  bool // latch: the completion sequence has begun
	bridgeActive bool
	racerWon     bool

	completeTimer  float64
	active         bool
	resetRequested bool

	result *score.Result
	sess   *session.Session
	saver  persist.Saver

	// Overlap handlers only raise these; they are consumed at the end of
	// the frame so completion and reset happen at a single point.
	pendingDoor bool
	pendingFall bool

	chat []string
}

// New builds a fresh attempt for the given mode: world, level bodies,
// actors, controllers and all collider/overlap wiring. In race mode the
// attempt starts in a countdown; otherwise the timer runs immediately.
func New(mode config.Mode, lvl *level.Level, tuning *config.Tuning, sess *session.Session, saver persist.Saver, logger *log.Logger) *Run {
	r := &Run{
		mode:   mode,
		tuning: tuning,
		logger: logger,
		sess:   sess,
		saver:  saver,
		active: true,
		phase:  state.PhaseRunning,
	}
	r.timerRunning = true

	r.world = physics.NewWorld(tuning.Gravity)
	r.inst = lvl.Build(r.world)

	r.Player = entity.NewActor(entity.KindPlayer,
		lvl.PlayerSpawn.X, lvl.PlayerSpawn.Y, tuning.Player.Width, tuning.Player.Height)
	r.world.Add(r.Player.Body)

	switch mode {
	case config.ModeCoop:
		r.spawnCompanion(lvl)
	case config.ModeRace:
		r.spawnRacer(lvl)
		r.phase = state.PhaseCountdown
		r.countdown = tuning.CountdownSeconds
		r.timerRunning = false
	}

	r.wireColliders()
	r.wireOverlaps()

	logger.Debug("attempt started",
		"mode", mode, "phase", r.phase,
		"platforms", len(r.inst.Platforms), "moving", len(r.inst.Moving))
	return r
}

func (r *Run) spawnCompanion(lvl *level.Level) {
	spawn := lvl.PlayerSpawn
	spawn.X -= r.tuning.Companion.FollowOffset
	if lvl.AISpawn != nil {
		spawn = *lvl.AISpawn
	}

	r.AIActor = entity.NewActor(entity.KindCompanion,
		spawn.X, spawn.Y, r.tuning.Player.Width, r.tuning.Player.Height)
	r.world.Add(r.AIActor.Body)

	r.Companion = ai.NewCompanion(ai.CompanionTuning{
		Speed:        r.tuning.Companion.Speed,
		JumpImpulse:  r.tuning.Companion.JumpImpulse,
		FollowOffset: r.tuning.Companion.FollowOffset,
	}, r.AIActor, r.Player.Body, ai.Surroundings{
		Key:      r.liveKey,
		Door:     r.inst.Door,
		Box:      r.inst.Box,
		Switches: r.inst.Switches,
		Ground:   r.inst.WalkableRects,
	})
	r.Companion.Say = func(line string) {
		r.chat = append(r.chat, "Buddy: "+line)
	}
}

func (r *Run) spawnRacer(lvl *level.Level) {
	if lvl.AISpawn == nil || r.inst.Door == nil {
		r.logger.Warn("race level missing aiSpawn or door, racer not spawned")
		return
	}

	r.AIActor = entity.NewActor(entity.KindRacer,
		lvl.AISpawn.X, lvl.AISpawn.Y, r.tuning.Player.Width, r.tuning.Player.Height)
	r.world.Add(r.AIActor.Body)

	r.Racer = ai.NewRacer(ai.RacerTuning{
		Speed:          r.tuning.Racer.Speed,
		JumpImpulse:    r.tuning.Racer.JumpImpulse,
		FinishDistance: r.tuning.Racer.FinishDistance,
	}, r.AIActor, r.inst.Door.Pos.X, r.inst.PlatformRects)
	r.Racer.OnFinish = r.onRacerFinish
}

// liveKey resolves the key body for the companion: nil once collected.
func (r *Run) liveKey() *entity.Body {
	if r.inst.Key == nil || !r.inst.Key.Enabled || r.hasKey {
		return nil
	}
	return r.inst.Key
}

// wireColliders registers every blocking pair. The pushable box is
// registered second against the actors so horizontal resolution displaces
// the box, not the pusher.
func (r *Run) wireColliders() {
	dynamics := []*entity.Body{r.Player.Body}
	if r.AIActor != nil {
		dynamics = append(dynamics, r.AIActor.Body)
	}
	if r.inst.Box != nil {
		dynamics = append(dynamics, r.inst.Box)
	}

	for _, d := range dynamics {
		for _, p := range r.inst.Platforms {
			r.world.RegisterCollider(d, p)
		}
		for _, m := range r.inst.Moving {
			r.world.RegisterCollider(d, m.Body)
		}
		for _, b := range r.inst.Bridges {
			r.world.RegisterCollider(d, b)
		}
	}

	if r.inst.Box != nil {
		r.world.RegisterCollider(r.Player.Body, r.inst.Box)
		if r.AIActor != nil {
			r.world.RegisterCollider(r.AIActor.Body, r.inst.Box)
		}
	}
}

// wireOverlaps registers the detecting pairs: key pickup, door contact and
// fall detectors.
func (r *Run) wireOverlaps() {
	if r.inst.Key != nil {
		r.world.RegisterOverlap(r.Player.Body, r.inst.Key, r.onKeyTouched)
		if r.Companion != nil {
			r.world.RegisterOverlap(r.AIActor.Body, r.inst.Key, r.onKeyTouched)
		}
	}
	if r.inst.Door != nil {
		r.world.RegisterOverlap(r.Player.Body, r.inst.Door, r.onDoorTouched)
		if r.Companion != nil {
			// in coop either teammate can open the door
			r.world.RegisterOverlap(r.AIActor.Body, r.inst.Door, r.onDoorTouched)
		}
	}

	fallers := []*entity.Body{r.Player.Body}
	if r.AIActor != nil {
		fallers = append(fallers, r.AIActor.Body)
	}
	if r.inst.Box != nil {
		fallers = append(fallers, r.inst.Box)
	}
	for _, fd := range r.inst.FallDetectors {
		for _, f := range fallers {
			r.world.RegisterOverlap(f, fd, r.onFallDetector)
		}
	}
}

// Update advances the attempt by dt seconds. Per-frame order: AI intent,
// physics, player input, platform direction logic, switch/bridge
// re-evaluation, timer, then completion/fall checks.
func (r *Run) Update(dt float64, in Input) {
	if !r.active || r.phase == state.PhaseCompleted {
		return
	}

	if r.phase == state.PhaseCountdown {
		// The world settles during the countdown but nobody moves and
		// the timer waits.
		r.countdown -= dt
		r.world.Step(dt)
		for _, m := range r.inst.Moving {
			m.Update()
		}
		r.evaluateBridges()
		if r.countdown <= 0 {
			r.phase = state.PhaseRunning
			r.timerRunning = true
			r.logger.Debug("countdown finished, timer started")
		}
		return
	}

	if r.phase == state.PhaseRunning {
		if r.Companion != nil {
			r.Companion.Update(r.hasKey)
		}
		if r.Racer != nil {
			r.Racer.Update()
		}
	}

	r.world.Step(dt)

	if r.phase == state.PhaseRunning {
		r.applyInput(in)
	}

	for _, m := range r.inst.Moving {
		m.Update()
	}

	r.evaluateBridges()

	if r.timerRunning {
		r.elapsed += dt
	}

	if r.pendingFall {
		r.pendingFall = false
		r.resetRequested = true
		r.logger.Debug("fall detected, attempt reset requested", "elapsed", r.elapsed)
		return
	}
	if r.pendingDoor {
		r.pendingDoor = false
		r.maybeComplete()
	}

	if r.phase == state.PhaseCompleting {
		r.completeTimer -= dt
		if r.completeTimer <= 0 {
			r.finishCompletion()
		}
	}
}

func (r *Run) applyInput(in Input) {
	switch {
	case in.Left:
		r.Player.SetVelX(-r.tuning.Player.RunSpeed)
	case in.Right:
		r.Player.SetVelX(r.tuning.Player.RunSpeed)
	default:
		r.Player.Body.Vel.X = 0
	}

	if in.Jump && r.Player.Body.Grounded {
		r.Player.Body.Vel.Y = r.tuning.Player.JumpImpulse
	}
}

// evaluateBridges recomputes the level-wide bridge toggle from the switch
// foot-point test. Any pressed switch enables every bridge segment. Levels
// without switches keep their bridges at the authored state.
func (r *Run) evaluateBridges() {
	if len(r.inst.Switches) == 0 {
		return
	}

	active := false
	for _, sw := range r.inst.Switches {
		if r.switchPressed(sw) {
			active = true
			break
		}
	}

	r.bridgeActive = active
	for _, b := range r.inst.Bridges {
		b.Enabled = active
	}
}

// switchPressed queries the press zone around a switch and applies the
// foot-point test to every dynamic body found there. Only dynamic bodies
// (the actors and the box) can press.
func (r *Run) switchPressed(sw *entity.Body) bool {
	swr := sw.AABB()
	zone := geom.Rect{
		X:     swr.X,
		Y:     swr.Y,
		HalfW: swr.HalfW,
		HalfH: swr.HalfH + r.tuning.SwitchSlack + 1,
	}

	for _, b := range r.world.QueryAABB(zone) {
		if !b.Dynamic() {
			continue
		}
		if r.standsOnSwitch(b, sw) {
			return true
		}
	}
	return false
}

// standsOnSwitch tests whether a body's horizontal center is over the
// switch and its foot rests within the switch's vertical span, with a few
// pixels of slack for sub-pixel resting gaps.
func (r *Run) standsOnSwitch(b, sw *entity.Body) bool {
	swr := sw.AABB()
	if b.Pos.X < swr.Left() || b.Pos.X > swr.Right() {
		return false
	}
	foot := b.FootY()
	return foot >= swr.Top() && foot <= swr.Bottom()+r.tuning.SwitchSlack
}

// onKeyTouched collects the key. hasKey is monotonic within an attempt.
func (r *Run) onKeyTouched(_, key *entity.Body) {
	if r.hasKey {
		return
	}
	r.hasKey = true
	key.Enabled = false
	r.logger.Debug("key collected", "elapsed", r.elapsed)
}

func (r *Run) onDoorTouched(_, _ *entity.Body) {
	r.pendingDoor = true
}

func (r *Run) onFallDetector(_, _ *entity.Body) {
	r.pendingFall = true
}

// maybeComplete starts the completion sequence if the door is unlocked.
// The doorOpening latch makes it fire at most once per attempt even though
// the door overlap keeps reporting every frame.
func (r *Run) maybeComplete() {
	if r.doorOpening {
		return
	}
	if r.inst.Key != nil && !r.hasKey {
		return // door stays locked until the key is collected
	}
	r.beginCompletion(true)
}

func (r *Run) onRacerFinish() {
	if r.doorOpening {
		return
	}
	r.beginCompletion(false)
}

// beginCompletion freezes the world and stops the timer. A player win
// grades the attempt, banks the coins and fires the best-effort save; a
// racer win pays nothing.
func (r *Run) beginCompletion(playerWon bool) {
	r.doorOpening = true
	r.phase = state.PhaseCompleting
	r.completeTimer = r.tuning.CompleteDelay
	r.timerRunning = false
	r.freezeActors()

	if !playerWon {
		r.racerWon = true
		r.logger.Info("race lost", "elapsed", r.elapsed)
		return
	}

	res := score.Grade(r.elapsed)
	r.result = &res
	total := r.sess.AddCoins(res.Coins)
	persist.SaveAsync(r.saver, r.logger, r.sess.Username, total)
	r.logger.Info("level complete",
		"elapsed", res.Elapsed, "stars", res.Stars, "coins", res.Coins, "balance", total)
}

func (r *Run) freezeActors() {
	r.Player.Body.Vel = r.Player.Body.Vel.Scale(0)
	if r.AIActor != nil {
		r.AIActor.Body.Vel = r.AIActor.Body.Vel.Scale(0)
	}
	if r.inst.Box != nil {
		r.inst.Box.Vel = r.inst.Box.Vel.Scale(0)
	}
}

// finishCompletion ends the door-opening window and shows the summary.
// Guarded by the active flag so a torn-down attempt cannot transition.
func (r *Run) finishCompletion() {
	if !r.active {
		return
	}
	r.phase = state.PhaseCompleted
	if r.mode == config.ModeSinglePlayer {
		// the player walks through the door and is gone
		r.Player.Body.Enabled = false
	}
}

// Command forwards a chat command to the companion and records both sides
// of the exchange. Returns the companion's reply, or "" outside coop mode.
func (r *Run) Command(text string) string {
	if r.Companion == nil || text == "" {
		return ""
	}
	r.chat = append(r.chat, "You: "+text)
	reply := r.Companion.Command(text)
	r.chat = append(r.chat, "Buddy: "+reply)
	return reply
}

// Close tears the attempt down. Any completion delay still in flight is
// ignored afterward.
func (r *Run) Close() {
	r.active = false
}

// Phase returns the attempt's current phase.
func (r *Run) Phase() state.Phase { return r.phase }

// Countdown returns the remaining pre-run countdown in seconds.
func (r *Run) Countdown() float64 { return r.countdown }

// Elapsed returns the running time in seconds since movement unlocked.
func (r *Run) Elapsed() float64 { return r.elapsed }

// HasKey reports whether the key has been collected this attempt.
func (r *Run) HasKey() bool { return r.hasKey }

// BridgeActive reports whether the bridge segments are currently enabled.
func (r *Run) BridgeActive() bool { return r.bridgeActive }

// RacerWon reports whether the racer reached the goal first.
func (r *Run) RacerWon() bool { return r.racerWon }

// Result returns the graded score after a player win, nil before.
func (r *Run) Result() *score.Result { return r.result }

// ResetRequested reports whether a fall detector fired; the scene reacts
// by discarding this Run and building a fresh one.
func (r *Run) ResetRequested() bool { return r.resetRequested }

// Chat returns the coop chat transcript.
func (r *Run) Chat() []string { return r.chat }

// Instance exposes the level bodies for rendering.
func (r *Run) Instance() *level.Instance { return r.inst }
