// Package ai implements the two non-player controllers: the command-driven
// cooperative companion and the autonomous racer. Both act on the same
// shared world state as the player and run once per frame before the
// physics step.
package ai

import (
	"strings"

	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/domain/geom"
)

// Behavior is the companion's current activity.
type Behavior int

const (
	BehaviorFollow Behavior = iota
	BehaviorIdle
	BehaviorGetKey
	BehaviorGoToSwitch
	BehaviorGoToDoor
	BehaviorAssistBox
	BehaviorBoostHelp
)

// String returns the string representation of the behavior.
func (b Behavior) String() string {
	switch b {
	case BehaviorFollow:
		return "Follow"
	case BehaviorIdle:
		return "Idle"
	case BehaviorGetKey:
		return "GetKey"
	case BehaviorGoToSwitch:
		return "GoToSwitch"
	case BehaviorGoToDoor:
		return "GoToDoor"
	case BehaviorAssistBox:
		return "AssistBox"
	case BehaviorBoostHelp:
		return "BoostHelp"
	default:
		return "Unknown"
	}
}

// Per-target arrival tolerances, px.
const (
	keyTolerance    = 20
	switchTolerance = 15
	doorTolerance   = 25
)

// Gap probe offsets: a point this far ahead of the travel direction at foot
// height must be supported or the companion refuses to walk.
const (
	probeAhead = 24
	probeBelow = 35
)

// CompanionTuning holds the companion's movement constants.
type CompanionTuning struct {
	Speed        float64
	JumpImpulse  float64
	FollowOffset float64
}

// Surroundings gives the companion access to the level objects it can be
// sent to. Lookups are functions so that objects which no longer exist
// (a key the player already collected, a bridge that toggled off) resolve
// to their current state every frame.
type Surroundings struct {
	Key      func() *entity.Body // nil once collected or absent
	Door     *entity.Body        // nil when the level has none
	Box      *entity.Body        // nil when the level has none
	Switches []*entity.Body
	Ground   func() []geom.Rect // support rects for the gap probe
}

// Companion is the cooperative AI partner. It is a finite state machine
// driven by free-text commands and by the shared run state (hasKey).
type Companion struct {
	tuning CompanionTuning
	actor  *entity.Actor
	player *entity.Body
	env    Surroundings

	behavior      Behavior
	boostReady    bool
	announcedDoor bool

	// Say receives the companion's spontaneous chat lines. Optional.
	Say func(line string)
}

// NewCompanion creates a companion that starts out following the player.
func NewCompanion(tuning CompanionTuning, actor *entity.Actor, player *entity.Body, env Surroundings) *Companion {
	return &Companion{
		tuning:   tuning,
		actor:    actor,
		player:   player,
		env:      env,
		behavior: BehaviorFollow,
	}
}

// Behavior returns the companion's current behavior.
func (c *Companion) Behavior() Behavior { return c.behavior }

// BoostReady reports whether the companion is aligned under the player and
// waiting for their jump.
func (c *Companion) BoostReady() bool { return c.boostReady }

// Command applies a free-text command. Matching is lower-cased substring
// matching against a fixed vocabulary; anything else leaves the state
// untouched. The returned line is the companion's chat reply.
func (c *Companion) Command(raw string) string {
	cmd := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.Contains(cmd, "follow"):
		c.behavior = BehaviorFollow
		c.boostReady = false
		return "Okay! I'm following you!"
	case strings.Contains(cmd, "stop"):
		c.behavior = BehaviorIdle
		c.boostReady = false
		return "I'll stay here."
	case strings.Contains(cmd, "get key"):
		c.behavior = BehaviorGetKey
		c.boostReady = false
		return "Going to the key!"
	case strings.Contains(cmd, "press switch"), strings.Contains(cmd, "switch"):
		c.behavior = BehaviorGoToSwitch
		c.boostReady = false
		return "Going to the switch!"
	case strings.Contains(cmd, "come here"):
		c.behavior = BehaviorFollow
		c.boostReady = false
		return "Coming!"
	case strings.Contains(cmd, "push box"):
		if c.env.Box == nil {
			return "I don't see any box."
		}
		c.behavior = BehaviorAssistBox
		c.boostReady = false
		return "I'll help you push the box!"
	case strings.Contains(cmd, "help me"):
		c.behavior = BehaviorBoostHelp
		c.boostReady = false
		return "Okay, get on top of me!"
	default:
		return "I didn't understand that."
	}
}

// Update runs one frame of the companion's state machine. hasKey is the
// shared run flag; once it turns true the companion heads for the door
// exactly once per attempt, unless it is mid-assist.
func (c *Companion) Update(hasKey bool) {
	switch c.behavior {
	case BehaviorFollow:
		c.follow()
	case BehaviorGetKey:
		c.goToKey()
	case BehaviorGoToSwitch:
		c.goToSwitch()
	case BehaviorGoToDoor:
		c.goToDoor()
	case BehaviorAssistBox:
		c.assistBox()
	case BehaviorBoostHelp:
		c.boostHelp()
	case BehaviorIdle:
		c.actor.Body.Vel.X = 0
	}

	if hasKey && !c.announcedDoor &&
		c.behavior != BehaviorGetKey &&
		c.behavior != BehaviorAssistBox &&
		c.behavior != BehaviorBoostHelp {
		c.announcedDoor = true
		c.behavior = BehaviorGoToDoor
		c.say("Heading to the door!")
	}

	if c.behavior == BehaviorBoostHelp && c.boostReady {
		c.checkBoostJump()
	}
}

// follow keeps a horizontal offset from the player instead of sitting on
// them, and mirrors the player's jumps.
func (c *Companion) follow() {
	dx := c.player.Pos.X - c.actor.Body.Pos.X

	if absF(dx) < c.tuning.FollowOffset {
		c.actor.Body.Vel.X = 0
	} else {
		targetX := c.player.Pos.X - signF(dx)*c.tuning.FollowOffset
		c.moveToward(targetX, 10)
	}

	if c.player.Vel.Y < -120 && c.actor.Body.Grounded {
		c.actor.Body.Vel.Y = c.tuning.JumpImpulse
	}
}

func (c *Companion) goToKey() {
	key := c.env.Key()
	if key == nil {
		c.say("I can't find the key anymore!")
		c.idle()
		return
	}

	c.moveToward(key.Pos.X, keyTolerance)
	if absF(key.Pos.X-c.actor.Body.Pos.X) < keyTolerance {
		c.idle()
	}
}

func (c *Companion) goToSwitch() {
	if len(c.env.Switches) == 0 {
		c.say("I don't see any switch.")
		c.idle()
		return
	}

	sw := c.env.Switches[0]
	c.moveToward(sw.Pos.X, switchTolerance)
	if absF(sw.Pos.X-c.actor.Body.Pos.X) < switchTolerance {
		c.idle()
	}
}

func (c *Companion) goToDoor() {
	if c.env.Door == nil {
		c.idle()
		return
	}

	c.moveToward(c.env.Door.Pos.X, doorTolerance)
	if absF(c.env.Door.Pos.X-c.actor.Body.Pos.X) < doorTolerance {
		c.idle()
	}
}

// assistBox walks to the side of the box opposite the player, then mirrors
// the player's horizontal velocity so the two push together.
func (c *Companion) assistBox() {
	box := c.env.Box
	if box == nil {
		c.idle()
		return
	}

	var targetX float64
	if c.player.Pos.X < box.Pos.X {
		targetX = box.Pos.X + box.Half.X + 25 // player left, companion right
	} else {
		targetX = box.Pos.X - box.Half.X - 25
	}

	if absF(targetX-c.actor.Body.Pos.X) > 15 {
		c.moveToward(targetX, 12)
		return
	}
	c.actor.Body.Vel.X = c.player.Vel.X
}

// boostHelp lines the companion up under the player, then arms the boost.
func (c *Companion) boostHelp() {
	distX := absF(c.player.Pos.X - c.actor.Body.Pos.X)
	if distX > 20 {
		c.moveToward(c.player.Pos.X, 15)
		c.boostReady = false
		return
	}
	c.actor.Body.Vel.X = 0
	c.boostReady = true
}

// checkBoostJump fires the scripted double jump: when the player jumps
// while closely overhead, the companion jumps at the same time.
func (c *Companion) checkBoostJump() {
	closeHoriz := absF(c.player.Pos.X-c.actor.Body.Pos.X) < 30
	playerAbove := c.player.Pos.Y < c.actor.Body.Pos.Y-30
	if !closeHoriz || !playerAbove {
		return
	}

	if c.player.Vel.Y < -150 && c.actor.Body.Grounded {
		c.actor.Body.Vel.Y = c.tuning.JumpImpulse
		c.say("Boosting you!")
		c.boostReady = false
	}
}

// moveToward walks horizontally toward targetX, refusing to step over an
// unsupported ledge.
func (c *Companion) moveToward(targetX, tolerance float64) {
	dx := targetX - c.actor.Body.Pos.X
	if absF(dx) <= tolerance {
		c.actor.Body.Vel.X = 0
		return
	}

	dir := signF(dx)
	if c.gapAhead(dir) {
		c.actor.Body.Vel.X = 0
		return
	}
	c.actor.SetVelX(dir * c.tuning.Speed)
}

// gapAhead probes a point ahead of the travel direction at foot height
// against the current support rects.
func (c *Companion) gapAhead(dir float64) bool {
	probeX := c.actor.Body.Pos.X + dir*probeAhead
	probeY := c.actor.Body.Pos.Y + probeBelow

	for _, r := range c.env.Ground() {
		if r.ContainsPoint(probeX, probeY) {
			return false
		}
	}
	return true
}

func (c *Companion) idle() {
	c.actor.Body.Vel.X = 0
	c.behavior = BehaviorIdle
}

func (c *Companion) say(line string) {
	if c.Say != nil {
		c.Say(line)
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func signF(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
