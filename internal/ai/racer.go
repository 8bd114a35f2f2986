package ai

import (
	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/domain/geom"
)

// Racer look-ahead probe offsets and the ledge-scan window, px.
const (
	racerProbeAhead = 40
	racerProbeBelow = 55
	ledgeWindow     = 80
)

// RacerTuning holds the racer's movement constants.
type RacerTuning struct {
	Speed          float64
	JumpImpulse    float64
	FinishDistance float64
}

// Racer is the autonomous race opponent. It runs toward a goal x position,
// jumping over gaps and up onto reachable ledges, and stops permanently on
// arrival.
type Racer struct {
	tuning    RacerTuning
	actor     *entity.Actor
	goalX     float64
	platforms func() []geom.Rect

	finished bool

	// OnFinish fires once when the racer reaches the goal. Optional.
	OnFinish func()
}

// NewRacer creates a racer heading for goalX. platforms supplies the rects
// the look-ahead probes test against, resolved fresh each frame so moving
// platforms are seen at their current position.
func NewRacer(tuning RacerTuning, actor *entity.Actor, goalX float64, platforms func() []geom.Rect) *Racer {
	return &Racer{
		tuning:    tuning,
		actor:     actor,
		goalX:     goalX,
		platforms: platforms,
	}
}

// Finished reports whether the racer has reached the goal. Terminal.
func (r *Racer) Finished() bool { return r.finished }

// Update runs one frame of the racer's steering.
func (r *Racer) Update() {
	if r.finished {
		return
	}

	body := r.actor.Body
	dir := signF(r.goalX - body.Pos.X)
	r.actor.SetVelX(dir * r.tuning.Speed)

	if body.Grounded && (r.gapAhead(dir) || r.ledgeAbove()) {
		body.Vel.Y = r.tuning.JumpImpulse
	}

	if absF(r.goalX-body.Pos.X) < r.tuning.FinishDistance {
		r.finished = true
		body.Vel = geom.Vec2{}
		if r.OnFinish != nil {
			r.OnFinish()
		}
	}
}

// gapAhead reports whether the point ahead of the travel direction at foot
// height is unsupported.
func (r *Racer) gapAhead(dir float64) bool {
	probeX := r.actor.Body.Pos.X + dir*racerProbeAhead
	probeY := r.actor.Body.Pos.Y + racerProbeBelow

	for _, p := range r.platforms() {
		if p.ContainsPoint(probeX, probeY) {
			return false
		}
	}
	return true
}

// ledgeAbove reports whether a platform top sits within jumping reach
// directly overhead.
func (r *Racer) ledgeAbove() bool {
	x := r.actor.Body.Pos.X
	y := r.actor.Body.Pos.Y

	for _, p := range r.platforms() {
		if x > p.Left() && x < p.Right() && p.Top() < y && p.Top() > y-ledgeWindow {
			return true
		}
	}
	return false
}
