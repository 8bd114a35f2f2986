// Package physics implements the axis-aligned rigid-body simulation: gravity,
// velocity integration, blocking collision resolution and non-blocking
// overlap detection.
package physics

import (
	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/domain/geom"
)

// OverlapFunc is invoked once per frame for every registered pair whose
// bounding boxes intersect. Handlers receive the pair in registration order.
type OverlapFunc func(a, b *entity.Body)

type colliderPair struct {
	a, b *entity.Body
}

type overlapPair struct {
	a, b *entity.Body
	fn   OverlapFunc
}

// World owns the bodies of one level attempt and advances them once per
// frame tick. It is not safe for concurrent use; the scene driver owns it
// exclusively.
type World struct {
	Gravity float64 // px/s^2, positive is downward

	bodies    []*entity.Body
	colliders []colliderPair
	overlaps  []overlapPair
}

// NewWorld creates an empty world with the given downward gravity.
func NewWorld(gravity float64) *World {
	return &World{Gravity: gravity}
}

// Add registers a body with the world and returns it.
func (w *World) Add(b *entity.Body) *entity.Body {
	w.bodies = append(w.bodies, b)
	return b
}

// RegisterCollider declares a blocking pair: penetration between the two
// bodies is resolved each step. The pair is symmetric except that when both
// bodies are dynamic, horizontal penetration displaces b (register the
// pushable body second).
func (w *World) RegisterCollider(a, b *entity.Body) {
	w.colliders = append(w.colliders, colliderPair{a, b})
}

// RegisterOverlap declares a detecting pair: fn fires every frame the two
// bodies intersect, once per frame, with no deduplication beyond that.
func (w *World) RegisterOverlap(a, b *entity.Body, fn OverlapFunc) {
	w.overlaps = append(w.overlaps, overlapPair{a, b, fn})
}

// QueryAABB returns all enabled bodies whose bounding boxes intersect r.
func (w *World) QueryAABB(r geom.Rect) []*entity.Body {
	var hits []*entity.Body
	for _, b := range w.bodies {
		if !b.Enabled {
			continue
		}
		if b.AABB().Intersects(r) {
			hits = append(hits, b)
		}
	}
	return hits
}

// Step advances the simulation by dt seconds: applies gravity to dynamic
// bodies, integrates velocities, resolves registered collider pairs and
// fires overlap callbacks.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		if b.Static || !b.Enabled {
			continue
		}
		if b.Dynamic() {
			b.Grounded = false
			if b.Gravity {
				b.Vel.Y += w.Gravity * dt
			}
		}
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
	}

	for _, p := range w.colliders {
		w.resolve(p.a, p.b)
	}

	for _, b := range w.bodies {
		if b.DragX > 0 && b.Grounded {
			b.Vel.X = decay(b.Vel.X, b.DragX*dt)
		}
	}

	for _, p := range w.overlaps {
		if !p.a.Enabled || !p.b.Enabled {
			continue
		}
		if p.a.AABB().Intersects(p.b.AABB()) {
			p.fn(p.a, p.b)
		}
	}
}

// resolve separates an intersecting pair along the axis of least penetration
// and zeroes the offending velocity component. Kinematic and static bodies
// are never displaced; a dynamic body resolved against a surface below it
// becomes grounded.
func (w *World) resolve(a, b *entity.Body) {
	if !a.Enabled || !b.Enabled {
		return
	}
	if !a.Dynamic() && !b.Dynamic() {
		return // two kinematic/static bodies never interact
	}
	if !a.AABB().Intersects(b.AABB()) {
		return
	}

	penX := a.Half.X + b.Half.X - absF(a.Pos.X-b.Pos.X)
	penY := a.Half.Y + b.Half.Y - absF(a.Pos.Y-b.Pos.Y)

	if a.Dynamic() && b.Dynamic() {
		w.resolveDynamicPair(a, b, penX, penY)
		return
	}

	mover, obstacle := a, b
	if !mover.Dynamic() {
		mover, obstacle = b, a
	}

	if penY <= penX {
		if mover.Pos.Y < obstacle.Pos.Y {
			// resolved against the mover's bottom face
			mover.Pos.Y -= penY
			if mover.Vel.Y > 0 {
				mover.Vel.Y = 0
			}
			// a platform moving up transfers no velocity; the mover
			// simply rests on it
			if obstacle.Vel.Y < 0 {
				mover.Vel.Y = obstacle.Vel.Y
			}
			mover.Grounded = true
		} else {
			mover.Pos.Y += penY
			if mover.Vel.Y < 0 {
				mover.Vel.Y = 0
			}
		}
	} else {
		if mover.Pos.X < obstacle.Pos.X {
			mover.Pos.X -= penX
			if mover.Vel.X > 0 {
				mover.Vel.X = 0
			}
		} else {
			mover.Pos.X += penX
			if mover.Vel.X < 0 {
				mover.Vel.X = 0
			}
		}
	}
}

// resolveDynamicPair handles player/AI against the box: vertical penetration
// rests the upper body on the lower one, horizontal penetration pushes b
// out of the way at a's speed.
func (w *World) resolveDynamicPair(a, b *entity.Body, penX, penY float64) {
	if penY <= penX {
		upper, lower := a, b
		if upper.Pos.Y > lower.Pos.Y {
			upper, lower = lower, upper
		}
		upper.Pos.Y -= penY
		if upper.Vel.Y > 0 {
			upper.Vel.Y = 0
		}
		upper.Grounded = true
	} else {
		if b.Pos.X > a.Pos.X {
			b.Pos.X += penX
		} else {
			b.Pos.X -= penX
		}
		b.Vel.X = a.Vel.X
	}
}

func decay(v, amount float64) float64 {
	switch {
	case v > amount:
		return v - amount
	case v < -amount:
		return v + amount
	default:
		return 0
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
