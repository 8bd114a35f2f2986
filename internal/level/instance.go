package level

import (
	"github.com/mcavus/keyquest/internal/domain/entity"
	"github.com/mcavus/keyquest/internal/domain/geom"
	"github.com/mcavus/keyquest/internal/physics"
)

// MovingPlatform is the runtime state of one oscillating platform. The
// direction reverses when the position reaches a bound, never when the
// velocity crosses zero, so an overshoot cannot leave it oscillating in
// place.
type MovingPlatform struct {
	Body     *entity.Body
	Speed    float64
	Min, Max float64
	Vertical bool
}

// Update reverses the platform's travel at its position bounds.
func (m *MovingPlatform) Update() {
	if m.Vertical {
		if m.Body.Pos.Y >= m.Max {
			m.Body.Vel.Y = -absF(m.Speed)
		} else if m.Body.Pos.Y <= m.Min {
			m.Body.Vel.Y = absF(m.Speed)
		}
		return
	}
	if m.Body.Pos.X >= m.Max {
		m.Body.Vel.X = -absF(m.Speed)
	} else if m.Body.Pos.X <= m.Min {
		m.Body.Vel.X = absF(m.Speed)
	}
}

// Instance holds the runtime bodies of one level attempt. Optional entities
// are nil when the level omits them.
type Instance struct {
	Platforms []*entity.Body
	Moving    []*MovingPlatform

	Box  *entity.Body
	Key  *entity.Body
	Door *entity.Body

	Switches      []*entity.Body
	Bridges       []*entity.Body
	FallDetectors []*entity.Body
}

// Build creates the runtime bodies for one attempt and adds them to w.
// Colliders and overlaps are wired by the scene driver, which knows which
// actors exist for the current mode.
func (l *Level) Build(w *physics.World) *Instance {
	inst := &Instance{}

	for _, p := range l.Platforms {
		inst.Platforms = append(inst.Platforms,
			w.Add(entity.NewStaticBody(entity.KindPlatform, p.X, p.Y, p.Width(), p.Height())))
	}

	for _, spec := range l.Moving {
		kind := entity.KindMovingPlatform
		if spec.Vertical {
			kind = entity.KindVerticalPlatform
		}
		body := w.Add(entity.NewKinematicBody(kind, spec.Rect.X, spec.Rect.Y, spec.Rect.Width(), spec.Rect.Height()))
		if spec.Vertical {
			body.Vel.Y = spec.Speed
		} else {
			body.Vel.X = spec.Speed
		}
		inst.Moving = append(inst.Moving, &MovingPlatform{
			Body:     body,
			Speed:    spec.Speed,
			Min:      spec.Min,
			Max:      spec.Max,
			Vertical: spec.Vertical,
		})
	}

	if l.Box != nil {
		box := entity.NewDynamicBody(entity.KindBox, l.Box.Rect.X, l.Box.Rect.Y, l.Box.Rect.Width(), l.Box.Rect.Height())
		box.DragX = l.Box.DragX
		inst.Box = w.Add(box)
	}
	if l.Key != nil {
		inst.Key = w.Add(entity.NewStaticBody(entity.KindKey, l.Key.X, l.Key.Y, l.Key.Width(), l.Key.Height()))
	}
	if l.Door != nil {
		inst.Door = w.Add(entity.NewStaticBody(entity.KindDoor, l.Door.X, l.Door.Y, l.Door.Width(), l.Door.Height()))
	}

	for _, s := range l.Switches {
		inst.Switches = append(inst.Switches,
			w.Add(entity.NewStaticBody(entity.KindSwitch, s.X, s.Y, s.Width(), s.Height())))
	}
	for _, b := range l.Bridges {
		body := entity.NewStaticBody(entity.KindBridge, b.Rect.X, b.Rect.Y, b.Rect.Width(), b.Rect.Height())
		body.Enabled = b.InitiallyEnabled
		inst.Bridges = append(inst.Bridges, w.Add(body))
	}
	for _, fd := range l.FallDetectors {
		inst.FallDetectors = append(inst.FallDetectors,
			w.Add(entity.NewStaticBody(entity.KindFallDetector, fd.X, fd.Y, fd.Width(), fd.Height())))
	}

	return inst
}

// WalkableRects returns the rectangles the companion's gap probe treats as
// ground: static platforms plus currently enabled bridge segments.
func (i *Instance) WalkableRects() []geom.Rect {
	rects := make([]geom.Rect, 0, len(i.Platforms)+len(i.Bridges))
	for _, p := range i.Platforms {
		rects = append(rects, p.AABB())
	}
	for _, b := range i.Bridges {
		if b.Enabled {
			rects = append(rects, b.AABB())
		}
	}
	return rects
}

// PlatformRects returns static, moving and vertical platform rectangles at
// their current positions. The racer's forward probe and ledge detection
// use these.
func (i *Instance) PlatformRects() []geom.Rect {
	rects := make([]geom.Rect, 0, len(i.Platforms)+len(i.Moving))
	for _, p := range i.Platforms {
		rects = append(rects, p.AABB())
	}
	for _, m := range i.Moving {
		rects = append(rects, m.Body.AABB())
	}
	return rects
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
