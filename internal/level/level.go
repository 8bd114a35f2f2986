// Package level turns a validated level document into the strongly-typed
// Level aggregate and builds the runtime bodies for one attempt.
//
// A Level is immutable once loaded. The Body instances produced by Build are
// what mutate during play; a restart simply builds a fresh set.
package level

import (
	"github.com/mcavus/keyquest/internal/domain/geom"
	"github.com/mcavus/keyquest/internal/infrastructure/config"
)

// MovingSpec describes an oscillating platform: a rectangle, one axis of
// travel, a speed and position bounds.
type MovingSpec struct {
	Rect     geom.Rect
	Speed    float64
	Min, Max float64 // position bounds along the travel axis
	Vertical bool
}

// BoxSpec describes the pushable box.
type BoxSpec struct {
	Rect  geom.Rect
	Mass  float64
	DragX float64
}

// BridgeSpec describes one togglable bridge segment.
type BridgeSpec struct {
	Rect             geom.Rect
	InitiallyEnabled bool
}

// Level is the immutable description of a level's geometry.
type Level struct {
	Width  float64
	Height float64

	PlayerSpawn geom.Vec2
	AISpawn     *geom.Vec2

	Platforms []geom.Rect
	Moving    []MovingSpec

	Box  *BoxSpec
	Key  *geom.Rect
	Door *geom.Rect

	Switches      []geom.Rect
	Bridges       []BridgeSpec
	FallDetectors []geom.Rect
}

// FromConfig converts a validated level document into a Level.
func FromConfig(cfg *config.LevelConfig) *Level {
	l := &Level{
		Width:       cfg.LevelWidth,
		Height:      cfg.LevelHeight,
		PlayerSpawn: geom.Vec2{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
	}
	if cfg.AISpawn != nil {
		l.AISpawn = &geom.Vec2{X: cfg.AISpawn.X, Y: cfg.AISpawn.Y}
	}

	for _, p := range cfg.Platforms {
		l.Platforms = append(l.Platforms, geom.RectFromSize(p.X, p.Y, p.Width, p.Height))
	}
	for _, mp := range cfg.MovingPlatforms {
		l.Moving = append(l.Moving, MovingSpec{
			Rect:  geom.RectFromSize(mp.X, mp.Y, mp.Width, mp.Height),
			Speed: mp.Speed,
			Min:   mp.MinX,
			Max:   mp.MaxX,
		})
	}
	for _, vp := range cfg.VerticalPlatforms {
		l.Moving = append(l.Moving, MovingSpec{
			Rect:     geom.RectFromSize(vp.X, vp.Y, vp.Width, vp.Height),
			Speed:    vp.Speed,
			Min:      vp.MinY,
			Max:      vp.MaxY,
			Vertical: true,
		})
	}

	if cfg.Box != nil {
		l.Box = &BoxSpec{
			Rect:  geom.RectFromSize(cfg.Box.X, cfg.Box.Y, cfg.Box.Width, cfg.Box.Height),
			Mass:  cfg.Box.Mass,
			DragX: cfg.Box.DragX,
		}
	}
	if cfg.Key != nil {
		r := geom.RectFromSize(cfg.Key.X, cfg.Key.Y, cfg.Key.Width, cfg.Key.Height)
		l.Key = &r
	}
	if cfg.Door != nil {
		r := geom.RectFromSize(cfg.Door.X, cfg.Door.Y, cfg.Door.Width, cfg.Door.Height)
		l.Door = &r
	}

	for _, s := range cfg.Switches {
		l.Switches = append(l.Switches, geom.RectFromSize(s.X, s.Y, s.Width, s.Height))
	}
	for _, b := range cfg.Bridges {
		l.Bridges = append(l.Bridges, BridgeSpec{
			Rect:             geom.RectFromSize(b.X, b.Y, b.Width, b.Height),
			InitiallyEnabled: b.InitiallyEnabled,
		})
	}
	for _, fd := range cfg.FallDetectors {
		l.FallDetectors = append(l.FallDetectors, geom.RectFromSize(fd.X, fd.Y, fd.Width, fd.Height))
	}

	return l
}
