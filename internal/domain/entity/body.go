// Package entity defines the physical bodies and actors that populate a
// level attempt.
package entity

import "github.com/mcavus/keyquest/internal/domain/geom"

// Kind identifies the owner of a body.
type Kind int

const (
	KindPlayer Kind = iota
	KindCompanion
	KindRacer
	KindBox
	KindPlatform
	KindMovingPlatform
	KindVerticalPlatform
	KindBridge
	KindKey
	KindDoor
	KindSwitch
	KindFallDetector
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindCompanion:
		return "Companion"
	case KindRacer:
		return "Racer"
	case KindBox:
		return "Box"
	case KindPlatform:
		return "Platform"
	case KindMovingPlatform:
		return "MovingPlatform"
	case KindVerticalPlatform:
		return "VerticalPlatform"
	case KindBridge:
		return "Bridge"
	case KindKey:
		return "Key"
	case KindDoor:
		return "Door"
	case KindSwitch:
		return "Switch"
	case KindFallDetector:
		return "FallDetector"
	default:
		return "Unknown"
	}
}

// Body is an axis-aligned rectangular body participating in the simulation.
//
// Static bodies never move. Immovable bodies may move under their own
// velocity (kinematic platforms) but are never displaced by collision
// response. Only bodies that are neither static nor immovable integrate
// gravity and yield to collisions.
type Body struct {
	Kind Kind

	Pos  geom.Vec2 // center
	Half geom.Vec2 // half extents
	Vel  geom.Vec2

	Static    bool // never moves at all
	Immovable bool // moves kinematically, never displaced
	Gravity   bool // integrates gravity when dynamic

	Grounded bool // derived per frame: resting on a surface below
	Enabled  bool // participates in collision/overlap; false = ghost

	// DragX decays horizontal velocity toward zero while grounded.
	// Used by the pushable box.
	DragX float64
}

// NewStaticBody creates a body that never moves (platforms, doors, switches).
func NewStaticBody(kind Kind, x, y, w, h float64) *Body {
	return &Body{
		Kind:      kind,
		Pos:       geom.Vec2{X: x, Y: y},
		Half:      geom.Vec2{X: w / 2, Y: h / 2},
		Static:    true,
		Immovable: true,
		Enabled:   true,
	}
}

// NewKinematicBody creates a body that moves under its own velocity but is
// never displaced by collision response (moving and vertical platforms).
func NewKinematicBody(kind Kind, x, y, w, h float64) *Body {
	return &Body{
		Kind:      kind,
		Pos:       geom.Vec2{X: x, Y: y},
		Half:      geom.Vec2{X: w / 2, Y: h / 2},
		Immovable: true,
		Enabled:   true,
	}
}

// NewDynamicBody creates a gravity-affected body that yields to collisions
// (player, AI actors, box).
func NewDynamicBody(kind Kind, x, y, w, h float64) *Body {
	return &Body{
		Kind:    kind,
		Pos:     geom.Vec2{X: x, Y: y},
		Half:    geom.Vec2{X: w / 2, Y: h / 2},
		Gravity: true,
		Enabled: true,
	}
}

// Dynamic reports whether the body yields to gravity and collision response.
func (b *Body) Dynamic() bool {
	return !b.Static && !b.Immovable
}

// AABB returns the body's current bounding rectangle.
func (b *Body) AABB() geom.Rect {
	return geom.Rect{X: b.Pos.X, Y: b.Pos.Y, HalfW: b.Half.X, HalfH: b.Half.Y}
}

// FootY returns the y coordinate of the body's bottom edge. The switch
// foot-point test and the AI ground probes use this.
func (b *Body) FootY() float64 {
	return b.Pos.Y + b.Half.Y
}
