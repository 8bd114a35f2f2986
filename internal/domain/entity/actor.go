package entity

// Actor is a controllable dynamic body with a facing direction.
type Actor struct {
	Body        *Body
	FacingRight bool
}

// NewActor creates an actor of the given kind spawned at (x, y).
func NewActor(kind Kind, x, y, w, h float64) *Actor {
	return &Actor{
		Body:        NewDynamicBody(kind, x, y, w, h),
		FacingRight: true,
	}
}

// SetVelX sets horizontal velocity and updates facing for nonzero values.
func (a *Actor) SetVelX(vx float64) {
	a.Body.Vel.X = vx
	if vx > 0 {
		a.FacingRight = true
	} else if vx < 0 {
		a.FacingRight = false
	}
}
