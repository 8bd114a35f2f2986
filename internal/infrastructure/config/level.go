package config

import "fmt"

// Mode selects which level folder and scene behavior to use.
type Mode string

const (
	ModeSinglePlayer Mode = "single_player"
	ModeCoop         Mode = "ai_coop"
	ModeRace         Mode = "ai_race"
)

// ParseMode maps a user-facing mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "single_player":
		return ModeSinglePlayer, nil
	case "coop", "ai_coop":
		return ModeCoop, nil
	case "race", "ai_race":
		return ModeRace, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want single, coop or race)", s)
	}
}

// PointConfig is a 2D point in a level document.
type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RectObjectConfig is a centered rectangle in a level document.
type RectObjectConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MovingPlatformConfig describes a horizontally oscillating platform.
type MovingPlatformConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
	MinX   float64 `json:"minX"`
	MaxX   float64 `json:"maxX"`
}

// VerticalPlatformConfig describes a vertically oscillating platform.
type VerticalPlatformConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
	MinY   float64 `json:"minY"`
	MaxY   float64 `json:"maxY"`
}

// BoxConfig describes the pushable box.
type BoxConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Mass   float64 `json:"mass"`
	DragX  float64 `json:"dragX"`
}

// BridgeConfig describes one togglable bridge segment.
type BridgeConfig struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	InitiallyEnabled bool    `json:"initiallyEnabled"`
}

// LevelConfig is the root of a level document. Optional entities are
// pointers/slices; absence means the feature is skipped entirely.
type LevelConfig struct {
	LevelWidth  float64 `json:"levelWidth"`
	LevelHeight float64 `json:"levelHeight"`

	PlayerSpawn *PointConfig `json:"playerSpawn"`
	AISpawn     *PointConfig `json:"aiSpawn"`

	Platforms         []RectObjectConfig       `json:"platforms"`
	MovingPlatforms   []MovingPlatformConfig   `json:"movingPlatforms"`
	VerticalPlatforms []VerticalPlatformConfig `json:"verticalPlatforms"`

	Box  *BoxConfig        `json:"box"`
	Key  *RectObjectConfig `json:"key"`
	Door *RectObjectConfig `json:"door"`

	Switches      []RectObjectConfig `json:"switch"`
	Bridges       []BridgeConfig     `json:"bridge"`
	FallDetectors []RectObjectConfig `json:"fallDetectors"`
}

// Validate checks the document once at load time so downstream code can
// branch on typed optional fields without further existence checks.
func (c *LevelConfig) Validate() error {
	if c.LevelWidth <= 0 {
		return fmt.Errorf("levelWidth must be positive, got %v", c.LevelWidth)
	}
	if c.LevelHeight <= 0 {
		return fmt.Errorf("levelHeight must be positive, got %v", c.LevelHeight)
	}
	if c.PlayerSpawn == nil {
		return fmt.Errorf("playerSpawn is required")
	}
	for i, mp := range c.MovingPlatforms {
		if mp.MinX >= mp.MaxX {
			return fmt.Errorf("movingPlatforms[%d]: minX %v must be below maxX %v", i, mp.MinX, mp.MaxX)
		}
	}
	for i, vp := range c.VerticalPlatforms {
		if vp.MinY >= vp.MaxY {
			return fmt.Errorf("verticalPlatforms[%d]: minY %v must be below maxY %v", i, vp.MinY, vp.MaxY)
		}
	}
	for i, b := range c.Bridges {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("bridge[%d]: width and height must be positive", i)
		}
	}
	return nil
}
