package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_tuning.yaml
var defaultTuningYAML []byte

// Tuning holds the gameplay constants. Values are px, px/s and px/s^2 at a
// 60 Hz reference rate.
type Tuning struct {
	Gravity float64 `yaml:"gravity"`

	Player struct {
		RunSpeed    float64 `yaml:"runSpeed"`
		JumpImpulse float64 `yaml:"jumpImpulse"`
		Width       float64 `yaml:"width"`
		Height      float64 `yaml:"height"`
	} `yaml:"player"`

	Companion struct {
		Speed        float64 `yaml:"speed"`
		JumpImpulse  float64 `yaml:"jumpImpulse"`
		FollowOffset float64 `yaml:"followOffset"`
	} `yaml:"companion"`

	Racer struct {
		Speed          float64 `yaml:"speed"`
		JumpImpulse    float64 `yaml:"jumpImpulse"`
		FinishDistance float64 `yaml:"finishDistance"`
	} `yaml:"racer"`

	SwitchSlack      float64 `yaml:"switchSlack"`
	CountdownSeconds float64 `yaml:"countdownSeconds"`
	CompleteDelay    float64 `yaml:"completeDelaySeconds"`
}

// LoadTuning loads gameplay tuning.
// Search order: customPath -> ./configs/game.yaml -> embedded default.
func LoadTuning(customPath string) (*Tuning, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read tuning %s: %w", customPath, err)
		}
		var t Tuning
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse tuning %s: %w", customPath, err)
		}
		return &t, nil
	}

	if data, err := os.ReadFile("configs/game.yaml"); err == nil {
		var t Tuning
		if err := yaml.Unmarshal(data, &t); err == nil {
			return &t, nil
		}
	}

	return DefaultTuning(), nil
}

// DefaultTuning returns the embedded default constants.
func DefaultTuning() *Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultTuningYAML, &t); err != nil {
		// the embedded document is part of the build; failing to parse it
		// is a programmer error
		panic(fmt.Sprintf("embedded tuning is invalid: %v", err))
	}
	return &t
}
