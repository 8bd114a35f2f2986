package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReplayInput represents the input state of one frame during playback.
type ReplayInput struct {
	Left  bool
	Right bool
	Jump  bool
}

// Replayer handles input playback from recorded data.
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data.
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file.
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances. The second
// return value is false once the recording is exhausted.
func (r *Replayer) GetInput() (ReplayInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return ReplayInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return ReplayInput{Left: fi.L, Right: fi.R, Jump: fi.J}, true
}

// Mode returns the recorded play mode.
func (r *Replayer) Mode() string {
	return r.data.Mode
}

// Level returns the recorded level number.
func (r *Replayer) Level() int {
	return r.data.Level
}

// CurrentFrame returns the current frame number.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames.
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Reset resets the replayer to the beginning.
func (r *Replayer) Reset() {
	r.frame = 0
}
