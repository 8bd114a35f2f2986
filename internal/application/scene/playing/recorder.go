package playing

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mcavus/keyquest/internal/application/levelrun"
	"github.com/mcavus/keyquest/internal/application/replay"
)

// Recorder captures the per-frame input stream of one attempt.
type Recorder struct {
	data      replay.ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for the given mode and level.
func NewRecorder(mode string, levelNumber int) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   "1.0",
			Mode:      mode,
			Level:     levelNumber,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input.
func (r *Recorder) RecordFrame(in levelrun.Input) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, replay.FrameInput{
		F: r.frame,
		L: in.Left,
		R: in.Right,
		J: in.Jump,
	})
	r.frame++
}

// Save writes the replay data to a file.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames.
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing).
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time.
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
