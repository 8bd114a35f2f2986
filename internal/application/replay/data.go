package replay

// FrameInput records the movement keys held on a single frame.
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	J bool `json:"j,omitempty"` // Jump
}

// ReplayData contains all data needed to replay a level attempt. The
// simulation is deterministic for a given mode/level, so the input stream
// is the whole recording.
type ReplayData struct {
	Version   string       `json:"version"`
	Mode      string       `json:"mode"`
	Level     int          `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
