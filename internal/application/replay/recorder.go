package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/phantom/internal/platform"
)

// Recorder captures input events per frame
type Recorder struct {
	data      ReplayData
	pending   []RecordedEvent
	frame     int
	recording bool
}

// NewRecorder creates a new input recorder
func NewRecorder() *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   FormatVersion,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameEvents, 0, 1024),
		},
		recording: true,
	}
}

// Wrap returns a handler that records events before passing them to h
func (r *Recorder) Wrap(h platform.Handler) platform.Handler {
	return func(ev platform.Event) platform.ControlFlow {
		r.Record(ev)
		return h(ev)
	}
}

// Record captures one event. FrameReady closes the current frame.
func (r *Recorder) Record(ev platform.Event) {
	if !r.recording {
		return
	}
	if _, ok := ev.(platform.FrameReady); ok {
		if len(r.pending) > 0 {
			r.data.Frames = append(r.data.Frames, FrameEvents{F: r.frame, Events: r.pending})
			r.pending = nil
		}
		r.frame++
		return
	}
	if rec, ok := FromEvent(ev); ok {
		r.pending = append(r.pending, rec)
	}
}

// Save writes the recording to a file
func (r *Recorder) Save(filename string) error {
	if r.frame == 0 {
		return fmt.Errorf("no frames to save")
	}
	r.data.FrameCount = r.frame

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

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return r.frame
}

// GenerateFilename creates a timestamped filename for replay
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
