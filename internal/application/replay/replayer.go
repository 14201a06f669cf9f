package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/phantom/internal/platform"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
	next  int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
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

// Wrap returns a handler that drops live input and injects the recorded
// events before each FrameReady.
func (r *Replayer) Wrap(h platform.Handler) platform.Handler {
	return func(ev platform.Event) platform.ControlFlow {
		if isRecorded(ev) {
			return platform.Continue
		}
		if _, ok := ev.(platform.FrameReady); ok {
			for _, rec := range r.Events() {
				if h(rec) == platform.Exit {
					return platform.Exit
				}
			}
		}
		return h(ev)
	}
}

// Events returns the events for the current frame and advances
func (r *Replayer) Events() []platform.Event {
	var out []platform.Event
	for r.next < len(r.data.Frames) && r.data.Frames[r.next].F < r.frame {
		r.next++
	}
	if r.next < len(r.data.Frames) && r.data.Frames[r.next].F == r.frame {
		for _, rec := range r.data.Frames[r.next].Events {
			if ev, ok := rec.Event(); ok {
				out = append(out, ev)
			}
		}
		r.next++
	}
	r.frame++
	return out
}

// Done reports whether every recorded frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= r.TotalFrames()
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	if r.data.FrameCount > 0 {
		return r.data.FrameCount
	}
	if n := len(r.data.Frames); n > 0 {
		return r.data.Frames[n-1].F + 1
	}
	return 0
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}

// CreateTestReplayData creates replay data for testing with one key tap per frame
func CreateTestReplayData(frames int, key platform.Key) ReplayData {
	data := ReplayData{
		Version:    FormatVersion,
		StartTime:  time.Now().Format(time.RFC3339),
		FrameCount: frames,
		Frames:     make([]FrameEvents, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameEvents{
			F: i,
			Events: []RecordedEvent{
				{Kind: KindKey, Key: string(key), Pressed: true},
				{Kind: KindKey, Key: string(key)},
			},
		}
	}

	return data
}
