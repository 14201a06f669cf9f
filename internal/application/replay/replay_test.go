package replay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/phantom/internal/platform"
)

func collect(events *[]platform.Event) platform.Handler {
	return func(ev platform.Event) platform.ControlFlow {
		*events = append(*events, ev)
		return platform.Continue
	}
}

func TestRecordedEvent_Conversions(t *testing.T) {
	events := []platform.Event{
		platform.KeyboardInput{Key: platform.KeyF1, State: platform.Pressed},
		platform.MouseInput{Button: platform.MouseButtonRight, State: platform.Released},
		platform.CursorMoved{X: 12.5, Y: 40},
		platform.MouseWheel{DX: 0, DY: -1},
		platform.FileDropped{Path: "scene.glb"},
		platform.Focused{Focused: true},
	}

	for _, ev := range events {
		rec, ok := FromEvent(ev)
		require.True(t, ok, "%T", ev)
		back, ok := rec.Event()
		require.True(t, ok, "%T", ev)
		assert.Equal(t, ev, back)
	}

	_, ok := FromEvent(platform.FrameReady{})
	assert.False(t, ok)
	_, ok = FromEvent(platform.Resized{Width: 1, Height: 1})
	assert.False(t, ok)
	_, ok = RecordedEvent{Kind: "teleport"}.Event()
	assert.False(t, ok)
}

func TestRecorder_GroupsEventsByFrame(t *testing.T) {
	rec := NewRecorder()
	var seen []platform.Event
	h := rec.Wrap(collect(&seen))

	h(platform.KeyboardInput{Key: platform.KeyEnter, State: platform.Pressed})
	h(platform.Resized{Width: 10, Height: 10})
	h(platform.FrameReady{})
	h(platform.FrameReady{})
	h(platform.CursorMoved{X: 1, Y: 2})
	h(platform.FrameReady{})

	assert.Len(t, seen, 6, "every event reaches the wrapped handler")
	assert.Equal(t, 3, rec.FrameCount())
	require.Len(t, rec.data.Frames, 2)
	assert.Equal(t, 0, rec.data.Frames[0].F)
	assert.Equal(t, KindKey, rec.data.Frames[0].Events[0].Kind)
	assert.Equal(t, 2, rec.data.Frames[1].F)
	assert.Equal(t, KindCursor, rec.data.Frames[1].Events[0].Kind)
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder()
	assert.True(t, rec.IsRecording())

	rec.Stop()
	rec.Record(platform.FrameReady{})

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 0, rec.FrameCount())
	assert.EqualError(t, rec.Save(filepath.Join(t.TempDir(), "r.json")), "no frames to save")
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder()
	rec.Record(platform.KeyboardInput{Key: platform.KeyF1, State: platform.Pressed})
	rec.Record(platform.FrameReady{})
	rec.Record(platform.FrameReady{})

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, 2, data.FrameCount)
	require.Len(t, data.Frames, 1)
	assert.Equal(t, "F1", data.Frames[0].Events[0].Key)
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()

	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}

func TestReplayer_InjectsBeforeFrame(t *testing.T) {
	data := ReplayData{
		FrameCount: 3,
		Frames: []FrameEvents{
			{F: 0, Events: []RecordedEvent{{Kind: KindKey, Key: "F1", Pressed: true}}},
			{F: 2, Events: []RecordedEvent{{Kind: KindCursor, X: 5, Y: 6}}},
		},
	}
	r := NewReplayer(data)
	var seen []platform.Event
	h := r.Wrap(collect(&seen))

	h(platform.KeyboardInput{Key: platform.KeyEscape, State: platform.Pressed})
	h(platform.Resized{Width: 4, Height: 4})
	h(platform.FrameReady{})
	h(platform.FrameReady{})
	h(platform.FrameReady{})

	assert.Equal(t, []platform.Event{
		platform.Resized{Width: 4, Height: 4},
		platform.KeyboardInput{Key: platform.KeyF1, State: platform.Pressed},
		platform.FrameReady{},
		platform.FrameReady{},
		platform.CursorMoved{X: 5, Y: 6},
		platform.FrameReady{},
	}, seen, "live input is dropped")
	assert.True(t, r.Done())
	assert.Equal(t, 3, r.CurrentFrame())
}

func TestReplayer_ExitFromInjectedEvent(t *testing.T) {
	r := NewReplayer(CreateTestReplayData(1, platform.KeyEscape))
	calls := 0
	h := r.Wrap(func(ev platform.Event) platform.ControlFlow {
		calls++
		if k, ok := ev.(platform.KeyboardInput); ok && k.Key == platform.KeyEscape {
			return platform.Exit
		}
		return platform.Continue
	})

	assert.Equal(t, platform.Exit, h(platform.FrameReady{}))
	assert.Equal(t, 1, calls, "the frame itself is not delivered after Exit")
}

func TestReplayer_TotalFramesAndReset(t *testing.T) {
	r := NewReplayer(ReplayData{Frames: []FrameEvents{{F: 4}}})
	assert.Equal(t, 5, r.TotalFrames())

	r.Events()
	r.Events()
	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())

	assert.Equal(t, 0, NewReplayer(ReplayData{}).TotalFrames())
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, platform.KeySpace)

	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, 60, data.FrameCount)
	require.Len(t, data.Frames, 60)
	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		require.Len(t, frame.Events, 2)
		assert.True(t, frame.Events[0].Pressed)
		assert.False(t, frame.Events[1].Pressed)
	}
}
