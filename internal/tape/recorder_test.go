package tape

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

func newTestRecorder() (*Recorder, func(time.Duration)) {
	r := NewRecorder()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return clock }
	return r, func(d time.Duration) { clock = clock.Add(d) }
}

func mouse(action dock.MouseAction, button dock.MouseButton, x, y int) dock.MouseEvent {
	return dock.MouseEvent{Action: action, Button: button, Pos: dock.Point{X: x, Y: y}}
}

func TestRecorderScript(t *testing.T) {
	r, advance := newTestRecorder()
	r.Start(NewCommand(CommandType_Resize, "80", "24"))

	advance(500 * time.Millisecond)
	r.RecordMouse(mouse(dock.MouseDown, dock.ButtonLeft, 55, 2))
	advance(10 * time.Millisecond)
	r.RecordMouse(mouse(dock.MouseMove, dock.ButtonLeft, 56, 3))
	advance(10 * time.Millisecond)
	r.RecordMouse(mouse(dock.MouseMove, dock.ButtonLeft, 57, 4))
	advance(200 * time.Millisecond)
	r.RecordMouse(mouse(dock.MouseUp, dock.ButtonRight, 57, 4))

	want := "Resize 80 24\n" +
		"Sleep 500ms\n" +
		"MouseDown 55 2\n" +
		"MouseMove 57 4\n" +
		"Sleep 200ms\n" +
		"MouseUp 57 4 Right\n"
	if got := r.String(""); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	cmds, errs := ParseFile(r.String("session"))
	if len(errs) > 0 {
		t.Fatalf("recorded script does not parse: %v", errs)
	}
	if len(cmds) != 6 {
		t.Errorf("Expected 6 commands, got %d", len(cmds))
	}
}

func TestRecorderDisabled(t *testing.T) {
	r, _ := newTestRecorder()
	r.RecordMouse(mouse(dock.MouseDown, dock.ButtonLeft, 1, 1))
	r.RecordResize(80, 24)
	r.RecordAppFocus(false)
	if r.CommandCount() != 0 {
		t.Errorf("recorded %d commands while stopped", r.CommandCount())
	}

	r.Start()
	r.RecordAppFocus(false)
	r.RecordAppFocus(true)
	r.Stop()
	r.RecordResize(80, 24)

	cmds := r.GetCommands()
	if len(cmds) != 2 || cmds[0].Type != CommandType_Blur || cmds[1].Type != CommandType_Focus {
		t.Errorf("commands = %v", cmds)
	}
}

func TestRecorderStats(t *testing.T) {
	r, advance := newTestRecorder()
	r.Start()
	r.RecordResize(100, 30)
	r.RecordCommand(NewCommand(CommandType_Save))
	advance(3 * time.Second)

	stats := r.GetStats()
	if stats.CommandCount != 2 || stats.Duration != 3*time.Second || !stats.IsRecording {
		t.Errorf("stats = %+v", stats)
	}

	r.Clear()
	if r.CommandCount() != 0 {
		t.Errorf("Clear left %d commands", r.CommandCount())
	}
}
