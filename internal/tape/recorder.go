package tape

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

// Recorder records user interactions as script commands
type Recorder struct {
	commands      []Command
	startTime     time.Time
	lastEventTime time.Time
	enabled       bool
	minDelay      time.Duration // pauses shorter than this are not written as Sleep
	now           func() time.Time
}

// NewRecorder creates a new script recorder
func NewRecorder() *Recorder {
	return &Recorder{
		minDelay: 100 * time.Millisecond,
		now:      time.Now,
	}
}

// Start begins recording. prelude is written first, typically the commands
// that recreate the current workspace.
func (r *Recorder) Start(prelude ...Command) {
	r.enabled = true
	r.startTime = r.now()
	r.lastEventTime = r.startTime
	r.commands = append([]Command(nil), prelude...)
}

// Stop ends recording
func (r *Recorder) Stop() {
	r.enabled = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.enabled
}

var buttonNames = map[dock.MouseButton]string{
	dock.ButtonLeft:   "Left",
	dock.ButtonMiddle: "Middle",
	dock.ButtonRight:  "Right",
}

// RecordMouse records a mouse event. Consecutive moves without a pause
// collapse into the last one.
func (r *Recorder) RecordMouse(ev dock.MouseEvent) {
	if !r.enabled {
		return
	}
	var ct CommandType
	switch ev.Action {
	case dock.MouseDown:
		ct = CommandType_MouseDown
	case dock.MouseUp:
		ct = CommandType_MouseUp
	case dock.MouseMove:
		ct = CommandType_MouseMove
	default:
		return
	}
	cmd := NewTypedCommand(ct, "nn", strconv.Itoa(ev.Pos.X), strconv.Itoa(ev.Pos.Y))
	if name, ok := buttonNames[ev.Button]; ok && ev.Button != dock.ButtonLeft {
		cmd.Args = append(cmd.Args, name)
		cmd.kinds = append(cmd.kinds, 'w')
	}

	if ct == CommandType_MouseMove && len(r.commands) > 0 {
		last := &r.commands[len(r.commands)-1]
		if last.Type == CommandType_MouseMove && r.now().Sub(r.lastEventTime) < r.minDelay {
			cmd.Delay = last.Delay
			*last = cmd
			r.lastEventTime = r.now()
			return
		}
	}
	r.record(cmd)
}

// RecordResize records a terminal resize.
func (r *Recorder) RecordResize(w, h int) {
	if !r.enabled {
		return
	}
	r.record(NewTypedCommand(CommandType_Resize, "nn", strconv.Itoa(w), strconv.Itoa(h)))
}

// RecordAppFocus records the terminal gaining or losing focus.
func (r *Recorder) RecordAppFocus(focused bool) {
	if !r.enabled {
		return
	}
	if focused {
		r.record(NewCommand(CommandType_Focus))
	} else {
		r.record(NewCommand(CommandType_Blur))
	}
}

// RecordCommand records an arbitrary command.
func (r *Recorder) RecordCommand(cmd Command) {
	if r.enabled {
		r.record(cmd)
	}
}

func (r *Recorder) record(cmd Command) {
	now := r.now()
	cmd.Delay = now.Sub(r.lastEventTime)
	cmd.Line = len(r.commands) + 1
	cmd.Column = 1
	cmd.Raw = cmd.String()
	r.commands = append(r.commands, cmd)
	r.lastEventTime = now
}

// NewCommand assembles a command from its arguments.
func NewCommand(ct CommandType, args ...string) Command {
	return Command{Type: ct, Args: args}
}

// NewTypedCommand assembles a command whose argument kinds are known. kinds
// holds one of s, n, d or w per argument.
func NewTypedCommand(ct CommandType, kinds string, args ...string) Command {
	c := NewCommand(ct, args...)
	if len(kinds) == len(args) {
		c.kinds = []byte(kinds)
	}
	return c
}

// GetCommands returns all recorded commands
func (r *Recorder) GetCommands() []Command {
	return r.commands
}

// WriteToFile saves the recorded script to a file
func (r *Recorder) WriteToFile(filename string, header string) error {
	return os.WriteFile(filename, []byte(r.String(header)), 0o644)
}

// String returns the script content as a formatted string. Pauses of at
// least minDelay become Sleep commands.
func (r *Recorder) String(header string) string {
	var sb strings.Builder

	if header != "" {
		fmt.Fprintf(&sb, "# %s\n", header)
		fmt.Fprintf(&sb, "# Recorded: %s\n\n", r.startTime.Format(time.RFC3339))
	}

	for _, cmd := range r.commands {
		if cmd.Delay >= r.minDelay {
			fmt.Fprintf(&sb, "Sleep %v\n", cmd.Delay.Round(time.Millisecond))
		}
		sb.WriteString(cmd.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// CommandCount returns the number of recorded commands
func (r *Recorder) CommandCount() int {
	return len(r.commands)
}

// RecordingStats contains statistics about the recording
type RecordingStats struct {
	CommandCount int
	Duration     time.Duration
	IsRecording  bool
}

// GetStats returns recording statistics
func (r *Recorder) GetStats() RecordingStats {
	return RecordingStats{
		CommandCount: len(r.commands),
		Duration:     r.now().Sub(r.startTime),
		IsRecording:  r.enabled,
	}
}

// Clear clears all recorded commands
func (r *Recorder) Clear() {
	r.commands = nil
	r.startTime = r.now()
	r.lastEventTime = r.startTime
}
