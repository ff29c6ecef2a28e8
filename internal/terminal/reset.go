// Package terminal restores the host terminal after an abnormal exit.
package terminal

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
)

// modes are the terminal modes the workspace turns on.
var modes = []ansi.Mode{
	ansi.ModeMouseNormal,         // ?1000
	ansi.ModeMouseButtonEvent,    // ?1002
	ansi.ModeMouseAnyEvent,       // ?1003
	ansi.ModeFocusEvent,          // ?1004
	ansi.ModeMouseExtSgr,         // ?1006
	ansi.ModeAltScreenSaveCursor, // ?1049
}

// Reset writes the sequences that turn off mouse and focus reporting, leave
// the alternate screen, show the cursor and clear text attributes.
func Reset(w io.Writer) error {
	seq := ansi.ResetMode(modes...) +
		ansi.SetMode(ansi.ModeTextCursorEnable) +
		ansi.ResetStyle +
		"\r\n"
	_, err := io.WriteString(w, seq)
	return err
}

// ResetStdout resets the terminal attached to stdout.
func ResetStdout() {
	_ = Reset(os.Stdout)
	_ = os.Stdout.Sync()
}
