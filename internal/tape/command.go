package tape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommandType represents the type of a script command
type CommandType string

const (
	// Windows
	CommandType_Open   CommandType = "Open"
	CommandType_Dock   CommandType = "Dock"
	CommandType_Undock CommandType = "Undock"
	CommandType_Float  CommandType = "Float"
	CommandType_Select CommandType = "Select"
	CommandType_Close  CommandType = "Close"
	CommandType_Rename CommandType = "Rename"

	// Input
	CommandType_MouseDown CommandType = "MouseDown"
	CommandType_MouseMove CommandType = "MouseMove"
	CommandType_MouseUp   CommandType = "MouseUp"
	CommandType_Drag      CommandType = "Drag"
	CommandType_Tick      CommandType = "Tick"
	CommandType_Blur      CommandType = "Blur"
	CommandType_Focus     CommandType = "Focus"
	CommandType_Resize    CommandType = "Resize"

	// Layout
	CommandType_Save  CommandType = "Save"
	CommandType_Load  CommandType = "Load"
	CommandType_Reset CommandType = "Reset"

	// Assertions
	CommandType_Expect      CommandType = "Expect"
	CommandType_ExpectTabs  CommandType = "ExpectTabs"
	CommandType_ExpectState CommandType = "ExpectState"
	CommandType_ExpectCount CommandType = "ExpectCount"
	CommandType_ExpectDrag  CommandType = "ExpectDrag"
	CommandType_ExpectDump  CommandType = "ExpectDump"

	// Other
	CommandType_Sleep CommandType = "Sleep"
	CommandType_Dump  CommandType = "Dump"
)

// commandTokens maps command keywords to their command.
var commandTokens = map[TokenType]CommandType{
	TOKEN_OPEN:         CommandType_Open,
	TOKEN_DOCK:         CommandType_Dock,
	TOKEN_UNDOCK:       CommandType_Undock,
	TOKEN_FLOAT:        CommandType_Float,
	TOKEN_SELECT:       CommandType_Select,
	TOKEN_CLOSE:        CommandType_Close,
	TOKEN_RENAME:       CommandType_Rename,
	TOKEN_MOUSE_DOWN:   CommandType_MouseDown,
	TOKEN_MOUSE_MOVE:   CommandType_MouseMove,
	TOKEN_MOUSE_UP:     CommandType_MouseUp,
	TOKEN_DRAG:         CommandType_Drag,
	TOKEN_TICK:         CommandType_Tick,
	TOKEN_BLUR:         CommandType_Blur,
	TOKEN_FOCUS:        CommandType_Focus,
	TOKEN_RESIZE:       CommandType_Resize,
	TOKEN_SAVE:         CommandType_Save,
	TOKEN_LOAD:         CommandType_Load,
	TOKEN_RESET:        CommandType_Reset,
	TOKEN_EXPECT:       CommandType_Expect,
	TOKEN_EXPECT_TABS:  CommandType_ExpectTabs,
	TOKEN_EXPECT_STATE: CommandType_ExpectState,
	TOKEN_EXPECT_COUNT: CommandType_ExpectCount,
	TOKEN_EXPECT_DRAG:  CommandType_ExpectDrag,
	TOKEN_EXPECT_DUMP:  CommandType_ExpectDump,
	TOKEN_SLEEP:        CommandType_Sleep,
	TOKEN_DUMP:         CommandType_Dump,
}

// Argument kinds used in signatures: s string, n number, d duration,
// w bare word. Kinds after '|' are optional and matched in order, a kind
// missing from the input being skipped. A trailing '*' repeats the last kind.
var signatures = map[CommandType]string{
	CommandType_Open:        "s|wsn",
	CommandType_Dock:        "sw|sn",
	CommandType_Undock:      "s",
	CommandType_Float:       "s|nnnn",
	CommandType_Select:      "s",
	CommandType_Close:       "s",
	CommandType_Rename:      "ss",
	CommandType_MouseDown:   "nn|w",
	CommandType_MouseMove:   "nn|w",
	CommandType_MouseUp:     "nn|w",
	CommandType_Drag:        "nnnn|n",
	CommandType_Tick:        "|n",
	CommandType_Blur:        "",
	CommandType_Focus:       "|s",
	CommandType_Resize:      "nn",
	CommandType_Save:        "|s",
	CommandType_Load:        "|s",
	CommandType_Reset:       "",
	CommandType_Expect:      "sw",
	CommandType_ExpectTabs:  "s|s*",
	CommandType_ExpectState: "sw|n",
	CommandType_ExpectCount: "wn",
	CommandType_ExpectDrag:  "w|w",
	CommandType_ExpectDump:  "s",
	CommandType_Sleep:       "d",
	CommandType_Dump:        "",
}

// Command represents a parsed script command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Delay after this command
	Line   int           // Source line number
	Column int           // Source column number
	Raw    string        // Original raw command text

	kinds []byte // argument kinds, set by the parser
}

// String formats the command as script source.
func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Type))
	for i, a := range c.Args {
		sb.WriteByte(' ')
		if c.quoted(i) {
			sb.WriteString(strconv.Quote(a))
		} else {
			sb.WriteString(a)
		}
	}
	return sb.String()
}

// quoted reports whether argument i was a string. Commands that were not
// parsed quote every argument that is not a number.
func (c *Command) quoted(i int) bool {
	if len(c.kinds) == len(c.Args) {
		return c.kinds[i] == 's'
	}
	_, err := strconv.ParseFloat(c.Args[i], 64)
	return err != nil
}

// IsCommand returns true if the command type is a valid command
func (ct CommandType) IsCommand() bool {
	_, ok := signatures[ct]
	return ok
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

// Int returns argument i as an integer.
func (c *Command) Int(i int) (int, error) {
	if i >= len(c.Args) {
		return 0, fmt.Errorf("%s: missing argument %d", c.Type, i+1)
	}
	v, err := strconv.Atoi(c.Args[i])
	if err != nil {
		return 0, fmt.Errorf("%s: argument %d: %q is not an integer", c.Type, i+1, c.Args[i])
	}
	return v, nil
}

// Float returns argument i as a float, def when absent.
func (c *Command) Float(i int, def float64) (float64, error) {
	if i >= len(c.Args) {
		return def, nil
	}
	v, err := strconv.ParseFloat(c.Args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: argument %d: %q is not a number", c.Type, i+1, c.Args[i])
	}
	return v, nil
}

// Arg returns argument i, def when absent.
func (c *Command) Arg(i int, def string) string {
	if i >= len(c.Args) {
		return def
	}
	return c.Args[i]
}
