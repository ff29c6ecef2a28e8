package tape

import (
	"strings"
	"testing"
	"time"
)

func TestParserCommands(t *testing.T) {
	input := `# layout
Open "Scene"
Open "Tool" Left 0.3
Dock "Game" Right "Scene"

Sleep 250ms
ExpectTabs "Scene" "Scene" "Game"
Tick`

	cmds, errs := ParseFile(input)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []struct {
		typ  CommandType
		args []string
		line int
	}{
		{CommandType_Open, []string{"Scene"}, 2},
		{CommandType_Open, []string{"Tool", "Left", "0.3"}, 3},
		{CommandType_Dock, []string{"Game", "Right", "Scene"}, 4},
		{CommandType_Sleep, []string{"250ms"}, 6},
		{CommandType_ExpectTabs, []string{"Scene", "Scene", "Game"}, 7},
		{CommandType_Tick, nil, 8},
	}
	if len(cmds) != len(want) {
		t.Fatalf("Expected %d commands, got %d", len(want), len(cmds))
	}
	for i, w := range want {
		c := cmds[i]
		if c.Type != w.typ {
			t.Errorf("command %d: type %s, want %s", i, c.Type, w.typ)
		}
		if strings.Join(c.Args, ",") != strings.Join(w.args, ",") {
			t.Errorf("command %d: args %q, want %q", i, c.Args, w.args)
		}
		if c.Line != w.line {
			t.Errorf("command %d: line %d, want %d", i, c.Line, w.line)
		}
	}
	if cmds[3].Delay != 250*time.Millisecond {
		t.Errorf("Sleep delay = %v, want 250ms", cmds[3].Delay)
	}
}

func TestParserSignatureErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing argument", `Open`, "expects a string"},
		{"bare word for string", `Open Scene`, "expects a string"},
		{"extra argument", `Tick "x"`, "unexpected argument"},
		{"number for duration", `Sleep 2`, "expects a duration"},
		{"bad duration", `Sleep 5x`, "invalid duration"},
		{"not a command", `Bogus 1`, "unexpected token"},
		{"illegal input", `Open "A" ;`, "illegal input"},
		{"too few numbers", `Resize 80`, "expects a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParseFile(tt.input)
			if len(errs) != 1 {
				t.Fatalf("Expected 1 error, got %v", errs)
			}
			if !strings.Contains(errs[0], tt.want) {
				t.Errorf("error %q does not mention %q", errs[0], tt.want)
			}
			if !strings.HasPrefix(errs[0], "line 1:") {
				t.Errorf("error %q lacks its line", errs[0])
			}
		})
	}
}

func TestParserContinuesAfterError(t *testing.T) {
	cmds, errs := ParseFile("Open \"A\"\nOpen 3\nTick 2")
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "line 2:") {
		t.Fatalf("errors = %v, want one on line 2", errs)
	}
	if len(cmds) != 2 {
		t.Fatalf("Expected 2 commands, got %d", len(cmds))
	}
}

func TestParserOptionalArguments(t *testing.T) {
	tests := []struct {
		input string
		kinds string
	}{
		{`Open "A"`, "s"},
		{`Open "A" Float`, "sw"},
		{`Open "A" 0.5`, "sn"},
		{`Open "A" Bottom "B" 0.4`, "swsn"},
		{`Dock "A" Fill`, "sw"},
		{`MouseDown 1 2 Right`, "nnw"},
		{`ExpectTabs "A"`, "s"},
		{`ExpectTabs "A" "B" "C" "D"`, "ssss"},
		{`Drag 1 2 3 4 8`, "nnnnn"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmds, errs := ParseFile(tt.input)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got := string(cmds[0].kinds); got != tt.kinds {
				t.Errorf("kinds = %q, want %q", got, tt.kinds)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	cmds, _ := ParseFile(`Open "Scene" Left 0.3`)
	if got := cmds[0].String(); got != `Open "Scene" Left 0.3` {
		t.Errorf("String() = %s", got)
	}

	c := NewCommand(CommandType_Rename, "A", "B C")
	if got := c.String(); got != `Rename "A" "B C"` {
		t.Errorf("String() = %s", got)
	}
	c = NewCommand(CommandType_Resize, "80", "24")
	if got := c.String(); got != `Resize 80 24` {
		t.Errorf("String() = %s", got)
	}
}

func TestCommandAccessors(t *testing.T) {
	c := NewCommand(CommandType_Drag, "1", "x")
	if v, err := c.Int(0); err != nil || v != 1 {
		t.Errorf("Int(0) = %d, %v", v, err)
	}
	if _, err := c.Int(1); err == nil {
		t.Error("Int(1) should fail on a word")
	}
	if _, err := c.Int(5); err == nil {
		t.Error("Int(5) should fail when missing")
	}
	if v, err := c.Float(4, 0.25); err != nil || v != 0.25 {
		t.Errorf("Float default = %v, %v", v, err)
	}
	if got := c.Arg(3, "def"); got != "def" {
		t.Errorf("Arg default = %q", got)
	}
}

func TestPlayer(t *testing.T) {
	cmds, _ := ParseFile("Tick\nTick\nDump\nReset")
	p := NewPlayer(cmds)

	if p.Done() || p.Next().Type != CommandType_Tick {
		t.Fatalf("new player starts at %v", p.Next())
	}
	p.Advance()
	p.Advance()
	if ran, total := p.Position(); ran != 2 || total != 4 {
		t.Errorf("Position = %d/%d, want 2/4", ran, total)
	}
	if p.Next().Type != CommandType_Dump {
		t.Errorf("Next = %s", p.Next())
	}
	if !p.TogglePause() || !p.Paused() {
		t.Error("TogglePause did not pause")
	}
	if p.TogglePause() || p.Paused() {
		t.Error("TogglePause did not resume")
	}
	p.Advance()
	p.Advance()
	p.Advance()
	if !p.Done() || p.Next() != nil {
		t.Errorf("finished player: next = %v", p.Next())
	}
	if ran, _ := p.Position(); ran != 4 {
		t.Errorf("Advance past the end moved to %d", ran)
	}
	if p.TogglePause() {
		t.Error("finished player paused")
	}

	if !NewPlayer(nil).Done() {
		t.Error("empty player should be done")
	}
}
