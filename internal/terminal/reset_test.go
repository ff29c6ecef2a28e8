package terminal

import (
	"strings"
	"testing"
)

func TestReset(t *testing.T) {
	var sb strings.Builder
	if err := Reset(&sb); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	out := sb.String()
	for _, mode := range []string{"1000", "1003", "1004", "1006", "1049"} {
		if !strings.Contains(out, mode) {
			t.Errorf("reset sequence %q does not mention mode %s", out, mode)
		}
	}
	if !strings.Contains(out, "\x1b[?25h") {
		t.Errorf("reset sequence %q does not show the cursor", out)
	}
	if !strings.HasSuffix(out, "\r\n") {
		t.Errorf("reset sequence %q does not end the line", out)
	}
}
