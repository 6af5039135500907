package colorize

import (
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "00000000  PUSH1 0x80", "00000000  PUSH1 0x80"},
		{"colored", "\033[38;2;79;79;79m00000000\033[0m PUSH1", "00000000 PUSH1"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.in); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVisibleLen(t *testing.T) {
	if got := VisibleLen("\033[38;2;255;95;135mabc\033[0m"); got != 3 {
		t.Errorf("VisibleLen = %d, want 3", got)
	}
}

func TestColorizeDisabled(t *testing.T) {
	t.Setenv("ANALYZER_NO_COLOR", "1")

	line := "00000000  PUSH1          0x80"
	if got := InstructionLine(line); got != line {
		t.Errorf("InstructionLine with colors disabled = %q, want unchanged", got)
	}
	listing := line + "\n; invalid opcode 0x0c at offset 2\n"
	if got := Listing(listing); got != listing {
		t.Errorf("Listing with colors disabled = %q, want unchanged", got)
	}
}

func TestInstructionLineContentPreserved(t *testing.T) {
	t.Setenv("ANALYZER_NO_COLOR", "")

	line := "00000000  PUSH1          0x80"
	got := strings.TrimRight(StripANSI(InstructionLine(line)), "\n")
	if got != line {
		t.Errorf("colorization altered content: %q != %q", got, line)
	}
}
