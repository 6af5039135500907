// Package colorize applies terminal syntax highlighting to disassembly
// listings produced by the formatter.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// getListingLexer returns an assembly-flavored lexer with fallbacks. There is
// no EVM lexer in chroma; the nasm tokenizer handles mnemonic/number/comment
// lines well enough for listing output.
func getListingLexer() chroma.Lexer {
	candidates := []string{"nasm", "gas", "armasm"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getListingStyle returns the listing style with fallbacks.
func getListingStyle() *chroma.Style {
	candidates := []string{"evm-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter.
func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Enabled reports whether color output is active.
func Enabled() bool {
	return os.Getenv("ANALYZER_NO_COLOR") == ""
}

// Listing colorizes a whole disassembly listing, line by line, preserving
// the column layout produced by the formatter.
func Listing(listing string) string {
	if !Enabled() {
		return listing
	}
	lines := strings.Split(listing, "\n")
	for i, line := range lines {
		lines[i] = InstructionLine(line)
	}
	return strings.Join(lines, "\n")
}

// InstructionLine colorizes a single listing line. Lines follow the
// formatter's layout: "offset  mnemonic operand" or "; error comment".
func InstructionLine(line string) string {
	if !Enabled() || line == "" {
		return line
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ";") {
		// Structural error comment line.
		return fmt.Sprintf("\033[38;2;255;95;135m%s\033[0m", line)
	}

	parts := strings.SplitN(line, " ", 2)
	if len(parts) < 2 {
		return colorizeFullLine(line)
	}

	// The first column is a hex offset; render it gray like an address.
	for _, ch := range parts[0] {
		if !isHexChar(byte(ch)) {
			return colorizeFullLine(line)
		}
	}

	offset := fmt.Sprintf("\033[38;2;79;79;79m%s\033[0m", parts[0])
	return fmt.Sprintf("%s %s", offset, colorizeFullLine(parts[1]))
}

// colorizeFullLine runs chroma over a listing fragment.
func colorizeFullLine(line string) string {
	lexer := getListingLexer()
	if lexer == nil {
		return line
	}

	// Make sure our custom style is registered
	_ = EVMDark

	style := getListingStyle()
	formatter := getTerminalFormatter()

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return buf.String()
}

func isHexChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// StripANSI removes ANSI escape codes and returns the plain string.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
		} else if inEscape {
			if r == 'm' {
				inEscape = false
			}
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// VisibleLen returns the count of visible characters, skipping ANSI escapes.
func VisibleLen(s string) int {
	return len([]rune(StripANSI(s)))
}
