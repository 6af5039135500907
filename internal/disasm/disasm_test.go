package disasm

import (
	"encoding/hex"
	"reflect"
	"strings"
	"testing"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/evm"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad test input %q: %v", s, err)
	}
	return b
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string // hex
		mnemonics []string
		offsets   []int
		arguments []string // hex per instruction, "" for none
		errors    []string
	}{
		{
			name:      "push push mstore",
			input:     "6080604052",
			mnemonics: []string{"PUSH1", "PUSH1", "MSTORE"},
			offsets:   []int{0, 2, 4},
			arguments: []string{"80", "40", ""},
		},
		{
			name:      "truncated trailing push1",
			input:     "600160",
			mnemonics: []string{"PUSH1", "PUSH1"},
			offsets:   []int{0, 2},
			arguments: []string{"01", ""},
			errors:    []string{"PUSH1 at offset 2 is incomplete (missing 1-byte argument)"},
		},
		{
			name:      "truncated push32",
			input:     "7f" + strings.Repeat("00", 10),
			mnemonics: []string{"PUSH32"},
			offsets:   []int{0},
			arguments: []string{""},
			errors:    []string{"PUSH32 at offset 0 is incomplete (missing 22-byte argument)"},
		},
		{
			name:      "complete push32",
			input:     "7f" + strings.Repeat("ab", 32),
			mnemonics: []string{"PUSH32"},
			offsets:   []int{0},
			arguments: []string{strings.Repeat("ab", 32)},
		},
		{
			name:      "push0 has no immediate",
			input:     "5f5f01",
			mnemonics: []string{"PUSH0", "PUSH0", "ADD"},
			offsets:   []int{0, 1, 2},
			arguments: []string{"", "", ""},
		},
		{
			name:      "unassigned byte",
			input:     "0c",
			mnemonics: []string{UnknownMnemonic},
			offsets:   []int{0},
			arguments: []string{""},
			errors:    []string{"invalid opcode 0x0c at offset 0"},
		},
		{
			name:      "unassigned byte mid stream",
			input:     "60010c00",
			mnemonics: []string{"PUSH1", UnknownMnemonic, "STOP"},
			offsets:   []int{0, 2, 3},
			arguments: []string{"01", "", ""},
			errors:    []string{"invalid opcode 0x0c at offset 2"},
		},
		{
			name:      "designated invalid decodes cleanly",
			input:     "fe",
			mnemonics: []string{"INVALID"},
			offsets:   []int{0},
			arguments: []string{""},
		},
		{
			name:      "consecutive errors all recorded",
			input:     "0c0cef",
			mnemonics: []string{UnknownMnemonic, UnknownMnemonic, UnknownMnemonic},
			offsets:   []int{0, 1, 2},
			arguments: []string{"", "", ""},
			errors: []string{
				"invalid opcode 0x0c at offset 0",
				"invalid opcode 0x0c at offset 1",
				"invalid opcode 0xef at offset 2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(mustHex(t, tt.input))

			if res.ByteLength != len(tt.input)/2 {
				t.Errorf("ByteLength = %d, want %d", res.ByteLength, len(tt.input)/2)
			}
			if len(res.Instructions) != len(tt.mnemonics) {
				t.Fatalf("got %d instructions, want %d", len(res.Instructions), len(tt.mnemonics))
			}
			for i, inst := range res.Instructions {
				if inst.Mnemonic != tt.mnemonics[i] {
					t.Errorf("instruction %d mnemonic = %q, want %q", i, inst.Mnemonic, tt.mnemonics[i])
				}
				if inst.Offset != tt.offsets[i] {
					t.Errorf("instruction %d offset = %d, want %d", i, inst.Offset, tt.offsets[i])
				}
				wantArg := tt.arguments[i]
				if wantArg == "" {
					if inst.Argument != nil {
						t.Errorf("instruction %d argument = %x, want none", i, inst.Argument)
					}
				} else if hex.EncodeToString(inst.Argument) != wantArg {
					t.Errorf("instruction %d argument = %x, want %s", i, inst.Argument, wantArg)
				}
			}
			if len(res.Errors) != len(tt.errors) {
				t.Fatalf("got errors %v, want %v", res.Errors, tt.errors)
			}
			for i, e := range res.Errors {
				if e != tt.errors[i] {
					t.Errorf("error %d = %q, want %q", i, e, tt.errors[i])
				}
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	// The validator rejects empty input before parsing, but the parser
	// itself must still behave when handed nothing.
	res := Parse(nil)
	if res.ByteLength != 0 || len(res.Instructions) != 0 || len(res.Errors) != 0 {
		t.Errorf("Parse(nil) = %+v, want empty result", res)
	}
}

func TestParseDeterminism(t *testing.T) {
	code := mustHex(t, "60806040520c7f0102")
	a := Parse(code)
	b := Parse(code)
	if !reflect.DeepEqual(a, b) {
		t.Error("Parse is not deterministic for identical input")
	}
}

func TestParseDoesNotAliasInput(t *testing.T) {
	code := mustHex(t, "6080")
	res := Parse(code)
	code[1] = 0xff
	if res.Instructions[0].Argument[0] != 0x80 {
		t.Error("push argument aliases the caller's buffer")
	}
}

func TestOffsetMonotonicityAndCoverage(t *testing.T) {
	inputs := []string{
		"6080604052",
		"5b600035601c52",
		"60010c00fe",
		"7f000102",      // truncated push32
		"61aabb62ccddee", // push2, push3
		"0c0cef",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			code := mustHex(t, in)
			res := Parse(code)

			consumed := 0
			for i, inst := range res.Instructions {
				if i > 0 {
					prev := res.Instructions[i-1]
					if inst.Offset <= prev.Offset {
						t.Fatalf("offsets not strictly increasing: %d then %d", prev.Offset, inst.Offset)
					}
					if inst.Offset != prev.Offset+1+len(prev.Argument) {
						t.Errorf("offset %d does not follow %d + 1 + %d", inst.Offset, prev.Offset, len(prev.Argument))
					}
				}
				consumed += 1 + len(inst.Argument)
			}

			// Every byte is accounted for by an instruction or by the
			// trailing bytes of a truncated push reported in the errors.
			if consumed != res.ByteLength {
				last := res.Instructions[len(res.Instructions)-1]
				info, ok := evm.Lookup(last.Byte)
				if !ok || info.ImmediateSize == 0 || last.Argument != nil {
					t.Fatalf("consumed %d of %d bytes without a truncated push", consumed, res.ByteLength)
				}
				trailing := res.ByteLength - last.Offset - 1
				if consumed+trailing != res.ByteLength {
					t.Errorf("consumed %d + trailing %d != %d", consumed, trailing, res.ByteLength)
				}
				if len(res.Errors) == 0 {
					t.Error("truncated push produced no error")
				}
			}
		})
	}
}

func TestParseSingleByteSweep(t *testing.T) {
	for v := 0; v <= 0xff; v++ {
		b := byte(v)
		res := Parse([]byte{b})
		if len(res.Instructions) != 1 {
			t.Fatalf("Parse([0x%02x]) produced %d instructions", v, len(res.Instructions))
		}
		inst := res.Instructions[0]

		info, ok := evm.Lookup(b)
		switch {
		case !ok:
			if inst.Mnemonic != UnknownMnemonic || len(res.Errors) != 1 {
				t.Errorf("0x%02x: unassigned byte not flagged: %+v", v, res)
			}
		case info.ImmediateSize > 0:
			if inst.Argument != nil || len(res.Errors) != 1 {
				t.Errorf("0x%02x: lone push should be truncated: %+v", v, res)
			}
			if !strings.Contains(res.Errors[0], "incomplete") {
				t.Errorf("0x%02x: error %q does not report truncation", v, res.Errors[0])
			}
		default:
			if len(res.Errors) != 0 || inst.Argument != nil {
				t.Errorf("0x%02x: simple opcode misparsed: %+v", v, res)
			}
			if inst.Mnemonic != info.Name {
				t.Errorf("0x%02x: mnemonic %q, want %q", v, inst.Mnemonic, info.Name)
			}
		}
	}
}
