// Package format shapes parse results for presentation: the JSON structure
// consumed by tooling and the assembly-style text listing shown in the
// terminal.
package format

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/disasm"
)

// OpcodeEntry is one instruction in the JSON output.
type OpcodeEntry struct {
	Offset      int    `json:"offset"`
	Opcode      string `json:"opcode"`
	Value       string `json:"value"`
	Argument    string `json:"argument,omitempty"`
	Description string `json:"description"`
}

// Metadata carries parse statistics and the accumulated structural errors.
type Metadata struct {
	TotalOpcodes  int      `json:"total_opcodes"`
	ParsingErrors []string `json:"parsing_errors"`
}

// Output is the complete JSON output structure.
type Output struct {
	Bytecode string        `json:"bytecode"`
	Length   int           `json:"length"`
	Opcodes  []OpcodeEntry `json:"opcodes"`
	Metadata Metadata      `json:"metadata"`
}

// Build converts a parse result into the output structure. code is the
// validated byte sequence the result was parsed from.
func Build(res disasm.Result, code []byte) Output {
	entries := make([]OpcodeEntry, 0, len(res.Instructions))
	for _, inst := range res.Instructions {
		entry := OpcodeEntry{
			Offset:      inst.Offset,
			Opcode:      inst.Mnemonic,
			Value:       fmt.Sprintf("0x%02x", inst.Byte),
			Description: inst.Description,
		}
		if inst.Argument != nil {
			entry.Argument = "0x" + hex.EncodeToString(inst.Argument)
		}
		entries = append(entries, entry)
	}

	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}

	return Output{
		Bytecode: "0x" + hex.EncodeToString(code),
		Length:   res.ByteLength,
		Opcodes:  entries,
		Metadata: Metadata{
			TotalOpcodes:  len(entries),
			ParsingErrors: errs,
		},
	}
}

// JSON renders the output structure with two-space indentation.
func JSON(res disasm.Result, code []byte) (string, error) {
	bts, err := json.MarshalIndent(Build(res, code), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(bts), nil
}

// Listing renders an assembly-style text listing, one instruction per line:
// hex offset, mnemonic, and the push immediate when present. Structural
// errors follow as comment lines.
func Listing(res disasm.Result) string {
	var b strings.Builder
	for _, inst := range res.Instructions {
		if inst.Argument != nil {
			fmt.Fprintf(&b, "%08x  %-14s 0x%s\n", inst.Offset, inst.Mnemonic, hex.EncodeToString(inst.Argument))
		} else {
			fmt.Fprintf(&b, "%08x  %s\n", inst.Offset, inst.Mnemonic)
		}
	}
	for _, e := range res.Errors {
		fmt.Fprintf(&b, "; %s\n", e)
	}
	return b.String()
}
