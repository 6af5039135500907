// Package disasm decodes EVM bytecode into a linear instruction stream.
//
// Decoding is best-effort: unassigned bytes and truncated push arguments are
// recorded as structural errors in the result rather than aborting the scan,
// so callers always get a partial decode of malformed input.
package disasm

import (
	"fmt"

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/evm"
)

// UnknownMnemonic marks a byte value not assigned to any EVM opcode.
const UnknownMnemonic = "UNKNOWN"

// Instruction is one decoded opcode occurrence.
type Instruction struct {
	Offset      int    // byte position of the opcode byte itself
	Byte        byte   // raw opcode byte value
	Mnemonic    string // catalog name, or UnknownMnemonic
	Description string
	Argument    []byte // push immediate; nil for non-push or truncated push
}

// Result is the aggregate output of one parse. Instructions are in offset
// order; Errors holds one entry per malformed occurrence.
type Result struct {
	Instructions []Instruction
	Errors       []string
	ByteLength   int
}

// Parse walks code in a single pass and decodes every byte. It never fails:
// problems are pushed into Result.Errors and the scan continues.
//
// The cursor advances by 1 + immediate size for each instruction. A push
// whose immediate runs past the end of the buffer is emitted without its
// argument and, since truncation can only happen at the tail, ends the scan.
func Parse(code []byte) Result {
	res := Result{ByteLength: len(code)}

	for pc := 0; pc < len(code); {
		b := code[pc]

		info, ok := evm.Lookup(b)
		if !ok {
			res.Instructions = append(res.Instructions, Instruction{
				Offset:      pc,
				Byte:        b,
				Mnemonic:    UnknownMnemonic,
				Description: "Unknown byte (not an EVM opcode)",
			})
			res.Errors = append(res.Errors, fmt.Sprintf("invalid opcode 0x%02x at offset %d", b, pc))
			pc++
			continue
		}

		inst := Instruction{
			Offset:      pc,
			Byte:        b,
			Mnemonic:    info.Name,
			Description: info.Description,
		}

		if k := info.ImmediateSize; k > 0 {
			if pc+1+k <= len(code) {
				arg := make([]byte, k)
				copy(arg, code[pc+1:pc+1+k])
				inst.Argument = arg
				res.Instructions = append(res.Instructions, inst)
				pc += 1 + k
				continue
			}
			missing := pc + 1 + k - len(code)
			res.Instructions = append(res.Instructions, inst)
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s at offset %d is incomplete (missing %d-byte argument)", info.Name, pc, missing))
			pc = len(code)
			continue
		}

		res.Instructions = append(res.Instructions, inst)
		pc++
	}

	return res
}
