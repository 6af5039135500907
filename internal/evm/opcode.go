// Package evm defines the EVM instruction set catalog used by the
// disassembler. The catalog covers the Shanghai/Cancun opcode range and is
// built once at package init; lookups are allocation-free and safe for
// concurrent readers.
package evm

import "fmt"

// OpCode is a single-byte EVM instruction code.
type OpCode byte

// 0x00 range - arithmetic ops.
const (
	STOP       OpCode = 0x00
	ADD        OpCode = 0x01
	MUL        OpCode = 0x02
	SUB        OpCode = 0x03
	DIV        OpCode = 0x04
	SDIV       OpCode = 0x05
	MOD        OpCode = 0x06
	SMOD       OpCode = 0x07
	ADDMOD     OpCode = 0x08
	MULMOD     OpCode = 0x09
	EXP        OpCode = 0x0a
	SIGNEXTEND OpCode = 0x0b
)

// 0x10 range - comparison and bitwise ops.
const (
	LT     OpCode = 0x10
	GT     OpCode = 0x11
	SLT    OpCode = 0x12
	SGT    OpCode = 0x13
	EQ     OpCode = 0x14
	ISZERO OpCode = 0x15
	AND    OpCode = 0x16
	OR     OpCode = 0x17
	XOR    OpCode = 0x18
	NOT    OpCode = 0x19
	BYTE   OpCode = 0x1a
	SHL    OpCode = 0x1b
	SHR    OpCode = 0x1c
	SAR    OpCode = 0x1d
)

// 0x20 range - crypto.
const (
	SHA3 OpCode = 0x20
)

// 0x30 range - environmental information.
const (
	ADDRESS        OpCode = 0x30
	BALANCE        OpCode = 0x31
	ORIGIN         OpCode = 0x32
	CALLER         OpCode = 0x33
	CALLVALUE      OpCode = 0x34
	CALLDATALOAD   OpCode = 0x35
	CALLDATASIZE   OpCode = 0x36
	CALLDATACOPY   OpCode = 0x37
	CODESIZE       OpCode = 0x38
	CODECOPY       OpCode = 0x39
	GASPRICE       OpCode = 0x3a
	EXTCODESIZE    OpCode = 0x3b
	EXTCODECOPY    OpCode = 0x3c
	RETURNDATASIZE OpCode = 0x3d
	RETURNDATACOPY OpCode = 0x3e
	EXTCODEHASH    OpCode = 0x3f
)

// 0x40 range - block information.
const (
	BLOCKHASH   OpCode = 0x40
	COINBASE    OpCode = 0x41
	TIMESTAMP   OpCode = 0x42
	NUMBER      OpCode = 0x43
	DIFFICULTY  OpCode = 0x44
	GASLIMIT    OpCode = 0x45
	CHAINID     OpCode = 0x46
	SELFBALANCE OpCode = 0x47
	BASEFEE     OpCode = 0x48
	BLOBHASH    OpCode = 0x49
	BLOBBASEFEE OpCode = 0x4a
)

// 0x50 range - stack, memory, storage and flow ops.
const (
	POP      OpCode = 0x50
	MLOAD    OpCode = 0x51
	MSTORE   OpCode = 0x52
	MSTORE8  OpCode = 0x53
	SLOAD    OpCode = 0x54
	SSTORE   OpCode = 0x55
	JUMP     OpCode = 0x56
	JUMPI    OpCode = 0x57
	PC       OpCode = 0x58
	MSIZE    OpCode = 0x59
	GAS      OpCode = 0x5a
	JUMPDEST OpCode = 0x5b
	TLOAD    OpCode = 0x5c
	TSTORE   OpCode = 0x5d
	MCOPY    OpCode = 0x5e
	PUSH0    OpCode = 0x5f
)

// 0x60 and 0x70 ranges - push ops. PUSH1 through PUSH32 carry 1 to 32
// immediate argument bytes in the instruction stream.
const (
	PUSH1  OpCode = 0x60
	PUSH32 OpCode = 0x7f
)

// 0x80 range - duplication ops.
const (
	DUP1  OpCode = 0x80
	DUP16 OpCode = 0x8f
)

// 0x90 range - exchange ops.
const (
	SWAP1  OpCode = 0x90
	SWAP16 OpCode = 0x9f
)

// 0xa0 range - logging ops.
const (
	LOG0 OpCode = 0xa0
	LOG4 OpCode = 0xa4
)

// 0xf0 range - system ops.
const (
	CREATE       OpCode = 0xf0
	CALL         OpCode = 0xf1
	CALLCODE     OpCode = 0xf2
	RETURN       OpCode = 0xf3
	DELEGATECALL OpCode = 0xf4
	CREATE2      OpCode = 0xf5
	STATICCALL   OpCode = 0xfa
	REVERT       OpCode = 0xfd
	INVALID      OpCode = 0xfe
	SELFDESTRUCT OpCode = 0xff
)

// Version is the hard fork whose instruction set the catalog covers.
const Version = "Shanghai/Cancun"

// Info describes a single catalog entry.
type Info struct {
	Name          string
	Description   string
	ImmediateSize int // nonzero only for PUSH1..PUSH32
}

var catalog [256]*Info

type entry struct {
	op   OpCode
	name string
	desc string
}

func init() {
	entries := []entry{
		{STOP, "STOP", "Halts execution"},
		{ADD, "ADD", "Addition operation"},
		{MUL, "MUL", "Multiplication operation"},
		{SUB, "SUB", "Subtraction operation"},
		{DIV, "DIV", "Integer division operation"},
		{SDIV, "SDIV", "Signed integer division operation"},
		{MOD, "MOD", "Modulo remainder operation"},
		{SMOD, "SMOD", "Signed modulo remainder operation"},
		{ADDMOD, "ADDMOD", "Modulo addition operation"},
		{MULMOD, "MULMOD", "Modulo multiplication operation"},
		{EXP, "EXP", "Exponential operation"},
		{SIGNEXTEND, "SIGNEXTEND", "Extend length of two's complement signed integer"},

		{LT, "LT", "Less-than comparison"},
		{GT, "GT", "Greater-than comparison"},
		{SLT, "SLT", "Signed less-than comparison"},
		{SGT, "SGT", "Signed greater-than comparison"},
		{EQ, "EQ", "Equality comparison"},
		{ISZERO, "ISZERO", "Simple not operator"},
		{AND, "AND", "Bitwise AND operation"},
		{OR, "OR", "Bitwise OR operation"},
		{XOR, "XOR", "Bitwise XOR operation"},
		{NOT, "NOT", "Bitwise NOT operation"},
		{BYTE, "BYTE", "Retrieve single byte from word"},
		{SHL, "SHL", "Shift left operation"},
		{SHR, "SHR", "Logical shift right operation"},
		{SAR, "SAR", "Arithmetic shift right operation"},

		{SHA3, "SHA3", "Compute Keccak-256 hash"},

		{ADDRESS, "ADDRESS", "Get address of currently executing account"},
		{BALANCE, "BALANCE", "Get balance of the given account"},
		{ORIGIN, "ORIGIN", "Get execution origination address"},
		{CALLER, "CALLER", "Get caller address"},
		{CALLVALUE, "CALLVALUE", "Get deposited value by the instruction/transaction"},
		{CALLDATALOAD, "CALLDATALOAD", "Get input data of current environment"},
		{CALLDATASIZE, "CALLDATASIZE", "Get size of input data"},
		{CALLDATACOPY, "CALLDATACOPY", "Copy input data to memory"},
		{CODESIZE, "CODESIZE", "Get size of code running in current environment"},
		{CODECOPY, "CODECOPY", "Copy code running in current environment to memory"},
		{GASPRICE, "GASPRICE", "Get price of gas in current environment"},
		{EXTCODESIZE, "EXTCODESIZE", "Get size of an account's code"},
		{EXTCODECOPY, "EXTCODECOPY", "Copy an account's code to memory"},
		{RETURNDATASIZE, "RETURNDATASIZE", "Get size of output data from the previous call"},
		{RETURNDATACOPY, "RETURNDATACOPY", "Copy output data from the previous call to memory"},
		{EXTCODEHASH, "EXTCODEHASH", "Get hash of an account's code"},

		{BLOCKHASH, "BLOCKHASH", "Get the hash of one of the 256 most recent complete blocks"},
		{COINBASE, "COINBASE", "Get the block's beneficiary address"},
		{TIMESTAMP, "TIMESTAMP", "Get the block's timestamp"},
		{NUMBER, "NUMBER", "Get the block's number"},
		{DIFFICULTY, "DIFFICULTY", "Get the block's difficulty (pre-merge) or PREVRANDAO (post-merge)"},
		{GASLIMIT, "GASLIMIT", "Get the block's gas limit"},
		{CHAINID, "CHAINID", "Get the chain ID"},
		{SELFBALANCE, "SELFBALANCE", "Get balance of currently executing account"},
		{BASEFEE, "BASEFEE", "Get the base fee"},
		{BLOBHASH, "BLOBHASH", "Get versioned hash of a transaction blob"},
		{BLOBBASEFEE, "BLOBBASEFEE", "Get the blob base fee"},

		{POP, "POP", "Remove item from stack"},
		{MLOAD, "MLOAD", "Load word from memory"},
		{MSTORE, "MSTORE", "Save word to memory"},
		{MSTORE8, "MSTORE8", "Save byte to memory"},
		{SLOAD, "SLOAD", "Load word from storage"},
		{SSTORE, "SSTORE", "Save word to storage"},
		{JUMP, "JUMP", "Alter the program counter"},
		{JUMPI, "JUMPI", "Conditionally alter the program counter"},
		{PC, "PC", "Get the value of the program counter"},
		{MSIZE, "MSIZE", "Get the size of active memory in bytes"},
		{GAS, "GAS", "Get the amount of available gas"},
		{JUMPDEST, "JUMPDEST", "Mark a valid destination for jumps"},
		{TLOAD, "TLOAD", "Load word from transient storage"},
		{TSTORE, "TSTORE", "Save word to transient storage"},
		{MCOPY, "MCOPY", "Copy memory area to memory"},
		{PUSH0, "PUSH0", "Place 0 on stack"},

		{CREATE, "CREATE", "Create a new account with associated code"},
		{CALL, "CALL", "Message-call into an account"},
		{CALLCODE, "CALLCODE", "Message-call into this account with alternative account's code"},
		{RETURN, "RETURN", "Halt execution returning output data"},
		{DELEGATECALL, "DELEGATECALL", "Message-call into this account with alternative account's code (preserving sender and value)"},
		{CREATE2, "CREATE2", "Create a new account with associated code at a predictable address"},
		{STATICCALL, "STATICCALL", "Static message-call into an account"},
		{REVERT, "REVERT", "Halt execution reverting state changes"},
		{INVALID, "INVALID", "Designated invalid instruction"},
		{SELFDESTRUCT, "SELFDESTRUCT", "Halt execution and register account for later deletion"},
	}
	for _, e := range entries {
		catalog[e.op] = &Info{Name: e.name, Description: e.desc}
	}

	// The run-length encoded families.
	for i := 1; i <= 32; i++ {
		op := PUSH1 + OpCode(i-1)
		catalog[op] = &Info{
			Name:          fmt.Sprintf("PUSH%d", i),
			Description:   fmt.Sprintf("Place %s item on stack", byteWord(i)),
			ImmediateSize: i,
		}
	}
	for i := 1; i <= 16; i++ {
		op := DUP1 + OpCode(i-1)
		catalog[op] = &Info{
			Name:        fmt.Sprintf("DUP%d", i),
			Description: fmt.Sprintf("Duplicate %s stack item", ordinal(i)),
		}
	}
	for i := 1; i <= 16; i++ {
		op := SWAP1 + OpCode(i-1)
		catalog[op] = &Info{
			Name:        fmt.Sprintf("SWAP%d", i),
			Description: fmt.Sprintf("Exchange 1st and %s stack items", ordinal(i+1)),
		}
	}
	for i := 0; i <= 4; i++ {
		op := LOG0 + OpCode(i)
		topics := "topics"
		if i == 1 {
			topics = "topic"
		}
		catalog[op] = &Info{
			Name:        fmt.Sprintf("LOG%d", i),
			Description: fmt.Sprintf("Append log record with %d %s", i, topics),
		}
	}
}

func byteWord(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}

func ordinal(n int) string {
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			return fmt.Sprintf("%dst", n)
		}
	case 2:
		if n%100 != 12 {
			return fmt.Sprintf("%dnd", n)
		}
	case 3:
		if n%100 != 13 {
			return fmt.Sprintf("%drd", n)
		}
	}
	return fmt.Sprintf("%dth", n)
}

// Lookup returns the catalog entry for a byte value. The second return is
// false for byte values not assigned to any opcode, which is distinct from a
// recognized opcode with zero immediate bytes.
func Lookup(b byte) (Info, bool) {
	info := catalog[b]
	if info == nil {
		return Info{}, false
	}
	return *info, true
}

// IsPush reports whether b is one of the push-family opcodes PUSH0-PUSH32.
func IsPush(b byte) bool {
	return OpCode(b) >= PUSH0 && OpCode(b) <= PUSH32
}

// PushSize returns the number of immediate argument bytes a push opcode
// consumes: 0 for PUSH0, 1..32 for PUSH1..PUSH32, and 0 for non-push bytes.
func PushSize(b byte) int {
	if OpCode(b) >= PUSH1 && OpCode(b) <= PUSH32 {
		return int(OpCode(b)-PUSH1) + 1
	}
	return 0
}

// Count returns the number of assigned opcodes in the catalog.
func Count() int {
	n := 0
	for _, info := range catalog {
		if info != nil {
			n++
		}
	}
	return n
}

// String returns the mnemonic for op, or a hex marker for unassigned bytes.
func (op OpCode) String() string {
	if info := catalog[op]; info != nil {
		return info.Name
	}
	return fmt.Sprintf("opcode 0x%02x not defined", byte(op))
}
