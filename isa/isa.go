package isa

// Word is a single machine word. Registers, memory addresses, and
// instruction encodings are all one word wide.
type Word = uint32

// Address is a byte address into the machine address space.
type Address = uint32

const (
	WORD_SIZE     = 4  // Size of a machine word in bytes.
	NUM_REGISTERS = 16 // Number of general-purpose registers.
)

// Instruction word layout.
//
//	[31-26] [25-22] [21-18] [17-14] [13-0]
//	opcode    ra      rb      rc    reserved
//
// Register-register instructions name three registers `ra`, `rb`, `rc` and
// require the reserved bits to be zero. All other instructions replace `rc`
// and the reserved bits with an 18-bit immediate in [17-0]:
//
//	[31-26] [25-22] [21-18] [17-0]
//	opcode    ra      rb     imm
//
// Arithmetic, load, store, branch, and jump immediates are sign-extended.
// Shift amounts are zero-extended and must not exceed 31. Branch and jump
// offsets are counted in words and scaled by the instruction size.
const (
	OPCODE_OFFSET = 26
	OPCODE_MASK   = Word(0x3f) << OPCODE_OFFSET

	RA_OFFSET = 22
	RA_MASK   = Word(0xf) << RA_OFFSET

	RB_OFFSET = 18
	RB_MASK   = Word(0xf) << RB_OFFSET

	RC_OFFSET = 14
	RC_MASK   = Word(0xf) << RC_OFFSET

	IMM_MASK = Word(0x3ffff)
	IMM_SIGN = Word(0x20000)

	RESERVED_MASK = Word(0x3fff) // Must be zero in register-register form.

	SHIFT_MAX = 31 // Largest encodable shift amount.

	UPPER_SHIFT = 14 // Upper-immediate operand position in the result.
)

// Width is the size in bytes of a memory access.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	WIDTH_BYTE = Width(1) // byte
	WIDTH_HALF = Width(2) // half
	WIDTH_WORD = Width(4) // word
)

// Aligned returns true if the address is a multiple of the access width.
func Aligned(addr Address, width Width) bool {
	return addr%Address(width) == 0
}

// SignExtend extends the low `bits` bits of a word to a signed 32-bit value.
func SignExtend(value Word, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}
