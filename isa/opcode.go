package isa

// Opcode is a 6-bit instruction opcode.
type Opcode int

// Opcode assignments. Values not listed here are unassigned and reserved;
// decoding them is an illegal-instruction fault.
const (
	// Register-register ALU operations (ra, rb, rc).
	OP_ADD  = Opcode(0x01)
	OP_SUB  = Opcode(0x02)
	OP_AND  = Opcode(0x03)
	OP_OR   = Opcode(0x04)
	OP_XOR  = Opcode(0x05)
	OP_SLL  = Opcode(0x06)
	OP_SRL  = Opcode(0x07)
	OP_SRA  = Opcode(0x08)
	OP_SLT  = Opcode(0x09)
	OP_SLTU = Opcode(0x0a)
	OP_MUL  = Opcode(0x0b)
	OP_DIV  = Opcode(0x0c)
	OP_DIVU = Opcode(0x0d)
	OP_REM  = Opcode(0x0e)
	OP_REMU = Opcode(0x0f)

	// Register-immediate ALU operations (ra, rb, imm).
	OP_ADDI  = Opcode(0x10)
	OP_ANDI  = Opcode(0x11)
	OP_ORI   = Opcode(0x12)
	OP_XORI  = Opcode(0x13)
	OP_SLLI  = Opcode(0x14)
	OP_SRLI  = Opcode(0x15)
	OP_SRAI  = Opcode(0x16)
	OP_SLTI  = Opcode(0x17)
	OP_SLTIU = Opcode(0x18)
	OP_LUI   = Opcode(0x19)

	// Loads (ra, rb, imm): address is rb + imm.
	OP_LB  = Opcode(0x1a)
	OP_LBU = Opcode(0x1b)
	OP_LH  = Opcode(0x1c)
	OP_LHU = Opcode(0x1d)
	OP_LW  = Opcode(0x1e)

	// Stores (ra, rb, imm): ra is the source, address is rb + imm.
	OP_SB = Opcode(0x20)
	OP_SH = Opcode(0x21)
	OP_SW = Opcode(0x22)

	// Branches (ra, rb, imm): compare ra and rb, offset in words.
	OP_BEQ  = Opcode(0x24)
	OP_BNE  = Opcode(0x25)
	OP_BLT  = Opcode(0x26)
	OP_BGE  = Opcode(0x27)
	OP_BLTU = Opcode(0x28)
	OP_BGEU = Opcode(0x29)

	// Jumps.
	OP_JAL  = Opcode(0x2a) // ra = pc+4, pc += imm words
	OP_JALR = Opcode(0x2b) // ra = pc+4, pc = rb + imm bytes

	// System instructions.
	OP_ECALL = Opcode(0x30) // trap-call with an 18-bit call code
	OP_TRET  = Opcode(0x31) // trap-return
	OP_NOP   = Opcode(0x3e)
	OP_HALT  = Opcode(0x3f)
)

// Format is the operand layout of an instruction.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_REG    = Format(0)  // reg
	FORMAT_IMM    = Format(1)  // imm
	FORMAT_SHIFT  = Format(2)  // shift
	FORMAT_UPPER  = Format(3)  // upper
	FORMAT_LOAD   = Format(4)  // load
	FORMAT_STORE  = Format(5)  // store
	FORMAT_BRANCH = Format(6)  // branch
	FORMAT_JUMP   = Format(7)  // jump
	FORMAT_JUMPR  = Format(8)  // jumpr
	FORMAT_CALL   = Format(9)  // call
	FORMAT_BASIC  = Format(10) // basic
)

type descriptor struct {
	Mnemonic string
	Format   Format
	Width    Width // Access width for loads and stores, else zero.
	Unsigned bool  // Zero-extend the loaded value.
}

// Unassigned entries have an empty mnemonic.
var opcodeTable = [OPCODE_MASK>>OPCODE_OFFSET + 1]descriptor{
	OP_ADD:  {"add", FORMAT_REG, 0, false},
	OP_SUB:  {"sub", FORMAT_REG, 0, false},
	OP_AND:  {"and", FORMAT_REG, 0, false},
	OP_OR:   {"or", FORMAT_REG, 0, false},
	OP_XOR:  {"xor", FORMAT_REG, 0, false},
	OP_SLL:  {"sll", FORMAT_REG, 0, false},
	OP_SRL:  {"srl", FORMAT_REG, 0, false},
	OP_SRA:  {"sra", FORMAT_REG, 0, false},
	OP_SLT:  {"slt", FORMAT_REG, 0, false},
	OP_SLTU: {"sltu", FORMAT_REG, 0, false},
	OP_MUL:  {"mul", FORMAT_REG, 0, false},
	OP_DIV:  {"div", FORMAT_REG, 0, false},
	OP_DIVU: {"divu", FORMAT_REG, 0, false},
	OP_REM:  {"rem", FORMAT_REG, 0, false},
	OP_REMU: {"remu", FORMAT_REG, 0, false},

	OP_ADDI:  {"addi", FORMAT_IMM, 0, false},
	OP_ANDI:  {"andi", FORMAT_IMM, 0, false},
	OP_ORI:   {"ori", FORMAT_IMM, 0, false},
	OP_XORI:  {"xori", FORMAT_IMM, 0, false},
	OP_SLLI:  {"slli", FORMAT_SHIFT, 0, false},
	OP_SRLI:  {"srli", FORMAT_SHIFT, 0, false},
	OP_SRAI:  {"srai", FORMAT_SHIFT, 0, false},
	OP_SLTI:  {"slti", FORMAT_IMM, 0, false},
	OP_SLTIU: {"sltiu", FORMAT_IMM, 0, false},
	OP_LUI:   {"lui", FORMAT_UPPER, 0, false},

	OP_LB:  {"lb", FORMAT_LOAD, WIDTH_BYTE, false},
	OP_LBU: {"lbu", FORMAT_LOAD, WIDTH_BYTE, true},
	OP_LH:  {"lh", FORMAT_LOAD, WIDTH_HALF, false},
	OP_LHU: {"lhu", FORMAT_LOAD, WIDTH_HALF, true},
	OP_LW:  {"lw", FORMAT_LOAD, WIDTH_WORD, false},

	OP_SB: {"sb", FORMAT_STORE, WIDTH_BYTE, false},
	OP_SH: {"sh", FORMAT_STORE, WIDTH_HALF, false},
	OP_SW: {"sw", FORMAT_STORE, WIDTH_WORD, false},

	OP_BEQ:  {"beq", FORMAT_BRANCH, 0, false},
	OP_BNE:  {"bne", FORMAT_BRANCH, 0, false},
	OP_BLT:  {"blt", FORMAT_BRANCH, 0, false},
	OP_BGE:  {"bge", FORMAT_BRANCH, 0, false},
	OP_BLTU: {"bltu", FORMAT_BRANCH, 0, true},
	OP_BGEU: {"bgeu", FORMAT_BRANCH, 0, true},

	OP_JAL:  {"jal", FORMAT_JUMP, 0, false},
	OP_JALR: {"jalr", FORMAT_JUMPR, 0, false},

	OP_ECALL: {"ecall", FORMAT_CALL, 0, false},
	OP_TRET:  {"tret", FORMAT_BASIC, 0, false},
	OP_NOP:   {"nop", FORMAT_BASIC, 0, false},
	OP_HALT:  {"halt", FORMAT_BASIC, 0, false},
}

// Assigned returns true if the opcode names an implemented instruction.
func (op Opcode) Assigned() bool {
	return op >= 0 && int(op) < len(opcodeTable) && opcodeTable[op].Mnemonic != ""
}

// Mnemonic returns the assembly mnemonic, or "?" for unassigned opcodes.
func (op Opcode) Mnemonic() string {
	if !op.Assigned() {
		return "?"
	}
	return opcodeTable[op].Mnemonic
}

// Layout returns the operand format of the opcode.
func (op Opcode) Layout() Format {
	return opcodeTable[op].Format
}

// AccessWidth returns the memory access width of a load or store opcode.
func (op Opcode) AccessWidth() Width {
	return opcodeTable[op].Width
}

// Unsigned returns true for zero-extending loads and unsigned compares.
func (op Opcode) Unsigned() bool {
	return opcodeTable[op].Unsigned
}
