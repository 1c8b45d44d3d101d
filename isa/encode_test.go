package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		word func() (Word, error)
		op   Opcode
		ra   int
		rb   int
		rc   int
		imm  int32
	}){
		{"add", func() (Word, error) { return MakeReg(OP_ADD, 1, 2, 3) }, OP_ADD, 1, 2, 3, 0},
		{"sub", func() (Word, error) { return MakeReg(OP_SUB, 15, 14, 13) }, OP_SUB, 15, 14, 13, 0},
		{"divu", func() (Word, error) { return MakeReg(OP_DIVU, 4, 5, 6) }, OP_DIVU, 4, 5, 6, 0},
		{"addi", func() (Word, error) { return MakeImm(OP_ADDI, 1, 0, 42) }, OP_ADDI, 1, 0, 0, 42},
		{"addi_min", func() (Word, error) { return MakeImm(OP_ADDI, 1, 0, -131072) }, OP_ADDI, 1, 0, 0, -131072},
		{"addi_max", func() (Word, error) { return MakeImm(OP_ADDI, 1, 0, 131071) }, OP_ADDI, 1, 0, 0, 131071},
		{"xori", func() (Word, error) { return MakeImm(OP_XORI, 7, 8, -1) }, OP_XORI, 7, 8, 0, -1},
		{"srai", func() (Word, error) { return MakeShift(OP_SRAI, 2, 3, 17) }, OP_SRAI, 2, 3, 0, 17},
		{"slli_zero", func() (Word, error) { return MakeShift(OP_SLLI, 2, 3, 0) }, OP_SLLI, 2, 3, 0, 0},
		{"lui", func() (Word, error) { return MakeUpper(9, 0x12345) }, OP_LUI, 9, 0, 0, 0x12345},
		{"lb", func() (Word, error) { return MakeLoad(OP_LB, 1, 2, -3) }, OP_LB, 1, 2, 0, -3},
		{"lhu", func() (Word, error) { return MakeLoad(OP_LHU, 1, 2, 6) }, OP_LHU, 1, 2, 0, 6},
		{"sh", func() (Word, error) { return MakeStore(OP_SH, 3, 4, 2) }, OP_SH, 3, 4, 0, 2},
		{"beq", func() (Word, error) { return MakeBranch(OP_BEQ, 1, 2, 16) }, OP_BEQ, 1, 2, 0, 4},
		{"bgeu", func() (Word, error) { return MakeBranch(OP_BGEU, 1, 2, -16) }, OP_BGEU, 1, 2, 0, -4},
		{"jal", func() (Word, error) { return MakeJal(5, 400) }, OP_JAL, 5, 0, 0, 100},
		{"jalr", func() (Word, error) { return MakeJalr(5, 6, 2) }, OP_JALR, 5, 6, 0, 2},
		{"ecall", func() (Word, error) { return MakeCall(7) }, OP_ECALL, 0, 0, 0, 7},
		{"tret", func() (Word, error) { return MakeBasic(OP_TRET), nil }, OP_TRET, 0, 0, 0, 0},
		{"halt", func() (Word, error) { return MakeBasic(OP_HALT), nil }, OP_HALT, 0, 0, 0, 0},
	}

	for _, entry := range table {
		word, err := entry.word()
		assert.NoError(err, entry.name)

		inst, err := Decode(word)
		assert.NoError(err, entry.name)
		assert.Equal(entry.op, inst.Op, entry.name)
		assert.Equal(entry.ra, inst.Ra, entry.name)
		assert.Equal(entry.rb, inst.Rb, entry.name)
		assert.Equal(entry.rc, inst.Rc, entry.name)
		assert.Equal(entry.imm, inst.Imm, entry.name)
	}
}

func TestEncodeRejects(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		word func() (Word, error)
		err  error
	}){
		{"reg_low", func() (Word, error) { return MakeReg(OP_ADD, -1, 0, 0) }, ErrRegisterRange},
		{"reg_high", func() (Word, error) { return MakeReg(OP_ADD, 0, 16, 0) }, ErrRegisterRange},
		{"imm_low", func() (Word, error) { return MakeImm(OP_ADDI, 1, 0, -131073) }, ErrImmediateRange},
		{"imm_high", func() (Word, error) { return MakeImm(OP_ADDI, 1, 0, 131072) }, ErrImmediateRange},
		{"shift_high", func() (Word, error) { return MakeShift(OP_SLLI, 1, 0, 32) }, ErrShiftRange},
		{"shift_low", func() (Word, error) { return MakeShift(OP_SLLI, 1, 0, -1) }, ErrShiftRange},
		{"upper_range", func() (Word, error) { return MakeUpper(1, 0x40000) }, ErrImmediateRange},
		{"branch_unaligned", func() (Word, error) { return MakeBranch(OP_BEQ, 1, 2, 6) }, ErrOffsetAligned},
		{"jal_unaligned", func() (Word, error) { return MakeJal(1, 2) }, ErrOffsetAligned},
		{"call_range", func() (Word, error) { return MakeCall(0x40000) }, ErrImmediateRange},
	}

	for _, entry := range table {
		_, err := entry.word()
		assert.ErrorIs(err, entry.err, entry.name)
	}
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		word func() (Word, error)
		text string
	}){
		{"add", func() (Word, error) { return MakeReg(OP_ADD, 1, 2, 3) }, "add r1, r2, r3"},
		{"addi", func() (Word, error) { return MakeImm(OP_ADDI, 1, 1, -7) }, "addi r1, r1, -7"},
		{"lui", func() (Word, error) { return MakeUpper(4, 0xff) }, "lui r4, 0xff"},
		{"lw", func() (Word, error) { return MakeLoad(OP_LW, 1, 2, 8) }, "lw r1, 8(r2)"},
		{"sb", func() (Word, error) { return MakeStore(OP_SB, 1, 2, -1) }, "sb r1, -1(r2)"},
		{"bne", func() (Word, error) { return MakeBranch(OP_BNE, 1, 2, -12) }, "bne r1, r2, -12"},
		{"jal", func() (Word, error) { return MakeJal(1, 8) }, "jal r1, +8"},
		{"jalr", func() (Word, error) { return MakeJalr(0, 5, 0) }, "jalr r0, 0(r5)"},
		{"ecall", func() (Word, error) { return MakeCall(2) }, "ecall 2"},
		{"nop", func() (Word, error) { return MakeBasic(OP_NOP), nil }, "nop"},
	}

	for _, entry := range table {
		word, err := entry.word()
		assert.NoError(err, entry.name)
		assert.Equal(entry.text, Disassemble(word), entry.name)
	}

	assert.Equal(".word 0x00000000", Disassemble(0))
}
