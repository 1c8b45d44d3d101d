package isa

import (
	"fmt"
)

// String returns the assembly representation of the decoded instruction.
func (inst Inst) String() (out string) {
	mn := inst.Op.Mnemonic()

	switch inst.Format {
	case FORMAT_REG:
		out = fmt.Sprintf("%s r%d, r%d, r%d", mn, inst.Ra, inst.Rb, inst.Rc)
	case FORMAT_IMM:
		out = fmt.Sprintf("%s r%d, r%d, %d", mn, inst.Ra, inst.Rb, inst.Imm)
	case FORMAT_SHIFT:
		out = fmt.Sprintf("%s r%d, r%d, %d", mn, inst.Ra, inst.Rb, inst.Imm)
	case FORMAT_UPPER:
		out = fmt.Sprintf("%s r%d, 0x%x", mn, inst.Ra, uint32(inst.Imm))
	case FORMAT_LOAD:
		out = fmt.Sprintf("%s r%d, %d(r%d)", mn, inst.Ra, inst.Imm, inst.Rb)
	case FORMAT_STORE:
		out = fmt.Sprintf("%s r%d, %d(r%d)", mn, inst.Ra, inst.Imm, inst.Rb)
	case FORMAT_BRANCH:
		out = fmt.Sprintf("%s r%d, r%d, %+d", mn, inst.Ra, inst.Rb, inst.Imm*WORD_SIZE)
	case FORMAT_JUMP:
		out = fmt.Sprintf("%s r%d, %+d", mn, inst.Ra, inst.Imm*WORD_SIZE)
	case FORMAT_JUMPR:
		out = fmt.Sprintf("%s r%d, %d(r%d)", mn, inst.Ra, inst.Imm, inst.Rb)
	case FORMAT_CALL:
		out = fmt.Sprintf("%s %d", mn, inst.Imm)
	case FORMAT_BASIC:
		out = mn
	default:
		out = fmt.Sprintf("%s 0x%08x", mn, inst.Raw)
	}

	return
}

// Disassemble decodes and formats a raw instruction word, rendering
// undecodable words as data.
func Disassemble(word Word) string {
	inst, err := Decode(word)
	if err != nil {
		return fmt.Sprintf(".word 0x%08x", word)
	}

	return inst.String()
}
