package isa

// Inst is a decoded instruction. It is produced fresh by Decode and is a
// pure function of the instruction word.
type Inst struct {
	Op     Opcode
	Format Format
	Ra     int   // First register field (destination, or store source).
	Rb     int   // Second register field (base or left comparand).
	Rc     int   // Third register field (register-register form only).
	Imm    int32 // Immediate, sign- or zero-extended per format.
	Raw    Word  // Original instruction word.
	Size   int   // Instruction length in bytes.
}

// Decode decodes a single instruction word.
//
// Unassigned opcodes, non-zero reserved fields, and out-of-range shift
// amounts fail here with an ErrIllegal; a word that decodes once decodes
// identically forever.
func Decode(word Word) (inst Inst, err error) {
	op := Opcode(word >> OPCODE_OFFSET)
	if !op.Assigned() {
		err = ErrIllegal{Word: word, Reason: REASON_UNASSIGNED_OPCODE}
		return
	}

	inst = Inst{
		Op:     op,
		Format: op.Layout(),
		Ra:     int((word & RA_MASK) >> RA_OFFSET),
		Rb:     int((word & RB_MASK) >> RB_OFFSET),
		Raw:    word,
		Size:   WORD_SIZE,
	}

	switch inst.Format {
	case FORMAT_REG:
		if word&RESERVED_MASK != 0 {
			err = ErrIllegal{Word: word, Reason: REASON_NONZERO_RESERVED}
			return
		}
		inst.Rc = int((word & RC_MASK) >> RC_OFFSET)

	case FORMAT_IMM, FORMAT_LOAD, FORMAT_STORE, FORMAT_BRANCH, FORMAT_JUMPR:
		inst.Imm = SignExtend(word&IMM_MASK, 18)

	case FORMAT_SHIFT:
		amount := word & IMM_MASK
		if amount > SHIFT_MAX {
			err = ErrIllegal{Word: word, Reason: REASON_SHIFT_RANGE}
			return
		}
		inst.Imm = int32(amount)

	case FORMAT_UPPER:
		// rb is reserved; the immediate fills the upper bits.
		if word&RB_MASK != 0 {
			err = ErrIllegal{Word: word, Reason: REASON_NONZERO_RESERVED}
			return
		}
		inst.Rb = 0
		inst.Imm = int32(word & IMM_MASK)

	case FORMAT_JUMP:
		if word&RB_MASK != 0 {
			err = ErrIllegal{Word: word, Reason: REASON_NONZERO_RESERVED}
			return
		}
		inst.Rb = 0
		inst.Imm = SignExtend(word&IMM_MASK, 18)

	case FORMAT_CALL:
		if word&(RA_MASK|RB_MASK) != 0 {
			err = ErrIllegal{Word: word, Reason: REASON_NONZERO_OPERANDS}
			return
		}
		inst.Ra = 0
		inst.Imm = int32(word & IMM_MASK)

	case FORMAT_BASIC:
		if word&^OPCODE_MASK != 0 {
			err = ErrIllegal{Word: word, Reason: REASON_NONZERO_OPERANDS}
			return
		}
	}

	return
}

// BranchTarget returns the PC-relative target of a branch or jump at `pc`.
func (inst Inst) BranchTarget(pc Address) Address {
	return pc + Address(inst.Imm)*WORD_SIZE
}
