package isa

// Encoder constructors. These are the inverse of Decode and are used by the
// loader collaborators and the test harness; Decode(MakeX(...)) yields the
// operation, operands, and immediate that were passed in.

func checkReg(regs ...int) (err error) {
	for _, r := range regs {
		if r < 0 || r >= NUM_REGISTERS {
			return ErrRegisterRange
		}
	}
	return
}

func fitsSigned(imm int32) bool {
	return imm >= -int32(IMM_SIGN) && imm < int32(IMM_SIGN)
}

func pack(op Opcode, ra, rb int) Word {
	return Word(op)<<OPCODE_OFFSET | Word(ra)<<RA_OFFSET | Word(rb)<<RB_OFFSET
}

// MakeReg encodes a register-register ALU instruction.
func MakeReg(op Opcode, rd, rs1, rs2 int) (word Word, err error) {
	if err = checkReg(rd, rs1, rs2); err != nil {
		return
	}

	word = pack(op, rd, rs1) | Word(rs2)<<RC_OFFSET
	return
}

// MakeImm encodes a register-immediate ALU instruction.
func MakeImm(op Opcode, rd, rs1 int, imm int32) (word Word, err error) {
	if err = checkReg(rd, rs1); err != nil {
		return
	}
	if !fitsSigned(imm) {
		err = ErrImmediateRange
		return
	}

	word = pack(op, rd, rs1) | Word(imm)&IMM_MASK
	return
}

// MakeShift encodes a shift-immediate instruction. The shift amount is
// zero-extended and limited to SHIFT_MAX.
func MakeShift(op Opcode, rd, rs1, amount int) (word Word, err error) {
	if err = checkReg(rd, rs1); err != nil {
		return
	}
	if amount < 0 || amount > SHIFT_MAX {
		err = ErrShiftRange
		return
	}

	word = pack(op, rd, rs1) | Word(amount)
	return
}

// MakeUpper encodes a load-upper-immediate instruction. The 18-bit value
// fills bits [31-14] of the destination register.
func MakeUpper(rd int, imm Word) (word Word, err error) {
	if err = checkReg(rd); err != nil {
		return
	}
	if imm > IMM_MASK {
		err = ErrImmediateRange
		return
	}

	word = pack(OP_LUI, rd, 0) | imm
	return
}

// MakeLoad encodes a load instruction. The effective address is base + off.
func MakeLoad(op Opcode, rd, base int, off int32) (word Word, err error) {
	return MakeImm(op, rd, base, off)
}

// MakeStore encodes a store instruction. The value of src is written to
// base + off.
func MakeStore(op Opcode, src, base int, off int32) (word Word, err error) {
	return MakeImm(op, src, base, off)
}

// MakeBranch encodes a conditional branch comparing rs1 and rs2. The offset
// is PC-relative in bytes and must be word aligned.
func MakeBranch(op Opcode, rs1, rs2 int, off int32) (word Word, err error) {
	if err = checkReg(rs1, rs2); err != nil {
		return
	}
	if off%WORD_SIZE != 0 {
		err = ErrOffsetAligned
		return
	}

	words := off / WORD_SIZE
	if !fitsSigned(words) {
		err = ErrImmediateRange
		return
	}

	word = pack(op, rs1, rs2) | Word(words)&IMM_MASK
	return
}

// MakeJal encodes a jump-and-link. The offset is PC-relative in bytes and
// must be word aligned; rd receives the return address.
func MakeJal(rd int, off int32) (word Word, err error) {
	if err = checkReg(rd); err != nil {
		return
	}
	if off%WORD_SIZE != 0 {
		err = ErrOffsetAligned
		return
	}

	words := off / WORD_SIZE
	if !fitsSigned(words) {
		err = ErrImmediateRange
		return
	}

	word = pack(OP_JAL, rd, 0) | Word(words)&IMM_MASK
	return
}

// MakeJalr encodes an indirect jump-and-link to rs1 + off bytes.
func MakeJalr(rd, rs1 int, off int32) (word Word, err error) {
	return MakeImm(OP_JALR, rd, rs1, off)
}

// MakeCall encodes a trap-call with an 18-bit call code.
func MakeCall(code Word) (word Word, err error) {
	if code > IMM_MASK {
		err = ErrImmediateRange
		return
	}

	word = Word(OP_ECALL)<<OPCODE_OFFSET | code
	return
}

// MakeBasic encodes an instruction without operands (nop, halt, tret).
func MakeBasic(op Opcode) Word {
	return Word(op) << OPCODE_OFFSET
}
