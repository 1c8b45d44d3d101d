package cpu

import (
	"math"

	"github.com/yarisc/go-yarisc/isa"
)

// execute runs one decoded instruction at pc. All register and memory
// effects happen after every fault check for the instruction has passed,
// so a trapping instruction mutates nothing beyond the trap state itself.
func (c *Core) execute(inst isa.Inst, pc isa.Address) StepOutcome {
	next := pc + isa.Address(inst.Size)

	switch inst.Format {
	case isa.FORMAT_REG:
		a, b := c.Regs.Read(inst.Rb), c.Regs.Read(inst.Rc)
		value, ok := alu(inst.Op, a, b)
		if !ok {
			return c.trap(CAUSE_ARITHMETIC, pc, pc, inst.Raw)
		}
		c.Regs.Write(inst.Ra, value)

	case isa.FORMAT_IMM, isa.FORMAT_SHIFT:
		a := c.Regs.Read(inst.Rb)
		value, _ := alu(immediateOp(inst.Op), a, isa.Word(inst.Imm))
		c.Regs.Write(inst.Ra, value)

	case isa.FORMAT_UPPER:
		c.Regs.Write(inst.Ra, isa.Word(inst.Imm)<<isa.UPPER_SHIFT)

	case isa.FORMAT_LOAD:
		addr := c.Regs.Read(inst.Rb) + isa.Word(inst.Imm)
		value, err := c.Mem.Load(isa.Address(addr), inst.Op.AccessWidth())
		if err != nil {
			return c.trap(memCause(err), pc, pc, addr)
		}
		if !inst.Op.Unsigned() {
			value = extendLoad(value, inst.Op.AccessWidth())
		}
		c.Regs.Write(inst.Ra, value)

	case isa.FORMAT_STORE:
		addr := c.Regs.Read(inst.Rb) + isa.Word(inst.Imm)
		if c.pauseStore(pc, isa.Address(addr)) {
			c.state = STATE_READY
			return StepOutcome{Status: STATUS_PAUSED, PC: pc, Value: addr}
		}
		err := c.Mem.Store(isa.Address(addr), inst.Op.AccessWidth(), c.Regs.Read(inst.Ra))
		if err != nil {
			return c.trap(memCause(err), pc, pc, addr)
		}

	case isa.FORMAT_BRANCH:
		if taken(inst.Op, c.Regs.Read(inst.Ra), c.Regs.Read(inst.Rb)) {
			target := inst.BranchTarget(pc)
			if c.Strict && !c.Mem.Executable(target) {
				return c.trap(CAUSE_ACCESS, pc, pc, isa.Word(target))
			}
			next = target
		}

	case isa.FORMAT_JUMP:
		target := inst.BranchTarget(pc)
		if c.Strict && !c.Mem.Executable(target) {
			return c.trap(CAUSE_ACCESS, pc, pc, isa.Word(target))
		}
		c.Regs.Write(inst.Ra, isa.Word(pc)+isa.Word(inst.Size))
		next = target

	case isa.FORMAT_JUMPR:
		target := isa.Address(c.Regs.Read(inst.Rb) + isa.Word(inst.Imm))
		if !isa.Aligned(target, isa.WIDTH_WORD) {
			return c.trap(CAUSE_ALIGNMENT, pc, pc, isa.Word(target))
		}
		if c.Strict && !c.Mem.Executable(target) {
			return c.trap(CAUSE_ACCESS, pc, pc, isa.Word(target))
		}
		c.Regs.Write(inst.Ra, isa.Word(pc)+isa.Word(inst.Size))
		next = target

	case isa.FORMAT_CALL:
		// The environment call traps with the resume point past itself,
		// unlike faults, which resume at the faulting instruction.
		return c.trap(CAUSE_ECALL, pc, next, isa.Word(inst.Imm))

	case isa.FORMAT_BASIC:
		switch inst.Op {
		case isa.OP_TRET:
			c.Traps.Return(&c.Regs)
			c.state = STATE_READY
			return StepOutcome{Status: STATUS_OK, PC: pc}
		case isa.OP_HALT:
			c.state = STATE_HALTED
			return StepOutcome{Status: STATUS_HALTED, PC: pc}
		case isa.OP_NOP:
			// Fall through to the PC advance.
		}
	}

	c.Regs.SetPC(next)
	c.state = STATE_READY
	return StepOutcome{Status: STATUS_OK, PC: pc}
}

// alu evaluates a register-register operation. ok is false only for a
// divide or remainder with a zero divisor.
func alu(op isa.Opcode, a, b isa.Word) (value isa.Word, ok bool) {
	ok = true

	switch op {
	case isa.OP_ADD:
		value = a + b
	case isa.OP_SUB:
		value = a - b
	case isa.OP_AND:
		value = a & b
	case isa.OP_OR:
		value = a | b
	case isa.OP_XOR:
		value = a ^ b
	case isa.OP_SLL:
		value = a << (b & isa.SHIFT_MAX)
	case isa.OP_SRL:
		value = a >> (b & isa.SHIFT_MAX)
	case isa.OP_SRA:
		value = isa.Word(int32(a) >> (b & isa.SHIFT_MAX))
	case isa.OP_SLT:
		if int32(a) < int32(b) {
			value = 1
		}
	case isa.OP_SLTU:
		if a < b {
			value = 1
		}
	case isa.OP_MUL:
		value = a * b
	case isa.OP_DIV:
		value, ok = divSigned(a, b, false)
	case isa.OP_DIVU:
		if b == 0 {
			ok = false
			break
		}
		value = a / b
	case isa.OP_REM:
		value, ok = divSigned(a, b, true)
	case isa.OP_REMU:
		if b == 0 {
			ok = false
			break
		}
		value = a % b
	}
	return
}

// divSigned evaluates signed division or remainder. Overflow of the most
// negative value by minus one wraps; a zero divisor is not ok.
func divSigned(a, b isa.Word, rem bool) (value isa.Word, ok bool) {
	if b == 0 {
		return 0, false
	}
	if int32(a) == math.MinInt32 && int32(b) == -1 {
		if !rem {
			value = a
		}
		return value, true
	}
	if rem {
		value = isa.Word(int32(a) % int32(b))
	} else {
		value = isa.Word(int32(a) / int32(b))
	}
	return value, true
}

// immediateOp maps an immediate-form opcode to the register-register
// operation with the same semantics.
func immediateOp(op isa.Opcode) isa.Opcode {
	switch op {
	case isa.OP_ADDI:
		return isa.OP_ADD
	case isa.OP_ANDI:
		return isa.OP_AND
	case isa.OP_ORI:
		return isa.OP_OR
	case isa.OP_XORI:
		return isa.OP_XOR
	case isa.OP_SLLI:
		return isa.OP_SLL
	case isa.OP_SRLI:
		return isa.OP_SRL
	case isa.OP_SRAI:
		return isa.OP_SRA
	case isa.OP_SLTI:
		return isa.OP_SLT
	case isa.OP_SLTIU:
		return isa.OP_SLTU
	}
	return op
}

// taken evaluates a branch condition.
func taken(op isa.Opcode, a, b isa.Word) bool {
	switch op {
	case isa.OP_BEQ:
		return a == b
	case isa.OP_BNE:
		return a != b
	case isa.OP_BLT:
		return int32(a) < int32(b)
	case isa.OP_BGE:
		return int32(a) >= int32(b)
	case isa.OP_BLTU:
		return a < b
	case isa.OP_BGEU:
		return a >= b
	}
	return false
}

// extendLoad sign-extends a narrow loaded value to the register width.
func extendLoad(value isa.Word, width isa.Width) isa.Word {
	switch width {
	case isa.WIDTH_BYTE:
		return isa.Word(isa.SignExtend(value, 8))
	case isa.WIDTH_HALF:
		return isa.Word(isa.SignExtend(value, 16))
	}
	return value
}
