package cpu

import (
	"github.com/yarisc/go-yarisc/isa"
)

// Registers is the register file: sixteen general-purpose registers with r0
// hardwired to zero, the program counter, and the trap register set saved
// by the trap controller.
//
// All operations are total for indices within the register count; passing
// an index outside 0..15 is a caller contract violation (the decoder bounds
// every register field to four bits).
type Registers struct {
	regs [isa.NUM_REGISTERS]isa.Word
	pc   isa.Address

	tpc    isa.Address
	tcause Cause
	tval   isa.Word
}

// Read returns the value of register i. Register 0 always reads as zero.
func (r *Registers) Read(i int) isa.Word {
	return r.regs[i]
}

// Write sets register i. Writes to register 0 are accepted but have no
// observable effect.
func (r *Registers) Write(i int, value isa.Word) {
	if i == 0 {
		return
	}
	r.regs[i] = value
}

// PC returns the program counter.
func (r *Registers) PC() isa.Address {
	return r.pc
}

// SetPC sets the program counter.
func (r *Registers) SetPC(pc isa.Address) {
	r.pc = pc
}

// TrapPC returns the saved program counter of the most recent trap.
func (r *Registers) TrapPC() isa.Address {
	return r.tpc
}

// TrapCause returns the cause of the most recent trap.
func (r *Registers) TrapCause() Cause {
	return r.tcause
}

// TrapValue returns the fault detail of the most recent trap: the faulting
// address, the offending instruction word, or the trap-call code.
func (r *Registers) TrapValue() isa.Word {
	return r.tval
}

func (r *Registers) saveTrap(pc isa.Address, cause Cause, value isa.Word) {
	r.tpc = pc
	r.tcause = cause
	r.tval = value
}

func (r *Registers) clearTrap() (pc isa.Address) {
	pc = r.tpc
	r.tpc = 0
	r.tcause = CAUSE_NONE
	r.tval = 0
	return
}

// Reset zeroes every register, the program counter, and the trap state.
func (r *Registers) Reset() {
	*r = Registers{}
}
