package cpu

import (
	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

// TrapController owns the trap vector table and performs the control-flow
// redirection for raised traps.
//
// The vector table maps a trap cause to its handler entry address. It is
// supplied at configuration time by the external loader; a cause with no
// vector halts the core with a fatal status instead of looping.
type TrapController struct {
	vectors [NUM_CAUSES]isa.Address
	mapped  [NUM_CAUSES]bool
}

// NewTrapController creates a controller with an empty vector table.
func NewTrapController() *TrapController {
	return &TrapController{}
}

// SetVector installs the handler entry address for a cause. The address
// must be word aligned and, when an address space is given, executable.
func (tc *TrapController) SetVector(cause Cause, addr isa.Address, as *mem.AddressSpace) (err error) {
	if cause <= CAUSE_NONE || cause >= NUM_CAUSES {
		return ErrVectorCause
	}
	if !isa.Aligned(addr, isa.WIDTH_WORD) {
		return ErrVectorUnaligned
	}
	if as != nil && !as.Executable(addr) {
		return ErrVectorUnmapped
	}

	tc.vectors[cause] = addr
	tc.mapped[cause] = true
	return
}

// Vector returns the handler address for a cause.
func (tc *TrapController) Vector(cause Cause) (addr isa.Address, ok bool) {
	if cause <= CAUSE_NONE || cause >= NUM_CAUSES {
		return
	}

	addr = tc.vectors[cause]
	ok = tc.mapped[cause]
	return
}

// Raise records the trap state in the register file and redirects the
// program counter to the handler vector. The saved program counter is the
// address a trap-return resumes at. Raise reports whether a handler vector
// was configured; if not, the registers are left untouched and the caller
// halts the core.
func (tc *TrapController) Raise(regs *Registers, cause Cause, saved isa.Address, value isa.Word) (vectored bool) {
	vector, vectored := tc.Vector(cause)
	if !vectored {
		return
	}

	regs.saveTrap(saved, cause, value)
	regs.SetPC(vector)
	return
}

// Return implements the trap-return instruction: the program counter is
// restored from the saved trap state, which is cleared.
func (tc *TrapController) Return(regs *Registers) {
	regs.SetPC(regs.clearTrap())
}
