package cpu

import (
	"errors"

	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

// Core is the control unit of one simulated processor. It composes the
// register file, the address space, and the trap controller, and owns the
// run/step/halt state machine.
//
// A Core is single-threaded: its methods must not be invoked concurrently.
// Independent cores share no mutable state and may be driven in parallel
// by an external scheduler.
type Core struct {
	Regs  Registers
	Mem   *mem.AddressSpace
	Traps *TrapController

	// Strict additionally verifies at execute time that branch and jump
	// targets are executable, instead of deferring to the next fetch.
	Strict bool

	state State
	steps uint64

	breakpoints map[isa.Address]struct{}
	watchpoints map[isa.Address]struct{}
	resume      isa.Address
	resumeSet   bool
}

// NewCore creates a core in the Ready state with zeroed registers over the
// given address space.
func NewCore(as *mem.AddressSpace) *Core {
	return &Core{
		Mem:   as,
		Traps: NewTrapController(),
	}
}

// State returns the control-unit state.
func (c *Core) State() State {
	return c.state
}

// Steps returns the number of executed steps since construction or reset.
func (c *Core) Steps() uint64 {
	return c.steps
}

// Halted returns true if the core is terminally halted.
func (c *Core) Halted() bool {
	return c.state == STATE_HALTED
}

// Reset returns the core to the initial Ready state with zeroed registers.
// The address space and the trap vector table are kept.
func (c *Core) Reset() {
	c.Regs.Reset()
	c.state = STATE_READY
	c.steps = 0
	c.resumeSet = false
}

// AddBreakpoint pauses Run before executing the instruction at addr.
func (c *Core) AddBreakpoint(addr isa.Address) {
	if c.breakpoints == nil {
		c.breakpoints = map[isa.Address]struct{}{}
	}
	c.breakpoints[addr] = struct{}{}
}

// ClearBreakpoint removes a breakpoint.
func (c *Core) ClearBreakpoint(addr isa.Address) {
	delete(c.breakpoints, addr)
}

// AddWatchpoint pauses Run before a store to addr.
func (c *Core) AddWatchpoint(addr isa.Address) {
	if c.watchpoints == nil {
		c.watchpoints = map[isa.Address]struct{}{}
	}
	c.watchpoints[addr] = struct{}{}
}

// ClearWatchpoint removes a watchpoint.
func (c *Core) ClearWatchpoint(addr isa.Address) {
	delete(c.watchpoints, addr)
}

// trap ends the step in Trapped or, with no configured vector, in Halted
// with a fatal status. The saved address is where a trap-return resumes.
func (c *Core) trap(cause Cause, pc, saved isa.Address, value isa.Word) StepOutcome {
	if c.Traps.Raise(&c.Regs, cause, saved, value) {
		c.state = STATE_TRAPPED
		return StepOutcome{Status: STATUS_TRAPPED, Cause: cause, PC: pc, Value: value}
	}

	c.state = STATE_HALTED
	return StepOutcome{Status: STATUS_UNHANDLED, Cause: cause, PC: pc, Value: value}
}

// Step executes one atomic fetch-decode-execute cycle.
//
// Simulated faults are reported in the StepOutcome; the only error return
// is ErrCoreHalted when the core is terminally halted. A step that ends in
// a fault leaves no partial register or memory mutation behind.
func (c *Core) Step() (outcome StepOutcome, err error) {
	if c.state == STATE_HALTED {
		err = ErrCoreHalted
		outcome = StepOutcome{Status: STATUS_HALTED, PC: c.Regs.PC()}
		return
	}

	pc := c.Regs.PC()

	if c.pauseAt(pc) {
		c.state = STATE_READY
		outcome = StepOutcome{Status: STATUS_PAUSED, PC: pc}
		return
	}

	c.state = STATE_FETCHING
	word, ferr := c.Mem.Fetch(pc)

	switch {
	case ferr != nil:
		outcome = c.trap(memCause(ferr), pc, pc, isa.Word(pc))

	default:
		c.state = STATE_DECODING
		inst, derr := isa.Decode(word)
		if derr != nil {
			// A word that fails to decode is never partially executed.
			outcome = c.trap(CAUSE_ILLEGAL, pc, pc, word)
			break
		}

		c.state = STATE_EXECUTING
		outcome = c.execute(inst, pc)
	}

	if outcome.Status != STATUS_PAUSED {
		c.steps++
		c.resumeSet = false
	}
	return
}

// Run repeats Step until the core halts, a trap goes unhandled, a pause is
// requested, or the step budget is exhausted. It returns the number of
// steps executed and the terminal outcome.
func (c *Core) Run(maxSteps uint64) (steps uint64, outcome StepOutcome, err error) {
	outcome = StepOutcome{Status: STATUS_OK, PC: c.Regs.PC()}

	for steps < maxSteps {
		outcome, err = c.Step()
		if err != nil {
			if errors.Is(err, ErrCoreHalted) && steps > 0 {
				err = nil
			}
			return
		}

		switch outcome.Status {
		case STATUS_OK, STATUS_TRAPPED:
			steps++
		case STATUS_HALTED, STATUS_UNHANDLED:
			steps++
			return
		case STATUS_PAUSED:
			return
		}
	}
	return
}

// pauseAt reports a breakpoint hit at pc. An armed resume for pc skips
// every pause check until the instruction completes.
func (c *Core) pauseAt(pc isa.Address) bool {
	if c.resumeSet && c.resume == pc {
		return false
	}

	if _, hit := c.breakpoints[pc]; hit {
		c.resume = pc
		c.resumeSet = true
		return true
	}
	return false
}

// pauseStore reports a watchpoint hit for a store to addr by the
// instruction at pc.
func (c *Core) pauseStore(pc, addr isa.Address) bool {
	if c.resumeSet && c.resume == pc {
		return false
	}

	if _, hit := c.watchpoints[addr]; hit {
		c.resume = pc
		c.resumeSet = true
		return true
	}
	return false
}

// memCause classifies an address-space error as a trap cause.
func memCause(err error) Cause {
	if errors.Is(err, mem.AlignmentError{}) {
		return CAUSE_ALIGNMENT
	}
	return CAUSE_ACCESS
}
