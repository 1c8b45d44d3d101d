package cpu

import (
	"fmt"

	"github.com/yarisc/go-yarisc/isa"
)

// Cause identifies a trap cause. Causes index the trap vector table.
type Cause int

//go:generate go tool stringer -linecomment -type=Cause
const (
	CAUSE_NONE       = Cause(0) // none
	CAUSE_ILLEGAL    = Cause(1) // illegal instruction
	CAUSE_ALIGNMENT  = Cause(2) // alignment fault
	CAUSE_ACCESS     = Cause(3) // access fault
	CAUSE_ARITHMETIC = Cause(4) // arithmetic trap
	CAUSE_ECALL      = Cause(5) // environment call

	NUM_CAUSES = 6
)

// State is the control-unit state.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY     = State(0) // ready
	STATE_FETCHING  = State(1) // fetching
	STATE_DECODING  = State(2) // decoding
	STATE_EXECUTING = State(3) // executing
	STATE_TRAPPED   = State(4) // trapped
	STATE_HALTED    = State(5) // halted
)

// Status is the result classification of a step.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	// The step completed and the core is ready for the next one.
	STATUS_OK = Status(0) // ok

	// The step raised a trap and control was redirected to its handler.
	STATUS_TRAPPED = Status(1) // trapped

	// A halt instruction was executed; the core is terminally halted.
	STATUS_HALTED = Status(2) // halted

	// A trap was raised with no configured handler vector; the core is
	// terminally halted with a fatal status.
	STATUS_UNHANDLED = Status(3) // unhandled trap

	// A breakpoint or watchpoint paused the step before execution.
	STATUS_PAUSED = Status(4) // paused
)

// Terminal returns true if no further steps are possible.
func (s Status) Terminal() bool {
	return s == STATUS_HALTED || s == STATUS_UNHANDLED
}

// StepOutcome describes how a step ended. Simulated faults are reported
// here, never as host errors.
type StepOutcome struct {
	Status Status
	Cause  Cause
	PC     isa.Address // Address of the instruction that produced the outcome.
	Value  isa.Word    // Faulting address, instruction word, or call code.
}

// String renders the outcome for run reports and trace logs.
func (so StepOutcome) String() string {
	switch so.Status {
	case STATUS_OK:
		return f("ok at pc=0x%08x", so.PC)
	case STATUS_PAUSED:
		return f("paused at pc=0x%08x", so.PC)
	case STATUS_HALTED:
		return f("halted at pc=0x%08x", so.PC)
	default:
		return f("%v (cause %d, value 0x%08x) at pc=0x%08x",
			so.Status, int(so.Cause), so.Value, so.PC)
	}
}

var _ fmt.Stringer = StepOutcome{}
