// Package cpu implements the YaRISC-32 processor core.
//
// A Core owns the register file, the trap controller, and the fetch,
// decode, execute control loop over an address space. One call to Step is
// one atomic instruction cycle: when a step ends in a fault no partial
// register or memory mutation is observable. Simulated faults never escape
// as Go errors; they are reported as StepOutcome values so that untrusted
// or malformed programs can run without terminating the host.
package cpu
