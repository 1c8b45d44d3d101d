// Package mem implements the machine address space.
//
// An AddressSpace maps non-overlapping, permission-tagged regions of RAM,
// ROM, or memory-mapped devices onto the 32-bit byte-addressed machine
// memory. Region configuration is an initialization-time operation performed
// by an external loader; during execution the address space only resolves
// loads, stores, and instruction fetches, reporting alignment and access
// faults as error values without mutating any region state.
package mem
