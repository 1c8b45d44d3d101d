// Package isa defines the YaRISC-32 instruction set architecture.
//
// The architecture uses a fixed 32-bit instruction word with a 6-bit opcode
// field, sixteen general-purpose registers (r0 is hardwired to zero), and a
// separate program counter. The package provides the instruction word layout,
// a stateless decoder, the matching encoder constructors, and a disassembler.
//
// Decoding is a pure function of the instruction word: unassigned opcodes,
// non-zero reserved fields, and out-of-range shift amounts are rejected here
// rather than at execution time.
package isa
