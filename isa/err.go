package isa

import (
	"errors"

	"github.com/yarisc/go-yarisc/translate"
)

var f = translate.From

var (
	// Encoder errors
	ErrRegisterRange  = errors.New(f("register index out of range"))
	ErrImmediateRange = errors.New(f("immediate out of range"))
	ErrShiftRange     = errors.New(f("shift amount out of range"))
	ErrOffsetAligned  = errors.New(f("offset is not word aligned"))
)

// IllegalReason classifies why an instruction word failed to decode.
type IllegalReason int

//go:generate go tool stringer -linecomment -type=IllegalReason
const (
	REASON_UNASSIGNED_OPCODE = IllegalReason(0) // unassigned opcode
	REASON_NONZERO_RESERVED  = IllegalReason(1) // non-zero reserved bits
	REASON_NONZERO_OPERANDS  = IllegalReason(2) // non-zero operand bits
	REASON_SHIFT_RANGE       = IllegalReason(3) // shift amount out of range
)

// ErrIllegal is the decode failure for an illegal instruction word.
type ErrIllegal struct {
	Word   Word
	Reason IllegalReason
}

func (ei ErrIllegal) Error() string {
	return f("illegal instruction 0x%08x (reason: %d)", ei.Word, int(ei.Reason))
}

func (ei ErrIllegal) Is(err error) (ok bool) {
	_, ok = err.(ErrIllegal)
	return
}
