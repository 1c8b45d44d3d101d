package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

func TestSetVector(t *testing.T) {
	assert := assert.New(t)

	as := mem.NewAddressSpace()
	_, err := as.Map(0x0000, 0x1000, mem.PERM_RX)
	assert.NoError(err)

	tc := NewTrapController()

	for _, test := range []struct {
		cause Cause
		addr  isa.Address
		err   error
	}{
		{CAUSE_ILLEGAL, 0x100, nil},
		{CAUSE_ECALL, 0x200, nil},
		{CAUSE_NONE, 0x100, ErrVectorCause},
		{Cause(NUM_CAUSES), 0x100, ErrVectorCause},
		{CAUSE_ACCESS, 0x102, ErrVectorUnaligned},
		{CAUSE_ACCESS, 0x2000, ErrVectorUnmapped},
	} {
		err := tc.SetVector(test.cause, test.addr, as)
		if test.err == nil {
			assert.NoError(err)
			addr, ok := tc.Vector(test.cause)
			assert.True(ok)
			assert.Equal(test.addr, addr)
		} else {
			assert.ErrorIs(err, test.err)
		}
	}

	_, ok := tc.Vector(CAUSE_ALIGNMENT)
	assert.False(ok)
}

func TestRaiseAndReturn(t *testing.T) {
	assert := assert.New(t)

	tc := NewTrapController()
	assert.NoError(tc.SetVector(CAUSE_ECALL, 0x300, nil))

	var regs Registers
	regs.SetPC(0x40)

	assert.True(tc.Raise(&regs, CAUSE_ECALL, 0x44, 9))
	assert.EqualValues(0x300, regs.PC())
	assert.EqualValues(0x44, regs.TrapPC())
	assert.Equal(CAUSE_ECALL, regs.TrapCause())
	assert.EqualValues(9, regs.TrapValue())

	tc.Return(&regs)
	assert.EqualValues(0x44, regs.PC())
	assert.Equal(CAUSE_NONE, regs.TrapCause())
}

func TestRaiseUnvectored(t *testing.T) {
	assert := assert.New(t)

	tc := NewTrapController()

	var regs Registers
	regs.SetPC(0x40)

	assert.False(tc.Raise(&regs, CAUSE_ILLEGAL, 0x40, 0))
	assert.EqualValues(0x40, regs.PC())
	assert.Equal(CAUSE_NONE, regs.TrapCause())
}
