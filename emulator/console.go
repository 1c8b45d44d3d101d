package emulator

import (
	"io"

	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

// Console register offsets within its device region.
const (
	CONSOLE_TX     = isa.Address(0x0) // Store: low byte to the output stream.
	CONSOLE_RX     = isa.Address(0x4) // Load: next input byte, ~0 at end of input.
	CONSOLE_STATUS = isa.Address(0x8) // Load: bit 0 input open, bit 1 output open.
	CONSOLE_SIZE   = isa.Address(0xc)

	CONSOLE_EOF = isa.Word(0xffffffff)
)

// Console is a memory-mapped byte-stream device: a store to its transmit
// register writes a byte to the output, a load from its receive register
// reads the next input byte synchronously.
type Console struct {
	Input  io.Reader
	Output io.Writer

	eof bool
}

// AttachConsole maps a console device at base.
func (m *Machine) AttachConsole(base isa.Address, in io.Reader, out io.Writer) (c *Console, err error) {
	c = &Console{Input: in, Output: out}
	if _, err = m.Space.MapDevice(base, CONSOLE_SIZE, mem.PERM_RW, c); err != nil {
		c = nil
	}
	return
}

// Load implements the device read registers.
func (c *Console) Load(off isa.Address, width isa.Width) (value isa.Word, err error) {
	switch off {
	case CONSOLE_RX:
		value = c.receive()

	case CONSOLE_STATUS:
		if c.Input != nil && !c.eof {
			value |= 1 << 0
		}
		if c.Output != nil {
			value |= 1 << 1
		}

	case CONSOLE_TX:
		// Write-only, reads as zero.

	default:
		err = mem.AccessError{Addr: off, Need: mem.PERM_READ}
	}
	return
}

// Store implements the device write registers.
func (c *Console) Store(off isa.Address, width isa.Width, value isa.Word) (err error) {
	switch off {
	case CONSOLE_TX:
		if c.Output != nil {
			c.Output.Write([]byte{byte(value)})
		}

	case CONSOLE_RX, CONSOLE_STATUS:
		// Read-only, writes are dropped.

	default:
		err = mem.AccessError{Addr: off, Need: mem.PERM_WRITE}
	}
	return
}

func (c *Console) receive() isa.Word {
	if c.Input == nil || c.eof {
		return CONSOLE_EOF
	}

	var one [1]byte
	if _, err := c.Input.Read(one[:]); err != nil {
		c.eof = true
		return CONSOLE_EOF
	}
	return isa.Word(one[0])
}
