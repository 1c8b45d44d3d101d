package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	log "github.com/sirupsen/logrus"

	"github.com/yarisc/go-yarisc/cpu"
	"github.com/yarisc/go-yarisc/internal"
	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/mem"
)

var _machine_info = map[string]string{
	"WORD_SIZE":     fmt.Sprintf("%v", isa.WORD_SIZE),
	"NUM_REGISTERS": fmt.Sprintf("%v", isa.NUM_REGISTERS),
}

// Machine is a configured core with its memory map. It is the unit the
// command front ends operate on: build one from a Config, load an image,
// then run or single-step it.
type Machine struct {
	Trace bool // If set, logs every step at debug level.

	*cpu.Core
	Space *mem.AddressSpace

	entry   isa.Address
	regions []RegionConfig
	names   map[string]*mem.Region
}

// NewMachine builds a machine from its description. All validation happens
// here; a machine that constructs without error never reports a host error
// while stepping.
func NewMachine(cfg Config) (m *Machine, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}

	as := mem.NewAddressSpace()
	names := map[string]*mem.Region{}
	for _, rc := range cfg.Regions {
		region, merr := as.Map(rc.Base, rc.Size, rc.Perm)
		if merr != nil {
			err = &ErrConfig{Item: rc.Name, Err: merr}
			return
		}
		names[rc.Name] = region
	}

	core := cpu.NewCore(as)
	core.Strict = cfg.Strict

	for cause, addr := range cfg.Vectors {
		if verr := core.Traps.SetVector(cause, addr, as); verr != nil {
			err = &ErrConfig{Item: fmt.Sprintf("vector %d", int(cause)), Err: verr}
			return
		}
	}

	for addr, word := range cfg.Preload {
		var bytes [isa.WORD_SIZE]byte
		binary.LittleEndian.PutUint32(bytes[:], word)
		if werr := as.WriteBytes(addr, bytes[:]); werr != nil {
			err = &ErrConfig{Item: fmt.Sprintf("preload 0x%08x", addr), Err: werr}
			return
		}
	}

	if !as.Executable(cfg.Entry) {
		err = &ErrConfig{Item: "entry", Err: ErrEntryPoint}
		return
	}
	core.Regs.SetPC(cfg.Entry)

	m = &Machine{
		Core:    core,
		Space:   as,
		entry:   cfg.Entry,
		regions: cfg.Regions,
		names:   names,
	}
	return
}

// Reset returns the core to its initial state at the configured entry
// point. Memory contents are kept.
func (m *Machine) Reset() {
	m.Core.Reset()
	m.Regs.SetPC(m.entry)
}

// Region returns the mapped region with the given configured name.
func (m *Machine) Region(name string) (region *mem.Region, ok bool) {
	region, ok = m.names[name]
	return
}

// LoadImage copies a raw binary image into memory starting at base. The
// image must fit within a single mapped region.
func (m *Machine) LoadImage(r io.Reader, base isa.Address) (n int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if err = m.Space.WriteBytes(base, data); err != nil {
		if errors.Is(err, mem.ErrRangeOutside) {
			err = ErrImageOverflow
		}
		return
	}

	n = len(data)
	log.WithFields(log.Fields{
		"base": fmt.Sprintf("0x%08x", base),
		"size": n,
	}).Debug("image loaded")
	return
}

// Step executes one instruction, tracing it when enabled.
func (m *Machine) Step() (outcome cpu.StepOutcome, err error) {
	var listing string
	if m.Trace {
		listing = m.Listing(m.Regs.PC())
	}

	outcome, err = m.Core.Step()
	if m.Trace && err == nil {
		log.WithFields(log.Fields{
			"pc":      fmt.Sprintf("0x%08x", outcome.PC),
			"inst":    listing,
			"outcome": outcome.String(),
		}).Debug("step")
	}
	return
}

// Run repeats Step under the same step accounting as the core: it stops on
// halt, an unhandled trap, a pause, or an exhausted budget.
func (m *Machine) Run(maxSteps uint64) (steps uint64, outcome cpu.StepOutcome, err error) {
	if !m.Trace {
		return m.Core.Run(maxSteps)
	}

	outcome = cpu.StepOutcome{Status: cpu.STATUS_OK, PC: m.Regs.PC()}

	for steps < maxSteps {
		outcome, err = m.Step()
		if err != nil {
			if errors.Is(err, cpu.ErrCoreHalted) && steps > 0 {
				err = nil
			}
			return
		}

		switch outcome.Status {
		case cpu.STATUS_OK, cpu.STATUS_TRAPPED:
			steps++
		case cpu.STATUS_HALTED, cpu.STATUS_UNHANDLED:
			steps++
			return
		case cpu.STATUS_PAUSED:
			return
		}
	}
	return
}

// Listing renders the instruction at addr for traces and the monitor. An
// address that cannot be fetched renders as "?".
func (m *Machine) Listing(addr isa.Address) string {
	word, err := m.Space.Fetch(addr)
	if err != nil {
		return "?"
	}
	return isa.Disassemble(word)
}

// Info returns an iterator over the machine description key/value pairs.
func (m *Machine) Info() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_info), m.regionInfo())
}

func (m *Machine) regionInfo() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, rc := range m.regions {
			value := fmt.Sprintf("base=0x%08x size=0x%x perm=%v", rc.Base, rc.Size, rc.Perm)
			if !yield(rc.Name, value) {
				return
			}
		}
	}
}
