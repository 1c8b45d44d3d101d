package mem

import (
	"cmp"
	"encoding/binary"
	"slices"
	"strings"

	"github.com/yarisc/go-yarisc/isa"
)

// Perm is a bitmask of region access permissions.
type Perm int

const (
	PERM_READ  = Perm(1 << 0)
	PERM_WRITE = Perm(1 << 1)
	PERM_EXEC  = Perm(1 << 2)

	PERM_RW  = PERM_READ | PERM_WRITE
	PERM_RX  = PERM_READ | PERM_EXEC
	PERM_RWX = PERM_READ | PERM_WRITE | PERM_EXEC
)

// String renders the permission mask in the conventional "rwx" form.
func (p Perm) String() string {
	var sb strings.Builder

	for _, flag := range [](struct {
		perm Perm
		ch   string
	}){
		{PERM_READ, "r"},
		{PERM_WRITE, "w"},
		{PERM_EXEC, "x"},
	} {
		if p&flag.perm != 0 {
			sb.WriteString(flag.ch)
		} else {
			sb.WriteString("-")
		}
	}

	return sb.String()
}

// Device is a synchronous handler backing a memory-mapped device region.
// Offsets are relative to the region base. A handler completes the access
// before returning and must not reconfigure the address space from within
// a call.
type Device interface {
	Load(off isa.Address, width isa.Width) (isa.Word, error)
	Store(off isa.Address, width isa.Width, value isa.Word) error
}

// Region is a contiguous, permission-tagged address range backed either by
// RAM bytes or by a device handler.
type Region struct {
	Base isa.Address
	Size isa.Address
	Perm Perm

	bytes  []byte
	device Device
}

// End returns the first address past the region.
func (r *Region) End() isa.Address {
	return r.Base + r.Size
}

// Contains returns true if the address falls inside the region.
func (r *Region) Contains(addr isa.Address) bool {
	return addr >= r.Base && addr < r.End()
}

// AddressSpace is an ordered set of non-overlapping regions. Every access
// resolves to exactly one region or fails as unmapped.
type AddressSpace struct {
	regions []*Region
}

// NewAddressSpace creates an empty address space.
func NewAddressSpace() *AddressSpace {
	return &AddressSpace{}
}

func (as *AddressSpace) insert(region *Region) (err error) {
	if region.Size == 0 {
		return ErrRegionEmpty
	}
	if !isa.Aligned(region.Base, isa.WIDTH_WORD) || !isa.Aligned(region.Size, isa.WIDTH_WORD) {
		return ErrRegionUnaligned
	}
	if region.End() < region.Base {
		return ErrRegionWrap
	}

	pos, _ := slices.BinarySearchFunc(as.regions, region, func(a, b *Region) int {
		return cmp.Compare(a.Base, b.Base)
	})

	if pos > 0 && as.regions[pos-1].End() > region.Base {
		return ErrRegionOverlap
	}
	if pos < len(as.regions) && region.End() > as.regions[pos].Base {
		return ErrRegionOverlap
	}

	as.regions = slices.Insert(as.regions, pos, region)
	return
}

// Map adds a zero-filled RAM region. This is a configuration-time
// operation; mapping is rejected if the region is empty, unaligned, or
// overlaps an existing region.
func (as *AddressSpace) Map(base, size isa.Address, perm Perm) (region *Region, err error) {
	region = &Region{
		Base:  base,
		Size:  size,
		Perm:  perm,
		bytes: make([]byte, size),
	}

	if err = as.insert(region); err != nil {
		region = nil
	}
	return
}

// MapDevice adds a device-backed region resolved through the given
// synchronous handler.
func (as *AddressSpace) MapDevice(base, size isa.Address, perm Perm, dev Device) (region *Region, err error) {
	if dev == nil {
		err = ErrDeviceNil
		return
	}

	region = &Region{
		Base:   base,
		Size:   size,
		Perm:   perm,
		device: dev,
	}

	if err = as.insert(region); err != nil {
		region = nil
	}
	return
}

// Regions returns the mapped regions in ascending base order.
func (as *AddressSpace) Regions() []*Region {
	return as.regions
}

// Resolve returns the region containing the address, or nil if unmapped.
func (as *AddressSpace) Resolve(addr isa.Address) *Region {
	pos, found := slices.BinarySearchFunc(as.regions, addr, func(r *Region, a isa.Address) int {
		if r.End() <= a {
			return -1
		}
		if r.Base > a {
			return 1
		}
		return 0
	})

	if !found {
		return nil
	}
	return as.regions[pos]
}

func (as *AddressSpace) resolve(addr isa.Address, width isa.Width, need Perm) (region *Region, err error) {
	if !isa.Aligned(addr, width) {
		err = AlignmentError{Addr: addr, Width: width}
		return
	}

	region = as.Resolve(addr)
	if region == nil || region.Perm&need != need {
		region = nil
		err = AccessError{Addr: addr, Need: need}
		return
	}

	// An access must not straddle the region end.
	if addr+isa.Address(width) > region.End() {
		region = nil
		err = AccessError{Addr: addr, Need: need}
	}
	return
}

// Load reads a value of the given width. The result is zero-extended into
// a full word. Fails with AlignmentError or AccessError.
func (as *AddressSpace) Load(addr isa.Address, width isa.Width) (value isa.Word, err error) {
	region, err := as.resolve(addr, width, PERM_READ)
	if err != nil {
		return
	}

	if region.device != nil {
		return region.device.Load(addr-region.Base, width)
	}

	off := addr - region.Base
	switch width {
	case isa.WIDTH_BYTE:
		value = isa.Word(region.bytes[off])
	case isa.WIDTH_HALF:
		value = isa.Word(binary.LittleEndian.Uint16(region.bytes[off:]))
	case isa.WIDTH_WORD:
		value = binary.LittleEndian.Uint32(region.bytes[off:])
	}
	return
}

// Store writes the low bytes of value at the given width. A failed store
// mutates nothing.
func (as *AddressSpace) Store(addr isa.Address, width isa.Width, value isa.Word) (err error) {
	region, err := as.resolve(addr, width, PERM_WRITE)
	if err != nil {
		return
	}

	if region.device != nil {
		return region.device.Store(addr-region.Base, width, value)
	}

	off := addr - region.Base
	switch width {
	case isa.WIDTH_BYTE:
		region.bytes[off] = byte(value)
	case isa.WIDTH_HALF:
		binary.LittleEndian.PutUint16(region.bytes[off:], uint16(value))
	case isa.WIDTH_WORD:
		binary.LittleEndian.PutUint32(region.bytes[off:], value)
	}
	return
}

// Fetch reads an instruction word. The region must be executable.
func (as *AddressSpace) Fetch(addr isa.Address) (word isa.Word, err error) {
	region, err := as.resolve(addr, isa.WIDTH_WORD, PERM_EXEC)
	if err != nil {
		return
	}

	if region.device != nil {
		return region.device.Load(addr-region.Base, isa.WIDTH_WORD)
	}

	word = binary.LittleEndian.Uint32(region.bytes[addr-region.Base:])
	return
}

// Executable returns true if a word at the address could be fetched.
func (as *AddressSpace) Executable(addr isa.Address) bool {
	_, err := as.resolve(addr, isa.WIDTH_WORD, PERM_EXEC)
	return err == nil
}

// WriteBytes copies raw bytes into a single RAM region, bypassing
// permission checks. This is the loader's bulk-write operation for
// populating images before the first step.
func (as *AddressSpace) WriteBytes(addr isa.Address, data []byte) (err error) {
	region := as.Resolve(addr)
	if region == nil || region.device != nil {
		return ErrRangeOutside
	}

	off := addr - region.Base
	if isa.Address(len(data)) > region.Size-off {
		return ErrRangeOutside
	}

	copy(region.bytes[off:], data)
	return
}

// ReadBytes copies raw bytes out of a single RAM region, bypassing
// permission checks. This is the inspection counterpart of WriteBytes.
func (as *AddressSpace) ReadBytes(addr isa.Address, data []byte) (err error) {
	region := as.Resolve(addr)
	if region == nil || region.device != nil {
		return ErrRangeOutside
	}

	off := addr - region.Base
	if isa.Address(len(data)) > region.Size-off {
		return ErrRangeOutside
	}

	copy(data, region.bytes[off:])
	return
}
