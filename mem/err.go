package mem

import (
	"errors"

	"github.com/yarisc/go-yarisc/isa"
	"github.com/yarisc/go-yarisc/translate"
)

var f = translate.From

var (
	// Configuration errors, rejected when the address space is built.
	ErrRegionEmpty     = errors.New(f("region has zero size"))
	ErrRegionUnaligned = errors.New(f("region is not word aligned"))
	ErrRegionOverlap   = errors.New(f("region overlaps an existing region"))
	ErrRegionWrap      = errors.New(f("region wraps around the address space"))
	ErrRangeOutside    = errors.New(f("byte range outside a single region"))
	ErrDeviceNil       = errors.New(f("device handler is nil"))
)

// AlignmentError reports an access at an address that is not a multiple of
// its width.
type AlignmentError struct {
	Addr  isa.Address
	Width isa.Width
}

func (ae AlignmentError) Error() string {
	return f("unaligned %d-byte access to address 0x%08x", int(ae.Width), ae.Addr)
}

func (ae AlignmentError) Is(err error) (ok bool) {
	_, ok = err.(AlignmentError)
	return
}

// AccessError reports an access to an unmapped address or one that lacks
// the required permission.
type AccessError struct {
	Addr isa.Address
	Need Perm
}

func (ae AccessError) Error() string {
	return f("invalid %v access to address 0x%08x", ae.Need, ae.Addr)
}

func (ae AccessError) Is(err error) (ok bool) {
	_, ok = err.(AccessError)
	return
}
