package machfile

import (
	"errors"

	"github.com/yarisc/go-yarisc/translate"
)

var f = translate.From

var (
	ErrRegionsMissing = errors.New(f("regions missing"))
	ErrRegionSyntax   = errors.New(f("region syntax"))
	ErrVectorSyntax   = errors.New(f("vector syntax"))
	ErrPreloadSyntax  = errors.New(f("preload syntax"))
	ErrEntrySyntax    = errors.New(f("entry syntax"))
	ErrStrictSyntax   = errors.New(f("strict syntax"))
	ErrAddressRange   = errors.New(f("address out of range"))
)

type ErrCauseUnknown string

func (ec ErrCauseUnknown) Error() string {
	return f("cause %v unknown", string(ec))
}

type ErrPermUnknown string

func (ep ErrPermUnknown) Error() string {
	return f("permission %v unknown", string(ep))
}
