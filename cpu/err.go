package cpu

import (
	"errors"

	"github.com/yarisc/go-yarisc/translate"
)

var f = translate.From

var (
	// ErrCoreHalted is returned when stepping a terminally halted core.
	ErrCoreHalted = errors.New(f("core is halted"))

	// Trap vector configuration errors.
	ErrVectorCause     = errors.New(f("unknown trap cause"))
	ErrVectorUnaligned = errors.New(f("trap vector is not word aligned"))
	ErrVectorUnmapped  = errors.New(f("trap vector is not executable"))
)
