package emulator

import (
	"errors"

	"github.com/yarisc/go-yarisc/translate"
)

var f = translate.From

var (
	ErrNoRegions     = errors.New(f("machine has no memory regions"))
	ErrRegionName    = errors.New(f("region name is empty or duplicated"))
	ErrEntryPoint    = errors.New(f("entry point is not executable"))
	ErrImageOverflow = errors.New(f("image does not fit its load region"))
)

// ErrConfig wraps a machine-configuration fault with the item it concerns.
type ErrConfig struct {
	Item string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("machine config %q: %v", err.Item, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
