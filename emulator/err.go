package emulator

import (
	"errors"

	"github.com/ezrec/coredebug/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrNoDebugger      = errors.New(f("no debugger attached"))
	ErrNotHalted       = errors.New(f("core not halted"))
	ErrRegisterInvalid = errors.New(f("core register invalid"))
)

// ErrVariant is an unknown core variant name.
type ErrVariant string

func (err ErrVariant) Error() string {
	return f("'%v' is not a core variant", string(err))
}

// ErrTransfer indicates the core register a transfer failed on.
type ErrTransfer struct {
	Selector uint32
	Err      error
}

func (err *ErrTransfer) Error() string {
	return f("transfer 0x%08x %v", err.Selector, err.Err)
}

func (err *ErrTransfer) Unwrap() error {
	return err.Err
}
