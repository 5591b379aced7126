package script

import (
	"errors"

	"github.com/ezrec/coredebug/translate"
)

var f = translate.From

var (
	// Scenario errors
	ErrNotTaken   = errors.New(f("no DCB handle taken"))
	ErrWriteOnly  = errors.New(f("register is write only"))
	ErrValueRange = errors.New(f("value out of 32-bit range"))
	ErrArguments  = errors.New(f("takes no arguments"))
)

// ErrRegisterUnknown is a register name the block does not have.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("register '%v' unknown", string(err))
}

// ErrScript indicates the scenario a runtime error happened in.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
