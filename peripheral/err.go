package peripheral

import (
	"errors"

	"github.com/ezrec/coredebug/translate"
)

var f = translate.From

var (
	// Ownership errors
	ErrTaken    = errors.New(f("already taken"))
	ErrNotTaken = errors.New(f("not taken"))
)

// ErrPeripheral names the peripheral an ownership error refers to.
type ErrPeripheral struct {
	Name string
	Err  error
}

func (err *ErrPeripheral) Error() string {
	return f("peripheral %v: %v", err.Name, err.Err)
}

func (err *ErrPeripheral) Unwrap() error {
	return err.Err
}
