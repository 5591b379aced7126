// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark scenarios against an emulated Debug Control
// Block.
//
// A scenario plays both sides: the hardware events (attach(), soft_reset(),
// ...) and the driver code (take(), enable_trace(), ...). Every bitfield
// constant of the dcb and emulator packages is predeclared as an integer.
package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/coredebug/dcb"
	"github.com/ezrec/coredebug/emulator"
	"github.com/ezrec/coredebug/internal"
	"github.com/ezrec/coredebug/volatile"
)

// Runner executes scenarios. It holds at most one DCB handle, shared by all
// scenarios it runs until released.
type Runner struct {
	Emulator *emulator.Emulator // Hardware the scenarios drive.
	Output   io.Writer          // Destination of print(); os.Stdout if nil.

	handle *dcb.DCB
}

// NewRunner creates a runner for the emulator.
func NewRunner(emu *emulator.Emulator) *Runner {
	return &Runner{Emulator: emu}
}

// Close releases the handle, if taken.
func (r *Runner) Close() (err error) {
	if r.handle != nil {
		err = r.handle.Release()
		r.handle = nil
	}
	return
}

// Run executes the scenario src (a string, []byte or io.Reader) and returns
// its globals.
func (r *Runner) Run(name string, src any) (globals starlark.StringDict, err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Name: name, Err: err}
		}
	}()

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			out := r.Output
			if out == nil {
				out = os.Stdout
			}
			fmt.Fprintln(out, msg)
		},
	}

	opts := syntax.FileOptions{}
	globals, err = starlark.ExecFileOptions(&opts, thread, name, src, r.predeclared())
	return
}

func (r *Runner) predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, value := range internal.IterSeq2Map(r.Emulator.Defines()) {
		pred[key] = starlark.MakeUint64(uint64(value))
	}

	builtins := map[string]func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error){
		// Driver side.
		"take":                 r.take,
		"release":              r.release,
		"enable_trace":         r.enableTrace,
		"disable_trace":        r.disableTrace,
		"trace_enabled":        r.traceEnabled,
		"is_debugger_attached": r.isDebuggerAttached,
		"status":               r.status,
		"read":                 r.read,
		"write":                r.write,

		// Hardware side.
		"attach":      r.event(r.Emulator.AttachDebugger),
		"detach":      r.event(r.Emulator.DetachDebugger),
		"retire":      r.event(r.Emulator.Retire),
		"soft_reset":  r.event(r.Emulator.SoftReset),
		"power_reset": r.event(r.Emulator.PowerReset),
		"halt":        r.fallible(r.Emulator.Halt),
		"resume":      r.fallible(r.Emulator.Resume),
		"transfer":    r.fallible(r.Emulator.Transfer),
	}

	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			return fn(args, kwargs)
		})
	}

	return
}

func (r *Runner) event(fn func()) func(starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(args)+len(kwargs) != 0 {
			return nil, ErrArguments
		}
		fn()
		return starlark.None, nil
	}
}

func (r *Runner) fallible(fn func() error) func(starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(args)+len(kwargs) != 0 {
			return nil, ErrArguments
		}
		return starlark.None, fn()
	}
}

func (r *Runner) owned() (d *dcb.DCB, err error) {
	if r.handle == nil {
		err = ErrNotTaken
		return
	}
	d = r.handle
	return
}

func (r *Runner) take(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("take", args, kwargs); err != nil {
		return nil, err
	}

	d, err := r.Emulator.Peripheral.Take()
	if err != nil {
		return nil, err
	}
	r.handle = d
	return starlark.None, nil
}

func (r *Runner) release(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("release", args, kwargs); err != nil {
		return nil, err
	}

	if _, err := r.owned(); err != nil {
		return nil, err
	}
	return starlark.None, r.Close()
}

func (r *Runner) enableTrace(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("enable_trace", args, kwargs); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}
	d.EnableTrace()
	return starlark.None, nil
}

func (r *Runner) disableTrace(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("disable_trace", args, kwargs); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}
	d.DisableTrace()
	return starlark.None, nil
}

func (r *Runner) traceEnabled(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("trace_enabled", args, kwargs); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}
	return starlark.Bool(d.TraceEnabled()), nil
}

func (r *Runner) isDebuggerAttached(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("is_debugger_attached", args, kwargs); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}
	attached := d.IsDebuggerAttached()
	r.Emulator.AcknowledgeStatus()
	return starlark.Bool(attached), nil
}

func (r *Runner) status(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("status", args, kwargs); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}
	status := d.Status()
	r.Emulator.AcknowledgeStatus()

	dict := starlark.NewDict(10)
	for key, value := range map[string]bool{
		"debug_enabled":   status.DebugEnabled,
		"halt_requested":  status.HaltRequested,
		"stepping":        status.Stepping,
		"mask_interrupts": status.MaskInterrupts,
		"reg_ready":       status.RegReady,
		"halted":          status.Halted,
		"sleeping":        status.Sleeping,
		"lockup":          status.Lockup,
		"retired":         status.Retired,
		"reset_occurred":  status.ResetOccurred,
	} {
		if err := dict.SetKey(starlark.String(key), starlark.Bool(value)); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// register resolves a register name to its read-write view, or reports the
// register as write only.
func register(regs *dcb.RegisterBlock, name string) (reg *volatile.RW32, err error) {
	switch strings.ToUpper(name) {
	case "DHCSR":
		reg = &regs.DHCSR
	case "DCRDR":
		reg = &regs.DCRDR
	case "DEMCR":
		reg = &regs.DEMCR
	case "DCRSR":
		err = ErrWriteOnly
	default:
		err = ErrRegisterUnknown(name)
	}
	return
}

func (r *Runner) read(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs("read", args, kwargs, "name", &name); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}

	reg, err := register(d.Registers(), name)
	if err != nil {
		return nil, err
	}

	value := reg.Get()
	if reg == &d.Registers().DHCSR {
		r.Emulator.AcknowledgeStatus()
	}
	return starlark.MakeUint64(uint64(value)), nil
}

func (r *Runner) write(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var value starlark.Int
	if err := starlark.UnpackArgs("write", args, kwargs, "name", &name, "value", &value); err != nil {
		return nil, err
	}

	d, err := r.owned()
	if err != nil {
		return nil, err
	}

	value64, ok := value.Uint64()
	if !ok || value64 > 0xffff_ffff {
		return nil, ErrValueRange
	}

	if strings.ToUpper(name) == "DCRSR" {
		d.Registers().DCRSR.Set(uint32(value64))
		return starlark.None, nil
	}

	reg, err := register(d.Registers(), name)
	if err != nil {
		return nil, err
	}
	reg.Set(uint32(value64))
	return starlark.None, nil
}
