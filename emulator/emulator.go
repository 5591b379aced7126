// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator models the hardware side of a Debug Control Block.
//
// The register block lives in ordinary memory and is guarded by its own
// dcb.Peripheral. The emulator plays the roles software cannot: the external
// debugger (attach, halt, core register transfers) and the reset logic.
//
// Plain memory cannot see loads. A software read of DHCSR on real hardware
// clears S_RESET_ST and S_RETIRE_ST; here those flags stay set until
// AcknowledgeStatus is called, so code that depends on the clearing must call
// it after each read. Core register transfers likewise need an explicit
// Transfer after DCRSR is written.
//
// The variant is fixed when the emulator is created.
package emulator

import (
	"iter"
	"log"
	"maps"
	"strings"
	"unsafe"

	"github.com/ezrec/coredebug/dcb"
	"github.com/ezrec/coredebug/internal"
)

// Variant selects the core architecture being modelled.
type Variant int

//go:generate go tool stringer -linecomment -type=Variant
const (
	// Cortex-M3/M4/M7: DHCSR is visible to software.
	ARMv7M Variant = iota // armv7m
	// Cortex-M0/M0+: software reads of DHCSR return 0.
	ARMv6M // armv6m
)

// ParseVariant accepts "armv7m", "v7m", "armv6m" or "v6m".
func ParseVariant(name string) (v Variant, err error) {
	switch strings.ToLower(name) {
	case "armv7m", "v7m", "armv7-m":
		v = ARMv7M
	case "armv6m", "v6m", "armv6-m":
		v = ARMv6M
	default:
		err = ErrVariant(name)
	}
	return
}

// Core register selectors, as written to DCRSR.REGSEL.
const (
	REG_R0      = 0
	REG_R12     = 12
	REG_SP      = 13
	REG_LR      = 14
	REG_PC      = 15 // DebugReturnAddress
	REG_XPSR    = 16
	REG_MSP     = 17
	REG_PSP     = 18
	REG_SPECIAL = 20 // CONTROL, FAULTMASK, BASEPRI, PRIMASK
	REG_COUNT   = 21
)

var _emulator_defines = map[string]uint32{
	"ARMV7M":      uint32(ARMv7M),
	"ARMV6M":      uint32(ARMv6M),
	"REG_R0":      REG_R0,
	"REG_R12":     REG_R12,
	"REG_SP":      REG_SP,
	"REG_LR":      REG_LR,
	"REG_PC":      REG_PC,
	"REG_XPSR":    REG_XPSR,
	"REG_MSP":     REG_MSP,
	"REG_PSP":     REG_PSP,
	"REG_SPECIAL": REG_SPECIAL,
}

// Halting state bits the reset logic clears.
const dhcsrHaltState = dcb.DHCSR_C_HALT | dcb.DHCSR_C_STEP | dcb.DHCSR_C_MASKINTS |
	dcb.DHCSR_C_SNAPSTALL | dcb.DHCSR_S_HALT | dcb.DHCSR_S_REGRDY

// Emulator state. Register block + debugger + core registers.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	Block      dcb.RegisterBlock // Emulated register memory.
	Peripheral *dcb.Peripheral   // Ownership of Block.

	Core [REG_COUNT]uint32 // Core register file, reachable while halted.

	variant Variant // Core variant being modelled.
	dhcsr   uint32  // DHCSR as the hardware sees it.
}

// NewEmulator creates a powered-on emulator for the variant.
func NewEmulator(variant Variant) (emu *Emulator) {
	emu = &Emulator{
		variant: variant,
	}
	emu.Peripheral = dcb.NewPeripheral(&emu.Block)

	emu.PowerReset()

	return
}

// Variant returns the core variant chosen at construction.
func (emu *Emulator) Variant() Variant {
	return emu.variant
}

func (emu *Emulator) logf(format string, args ...any) {
	if emu.Verbose {
		log.Printf("dcb: "+format, args...)
	}
}

// publish makes the hardware DHCSR visible to software.
//
// Software writes to DHCSR are discarded here. Only the debugger changes
// halting state in this model.
func (emu *Emulator) publish() {
	value := emu.dhcsr
	if emu.variant == ARMv6M {
		value = 0
	}
	internal.Poke(unsafe.Pointer(&emu.Block.DHCSR), value)
}

// Status returns DHCSR as the hardware sees it, regardless of variant.
// It does not clear any flags.
func (emu *Emulator) Status() dcb.Status {
	return dcb.DecodeStatus(emu.dhcsr)
}

// Attached reports whether the emulated debugger has enabled halting debug.
func (emu *Emulator) Attached() bool {
	return emu.dhcsr&dcb.DHCSR_C_DEBUGEN != 0
}

// AttachDebugger connects a debugger, which sets C_DEBUGEN.
func (emu *Emulator) AttachDebugger() {
	emu.logf("debugger attached")
	emu.dhcsr |= dcb.DHCSR_C_DEBUGEN
	emu.publish()
}

// DetachDebugger disconnects the debugger, resuming the core if halted.
func (emu *Emulator) DetachDebugger() {
	emu.logf("debugger detached")
	emu.dhcsr &^= dcb.DHCSR_C_DEBUGEN | dhcsrHaltState
	emu.publish()
}

// Halt stops the core in Debug state. The debugger must be attached.
func (emu *Emulator) Halt() (err error) {
	if !emu.Attached() {
		err = ErrNoDebugger
		return
	}

	emu.logf("halt")
	emu.dhcsr |= dcb.DHCSR_C_HALT | dcb.DHCSR_S_HALT | dcb.DHCSR_S_REGRDY
	emu.publish()
	return
}

// Resume leaves Debug state.
func (emu *Emulator) Resume() (err error) {
	if emu.dhcsr&dcb.DHCSR_S_HALT == 0 {
		err = ErrNotHalted
		return
	}

	emu.logf("resume")
	emu.dhcsr &^= dcb.DHCSR_C_HALT | dcb.DHCSR_S_HALT | dcb.DHCSR_S_REGRDY
	emu.publish()
	return
}

// Retire latches S_RETIRE_ST, as the core does when an instruction retires.
func (emu *Emulator) Retire() {
	emu.dhcsr |= dcb.DHCSR_S_RETIRE_ST
	emu.publish()
}

// AcknowledgeStatus applies the side effect of a software read of DHCSR:
// S_RESET_ST and S_RETIRE_ST clear.
//
// A plain memory block cannot see loads, so code driving the emulator calls
// this after every DHCSR read it performs.
func (emu *Emulator) AcknowledgeStatus() {
	if emu.variant == ARMv6M {
		// Software cannot see DHCSR, so its reads do not touch it.
		return
	}
	emu.dhcsr &^= dcb.DHCSR_S_RESET_ST | dcb.DHCSR_S_RETIRE_ST
	emu.publish()
}

// SoftReset performs a local reset.
//
// The debugger stays attached and DEMCR, including TRCENA, is kept. If
// DEMCR.VC_CORERESET is set and a debugger is attached the core halts
// coming out of reset.
func (emu *Emulator) SoftReset() {
	emu.logf("soft reset")

	emu.dhcsr = (emu.dhcsr & dcb.DHCSR_C_DEBUGEN) | dcb.DHCSR_S_RESET_ST
	emu.Core = [REG_COUNT]uint32{}

	if emu.Attached() && emu.Block.DEMCR.HasBits(dcb.DEMCR_VC_CORERESET) {
		emu.logf("vector catch: core reset")
		emu.dhcsr |= dcb.DHCSR_C_HALT | dcb.DHCSR_S_HALT | dcb.DHCSR_S_REGRDY
	}

	emu.publish()
}

// PowerReset performs a power-on reset, clearing every register including
// TRCENA and disconnecting the debugger's halting control.
func (emu *Emulator) PowerReset() {
	emu.logf("power reset")

	emu.dhcsr = dcb.DHCSR_S_RESET_ST
	emu.Core = [REG_COUNT]uint32{}

	internal.Poke(unsafe.Pointer(&emu.Block.DCRSR), 0)
	internal.Poke(unsafe.Pointer(&emu.Block.DCRDR), 0)
	internal.Poke(unsafe.Pointer(&emu.Block.DEMCR), 0)
	emu.publish()
}

// Transfer carries out the core register transfer last selected in DCRSR.
func (emu *Emulator) Transfer() (err error) {
	selector := internal.Peek(unsafe.Pointer(&emu.Block.DCRSR))

	defer func() {
		if err != nil {
			err = &ErrTransfer{Selector: selector, Err: err}
		}
	}()

	if emu.dhcsr&dcb.DHCSR_S_HALT == 0 {
		err = ErrNotHalted
		return
	}

	reg := selector & dcb.DCRSR_REGSEL_MASK
	if reg >= REG_COUNT || reg == 19 {
		err = ErrRegisterInvalid
		return
	}

	if selector&dcb.DCRSR_REGWnR != 0 {
		emu.Core[reg] = internal.Peek(unsafe.Pointer(&emu.Block.DCRDR))
		emu.logf("transfer DCRDR -> r%d = 0x%08x", reg, emu.Core[reg])
	} else {
		internal.Poke(unsafe.Pointer(&emu.Block.DCRDR), emu.Core[reg])
		emu.logf("transfer r%d -> DCRDR = 0x%08x", reg, emu.Core[reg])
	}

	emu.dhcsr |= dcb.DHCSR_S_REGRDY
	emu.publish()
	return
}

// Registers returns an iterator over the register block, in address order,
// as software would see it, DCRSR included. Nothing is cleared.
func (emu *Emulator) Registers() iter.Seq2[string, uint32] {
	return func(yield func(string, uint32) bool) {
		regs := []struct {
			name string
			reg  unsafe.Pointer
		}{
			{"DHCSR", unsafe.Pointer(&emu.Block.DHCSR)},
			{"DCRSR", unsafe.Pointer(&emu.Block.DCRSR)},
			{"DCRDR", unsafe.Pointer(&emu.Block.DCRDR)},
			{"DEMCR", unsafe.Pointer(&emu.Block.DEMCR)},
		}
		for _, r := range regs {
			if !yield(r.name, internal.Peek(r.reg)) {
				return
			}
		}
	}
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, uint32] {
	return internal.IterSeq2Concat(dcb.Defines(), maps.All(_emulator_defines))
}
