package dcb

// EnableTrace sets DEMCR.TRCENA, powering the DWT, ITM, ETM and TPIU.
// The DWT cycle counter, for one, stays dead until this is done.
//
// TRCENA is only cleared by a power-on reset. After a local (soft) reset it
// keeps whatever value the previous run left, so a clean state cannot be
// assumed at startup.
func (d *DCB) EnableTrace() {
	// set bit 24 / TRCENA
	d.regs.DEMCR.Modify(func(value uint32) uint32 {
		return value | DEMCR_TRCENA
	})
}

// DisableTrace clears DEMCR.TRCENA. See EnableTrace.
func (d *DCB) DisableTrace() {
	// clear bit 24 / TRCENA
	d.regs.DEMCR.Modify(func(value uint32) uint32 {
		return value &^ DEMCR_TRCENA
	})
}

// TraceEnabled reports whether DEMCR.TRCENA is set. Reading DEMCR has no
// side effects.
func (d *DCB) TraceEnabled() bool {
	return d.regs.DEMCR.HasBits(DEMCR_TRCENA)
}

// IsDebuggerAttached reports whether a debugger has enabled halting debug
// (DHCSR.C_DEBUGEN).
//
// This reads DHCSR, and reading DHCSR clears S_RESET_ST and S_RETIRE_ST.
// Code that wants those flags must get them from Status instead, and must
// not expect them to survive a call to IsDebuggerAttached. The result is not
// cached; every call is a fresh hardware read.
//
// Best effort only. On ARMv6-M, software access to DHCSR is implementation
// defined, and Cortex-M0/M0+ cores are reported to always read "no debugger".
func (d *DCB) IsDebuggerAttached() bool {
	return d.regs.DHCSR.Get()&DHCSR_C_DEBUGEN == DHCSR_C_DEBUGEN
}
