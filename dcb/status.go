package dcb

// Status is a decoded DHCSR value.
type Status struct {
	DebugEnabled   bool // C_DEBUGEN
	HaltRequested  bool // C_HALT
	Stepping       bool // C_STEP
	MaskInterrupts bool // C_MASKINTS
	RegReady       bool // S_REGRDY
	Halted         bool // S_HALT
	Sleeping       bool // S_SLEEP
	Lockup         bool // S_LOCKUP
	Retired        bool // S_RETIRE_ST
	ResetOccurred  bool // S_RESET_ST
}

// DecodeStatus splits a raw DHCSR value into its flags.
func DecodeStatus(value uint32) Status {
	return Status{
		DebugEnabled:   value&DHCSR_C_DEBUGEN != 0,
		HaltRequested:  value&DHCSR_C_HALT != 0,
		Stepping:       value&DHCSR_C_STEP != 0,
		MaskInterrupts: value&DHCSR_C_MASKINTS != 0,
		RegReady:       value&DHCSR_S_REGRDY != 0,
		Halted:         value&DHCSR_S_HALT != 0,
		Sleeping:       value&DHCSR_S_SLEEP != 0,
		Lockup:         value&DHCSR_S_LOCKUP != 0,
		Retired:        value&DHCSR_S_RETIRE_ST != 0,
		ResetOccurred:  value&DHCSR_S_RESET_ST != 0,
	}
}

// Status reads DHCSR once and decodes it.
//
// Like IsDebuggerAttached this is a destructive read: the hardware clears
// S_RESET_ST and S_RETIRE_ST, so Retired and ResetOccurred are reported
// exactly once per event.
func (d *DCB) Status() Status {
	return DecodeStatus(d.regs.DHCSR.Get())
}
