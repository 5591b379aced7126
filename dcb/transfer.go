package dcb

// SelectCoreRegister writes DCRSR, starting a transfer of core register reg
// to DCRDR, or from DCRDR when write is set.
//
// The transfer only happens while the core is halted in Debug state, and is
// complete once S_REGRDY reads as set (see Status). DCRSR is write only; the
// selection cannot be read back.
func (d *DCB) SelectCoreRegister(reg uint8, write bool) {
	value := uint32(reg) & DCRSR_REGSEL_MASK
	if write {
		value |= DCRSR_REGWnR
	}
	d.regs.DCRSR.Set(value)
}

// TransferData reads DCRDR.
func (d *DCB) TransferData() uint32 {
	return d.regs.DCRDR.Get()
}

// SetTransferData writes DCRDR.
func (d *DCB) SetTransferData(value uint32) {
	d.regs.DCRDR.Set(value)
}
