// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package dcb

import (
	"unsafe"

	"github.com/ezrec/coredebug/volatile"
)

// Address of the Debug Control Block in the System Control Space.
const Address = 0xE000EDF0

// RegisterBlock is the hardware layout of the Debug Control Block.
type RegisterBlock struct {
	DHCSR volatile.RW32 //0x00, Debug Halting Control and Status
	DCRSR volatile.WO32 //0x04, Debug Core Register Selector
	DCRDR volatile.RW32 //0x08, Debug Core Register Data
	DEMCR volatile.RW32 //0x0C, Debug Exception and Monitor Control
}

// The layout is fixed by hardware. Any drift fails to compile.
var (
	_ = [1]struct{}{}[unsafe.Offsetof(RegisterBlock{}.DHCSR)-0x00]
	_ = [1]struct{}{}[unsafe.Offsetof(RegisterBlock{}.DCRSR)-0x04]
	_ = [1]struct{}{}[unsafe.Offsetof(RegisterBlock{}.DCRDR)-0x08]
	_ = [1]struct{}{}[unsafe.Offsetof(RegisterBlock{}.DEMCR)-0x0C]
	_ = [1]struct{}{}[unsafe.Sizeof(RegisterBlock{})-0x10]
)

// DHCSR: Debug Halting Control and Status Register bitfields.
const (
	DHCSR_C_DEBUGEN   = 1 << 0 // Halting debug enabled; set only by a debugger.
	DHCSR_C_HALT      = 1 << 1
	DHCSR_C_STEP      = 1 << 2
	DHCSR_C_MASKINTS  = 1 << 3
	DHCSR_C_SNAPSTALL = 1 << 5
	DHCSR_S_REGRDY    = 1 << 16
	DHCSR_S_HALT      = 1 << 17
	DHCSR_S_SLEEP     = 1 << 18
	DHCSR_S_LOCKUP    = 1 << 19
	DHCSR_S_RETIRE_ST = 1 << 24 // Cleared by a read of DHCSR.
	DHCSR_S_RESET_ST  = 1 << 25 // Cleared by a read of DHCSR.

	DHCSR_DBGKEY      = 0xA05F << 16 // Must accompany every write.
	DHCSR_DBGKEY_MASK = 0xFFFF << 16
)

// DCRSR: Debug Core Register Selector bitfields.
const (
	DCRSR_REGSEL_MASK = 0x7F
	DCRSR_REGWnR      = 1 << 16
)

// DEMCR: Debug Exception and Monitor Control Register bitfields.
const (
	DEMCR_VC_CORERESET = 1 << 0
	DEMCR_VC_MMERR     = 1 << 4
	DEMCR_VC_NOCPERR   = 1 << 5
	DEMCR_VC_CHKERR    = 1 << 6
	DEMCR_VC_STATERR   = 1 << 7
	DEMCR_VC_BUSERR    = 1 << 8
	DEMCR_VC_INTERR    = 1 << 9
	DEMCR_VC_HARDERR   = 1 << 10
	DEMCR_MON_EN       = 1 << 16
	DEMCR_MON_PEND     = 1 << 17
	DEMCR_MON_STEP     = 1 << 18
	DEMCR_MON_REQ      = 1 << 19
	DEMCR_TRCENA       = 1 << 24 // Survives local reset; cleared by power-on reset.
)

// Hardware is the Debug Control Block at its architectural address.
var Hardware = NewPeripheral((*RegisterBlock)(unsafe.Pointer(uintptr(Address))))

// Take claims exclusive ownership of the hardware Debug Control Block.
func Take() (*DCB, error) {
	return Hardware.Take()
}
