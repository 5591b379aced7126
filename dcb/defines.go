package dcb

import (
	"iter"
	"maps"
)

var _dcb_defines = map[string]uint32{
	"DCB_ADDRESS": Address,

	"DHCSR_C_DEBUGEN":   DHCSR_C_DEBUGEN,
	"DHCSR_C_HALT":      DHCSR_C_HALT,
	"DHCSR_C_STEP":      DHCSR_C_STEP,
	"DHCSR_C_MASKINTS":  DHCSR_C_MASKINTS,
	"DHCSR_C_SNAPSTALL": DHCSR_C_SNAPSTALL,
	"DHCSR_S_REGRDY":    DHCSR_S_REGRDY,
	"DHCSR_S_HALT":      DHCSR_S_HALT,
	"DHCSR_S_SLEEP":     DHCSR_S_SLEEP,
	"DHCSR_S_LOCKUP":    DHCSR_S_LOCKUP,
	"DHCSR_S_RETIRE_ST": DHCSR_S_RETIRE_ST,
	"DHCSR_S_RESET_ST":  DHCSR_S_RESET_ST,
	"DHCSR_DBGKEY":      DHCSR_DBGKEY,

	"DCRSR_REGSEL_MASK": DCRSR_REGSEL_MASK,
	"DCRSR_REGWnR":      DCRSR_REGWnR,

	"DEMCR_VC_CORERESET": DEMCR_VC_CORERESET,
	"DEMCR_VC_MMERR":     DEMCR_VC_MMERR,
	"DEMCR_VC_NOCPERR":   DEMCR_VC_NOCPERR,
	"DEMCR_VC_CHKERR":    DEMCR_VC_CHKERR,
	"DEMCR_VC_STATERR":   DEMCR_VC_STATERR,
	"DEMCR_VC_BUSERR":    DEMCR_VC_BUSERR,
	"DEMCR_VC_INTERR":    DEMCR_VC_INTERR,
	"DEMCR_VC_HARDERR":   DEMCR_VC_HARDERR,
	"DEMCR_MON_EN":       DEMCR_MON_EN,
	"DEMCR_MON_PEND":     DEMCR_MON_PEND,
	"DEMCR_MON_STEP":     DEMCR_MON_STEP,
	"DEMCR_MON_REQ":      DEMCR_MON_REQ,
	"DEMCR_TRCENA":       DEMCR_TRCENA,
}

// Defines returns an iterator over the named bitfield constants.
func Defines() iter.Seq2[string, uint32] {
	return maps.All(_dcb_defines)
}
