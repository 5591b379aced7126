package dcb

import (
	"github.com/ezrec/coredebug/peripheral"
)

// Peripheral pairs a Debug Control Block with its ownership token.
//
// The register block is reachable only through a handle: Take for the owner,
// Steal for code that already owns the hardware by other means.
type Peripheral struct {
	token *peripheral.Token
	regs  *RegisterBlock
}

// NewPeripheral guards the register block at regs.
//
// There must be exactly one Peripheral per physical block; Hardware is the
// one for the real core. Emulators create one over their own memory.
func NewPeripheral(regs *RegisterBlock) *Peripheral {
	return &Peripheral{
		token: peripheral.NewToken("DCB"),
		regs:  regs,
	}
}

// Take returns the owned handle, or an error wrapping peripheral.ErrTaken
// if a handle is already live.
func (p *Peripheral) Take() (d *DCB, err error) {
	claim, err := p.token.Take()
	if err != nil {
		return
	}

	d = &DCB{owner: p, claim: claim, regs: p.regs}
	return
}

// Steal returns a handle without claiming the token.
//
// Only for code that already owns the hardware by other means (an exception
// handler running while the owner is suspended, say). Two handles used at the
// same time race on every read-modify-write.
func (p *Peripheral) Steal() *DCB {
	return &DCB{regs: p.regs}
}

// Taken reports whether a handle is live.
func (p *Peripheral) Taken() bool {
	return p.token.Taken()
}

// noCopy makes `go vet` report copies of the struct it is embedded in.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// DCB is an owned handle to a Debug Control Block. Handles must not be
// copied; pass the pointer.
type DCB struct {
	_ noCopy

	owner *Peripheral
	claim peripheral.Claim
	regs  *RegisterBlock
}

// Release gives the handle back to its Peripheral. The handle must not be
// used afterwards; doing so panics. Releasing twice, or releasing a stolen
// handle, does nothing.
//
// An error wrapping peripheral.ErrNotTaken means the handle's claim was no
// longer the owner's, and the current owner keeps the token.
func (d *DCB) Release() (err error) {
	if d.owner != nil {
		err = d.owner.token.Give(d.claim)
		d.owner = nil
		d.claim = 0
	}
	d.regs = nil
	return
}

// Registers exposes the raw register block of the handle.
func (d *DCB) Registers() *RegisterBlock {
	return d.regs
}
