// Package peripheral hands out exclusive ownership of memory-mapped
// peripherals.
//
// Each peripheral has one Token. Whoever takes the token owns the hardware
// until they give it back. There is no waiting: a second Take while the token
// is held fails immediately, so contention is a programming error reported at
// the point the handle is obtained rather than something arbitrated later.
package peripheral

import (
	"sync/atomic"
)

// Claim identifies one successful Take. Only the matching claim can give the
// token back, so a stale copy of an old owner cannot release a new one.
type Claim uint64

// Token is the take-once ownership capability of a single peripheral.
type Token struct {
	name   string
	holder atomic.Uint64 // Claim of the current owner, 0 when free.
	issued atomic.Uint64 // Last claim handed out.
}

// NewToken creates an untaken token for the named peripheral.
func NewToken(name string) *Token {
	return &Token{name: name}
}

// Name of the peripheral guarded by the token.
func (t *Token) Name() string {
	return t.name
}

// Take claims the token. It fails with ErrTaken if it is already held.
func (t *Token) Take() (claim Claim, err error) {
	next := t.issued.Add(1)
	if !t.holder.CompareAndSwap(0, next) {
		err = &ErrPeripheral{Name: t.name, Err: ErrTaken}
		return
	}

	claim = Claim(next)
	return
}

// Give returns the token. It fails with ErrNotTaken unless claim is the
// current owner's.
func (t *Token) Give(claim Claim) (err error) {
	if claim == 0 || !t.holder.CompareAndSwap(uint64(claim), 0) {
		err = &ErrPeripheral{Name: t.name, Err: ErrNotTaken}
	}
	return
}

// Taken reports whether the token is currently held.
func (t *Token) Taken() bool {
	return t.holder.Load() != 0
}
