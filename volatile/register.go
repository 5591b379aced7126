// Package volatile provides access-mode tagged 32-bit hardware registers.
//
// A register block is declared as a struct of RW32, RO32 and WO32 fields laid
// out exactly as the hardware lays out its registers, and overlaid on the
// block's physical address. The access mode is part of the field's type: a
// WO32 has no reader and an RO32 has no writer, so touching a register in a
// way the hardware forbids does not compile.
//
// Every access is a single 32-bit load or store that the compiler may not
// elide, cache, merge or reorder with other register accesses. Modify is a
// load followed by a store and is NOT atomic: an interrupt handler or a second
// core writing the same register between the two is silently overwritten.
// Callers that share a register across execution contexts must provide their
// own exclusion (for example by masking interrupts around the call).
package volatile

import (
	"sync/atomic"
)

// RW32 is a read-write 32-bit register.
type RW32 struct {
	reg uint32
}

// RO32 is a read-only 32-bit register.
type RO32 struct {
	reg uint32
}

// WO32 is a write-only 32-bit register.
type WO32 struct {
	reg uint32
}

func load(reg *uint32) uint32 {
	return atomic.LoadUint32(reg)
}

func store(reg *uint32, value uint32) {
	atomic.StoreUint32(reg, value)
}

// Get performs a volatile read of the register.
//
// Some registers change hardware state when read (status flags that clear on
// read), so a Get is never free of side effects in general.
func (r *RW32) Get() uint32 {
	return load(&r.reg)
}

// Set performs a volatile write of the register.
func (r *RW32) Set(value uint32) {
	store(&r.reg, value)
}

// Modify writes back fn applied to the current register value.
// The read and the write are two separate accesses.
func (r *RW32) Modify(fn func(value uint32) uint32) {
	r.Set(fn(r.Get()))
}

// HasBits reports whether any of the bits in mask are set.
func (r *RW32) HasBits(mask uint32) bool {
	return r.Get()&mask != 0
}

// SetBits sets the bits in mask, leaving the others untouched.
func (r *RW32) SetBits(mask uint32) {
	r.Modify(func(value uint32) uint32 {
		return value | mask
	})
}

// ClearBits clears the bits in mask, leaving the others untouched.
func (r *RW32) ClearBits(mask uint32) {
	r.Modify(func(value uint32) uint32 {
		return value &^ mask
	})
}

// ReplaceBits replaces the field (mask << pos) with (value << pos).
func (r *RW32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Modify(func(old uint32) uint32 {
		return (old &^ (mask << pos)) | ((value & mask) << pos)
	})
}

// Get performs a volatile read of the register.
func (r *RO32) Get() uint32 {
	return load(&r.reg)
}

// HasBits reports whether any of the bits in mask are set.
func (r *RO32) HasBits(mask uint32) bool {
	return r.Get()&mask != 0
}

// Set performs a volatile write of the register.
// There is no way to read it back.
func (r *WO32) Set(value uint32) {
	store(&r.reg, value)
}
