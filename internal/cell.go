package internal

import (
	"sync/atomic"
	"unsafe"
)

// Peek reads the 32-bit register cell at p, whatever its access mode.
//
// Only hardware models use it: an emulator backing a register block with
// ordinary memory has to see what software wrote to write-only registers,
// and latch flags into read-only ones. p must point at a volatile.RW32,
// RO32 or WO32, each of which is a single uint32.
func Peek(p unsafe.Pointer) uint32 {
	return atomic.LoadUint32((*uint32)(p))
}

// Poke writes the 32-bit register cell at p. See Peek.
func Poke(p unsafe.Pointer, value uint32) {
	atomic.StoreUint32((*uint32)(p), value)
}
