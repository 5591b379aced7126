package dcb

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/coredebug/internal"
	"github.com/ezrec/coredebug/peripheral"
)

// initialValues covers the corner cases plus a fixed pseudo-random sample.
func initialValues() (values []uint32) {
	values = []uint32{
		0x0000_0000,
		0xffff_ffff,
		DEMCR_TRCENA,
		^uint32(DEMCR_TRCENA),
		DEMCR_VC_CORERESET | DEMCR_MON_EN,
		0x5555_5555,
		0xaaaa_aaaa,
	}

	rng := rand.New(rand.NewPCG(0xdcb, 0x24))
	for range 64 {
		values = append(values, rng.Uint32())
	}

	return
}

func newOwned(t *testing.T) (d *DCB, regs *RegisterBlock) {
	regs = &RegisterBlock{}
	d, err := NewPeripheral(regs).Take()
	require.NoError(t, err)
	return
}

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	var rb RegisterBlock
	assert.Equal(uintptr(0x00), unsafe.Offsetof(rb.DHCSR))
	assert.Equal(uintptr(0x04), unsafe.Offsetof(rb.DCRSR))
	assert.Equal(uintptr(0x08), unsafe.Offsetof(rb.DCRDR))
	assert.Equal(uintptr(0x0C), unsafe.Offsetof(rb.DEMCR))
	assert.Equal(uintptr(0x10), unsafe.Sizeof(rb))

	assert.Equal(uintptr(0xE000EDF0), uintptr(unsafe.Pointer(Hardware.regs)))
	assert.Equal(uint32(1<<24), uint32(DEMCR_TRCENA))
	assert.Equal(uint32(1<<0), uint32(DHCSR_C_DEBUGEN))
}

func TestEnableTrace(t *testing.T) {
	d, regs := newOwned(t)

	for _, initial := range initialValues() {
		regs.DEMCR.Set(initial)
		d.EnableTrace()

		value := regs.DEMCR.Get()
		assert.Equal(t, uint32(DEMCR_TRCENA), value&DEMCR_TRCENA, "initial 0x%08x", initial)
		assert.Equal(t, initial&^DEMCR_TRCENA, value&^DEMCR_TRCENA, "initial 0x%08x", initial)
		assert.True(t, d.TraceEnabled())
	}
}

func TestDisableTrace(t *testing.T) {
	d, regs := newOwned(t)

	for _, initial := range initialValues() {
		regs.DEMCR.Set(initial)
		d.DisableTrace()

		value := regs.DEMCR.Get()
		assert.Equal(t, uint32(0), value&DEMCR_TRCENA, "initial 0x%08x", initial)
		assert.Equal(t, initial&^DEMCR_TRCENA, value&^DEMCR_TRCENA, "initial 0x%08x", initial)
		assert.False(t, d.TraceEnabled())
	}
}

func TestTrace_Idempotent(t *testing.T) {
	d, regs := newOwned(t)

	for _, initial := range initialValues() {
		regs.DEMCR.Set(initial)
		d.EnableTrace()
		once := regs.DEMCR.Get()
		d.EnableTrace()
		assert.Equal(t, once, regs.DEMCR.Get(), "enable twice, initial 0x%08x", initial)

		regs.DEMCR.Set(initial)
		d.DisableTrace()
		once = regs.DEMCR.Get()
		d.DisableTrace()
		assert.Equal(t, once, regs.DEMCR.Get(), "disable twice, initial 0x%08x", initial)
	}
}

func TestTrace_Inverse(t *testing.T) {
	d, regs := newOwned(t)

	for _, initial := range initialValues() {
		// Starting with TRCENA clear, enable then disable is the identity.
		start := initial &^ DEMCR_TRCENA
		regs.DEMCR.Set(start)
		d.EnableTrace()
		d.DisableTrace()
		assert.Equal(t, start, regs.DEMCR.Get(), "initial 0x%08x", initial)

		// The last call decides the bit, however the calls are repeated.
		sequences := [][]func(){
			{d.EnableTrace, d.DisableTrace, d.EnableTrace},
			{d.DisableTrace, d.DisableTrace, d.EnableTrace},
			{d.EnableTrace, d.EnableTrace, d.DisableTrace},
			{d.DisableTrace, d.EnableTrace, d.DisableTrace},
		}
		for n, seq := range sequences {
			regs.DEMCR.Set(initial)
			for _, op := range seq {
				op()
			}
			want := initial &^ DEMCR_TRCENA
			if n < 2 {
				want |= DEMCR_TRCENA
			}
			assert.Equal(t, want, regs.DEMCR.Get(), "sequence %d, initial 0x%08x", n, initial)
		}
	}
}

func TestTrace_OtherRegistersUntouched(t *testing.T) {
	assert := assert.New(t)

	d, regs := newOwned(t)
	regs.DHCSR.Set(0x0102_0304)
	regs.DCRSR.Set(0x0001_0005)
	regs.DCRDR.Set(0xcafe_f00d)

	d.EnableTrace()
	d.DisableTrace()

	assert.Equal(uint32(0x0102_0304), regs.DHCSR.Get())
	assert.Equal(uint32(0x0001_0005), internal.Peek(unsafe.Pointer(&regs.DCRSR)))
	assert.Equal(uint32(0xcafe_f00d), regs.DCRDR.Get())
}

func TestIsDebuggerAttached(t *testing.T) {
	d, regs := newOwned(t)

	for _, initial := range initialValues() {
		regs.DHCSR.Set(initial)
		assert.Equal(t, initial&1 == 1, d.IsDebuggerAttached(), "DHCSR 0x%08x", initial)
	}

	regs.DHCSR.Set(DHCSR_C_DEBUGEN)
	assert.True(t, d.IsDebuggerAttached())

	regs.DHCSR.Set(^uint32(DHCSR_C_DEBUGEN))
	assert.False(t, d.IsDebuggerAttached())

	// Not cached: the answer follows the register.
	regs.DHCSR.Set(DHCSR_C_DEBUGEN)
	assert.True(t, d.IsDebuggerAttached())
}

func TestStatus(t *testing.T) {
	d, regs := newOwned(t)

	table := map[string]struct {
		dhcsr  uint32
		status Status
	}{
		"idle": {0, Status{}},
		"attached": {DHCSR_C_DEBUGEN, Status{DebugEnabled: true}},
		"halted": {
			DHCSR_C_DEBUGEN | DHCSR_C_HALT | DHCSR_S_HALT | DHCSR_S_REGRDY,
			Status{DebugEnabled: true, HaltRequested: true, Halted: true, RegReady: true},
		},
		"stepping": {
			DHCSR_C_DEBUGEN | DHCSR_C_STEP | DHCSR_C_MASKINTS,
			Status{DebugEnabled: true, Stepping: true, MaskInterrupts: true},
		},
		"after reset": {
			DHCSR_S_RESET_ST | DHCSR_S_RETIRE_ST | DHCSR_S_SLEEP,
			Status{ResetOccurred: true, Retired: true, Sleeping: true},
		},
		"lockup": {DHCSR_S_LOCKUP, Status{Lockup: true}},
	}

	for name, entry := range table {
		regs.DHCSR.Set(entry.dhcsr)
		if diff := cmp.Diff(entry.status, d.Status()); diff != "" {
			t.Errorf("%v: status mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestPeripheral_Singleton(t *testing.T) {
	assert := assert.New(t)

	p := NewPeripheral(&RegisterBlock{})
	assert.False(p.Taken())

	first, err := p.Take()
	require.NoError(t, err)
	assert.True(p.Taken())

	// Second acquisition fails while the first is live.
	second, err := p.Take()
	assert.ErrorIs(err, peripheral.ErrTaken)
	assert.Nil(second)

	assert.NoError(first.Release())
	assert.False(p.Taken())
	assert.Nil(first.Registers())

	// Released handles are dead.
	assert.Panics(func() { first.EnableTrace() })

	// Double release is harmless and does not free someone else's claim.
	third, err := p.Take()
	require.NoError(t, err)
	assert.NoError(first.Release())
	assert.True(p.Taken())

	assert.NoError(third.Release())
	assert.False(p.Taken())
}

func TestPeripheral_Steal(t *testing.T) {
	assert := assert.New(t)

	regs := &RegisterBlock{}
	p := NewPeripheral(regs)

	owned, err := p.Take()
	require.NoError(t, err)

	stolen := p.Steal()
	stolen.EnableTrace()
	assert.True(owned.TraceEnabled())

	// Releasing a stolen handle does not give back the owner's token.
	assert.NoError(stolen.Release())
	assert.True(p.Taken())

	assert.NoError(owned.Release())
	assert.False(p.Taken())
}

func TestTake_Hardware(t *testing.T) {
	assert := assert.New(t)

	// Only the token is exercised; the hardware address is never touched.
	d, err := Take()
	require.NoError(t, err)
	defer d.Release()

	_, err = Take()
	assert.ErrorIs(err, peripheral.ErrTaken)
	assert.Same(Hardware.regs, d.Registers())
}

func TestPeripheral_StaleHandle(t *testing.T) {
	assert := assert.New(t)

	p := NewPeripheral(&RegisterBlock{})

	d, err := p.Take()
	require.NoError(t, err)

	// A duplicate of the handle carrying the same claim.
	dup := &DCB{owner: d.owner, claim: d.claim, regs: d.regs}

	require.NoError(t, d.Release())

	current, err := p.Take()
	require.NoError(t, err)

	// The stale duplicate cannot hand back the current owner's token.
	err = dup.Release()
	assert.ErrorIs(err, peripheral.ErrNotTaken)
	assert.True(p.Taken())

	_, err = p.Take()
	assert.ErrorIs(err, peripheral.ErrTaken)

	assert.NoError(current.Release())
	assert.False(p.Taken())
}

func TestPeripheral_NoRawAccess(t *testing.T) {
	assert := assert.New(t)

	// The block is reachable only through a handle.
	for _, name := range []string{"Registers", "Block", "Regs"} {
		_, ok := reflect.TypeOf(&Peripheral{}).MethodByName(name)
		assert.False(ok, "Peripheral must not expose %v", name)
	}

	// Handles carry a vet-visible copy guard.
	field, ok := reflect.TypeOf((*DCB)(nil)).Elem().FieldByName("_")
	if assert.True(ok) {
		assert.Equal(reflect.TypeOf(noCopy{}), field.Type)
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]uint32{}
	for name, value := range Defines() {
		defines[name] = value
	}

	assert.Equal(uint32(DEMCR_TRCENA), defines["DEMCR_TRCENA"])
	assert.Equal(uint32(DHCSR_C_DEBUGEN), defines["DHCSR_C_DEBUGEN"])
	assert.Equal(uint32(Address), defines["DCB_ADDRESS"])
}
