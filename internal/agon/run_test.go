package agon

import (
	"testing"

	"github.com/tomm/go-ez80/pkg/cpu"
)

// TestPeriodicInterruptFiresAndReturns programs an IM2 vector pointing at a
// bare RET and checks that after interruptPeriod NOPs the interrupt is taken
// and control returns to the instruction stream without disturbing it. The
// CPU runs in Z80 mode (ADL=0, MADL=0), so the interrupt's 2-byte push and
// the RET's 2-byte pop both use SPS, which MBASE places in RAM. The vector
// table and the handler sit above every address the NOP stream reaches.
func TestPeriodicInterruptFiresAndReturns(t *testing.T) {
	rom := make([]byte, romSize) // all zero bytes decode as NOP
	rom[0x4018] = 0x00
	rom[0x4019] = 0x40 // vector -> $4000
	rom[0x4000] = 0xC9 // RET

	m := New(rom, 0)
	c := cpu.NewCpu(cpu.DialectEZ80, m)
	c.Reg.SetADL(false)
	c.Reg.SetMBASE(ramBase >> 16)
	c.Reg.SetIM(2)
	c.Reg.SetI(0x40)
	c.Reg.SetIFF1(true)
	c.Reg.SetSPS(0x1000)

	const n = interruptPeriod + 5
	RunN(c, m, n)

	// n executed steps include one RET that returns to the PC it was
	// called from without net advance, so the NOP stream only actually
	// advances n-1 times.
	if got, want := c.Reg.PC(), uint32(n-1); got != want {
		t.Fatalf("PC = $%06X, want $%06X (NOP stream resumed after interrupt)", got, want)
	}
	if c.Reg.IFF1() {
		t.Fatalf("IFF1 should remain cleared after the interrupt (no RETI/EI executed)")
	}
}
