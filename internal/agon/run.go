package agon

import "github.com/tomm/go-ez80/pkg/cpu"

// uart0Vector is the IM2 vector offset the firmware installs for the UART0
// receive/timer interrupt; interruptPeriod is how often Run polls it, both
// taken from the reference firmware's own fixed polling cadence.
const (
	uart0Vector     = 0x18
	interruptPeriod = 10000
)

// Run drives cpu against m starting at PC=0, polling the UART0/timer
// interrupt vector every interruptPeriod instructions - the same coarse
// cadence the reference firmware loop uses in place of real cycle-accurate
// timer hardware. Run loops forever; RunN is the bounded form.
func Run(c *cpu.Cpu, m *Machine) {
	c.Reg.SetPC(0)
	var executed uint64
	for {
		if c.Step() {
			executed++
			if executed%interruptPeriod == 0 {
				c.Env.Interrupt(uart0Vector)
			}
		}
	}
}

// RunN is Run bounded to at most n real opcode steps (Step calls that
// actually decoded and executed an instruction), for tests and the CLI's
// non-interactive mode.
func RunN(c *cpu.Cpu, m *Machine, n uint64) {
	c.Reg.SetPC(0)
	var executed uint64
	for executed < n {
		if c.Step() {
			executed++
			if executed%interruptPeriod == 0 {
				c.Env.Interrupt(uart0Vector)
			}
		}
	}
}
