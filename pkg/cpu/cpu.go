package cpu

// Cpu bundles a register file, transient per-instruction State, a decode
// table set for one dialect, and a host Machine into the single object a
// caller drives one instruction at a time via Step.
type Cpu struct {
	Reg *Registers
	St  *State
	Sys Machine
	Dec *Decoder
	Env *Environment
}

// NewCpu constructs a Cpu for the given dialect, bound to sys for the
// lifetime of the returned value.
func NewCpu(dialect Dialect, sys Machine) *Cpu {
	reg := NewRegisters(dialect)
	st := NewState()
	env := NewEnvironment(reg, st, sys)

	var dec *Decoder
	switch dialect {
	case DialectZ80:
		dec = NewDecoderZ80()
	case Dialect8080:
		dec = NewDecoder8080()
	default:
		dec = NewDecoderEZ80()
	}

	return &Cpu{Reg: reg, St: st, Sys: sys, Dec: dec, Env: env}
}

// Step executes exactly one instruction (or, if halted, advances time
// without fetching) and returns whether it actually decoded and ran an
// opcode. Reset and NMI latches set by SignalReset/SignalNMI are serviced
// before the next opcode fetch; Step never services a maskable interrupt
// itself - callers poll IFF1 and call Cpu.Env.Interrupt explicitly between
// steps, matching the host-driven interrupt model described for Machine.
func (c *Cpu) Step() bool {
	if c.St.ResetPending() {
		c.reset()
		return false
	}
	if c.St.NMIPending() {
		c.serviceNMI()
	}

	if c.St.Halted() {
		c.St.EndInstruction()
		return false
	}

	op := c.Dec.Decode(c.Env)
	op.Action(c.Env)
	c.Reg.BumpR()
	c.St.EndInstruction()
	return true
}

func (c *Cpu) reset() {
	dialect := c.Reg.Dialect()
	*c.Reg = *NewRegisters(dialect)
	*c.St = *NewState()
}

// serviceNMI pushes PC, disables maskable interrupts, clears halt, and jumps
// to the fixed NMI vector at $0066 (Z80 mode) or the ADL-appropriate width
// of the same vector.
func (c *Cpu) serviceNMI() {
	c.St.clearNMI()
	c.Env.Push(c.Reg.PC())
	c.Reg.SetIFF2(c.Reg.IFF1())
	c.Reg.SetIFF1(false)
	c.St.SetHalted(false)
	if c.St.IsOpLong(c.Reg.ADL()) {
		c.Reg.SetPC(0x000066)
	} else {
		c.Reg.SetPC(0x0066)
	}
}

// RequestInterrupt forwards to Cpu.Env.Interrupt with the given vector
// offset; the jump target is read from I<<8|offset whatever the IM setting.
// Returns whether the interrupt was accepted.
func (c *Cpu) RequestInterrupt(vectorOffset uint8) bool {
	return c.Env.Interrupt(vectorOffset)
}
