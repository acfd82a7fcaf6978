package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// Environment is the short-lived binding of a mutable Registers+State to a
// mutable Machine for the duration of one step. Opcode actions receive only
// an *Environment and close over no other state.
type Environment struct {
	Reg *Registers
	St  *State
	Sys Machine
}

func NewEnvironment(reg *Registers, st *State, sys Machine) *Environment {
	return &Environment{Reg: reg, St: st, Sys: sys}
}

// --- address wrapping ---

// wrap16 adds delta to addr modulo 2^16, leaving the address's upper byte
// (bits 16-23) untouched - the Z80-mode wrap used when is_op_long is false.
func (e *Environment) wrap16(addr uint32, delta int32) uint32 {
	base := addr & 0xFF0000
	lo := uint16(int32(uint16(addr)) + delta)
	return base | uint32(lo)
}

// wrap24 adds delta to addr modulo 2^24 - the ADL-mode wrap.
func (e *Environment) wrap24(addr uint32, delta int32) uint32 {
	return uint32(int64(addr&0xFFFFFF)+int64(delta)) & 0xFFFFFF
}

// wrap picks wrap16 or wrap24 per the current operand width.
func (e *Environment) wrap(addr uint32, delta int32) uint32 {
	if e.St.IsOpLong(e.Reg.ADL()) {
		return e.wrap24(addr, delta)
	}
	return e.wrap16(addr, delta)
}

// wrapPC always wraps on the CPU's ADL bit directly, never on is_op_long -
// PC advancement is not subject to the current instruction's size prefix.
func (e *Environment) wrapPC(addr uint32, delta int32) uint32 {
	if e.Reg.ADL() {
		return e.wrap24(addr, delta)
	}
	return e.wrap16(addr, delta)
}

// --- memory access ---

func (e *Environment) Peek(addr uint32) uint8     { return e.Sys.Peek(addr) }
func (e *Environment) Poke(addr uint32, v uint8)   { e.Sys.Poke(addr, v) }

func (e *Environment) Peek16(addr uint32) uint16 {
	lo := e.Sys.Peek(addr)
	hi := e.Sys.Peek(e.wrap(addr, 1))
	return uint16(hi)<<8 | uint16(lo)
}

func (e *Environment) Poke16(addr uint32, v uint16) {
	e.Sys.Poke(addr, uint8(v))
	e.Sys.Poke(e.wrap(addr, 1), uint8(v>>8))
}

func (e *Environment) Peek24(addr uint32) uint32 {
	lo := e.Sys.Peek(addr)
	mid := e.Sys.Peek(e.wrap(addr, 1))
	hi := e.Sys.Peek(e.wrap(addr, 2))
	return uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
}

func (e *Environment) Poke24(addr uint32, v uint32) {
	e.Sys.Poke(addr, uint8(v))
	e.Sys.Poke(e.wrap(addr, 1), uint8(v>>8))
	e.Sys.Poke(e.wrap(addr, 2), uint8(v>>16))
}

// --- PC / immediate fetch ---

// AdvancePC fetches the byte at PC and advances PC, wrapping on the CPU's
// ADL bit directly (see wrapPC).
func (e *Environment) AdvancePC() uint8 {
	addr := e.Reg.PC()
	b := e.Sys.Peek(addr)
	e.Reg.SetPC(e.wrapPC(addr, 1))
	return b
}

func (e *Environment) AdvanceImmediate16() uint16 {
	lo := e.AdvancePC()
	hi := e.AdvancePC()
	return uint16(hi)<<8 | uint16(lo)
}

func (e *Environment) AdvanceImmediate24() uint32 {
	lo := e.AdvancePC()
	mid := e.AdvancePC()
	hi := e.AdvancePC()
	return uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
}

// AdvanceImmediate16or24 fetches a 2- or 3-byte immediate per is_imm_long.
func (e *Environment) AdvanceImmediate16or24() uint32 {
	if e.St.IsImmLong(e.Reg.ADL()) {
		return e.AdvanceImmediate24()
	}
	return uint32(e.AdvanceImmediate16())
}

// AdvanceImmediate16MBaseOr24 fetches an immediate at is_imm_long width and,
// when the current instruction's operands are not long, folds MBASE into
// its upper byte so the result is always a usable 24-bit address.
func (e *Environment) AdvanceImmediate16MBaseOr24() uint32 {
	v := e.AdvanceImmediate16or24()
	if !e.St.IsOpLong(e.Reg.ADL()) {
		v = uint32(e.Reg.MBASE())<<16 | (v & 0xFFFF)
	}
	return v
}

// --- stack ---

func (e *Environment) PushByteSPS(v uint8) {
	sp := e.Reg.SPS() - 1
	e.Reg.SetSPS(sp)
	e.Sys.Poke(uint32(e.Reg.MBASE())<<16|uint32(sp), v)
}

func (e *Environment) PopByteSPS() uint8 {
	sp := e.Reg.SPS()
	v := e.Sys.Peek(uint32(e.Reg.MBASE())<<16 | uint32(sp))
	e.Reg.SetSPS(sp + 1)
	return v
}

func (e *Environment) PushByteSPL(v uint8) {
	sp := e.wrap24(e.Reg.SPL(), -1)
	e.Reg.SetSPL(sp)
	e.Sys.Poke(sp, v)
}

func (e *Environment) PopByteSPL() uint8 {
	sp := e.Reg.SPL()
	v := e.Sys.Peek(sp)
	e.Reg.SetSPL(e.wrap24(sp, 1))
	return v
}

// Push pushes a PC-shaped value at width is_op_long: 3 bytes on SPL, or 2
// bytes on SPS, low byte ending up nearest the new stack top.
func (e *Environment) Push(v uint32) {
	if e.St.IsOpLong(e.Reg.ADL()) {
		e.PushByteSPL(uint8(v >> 16))
		e.PushByteSPL(uint8(v >> 8))
		e.PushByteSPL(uint8(v))
	} else {
		e.PushByteSPS(uint8(v >> 8))
		e.PushByteSPS(uint8(v))
	}
}

func (e *Environment) Pop() uint32 {
	if e.St.IsOpLong(e.Reg.ADL()) {
		lo := e.PopByteSPL()
		mid := e.PopByteSPL()
		hi := e.PopByteSPL()
		return uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
	}
	lo := e.PopByteSPS()
	hi := e.PopByteSPS()
	return uint32(hi)<<8 | uint32(lo)
}

// --- subroutine call / return ---

func (e *Environment) SubroutineCall(target uint32) {
	e.Push(e.Reg.PC())
	if e.St.IsOpLong(e.Reg.ADL()) {
		e.Reg.SetPC(target & 0xFFFFFF)
	} else {
		e.Reg.SetPC(target & 0xFFFF)
	}
}

// SubroutineReturn pops PC per the current ADL mode and size prefix. A
// .LIL/.LIS return that crosses an ADL boundary additionally pops an
// "ADL flag" byte below the PC and may flip the ADL bit; other prefixes
// (or no prefix) perform a plain width-matched pop. Combinations the
// hardware is documented to reject but is observed to execute anyway fall
// through to the plain pop rather than aborting.
func (e *Environment) SubroutineReturn() {
	sz := e.St.SizePrefix()
	adl := e.Reg.ADL()
	switch {
	case adl && (sz == inst.SizeLIL || sz == inst.SizeLIS):
		lo := e.PopByteSPL()
		mid := e.PopByteSPL()
		hi := e.PopByteSPL()
		flag := e.PopByteSPL()
		pc := uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
		if flag&1 == 0 {
			e.Reg.SetADL(false)
			e.Reg.SetPC(pc & 0xFFFF)
		} else {
			e.Reg.SetPC(pc & 0xFFFFFF)
		}
	case !adl && (sz == inst.SizeLIL || sz == inst.SizeLIS):
		lo := e.PopByteSPL()
		mid := e.PopByteSPL()
		hi := e.PopByteSPL()
		flag := e.PopByteSPL()
		pc := uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
		if flag&1 != 0 {
			e.Reg.SetADL(true)
		}
		e.Reg.SetPC(pc & 0xFFFFFF)
	default:
		e.Reg.SetPC(e.Pop())
	}
}

// --- interrupts ---

// Interrupt services a maskable interrupt at the given vector offset
// (I<<8 | offset selects the 2-byte jump vector in IM2). Returns false
// without effect if interrupts are disabled.
func (e *Environment) Interrupt(vectorOffset uint8) bool {
	if !e.Reg.IFF1() {
		return false
	}
	e.Reg.SetIFF1(false)
	e.St.SetHalted(false)

	vecAddr := uint32(e.Reg.I())<<8 | uint32(vectorOffset)
	target := uint32(e.Sys.Peek(vecAddr)) | uint32(e.Sys.Peek(e.wrap16(vecAddr, 1)))<<8

	if e.Reg.MADL() && e.Reg.ADL() {
		e.PushByteSPL(uint8(e.Reg.PC() >> 16))
		e.PushByteSPL(uint8(e.Reg.PC() >> 8))
		e.PushByteSPL(uint8(e.Reg.PC()))
		e.PushByteSPL(3)
		e.Reg.SetPC(target & 0xFFFFFF)
	} else if e.Reg.MADL() {
		e.PushByteSPL(uint8(e.Reg.PC() >> 8))
		e.PushByteSPL(uint8(e.Reg.PC()))
		e.PushByteSPL(2)
		e.Reg.SetADL(true)
		e.Reg.SetPC(target & 0xFFFFFF)
	} else {
		e.PushByteSPS(uint8(e.Reg.PC() >> 8))
		e.PushByteSPS(uint8(e.Reg.PC()))
		e.Reg.SetPC(target & 0xFFFF)
	}
	return true
}

// --- index substitution ---

func (e *Environment) SetIndex(ix inst.Index)  { e.St.SetIndex(ix) }
func (e *Environment) ClearIndex()             { e.St.ClearIndex() }
func (e *Environment) GetIndex() inst.Index    { return e.St.Index() }
func (e *Environment) IsAltIndex() bool        { return e.St.IsAltIndex() }
func (e *Environment) IndexDescription() string { return e.St.Index().String() }

// LoadDisplacement fetches and records the signed displacement byte used by
// an indexed (IX+d)/(IY+d) operand.
func (e *Environment) LoadDisplacement() int8 {
	d := int8(e.AdvancePC())
	e.St.SetDisplacement(d)
	return d
}

func (e *Environment) effectiveReg16(rr inst.Reg16) inst.Reg16 {
	if rr == inst.HL {
		return e.St.Index().Reg16()
	}
	return rr
}

// IndexValue returns the current value of whichever register (HL, IX, or
// IY) the active index selects.
func (e *Environment) IndexValue() uint32 {
	return e.Reg.Get24(e.St.Index().Reg16())
}

// IndexAddress returns the effective address for an indexed operand:
// the active index register plus the pending displacement.
func (e *Environment) IndexAddress() uint32 {
	return e.wrap(e.IndexValue(), int32(e.St.Displacement()))
}

// TranslateReg rewrites H/L to IXH/IXL or IYH/IYL when an index prefix is
// active; every other register passes through unchanged.
func (e *Environment) TranslateReg(r inst.Reg8) inst.Reg8 {
	switch e.St.Index() {
	case inst.IndexIX:
		switch r {
		case inst.H:
			return inst.IXH
		case inst.L:
			return inst.IXL
		}
	case inst.IndexIY:
		switch r {
		case inst.H:
			return inst.IYH
		case inst.L:
			return inst.IYL
		}
	}
	return r
}

// Reg8Ext reads an 8-bit operand, substituting (HL) for the indexed memory
// cell and H/L for the active index register's half, as TranslateReg does.
func (e *Environment) Reg8Ext(r inst.Reg8) uint8 {
	if r == inst.IndHL {
		return e.Sys.Peek(e.IndexAddress())
	}
	return e.Reg.Get8(e.TranslateReg(r))
}

func (e *Environment) SetReg8Ext(r inst.Reg8, v uint8) {
	if r == inst.IndHL {
		e.Sys.Poke(e.IndexAddress(), v)
		return
	}
	e.Reg.Set8(e.TranslateReg(r), v)
}

// Reg16or24Ext reads a register-pair operand at is_op_long width,
// substituting the active index register for HL.
func (e *Environment) Reg16or24Ext(rr inst.Reg16) uint32 {
	rr = e.effectiveReg16(rr)
	if e.St.IsOpLong(e.Reg.ADL()) {
		return e.Reg.Get24(rr)
	}
	return uint32(e.Reg.Get16(rr))
}

func (e *Environment) SetReg16or24Ext(rr inst.Reg16, v uint32) {
	rr = e.effectiveReg16(rr)
	if e.St.IsOpLong(e.Reg.ADL()) {
		e.Reg.Set24(rr, v)
	} else {
		e.Reg.Set16(rr, uint16(v))
	}
}

// Reg16MBaseOr24Ext is Reg16or24Ext, additionally folding MBASE into the
// upper byte when the operand is not long - used when a register pair is
// read to form a memory address rather than an arithmetic operand.
func (e *Environment) Reg16MBaseOr24Ext(rr inst.Reg16) uint32 {
	v := e.Reg16or24Ext(rr)
	if !e.St.IsOpLong(e.Reg.ADL()) {
		v = uint32(e.Reg.MBASE())<<16 | (v & 0xFFFF)
	}
	return v
}

// --- ports ---

func (e *Environment) PortIn(port uint16) uint8     { return e.Sys.PortIn(port) }
func (e *Environment) PortOut(port uint16, v uint8) { e.Sys.PortOut(port, v) }

// UseCycles forwards an advisory cycle-count hint to the host, if it
// implements CycleSink.
func (e *Environment) UseCycles(n int32) { useCycles(e.Sys, n) }
