package cpu

import "github.com/tomm/go-ez80/pkg/inst"

func buildAluR(op inst.Operator, name string, src inst.Reg8) *Opcode {
	return &Opcode{Name: name + src.String(), Action: func(e *Environment) {
		e.ApplyALU(op, e.Reg8Ext(src))
	}}
}

func buildAluN(op inst.Operator, name string) *Opcode {
	return &Opcode{Name: name + "n", Action: func(e *Environment) {
		e.ApplyALU(op, e.AdvancePC())
	}}
}

// buildTstN builds the eZ80 "TST A,n" extension.
func buildTstN() *Opcode {
	return &Opcode{Name: "TST A,n", Action: func(e *Environment) {
		e.ApplyALU(inst.OpTst, e.AdvancePC())
	}}
}

func buildIncR(r inst.Reg8) *Opcode {
	return &Opcode{Name: "INC " + r.String(), Action: func(e *Environment) {
		e.Inc8(r)
	}}
}

func buildDecR(r inst.Reg8) *Opcode {
	return &Opcode{Name: "DEC " + r.String(), Action: func(e *Environment) {
		e.Dec8(r)
	}}
}

func buildIncRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "INC " + rr.String(), Action: func(e *Environment) {
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.SetReg16or24Ext(rr, (e.Reg16or24Ext(rr)+1)&0xFFFFFF)
		} else {
			e.SetReg16or24Ext(rr, uint32(uint16(e.Reg16or24Ext(rr)+1)))
		}
	}}
}

func buildDecRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "DEC " + rr.String(), Action: func(e *Environment) {
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.SetReg16or24Ext(rr, (e.Reg16or24Ext(rr)-1)&0xFFFFFF)
		} else {
			e.SetReg16or24Ext(rr, uint32(uint16(e.Reg16or24Ext(rr)-1)))
		}
	}}
}

// buildAddHlRR builds ADD HL,rr (and its IX/IY variants, since the pseudo
// HL substitution applies here too).
func buildAddHlRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "ADD HL," + rr.String(), Action: func(e *Environment) {
		dst := e.effectiveReg16(inst.HL)
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Reg.Set24(dst, e.Add24(e.Reg.Get24(dst), e.Reg.Get24(rr)))
		} else {
			e.Reg.Set16(dst, e.Add16(e.Reg.Get16(dst), e.Reg.Get16(rr)))
		}
	}}
}

func buildAdcHlRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "ADC HL," + rr.String(), Action: func(e *Environment) {
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Reg.Set24(inst.HL, e.Adc24(e.Reg.Get24(inst.HL), e.Reg.Get24(rr)))
		} else {
			e.Reg.Set16(inst.HL, e.Adc16(e.Reg.Get16(inst.HL), e.Reg.Get16(rr)))
		}
	}}
}

func buildSbcHlRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "SBC HL," + rr.String(), Action: func(e *Environment) {
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Reg.Set24(inst.HL, e.Sbc24(e.Reg.Get24(inst.HL), e.Reg.Get24(rr)))
		} else {
			e.Reg.Set16(inst.HL, e.Sbc16(e.Reg.Get16(inst.HL), e.Reg.Get16(rr)))
		}
	}}
}

// --- block transfer/compare instructions ---

// blockPtrStep advances (or retreats) a 16/24-bit pointer register by one,
// at is_op_long width.
func blockPtrStep(e *Environment, rr inst.Reg16, inc bool) {
	delta := int32(1)
	if !inc {
		delta = -1
	}
	e.SetReg16or24Ext(rr, e.wrap(e.Reg16or24Ext(rr), delta))
}

func decBC(e *Environment) uint32 {
	bc := e.wrap(e.Reg16or24Ext(inst.BC), -1)
	e.SetReg16or24Ext(inst.BC, bc)
	return bc
}

// buildLdBlock builds LDI/LDD/LDIR/LDDR. The repeating forms copy exactly
// one byte per call and, if BC is still nonzero afterward, rewind PC so the
// driver's next Step re-fetches and re-executes the same instruction - the
// block copy is interruptible (by NMI or a pending maskable interrupt)
// between bytes, matching real hardware rather than completing in one call.
func buildLdBlock(inc, repeat bool, postfix string) *Opcode {
	return &Opcode{Name: "LD" + postfix, Action: func(e *Environment) {
		v := e.Peek(e.Reg16MBaseOr24Ext(inst.HL))
		e.Poke(e.Reg16MBaseOr24Ext(inst.DE), v)
		blockPtrStep(e, inst.HL, inc)
		blockPtrStep(e, inst.DE, inc)
		bc := decBC(e)

		n := v + e.Reg.Get8(inst.A)
		f := (e.Reg.F() & (FlagS | FlagC)) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
		if bc != 0 {
			f |= FlagP
		} else {
			f |= FlagZ
		}
		e.Reg.SetF(f)

		if repeat && bc != 0 {
			e.rewindPC()
			e.UseCycles(5)
		}
	}}
}

// buildCpBlock builds CPI/CPD/CPIR/CPDR, one comparison per call; see
// buildLdBlock for the per-call repeat/rewind contract.
func buildCpBlock(inc, repeat bool, postfix string) *Opcode {
	return &Opcode{Name: "CP" + postfix, Action: func(e *Environment) {
		a := e.Reg.Get8(inst.A)
		v := e.Peek(e.Reg16MBaseOr24Ext(inst.HL))
		blockPtrStep(e, inst.HL, inc)
		bc := decBC(e)

		diff := a - v
		halfCarry := (a & 0x0F) < (v & 0x0F)
		f := (e.Reg.F() & FlagC) | FlagN | Sz53Table[diff]
		if halfCarry {
			f |= FlagH
			diff--
		}
		n := diff
		f = (f &^ (Flag3 | Flag5)) | (n & Flag3) | bsel(n&0x02 != 0, Flag5, 0)
		if bc != 0 {
			f |= FlagP
		}
		e.Reg.SetF(f)

		if repeat && bc != 0 && a != v {
			e.rewindPC()
			e.UseCycles(5)
		}
	}}
}

// rewindPC backs PC up by the length of the current instruction so a
// repeating block instruction re-executes itself: the ED prefix and opcode
// byte, plus one byte each for a size prefix and a DD/FD index prefix when
// the current instruction carried one.
func (e *Environment) rewindPC() {
	n := int32(2)
	if e.St.SizePrefix() != inst.SizeNone {
		n++
	}
	if e.St.IsAltIndex() {
		n++
	}
	e.Reg.SetPC(e.wrapPC(e.Reg.PC(), -n))
}
