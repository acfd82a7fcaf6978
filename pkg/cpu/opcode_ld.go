package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// buildLdRR builds LD dst,src for any combination of the R table's eight
// operands, including the pseudo (HL)/(IX+d)/(IY+d) slot on either side
// (both are rewritten transparently by Reg8Ext/SetReg8Ext/TranslateReg).
func buildLdRR(dst, src inst.Reg8) *Opcode {
	name := "LD " + dst.String() + "," + src.String()
	return &Opcode{Name: name, Action: func(e *Environment) {
		e.SetReg8Ext(dst, e.Reg8Ext(src))
	}}
}

func buildLdRN(dst inst.Reg8) *Opcode {
	return &Opcode{Name: "LD " + dst.String() + ",n", Action: func(e *Environment) {
		e.SetReg8Ext(dst, e.AdvancePC())
	}}
}

// buildLdRRNN builds LD rr,nn: the immediate is fetched at is_imm_long
// width and stored at is_op_long width.
func buildLdRRNN(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD " + rr.String() + ",nn", Action: func(e *Environment) {
		v := e.AdvanceImmediate16or24()
		e.SetReg16or24Ext(rr, v)
	}}
}

func buildLdAIndBC() *Opcode {
	return &Opcode{Name: "LD A,(BC)", Action: func(e *Environment) {
		e.Reg.Set8(inst.A, e.Peek(e.Reg16MBaseOr24Ext(inst.BC)))
	}}
}

func buildLdIndBCA() *Opcode {
	return &Opcode{Name: "LD (BC),A", Action: func(e *Environment) {
		e.Poke(e.Reg16MBaseOr24Ext(inst.BC), e.Reg.Get8(inst.A))
	}}
}

func buildLdAIndDE() *Opcode {
	return &Opcode{Name: "LD A,(DE)", Action: func(e *Environment) {
		e.Reg.Set8(inst.A, e.Peek(e.Reg16MBaseOr24Ext(inst.DE)))
	}}
}

func buildLdIndDEA() *Opcode {
	return &Opcode{Name: "LD (DE),A", Action: func(e *Environment) {
		e.Poke(e.Reg16MBaseOr24Ext(inst.DE), e.Reg.Get8(inst.A))
	}}
}

func buildLdANN() *Opcode {
	return &Opcode{Name: "LD A,(nn)", Action: func(e *Environment) {
		addr := e.AdvanceImmediate16MBaseOr24()
		e.Reg.Set8(inst.A, e.Peek(addr))
	}}
}

func buildLdNNA() *Opcode {
	return &Opcode{Name: "LD (nn),A", Action: func(e *Environment) {
		addr := e.AdvanceImmediate16MBaseOr24()
		e.Poke(addr, e.Reg.Get8(inst.A))
	}}
}

// buildLdIndNNRR builds LD (nn),rr: operand width per is_op_long.
func buildLdIndNNRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD (nn)," + rr.String(), Action: func(e *Environment) {
		addr := e.AdvanceImmediate16MBaseOr24()
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Poke24(addr, e.Reg16or24Ext(rr))
		} else {
			e.Poke16(addr, uint16(e.Reg16or24Ext(rr)))
		}
	}}
}

func buildLdRRIndNN(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD " + rr.String() + ",(nn)", Action: func(e *Environment) {
		addr := e.AdvanceImmediate16MBaseOr24()
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.SetReg16or24Ext(rr, e.Peek24(addr))
		} else {
			e.SetReg16or24Ext(rr, uint32(e.Peek16(addr)))
		}
	}}
}

func buildLdSpHl() *Opcode {
	return &Opcode{Name: "LD SP,HL", Action: func(e *Environment) {
		rr := e.effectiveReg16(inst.HL)
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Reg.SetSPL(e.Reg.Get24(rr))
		} else {
			e.Reg.SetSPS(e.Reg.Get16(rr))
		}
	}}
}

// --- eZ80 extensions ---

// buildLeaRRIdx builds LEA rr,(IX+d)/(IY+d): loads the effective indexed
// address into rr without touching memory.
func buildLeaRRIdx(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LEA " + rr.String() + ",HLd", Action: func(e *Environment) {
		d := e.LoadDisplacement()
		addr := e.wrap(e.IndexValue(), int32(d))
		e.SetReg16or24Ext(rr, addr)
	}}
}

// buildPeaIdx builds PEA IX+d / PEA IY+d: pushes the indexed effective
// address.
func buildPeaIdx() *Opcode {
	return &Opcode{Name: "PEA HLd", Action: func(e *Environment) {
		d := e.LoadDisplacement()
		addr := e.wrap(e.IndexValue(), int32(d))
		e.Push(addr)
	}}
}

// buildLdRRIndHL builds the eZ80 "LD rr,(HL)" extension: loads a register
// pair from the three (or two) bytes at (HL).
func buildLdRRIndHL(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD " + rr.String() + ",(HL)", Action: func(e *Environment) {
		addr := e.Reg16MBaseOr24Ext(inst.HL)
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.SetReg16or24Ext(rr, e.Peek24(addr))
		} else {
			e.SetReg16or24Ext(rr, uint32(e.Peek16(addr)))
		}
	}}
}

// buildLdIndHLRR builds the eZ80 "LD (HL),rr" extension.
func buildLdIndHLRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD (HL)," + rr.String(), Action: func(e *Environment) {
		addr := e.Reg16MBaseOr24Ext(inst.HL)
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Poke24(addr, e.Reg16or24Ext(rr))
		} else {
			e.Poke16(addr, uint16(e.Reg16or24Ext(rr)))
		}
	}}
}

// buildLdIdxRR builds the DD/FD-prefixed "LD (IX+d),rr"/"LD (IY+d),rr"
// eZ80 extensions: store a register pair at an indexed address.
func buildLdIdxRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD (HLd)," + rr.String(), Action: func(e *Environment) {
		d := e.LoadDisplacement()
		addr := e.wrap(e.IndexValue(), int32(d))
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Poke24(addr, e.Reg.Get24(rr))
		} else {
			e.Poke16(addr, e.Reg.Get16(rr))
		}
	}}
}

func buildLdRRIdx(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "LD " + rr.String() + ",(HLd)", Action: func(e *Environment) {
		d := e.LoadDisplacement()
		addr := e.wrap(e.IndexValue(), int32(d))
		if e.St.IsOpLong(e.Reg.ADL()) {
			e.Reg.Set24(rr, e.Peek24(addr))
		} else {
			e.Reg.Set16(rr, e.Peek16(addr))
		}
	}}
}
