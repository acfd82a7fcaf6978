package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// buildRotR builds a CB-prefix rotate/shift on a plain register or (HL).
func buildRotR(rot inst.ROTEntry, r inst.Reg8) *Opcode {
	return &Opcode{Name: rot.Name + " " + r.String(), Action: func(e *Environment) {
		v := e.Reg8Ext(r)
		e.SetReg8Ext(r, e.Shift(rot.Dir, rot.Mode, v))
	}}
}

// buildRotIndexed builds the CB-prefix-indexed dual-store form: the
// rotate/shift result is written to both (IX+d)/(IY+d) and a register copy
// (unless dst is (HL) itself, the "plain" indexed form with no copy).
func buildRotIndexed(rot inst.ROTEntry, dst inst.Reg8) *Opcode {
	return &Opcode{Name: rot.Name + " (HLd)", Action: func(e *Environment) {
		addr := e.IndexAddress()
		v := e.Peek(addr)
		r := e.Shift(rot.Dir, rot.Mode, v)
		e.Poke(addr, r)
		if dst != inst.IndHL {
			e.Reg.Set8(dst, r)
		}
	}}
}

func buildBitR(n uint8, r inst.Reg8) *Opcode {
	return &Opcode{Name: bitName("BIT", n, r), Action: func(e *Environment) {
		v := e.Reg8Ext(r)
		e.TestBit(n, v, v)
	}}
}

// buildBitIndexed builds BIT n,(IX+d)/(IY+d): the undocumented _3/_5 bits
// come from the high byte of the indexed address, not the tested value -
// the well-known Z80 "MEMPTR" address-bus artifact.
func buildBitIndexed(n uint8) *Opcode {
	return &Opcode{Name: bitNameIndexed("BIT", n), Action: func(e *Environment) {
		addr := e.IndexAddress()
		v := e.Peek(addr)
		e.TestBit(n, v, uint8(addr>>8))
	}}
}

func buildResR(n uint8, r inst.Reg8) *Opcode {
	return &Opcode{Name: bitName("RES", n, r), Action: func(e *Environment) {
		e.SetReg8Ext(r, e.Reg8Ext(r)&^(1<<n))
	}}
}

func buildSetR(n uint8, r inst.Reg8) *Opcode {
	return &Opcode{Name: bitName("SET", n, r), Action: func(e *Environment) {
		e.SetReg8Ext(r, e.Reg8Ext(r)|(1<<n))
	}}
}

// buildSetResIndexed builds the indexed dual-store RES/SET forms.
func buildSetResIndexed(n uint8, set bool, dst inst.Reg8) *Opcode {
	name := "RES"
	if set {
		name = "SET"
	}
	return &Opcode{Name: bitNameIndexed(name, n), Action: func(e *Environment) {
		addr := e.IndexAddress()
		v := e.Peek(addr)
		if set {
			v |= 1 << n
		} else {
			v &^= 1 << n
		}
		e.Poke(addr, v)
		if dst != inst.IndHL {
			e.Reg.Set8(dst, v)
		}
	}}
}

func bitName(op string, n uint8, r inst.Reg8) string {
	return op + " " + []string{"0", "1", "2", "3", "4", "5", "6", "7"}[n] + "," + r.String()
}

func bitNameIndexed(op string, n uint8) string {
	return op + " " + []string{"0", "1", "2", "3", "4", "5", "6", "7"}[n] + ",(HLd)"
}
