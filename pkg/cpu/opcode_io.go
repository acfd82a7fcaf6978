package cpu

import "github.com/tomm/go-ez80/pkg/inst"

func buildInANInd() *Opcode {
	return &Opcode{Name: "IN A,(n)", Action: func(e *Environment) {
		port := uint16(e.Reg.Get8(inst.A))<<8 | uint16(e.AdvancePC())
		e.Reg.Set8(inst.A, e.PortIn(port))
	}}
}

func buildOutIndNA() *Opcode {
	return &Opcode{Name: "OUT (n),A", Action: func(e *Environment) {
		port := uint16(e.Reg.Get8(inst.A))<<8 | uint16(e.AdvancePC())
		e.PortOut(port, e.Reg.Get8(inst.A))
	}}
}

// buildInRIndC builds "IN r,(C)"; r==IndHL is the undocumented "IN (C)"
// flags-only form.
func buildInRIndC(r inst.Reg8) *Opcode {
	name := "IN (C)"
	if r != inst.IndHL {
		name = "IN " + r.String() + ",(C)"
	}
	return &Opcode{Name: name, Action: func(e *Environment) {
		v := e.PortIn(e.Reg.Get16(inst.BC))
		if r != inst.IndHL {
			e.Reg.Set8(r, v)
		}
		e.Reg.SetF((e.Reg.F() & FlagC) | Sz53pTable[v])
	}}
}

// buildOutIndCR builds "OUT (C),r"; r==IndHL is the undocumented
// "OUT (C),0" form.
func buildOutIndCR(r inst.Reg8) *Opcode {
	name := "OUT (C),0"
	if r != inst.IndHL {
		name = "OUT (C)," + r.String()
	}
	return &Opcode{Name: name, Action: func(e *Environment) {
		v := uint8(0)
		if r != inst.IndHL {
			v = e.Reg.Get8(r)
		}
		e.PortOut(e.Reg.Get16(inst.BC), v)
	}}
}

// --- eZ80 IN0/OUT0: access the low 256 I/O ports without involving BC ---

func buildIn0R(r inst.Reg8) *Opcode {
	return &Opcode{Name: "IN0 " + r.String() + ",(n)", Action: func(e *Environment) {
		port := uint16(e.AdvancePC())
		v := e.PortIn(port)
		e.Reg.Set8(r, v)
		e.Reg.SetF((e.Reg.F() & FlagC) | Sz53pTable[v])
	}}
}

func buildOut0R(r inst.Reg8) *Opcode {
	return &Opcode{Name: "OUT0 (n)," + r.String(), Action: func(e *Environment) {
		port := uint16(e.AdvancePC())
		e.PortOut(port, e.Reg.Get8(r))
	}}
}

// --- block I/O ---

// ioBlockFlags computes the full documented and undocumented flag set left
// by INI/IND/OUTI/OUTD (TUZD-4.3): S/Z/5/3 from the decremented B, N from
// bit 7 of the transferred value, and H/C/P-V from k, an 8-bit-overflowing
// sum of value and a direction-dependent addend (C+1/C-1 for the IN family,
// L for the OUT family).
func ioBlockFlags(value uint8, b uint8, k uint16) uint8 {
	f := bsel(value&0x80 != 0, FlagN, 0) | Sz53Table[b]
	f |= ParityTable[uint8(k&7)^b]
	if k > 255 {
		f |= FlagH | FlagC
	}
	return f
}

// buildInBlock builds INI/IND/INIR/INDR: read a byte from port (C),
// store at (HL), step HL, decrement B. The repeating forms handle one byte
// per call; see buildLdBlock's comment for the per-call repeat/rewind
// contract that keeps block instructions interruptible between bytes.
func buildInBlock(inc, repeat bool, postfix string) *Opcode {
	return &Opcode{Name: "IN" + postfix, Action: func(e *Environment) {
		// INI/INIR/IND/INDR form the port address from BC after decrementing B.
		b := e.Reg.Get8(inst.B) - 1
		e.Reg.Set8(inst.B, b)
		v := e.PortIn(e.Reg.Get16(inst.BC))
		e.Poke(e.Reg16MBaseOr24Ext(inst.HL), v)
		blockPtrStep(e, inst.HL, inc)

		j := uint16(e.Reg.Get8(inst.C))
		if inc {
			j++
		} else {
			j--
		}
		k := uint16(v) + (j & 0xFF)
		e.Reg.SetF(ioBlockFlags(v, b, k))

		if repeat && b != 0 {
			e.rewindPC()
			e.UseCycles(5)
		}
	}}
}

// buildOutBlock builds OUTI/OUTD/OTIR/OTDR: load (HL), write to port (C)
// using the pre-decrement BC, decrement B, step HL.
func buildOutBlock(inc, repeat bool, postfix string) *Opcode {
	return &Opcode{Name: "OUT" + postfix, Action: func(e *Environment) {
		// OUTI/OTIR/OUTD/OTDR use BC before decrementing B.
		port := e.Reg.Get16(inst.BC)
		v := e.Peek(e.Reg16MBaseOr24Ext(inst.HL))
		b := e.Reg.Get8(inst.B) - 1
		e.Reg.Set8(inst.B, b)
		e.PortOut(port, v)
		blockPtrStep(e, inst.HL, inc)

		k := uint16(v) + uint16(e.Reg.Get8(inst.L))
		e.Reg.SetF(ioBlockFlags(v, b, k))

		if repeat && b != 0 {
			e.rewindPC()
			e.UseCycles(5)
		}
	}}
}

// buildOtirxOrOtdrx builds the eZ80 OTIRX/OTDRX extensions: copy (HL) to
// (DE) treated as an I/O port, decrementing BC, looping to completion in
// a single instruction (unlike the Z80 block I/O forms, these always
// repeat and never expose the intermediate per-iteration PC-rewind state).
func buildOtirxOrOtdrx(inc bool, name string) *Opcode {
	return &Opcode{Name: name, Action: func(e *Environment) {
		for {
			v := e.Peek(e.Reg16MBaseOr24Ext(inst.HL))
			e.PortOut(e.Reg.Get16(inst.DE), v)
			blockPtrStep(e, inst.HL, inc)
			bc := decBC(e)
			if bc == 0 {
				break
			}
			e.UseCycles(5)
		}
	}}
}
