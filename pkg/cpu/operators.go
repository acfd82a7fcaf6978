package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// Operators implements the ALU and rotate/shift primitives, built on the
// same bit-3/bit-7 lookup-table trick the teacher project already used for
// its own Z80 ALU (pkg/cpu/exec.go's execAdd/execAdc/execSub/... family),
// now addressed through Environment instead of a flat register struct and
// extended with the 24-bit and dialect variants eZ80/8080 require.

func halfcarryOverflowLookup(a, b, r uint8) (hc, ov int) {
	lookup := ((a & 0x88) >> 3) | ((b & 0x88) >> 2) | ((r & 0x88) >> 1)
	return int(lookup & 0x07), int(lookup >> 4)
}

// ApplyALU dispatches one of the eight "ALU A,operand" operations (plus the
// eZ80 TST extension), updates A and F, and returns the result (A is left
// unchanged by CP and TST).
func (e *Environment) ApplyALU(op inst.Operator, b uint8) uint8 {
	switch op {
	case inst.OpAdd:
		return e.aluAdd(b)
	case inst.OpAdc:
		return e.aluAdc(b)
	case inst.OpSub:
		return e.aluSub(b)
	case inst.OpSbc:
		return e.aluSbc(b)
	case inst.OpAnd:
		return e.aluAnd(b)
	case inst.OpXor:
		return e.aluXor(b)
	case inst.OpOr:
		return e.aluOr(b)
	case inst.OpCp:
		e.aluCp(b)
		return e.Reg.Get8(inst.A)
	case inst.OpTst:
		e.aluTst(b)
		return e.Reg.Get8(inst.A)
	}
	panic("cpu: unknown ALU operator")
}

// overflowOrParity picks the Z80 signed-overflow table or, in 8080 dialect,
// falls back to plain parity of the result - the one dialect difference in
// arithmetic flag computation.
func (e *Environment) overflowOrParity(addTable bool, idx int, r uint8) uint8 {
	if e.Reg.Dialect() == Dialect8080 {
		return ParityTable[r]
	}
	if addTable {
		return OverflowAddTable[idx]
	}
	return OverflowSubTable[idx]
}

func (e *Environment) aluAdd(value uint8) uint8 {
	a := e.Reg.Get8(inst.A)
	sum := uint16(a) + uint16(value)
	r := uint8(sum)
	hc, ov := halfcarryOverflowLookup(a, value, r)
	e.Reg.Set8(inst.A, r)
	f := bsel(sum&0x100 != 0, FlagC, 0) |
		HalfcarryAddTable[hc] |
		e.overflowOrParity(true, ov, r) |
		Sz53Table[r]
	e.Reg.SetF(f)
	return r
}

func (e *Environment) aluAdc(value uint8) uint8 {
	a := e.Reg.Get8(inst.A)
	cy := uint16(e.Reg.F() & FlagC)
	sum := uint16(a) + uint16(value) + cy
	r := uint8(sum)
	hc, ov := halfcarryOverflowLookup(a, value, r)
	e.Reg.Set8(inst.A, r)
	f := bsel(sum&0x100 != 0, FlagC, 0) |
		HalfcarryAddTable[hc] |
		e.overflowOrParity(true, ov, r) |
		Sz53Table[r]
	e.Reg.SetF(f)
	return r
}

func (e *Environment) aluSub(value uint8) uint8 {
	a := e.Reg.Get8(inst.A)
	diff := uint16(a) - uint16(value)
	r := uint8(diff)
	hc, ov := halfcarryOverflowLookup(a, value, r)
	e.Reg.Set8(inst.A, r)
	f := bsel(diff&0x100 != 0, FlagC, 0) | FlagN |
		HalfcarrySubTable[hc] |
		e.overflowOrParity(false, ov, r) |
		Sz53Table[r]
	e.Reg.SetF(f)
	return r
}

func (e *Environment) aluSbc(value uint8) uint8 {
	a := e.Reg.Get8(inst.A)
	cy := uint16(e.Reg.F() & FlagC)
	diff := uint16(a) - uint16(value) - cy
	r := uint8(diff)
	hc, ov := halfcarryOverflowLookup(a, value, r)
	e.Reg.Set8(inst.A, r)
	f := bsel(diff&0x100 != 0, FlagC, 0) | FlagN |
		HalfcarrySubTable[hc] |
		e.overflowOrParity(false, ov, r) |
		Sz53Table[r]
	e.Reg.SetF(f)
	return r
}

func (e *Environment) aluAnd(value uint8) uint8 {
	r := e.Reg.Get8(inst.A) & value
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF(FlagH | Sz53pTable[r])
	return r
}

func (e *Environment) aluOr(value uint8) uint8 {
	r := e.Reg.Get8(inst.A) | value
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF(Sz53pTable[r])
	return r
}

func (e *Environment) aluXor(value uint8) uint8 {
	r := e.Reg.Get8(inst.A) ^ value
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF(Sz53pTable[r])
	return r
}

// aluCp computes A-value for flags only; the undocumented _3/_5 bits come
// from the operand, not the result, matching real CP behaviour.
func (e *Environment) aluCp(value uint8) {
	a := e.Reg.Get8(inst.A)
	diff := uint16(a) - uint16(value)
	r := uint8(diff)
	hc, ov := halfcarryOverflowLookup(a, value, r)
	f := bsel(diff&0x100 != 0, FlagC, bsel(diff != 0, 0, FlagZ)) |
		FlagN |
		HalfcarrySubTable[hc] |
		e.overflowOrParity(false, ov, r) |
		(value & (Flag3 | Flag5)) |
		(r & FlagS)
	e.Reg.SetF(f)
}

// aluTst is the eZ80 TST A,operand extension: AND without storing the
// result.
func (e *Environment) aluTst(value uint8) {
	r := e.Reg.Get8(inst.A) & value
	e.Reg.SetF(FlagH | Sz53pTable[r])
}

func (e *Environment) Inc8(r inst.Reg8) {
	v := e.Reg8Ext(r)
	v++
	f := (e.Reg.F() & FlagC) |
		bsel(v == 0x80, FlagP, 0) |
		bsel(v&0x0F != 0, 0, FlagH) |
		Sz53Table[v]
	e.SetReg8Ext(r, v)
	e.Reg.SetF(f)
}

func (e *Environment) Dec8(r inst.Reg8) {
	v := e.Reg8Ext(r)
	f := (e.Reg.F() & FlagC) | bsel(v&0x0F != 0, 0, FlagH) | FlagN
	v--
	f |= bsel(v == 0x7F, FlagP, 0) | Sz53Table[v]
	e.SetReg8Ext(r, v)
	e.Reg.SetF(f)
}

// DAA adjusts A after an 8080/Z80-style decimal addition or subtraction.
func (e *Environment) DAA() {
	a := e.Reg.Get8(inst.A)
	f := e.Reg.F()
	var add, carry uint8
	carry = f & FlagC
	if f&FlagH != 0 || a&0x0F > 9 {
		add = 6
	}
	if carry != 0 || a > 0x99 {
		add |= 0x60
	}
	if a > 0x99 {
		carry = FlagC
	}
	if f&FlagN != 0 {
		e.aluSub(add)
	} else {
		e.aluAdd(add)
	}
	r := e.Reg.Get8(inst.A)
	e.Reg.SetF((e.Reg.F() &^ (FlagC | FlagP)) | carry | ParityTable[r])
}

func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}

// --- rotate / shift ---

// Shift performs one CB-prefix rotate/shift operation on v and returns the
// result, updating flags; it does not read or write any register itself.
func (e *Environment) Shift(dir inst.ShiftDir, mode inst.ShiftMode, v uint8) uint8 {
	var r uint8
	var f uint8
	switch {
	case mode == inst.ModeCircular && dir == inst.ShiftLeft:
		f = v >> 7
		r = (v << 1) | (v >> 7)
	case mode == inst.ModeCircular && dir == inst.ShiftRight:
		f = v & FlagC
		r = (v >> 1) | (v << 7)
	case mode == inst.ModeThroughCarry && dir == inst.ShiftLeft:
		old := v
		r = (v << 1) | (e.Reg.F() & FlagC)
		f = old >> 7
	case mode == inst.ModeThroughCarry && dir == inst.ShiftRight:
		old := v
		r = (v >> 1) | (e.Reg.F() << 7)
		f = old & FlagC
	case mode == inst.ModeArithmetic && dir == inst.ShiftLeft:
		f = v >> 7
		r = v << 1
	case mode == inst.ModeArithmetic && dir == inst.ShiftRight:
		f = v & FlagC
		r = (v & 0x80) | (v >> 1)
	case mode == inst.ModeLogical && dir == inst.ShiftLeft:
		f = v >> 7
		r = (v << 1) | 0x01
	case mode == inst.ModeLogical && dir == inst.ShiftRight:
		f = v & FlagC
		r = v >> 1
	}
	f |= Sz53pTable[r]
	e.Reg.SetF(f)
	return r
}

// RLCA/RRCA/RLA/RRA are the non-CB accumulator rotates: unlike their
// CB-prefix counterparts they preserve S, Z and P/V and only touch
// H, N, C and the undocumented _3/_5 bits (taken from the new A).
func (e *Environment) RLCA() {
	a := e.Reg.Get8(inst.A)
	r := (a << 1) | (a >> 7)
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF((e.Reg.F() & (FlagS | FlagZ | FlagP)) | (r & (Flag3 | Flag5)) | (a >> 7))
}

func (e *Environment) RRCA() {
	a := e.Reg.Get8(inst.A)
	r := (a >> 1) | (a << 7)
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF((e.Reg.F() & (FlagS | FlagZ | FlagP)) | (r & (Flag3 | Flag5)) | (a & FlagC))
}

func (e *Environment) RLA() {
	a := e.Reg.Get8(inst.A)
	r := (a << 1) | (e.Reg.F() & FlagC)
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF((e.Reg.F() & (FlagS | FlagZ | FlagP)) | (r & (Flag3 | Flag5)) | (a >> 7))
}

func (e *Environment) RRA() {
	a := e.Reg.Get8(inst.A)
	r := (a >> 1) | ((e.Reg.F() & FlagC) << 7)
	e.Reg.Set8(inst.A, r)
	e.Reg.SetF((e.Reg.F() & (FlagS | FlagZ | FlagP)) | (r & (Flag3 | Flag5)) | (a & FlagC))
}

func (e *Environment) CPL() {
	a := e.Reg.Get8(inst.A) ^ 0xFF
	e.Reg.Set8(inst.A, a)
	e.Reg.SetF((e.Reg.F() & (FlagS | FlagZ | FlagP | FlagC)) | FlagH | FlagN | (a & (Flag3 | Flag5)))
}

func (e *Environment) SCF() {
	a := e.Reg.Get8(inst.A)
	e.Reg.SetF((e.Reg.F() & (FlagS | FlagZ | FlagP)) | FlagC | (a & (Flag3 | Flag5)))
}

func (e *Environment) CCF() {
	a := e.Reg.Get8(inst.A)
	oldC := e.Reg.F() & FlagC
	f := (e.Reg.F() & (FlagS | FlagZ | FlagP)) | (a & (Flag3 | Flag5))
	if oldC != 0 {
		f |= FlagH
	} else {
		f |= FlagC
	}
	e.Reg.SetF(f)
}

// TestBit implements BIT n,r/( HL)/(IX+d): undocSource supplies the byte
// whose bits 3/5 are copied into F - the tested operand itself for a plain
// register or (HL) test, or the high byte of the indexed address for an
// indexed CB test (a well-known Z80 address-bus quirk).
func (e *Environment) TestBit(n uint8, v uint8, undocSource uint8) {
	f := (e.Reg.F() & FlagC) | FlagH | (undocSource & (Flag3 | Flag5))
	if v&(1<<n) == 0 {
		f |= FlagP | FlagZ
	}
	if n == 7 && v&0x80 != 0 {
		f |= FlagS
	}
	e.Reg.SetF(f)
}

// --- 16/24-bit arithmetic ---

// Add16 implements ADD HL,rr / ADD IX,rr / ADD IY,rr: preserves S,Z,P/V.
func (e *Environment) Add16(hl, value uint16) uint16 {
	result := uint32(hl) + uint32(value)
	hc := (hl & 0x0FFF) + (value & 0x0FFF)
	r := uint16(result)
	f := (e.Reg.F() & (FlagS | FlagZ | FlagP)) |
		bsel(hc&0x1000 != 0, FlagH, 0) |
		bsel(result&0x10000 != 0, FlagC, 0) |
		(uint8(r>>8) & (Flag3 | Flag5))
	e.Reg.SetF(f)
	return r
}

// Adc16 implements ADC HL,rr: full S,Z,H,P/V,C computation.
func (e *Environment) Adc16(hl, value uint16) uint16 {
	cy := uint(e.Reg.F() & FlagC)
	result := uint(hl) + uint(value) + cy
	lookup := byte(((uint(hl) & 0x8800) >> 11) | ((uint(value) & 0x8800) >> 10) | ((result & 0x8800) >> 9))
	r := uint16(result)
	f := bsel(result&0x10000 != 0, FlagC, 0) |
		e.overflowOrParity(true, int(lookup>>4), uint8(r>>8)) |
		(uint8(r>>8) & (Flag3 | Flag5 | FlagS)) |
		HalfcarryAddTable[lookup&0x07] |
		bsel(r != 0, 0, FlagZ)
	e.Reg.SetF(f)
	return r
}

// Sbc16 implements SBC HL,rr: full S,Z,H,P/V,C computation.
func (e *Environment) Sbc16(hl, value uint16) uint16 {
	cy := uint(e.Reg.F() & FlagC)
	result := uint(hl) - uint(value) - cy
	lookup := byte(((uint(hl) & 0x8800) >> 11) | ((uint(value) & 0x8800) >> 10) | ((result & 0x8800) >> 9))
	r := uint16(result)
	f := bsel(result&0x10000 != 0, FlagC, 0) | FlagN |
		e.overflowOrParity(false, int(lookup>>4), uint8(r>>8)) |
		(uint8(r>>8) & (Flag3 | Flag5 | FlagS)) |
		HalfcarrySubTable[lookup&0x07] |
		bsel(r != 0, 0, FlagZ)
	e.Reg.SetF(f)
	return r
}

// Add24/Adc24/Sbc24 are the eZ80 ADL-mode widenings of the above: same
// flag contract, one byte wider, with H/overflow anchored at the top byte
// (bit 19/23) instead of bit 11/15.
func (e *Environment) Add24(hl, value uint32) uint32 {
	hl &= 0xFFFFFF
	value &= 0xFFFFFF
	result := uint64(hl) + uint64(value)
	hc := (hl & 0x0FFFFF) + (value & 0x0FFFFF)
	r := uint32(result) & 0xFFFFFF
	f := (e.Reg.F() & (FlagS | FlagZ | FlagP)) |
		bsel(hc&0x100000 != 0, FlagH, 0) |
		bsel(result&0x1000000 != 0, FlagC, 0) |
		(uint8(r>>16) & (Flag3 | Flag5))
	e.Reg.SetF(f)
	return r
}

func (e *Environment) Adc24(hl, value uint32) uint32 {
	hl &= 0xFFFFFF
	value &= 0xFFFFFF
	cy := uint64(e.Reg.F() & FlagC)
	result := uint64(hl) + uint64(value) + cy
	r := uint32(result) & 0xFFFFFF
	hc := (hl&0x0FFFFF)+(value&0x0FFFFF)+uint32(cy) > 0xFFFFF
	signA, signB, signR := hl&0x800000 != 0, value&0x800000 != 0, r&0x800000 != 0
	overflow := signA == signB && signA != signR
	f := bsel(result&0x1000000 != 0, FlagC, 0) |
		bsel(overflow && e.Reg.Dialect() != Dialect8080, FlagP, bsel(e.Reg.Dialect() == Dialect8080, ParityTable[uint8(r>>16)], 0)) |
		(uint8(r>>16) & (Flag3 | Flag5 | FlagS)) |
		bsel(hc, FlagH, 0) |
		bsel(r != 0, 0, FlagZ)
	e.Reg.SetF(f)
	return r
}

func (e *Environment) Sbc24(hl, value uint32) uint32 {
	hl &= 0xFFFFFF
	value &= 0xFFFFFF
	cy := uint64(e.Reg.F() & FlagC)
	result := uint64(hl) - uint64(value) - cy
	r := uint32(result) & 0xFFFFFF
	borrow := int64(hl&0x0FFFFF)-int64(value&0x0FFFFF)-int64(cy) < 0
	signA, signB, signR := hl&0x800000 != 0, value&0x800000 != 0, r&0x800000 != 0
	overflow := signA != signB && signR != signA
	f := bsel(result&0x1000000 != 0, FlagC, 0) | FlagN |
		bsel(overflow && e.Reg.Dialect() != Dialect8080, FlagP, bsel(e.Reg.Dialect() == Dialect8080, ParityTable[uint8(r>>16)], 0)) |
		(uint8(r>>16) & (Flag3 | Flag5 | FlagS)) |
		bsel(borrow, FlagH, 0) |
		bsel(r != 0, 0, FlagZ)
	e.Reg.SetF(f)
	return r
}
