package cpu

import (
	"fmt"
	"os"

	"github.com/tomm/go-ez80/pkg/inst"
)

// buildLogUnimplemented returns an opcode whose action logs its name to
// stderr and does nothing else - the "logs and does nothing" resolution
// for every undocumented mnemonic the source itself never implements
// (OTIM/OTDM family, INI2/IND2 family, SLP, "LD I,HL"/"LD HL,I", and any
// invalid ED combination that falls through to NONI+NOP).
func buildLogUnimplemented(name string) *Opcode {
	return &Opcode{
		Name: name,
		Action: func(e *Environment) {
			fmt.Fprintf(os.Stderr, "unimplemented opcode: %s\n", name)
		},
	}
}

func buildNop() *Opcode {
	return &Opcode{Name: "NOP", Action: func(e *Environment) {}}
}

func buildHalt() *Opcode {
	return &Opcode{Name: "HALT", Action: func(e *Environment) {
		e.St.SetHalted(true)
	}}
}

func buildDaa() *Opcode {
	return &Opcode{Name: "DAA", Action: func(e *Environment) { e.DAA() }}
}

func buildCpl() *Opcode {
	return &Opcode{Name: "CPL", Action: func(e *Environment) { e.CPL() }}
}

func buildScf() *Opcode {
	return &Opcode{Name: "SCF", Action: func(e *Environment) { e.SCF() }}
}

func buildCcf() *Opcode {
	return &Opcode{Name: "CCF", Action: func(e *Environment) { e.CCF() }}
}

func buildRlca() *Opcode { return &Opcode{Name: "RLCA", Action: func(e *Environment) { e.RLCA() }} }
func buildRrca() *Opcode { return &Opcode{Name: "RRCA", Action: func(e *Environment) { e.RRCA() }} }
func buildRla() *Opcode  { return &Opcode{Name: "RLA", Action: func(e *Environment) { e.RLA() }} }
func buildRra() *Opcode  { return &Opcode{Name: "RRA", Action: func(e *Environment) { e.RRA() }} }

func buildDi() *Opcode {
	return &Opcode{Name: "DI", Action: func(e *Environment) {
		e.Reg.SetIFF1(false)
		e.Reg.SetIFF2(false)
	}}
}

func buildEi() *Opcode {
	return &Opcode{Name: "EI", Action: func(e *Environment) {
		e.Reg.SetIFF1(true)
		e.Reg.SetIFF2(true)
	}}
}

func buildIm(mode uint8) *Opcode {
	return &Opcode{Name: fmt.Sprintf("IM %d", mode), Action: func(e *Environment) {
		e.Reg.SetIM(mode)
	}}
}

func buildNeg() *Opcode {
	return &Opcode{Name: "NEG", Action: func(e *Environment) {
		a := e.Reg.Get8(inst.A)
		e.Reg.Set8(inst.A, 0)
		e.aluSub(a)
	}}
}

func buildExAfAf() *Opcode {
	return &Opcode{Name: "EX AF,AF'", Action: func(e *Environment) {
		e.Reg.Swap(inst.AF)
	}}
}

func buildExx() *Opcode {
	return &Opcode{Name: "EXX", Action: func(e *Environment) {
		e.Reg.Swap(inst.BC)
		e.Reg.Swap(inst.DE)
		e.Reg.Swap(inst.HL)
	}}
}

func buildExDeHl() *Opcode {
	return &Opcode{Name: "EX DE,HL", Action: func(e *Environment) {
		d := e.Reg.Get24(inst.DE)
		h := e.Reg.Get24(inst.HL)
		e.Reg.Set24(inst.DE, h)
		e.Reg.Set24(inst.HL, d)
	}}
}

// EX (SP),HL: swaps HL/IX/IY with the two (three, in ADL mode) bytes on
// top of the stack, preserving the extension byte via Set16Preserve17to24.
func buildExIndSpHl() *Opcode {
	return &Opcode{Name: "EX (SP),HL", Action: func(e *Environment) {
		rr := e.effectiveReg16(inst.HL)
		sp := e.Reg.SPS()
		if e.St.IsOpLong(e.Reg.ADL()) {
			sp = uint16(e.Reg.SPL())
			addr := e.Reg.SPL()
			old := e.Peek24(addr)
			e.Poke24(addr, e.Reg.Get24(rr))
			e.Reg.Set24(rr, old)
			return
		}
		addr := uint32(e.Reg.MBASE())<<16 | uint32(sp)
		old := e.Peek16(addr)
		e.Poke16(addr, e.Reg.Get16(rr))
		e.Reg.Set16Preserve17to24(rr, old)
	}}
}

// --- eZ80 extensions with no direct Z80 analogue ---

func buildMlt(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "MLT " + rr.String(), Action: func(e *Environment) {
		v := e.Reg.Get16(rr)
		hi := uint8(v >> 8)
		lo := uint8(v)
		e.Reg.Set16(rr, uint16(hi)*uint16(lo))
	}}
}

func buildLdMbA() *Opcode {
	return &Opcode{Name: "LD MB,A", Action: func(e *Environment) {
		e.Reg.SetMBASE(e.Reg.Get8(inst.A))
	}}
}

func buildLdAMb() *Opcode {
	return &Opcode{Name: "LD A,MB", Action: func(e *Environment) {
		e.Reg.Set8(inst.A, e.Reg.MBASE())
	}}
}

func buildStmix() *Opcode {
	return &Opcode{Name: "STMIX", Action: func(e *Environment) {
		e.Reg.SetMADL(true)
	}}
}

func buildRsmix() *Opcode {
	return &Opcode{Name: "RSMIX", Action: func(e *Environment) {
		e.Reg.SetMADL(false)
	}}
}

func buildLdIA() *Opcode {
	return &Opcode{Name: "LD I,A", Action: func(e *Environment) {
		e.Reg.SetI(e.Reg.Get8(inst.A))
	}}
}

func buildLdRA() *Opcode {
	return &Opcode{Name: "LD R,A", Action: func(e *Environment) {
		e.Reg.SetR(e.Reg.Get8(inst.A))
	}}
}

func buildLdAI() *Opcode {
	return &Opcode{Name: "LD A,I", Action: func(e *Environment) {
		v := e.Reg.I()
		e.Reg.Set8(inst.A, v)
		e.setIrFlags(v)
	}}
}

func buildLdAR() *Opcode {
	return &Opcode{Name: "LD A,R", Action: func(e *Environment) {
		v := e.Reg.R()
		e.Reg.Set8(inst.A, v)
		e.setIrFlags(v)
	}}
}

// setIrFlags implements the S,Z,_3,_5,H=0,N=0,P/V=IFF2 contract shared by
// LD A,I and LD A,R.
func (e *Environment) setIrFlags(v uint8) {
	f := (e.Reg.F() & FlagC) | Sz53Table[v]
	if e.Reg.IFF2() {
		f |= FlagP
	}
	e.Reg.SetF(f)
}

func buildRrd() *Opcode {
	return &Opcode{Name: "RRD", Action: func(e *Environment) {
		addr := e.IndexAddress()
		hl := e.Peek(addr)
		a := e.Reg.Get8(inst.A)
		newA := (a & 0xF0) | (hl & 0x0F)
		newHL := (a << 4) | (hl >> 4)
		e.Reg.Set8(inst.A, newA)
		e.Poke(addr, newHL)
		e.Reg.SetF((e.Reg.F() & FlagC) | Sz53pTable[newA])
	}}
}

func buildRld() *Opcode {
	return &Opcode{Name: "RLD", Action: func(e *Environment) {
		addr := e.IndexAddress()
		hl := e.Peek(addr)
		a := e.Reg.Get8(inst.A)
		newA := (a & 0xF0) | (hl >> 4)
		newHL := (hl << 4) | (a & 0x0F)
		e.Reg.Set8(inst.A, newA)
		e.Poke(addr, newHL)
		e.Reg.SetF((e.Reg.F() & FlagC) | Sz53pTable[newA])
	}}
}
