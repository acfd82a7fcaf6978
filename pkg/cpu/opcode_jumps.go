package cpu

import "github.com/tomm/go-ez80/pkg/inst"

func buildJrD() *Opcode {
	return &Opcode{Name: "JR l", Action: func(e *Environment) {
		d := int8(e.AdvancePC())
		e.Reg.SetPC(e.wrapPC(e.Reg.PC(), int32(d)))
	}}
}

func buildJrCcD(cc inst.CCEntry) *Opcode {
	return &Opcode{Name: "JR " + cc.Name + ",l", Action: func(e *Environment) {
		d := int8(e.AdvancePC())
		if e.Reg.GetFlag8(cc) {
			e.Reg.SetPC(e.wrapPC(e.Reg.PC(), int32(d)))
			e.UseCycles(5)
		}
	}}
}

func buildDjnz() *Opcode {
	return &Opcode{Name: "DJNZ l", Action: func(e *Environment) {
		b := e.Reg.Get8(inst.B) - 1
		e.Reg.Set8(inst.B, b)
		d := int8(e.AdvancePC())
		if b != 0 {
			e.Reg.SetPC(e.wrapPC(e.Reg.PC(), int32(d)))
			e.UseCycles(5)
		}
	}}
}

func buildJpNN() *Opcode {
	return &Opcode{Name: "JP nn", Action: func(e *Environment) {
		target := e.AdvanceImmediate16MBaseOr24()
		e.Reg.SetPC(target)
	}}
}

func buildJpCcNN(cc inst.CCEntry) *Opcode {
	return &Opcode{Name: "JP " + cc.Name + ",nn", Action: func(e *Environment) {
		target := e.AdvanceImmediate16MBaseOr24()
		if e.Reg.GetFlag8(cc) {
			e.Reg.SetPC(target)
		}
	}}
}

func buildJpHl() *Opcode {
	return &Opcode{Name: "JP (HL)", Action: func(e *Environment) {
		e.Reg.SetPC(e.IndexValue())
	}}
}

func buildCallNN() *Opcode {
	return &Opcode{Name: "CALL nn", Action: func(e *Environment) {
		target := e.AdvanceImmediate16MBaseOr24()
		e.SubroutineCall(target)
	}}
}

func buildCallCcNN(cc inst.CCEntry) *Opcode {
	return &Opcode{Name: "CALL " + cc.Name + ",nn", Action: func(e *Environment) {
		target := e.AdvanceImmediate16MBaseOr24()
		if e.Reg.GetFlag8(cc) {
			e.SubroutineCall(target)
			e.UseCycles(7)
		}
	}}
}

func buildRet() *Opcode {
	return &Opcode{Name: "RET", Action: func(e *Environment) {
		e.SubroutineReturn()
	}}
}

func buildRetCc(cc inst.CCEntry) *Opcode {
	return &Opcode{Name: "RET " + cc.Name, Action: func(e *Environment) {
		if e.Reg.GetFlag8(cc) {
			e.SubroutineReturn()
			e.UseCycles(6)
		}
	}}
}

func buildReti() *Opcode {
	return &Opcode{Name: "RETI", Action: func(e *Environment) {
		e.SubroutineReturn()
	}}
}

func buildRetn() *Opcode {
	return &Opcode{Name: "RETN", Action: func(e *Environment) {
		e.Reg.SetIFF1(e.Reg.IFF2())
		e.SubroutineReturn()
	}}
}

func buildRst(vector uint8) *Opcode {
	return &Opcode{Name: formatHex(uint32(vector), 2), Action: func(e *Environment) {
		e.SubroutineCall(uint32(vector))
	}}
}

func buildPushRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "PUSH " + rr.String(), Action: func(e *Environment) {
		e.Push(e.Reg16or24Ext(rr))
	}}
}

func buildPopRR(rr inst.Reg16) *Opcode {
	return &Opcode{Name: "POP " + rr.String(), Action: func(e *Environment) {
		e.SetReg16or24Ext(rr, e.Pop())
	}}
}

// GetFlag8 evaluates a CCEntry condition against the current F register.
func (r *Registers) GetFlag8(cc inst.CCEntry) bool {
	set := uint8(r.F())&uint8(cc.Flag) != 0
	return set == cc.Set
}
