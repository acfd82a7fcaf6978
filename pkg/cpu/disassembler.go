package cpu

import "strings"

// peekRecorder wraps a Machine, forwarding Peek to the real host while
// discarding every write (Poke/PortOut) and recording each byte peeked once
// armed - used by DisassembleOne to observe exactly the operand bytes an
// opcode's Action fetches, without mutating real memory or I/O state.
type peekRecorder struct {
	real    Machine
	armed   bool
	fetched []uint8
}

func (p *peekRecorder) Peek(addr uint32) uint8 {
	v := p.real.Peek(addr)
	if p.armed {
		p.fetched = append(p.fetched, v)
	}
	return v
}
func (p *peekRecorder) Poke(addr uint32, v uint8)   {}
func (p *peekRecorder) PortIn(port uint16) uint8    { return 0 }
func (p *peekRecorder) PortOut(port uint16, v uint8) {}

var indexedMnemonicPrefixes = []string{
	"RLC", "RRC", "RL ", "RR ", "SLA", "SRA", "SLL", "SRL", "BIT", "RES", "SET",
}

// isCbIndexedName reports whether name was built by one of the CB-indexed
// opcode builders, whose displacement byte is consumed during Decode
// (before the second opcode byte is even read) rather than by the Action.
func isCbIndexedName(name string) bool {
	for _, p := range indexedMnemonicPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// DisassembleOne decodes a single instruction at pc without executing any of
// its side effects: it decodes against a throwaway copy of reg and a
// write-discarding Machine wrapper, then fills in the opcode's Name template
// from the bytes its Action would have fetched. It returns the formatted
// text and the number of bytes the instruction occupies.
func DisassembleOne(pc uint32, reg *Registers, sys Machine, dec *Decoder) (string, uint32) {
	regCopy := *reg
	regCopy.SetPC(pc)
	st := NewState()
	rec := &peekRecorder{real: sys}
	env := NewEnvironment(&regCopy, st, rec)

	op := dec.Decode(env)
	startOperands := regCopy.PC()
	preDisplacement := st.Displacement()

	rec.armed = true
	op.Action(env)
	rec.armed = false

	var args disasmArgs
	bytes := rec.fetched
	name := op.Name

	switch {
	case strings.Contains(name, "l"):
		if len(bytes) >= 1 {
			d := int8(bytes[0])
			args.l = env.wrapPC(startOperands, int32(d)+1)
		}
	case strings.Contains(name, "nn"):
		args.long = st.IsImmLong(regCopy.ADL())
		width := 2
		if args.long {
			width = 3
		}
		if len(bytes) >= width {
			var v uint32
			for i := width - 1; i >= 0; i-- {
				v = v<<8 | uint32(bytes[i])
			}
			args.nn = v
		}
	case strings.Contains(name, "d"):
		if isCbIndexedName(name) {
			args.d = preDisplacement
		} else if len(bytes) >= 1 {
			args.d = int8(bytes[0])
		}
	case strings.Contains(name, "n"):
		if len(bytes) >= 1 {
			args.n = bytes[0]
		}
	}

	text := Disasm(sizeSuffix(name, st.SizePrefix()), args, env.GetIndex())
	length := (regCopy.PC() - pc) & 0xFFFFFF
	return text, length
}

// Disassemble walks count instructions starting at pc and returns the text of
// each one. It never mutates reg or sys.
func Disassemble(pc uint32, reg *Registers, sys Machine, dec *Decoder, count int) []string {
	out := make([]string, 0, count)
	addr := pc
	for i := 0; i < count; i++ {
		text, n := DisassembleOne(addr, reg, sys, dec)
		out = append(out, text)
		if n == 0 {
			n = 1
		}
		addr = (addr + n) & 0xFFFFFF
	}
	return out
}
