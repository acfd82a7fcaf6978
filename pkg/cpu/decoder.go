package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// Decoder turns a prefixed byte stream into an *Opcode by consulting six
// 256-entry tables (no-prefix, CB, CB-indexed, ED, DD, FD) built once at
// construction time, plus a has-displacement table marking which no-prefix
// opcodes need a fetched displacement byte when an index prefix is active.
// The three dialects (eZ80, classic Z80, Intel 8080) share this same
// struct and Decode loop; only table construction and prefix recognition
// differ between them (see decoder_ez80.go/decoder_z80.go/decoder_8080.go).
type Decoder struct {
	dialect Dialect

	noPrefix        [256]*Opcode
	cb              [256]*Opcode
	cbIndexed       [256]*Opcode
	ed              [256]*Opcode
	dd              [256]*Opcode
	fd              [256]*Opcode
	hasDisplacement [256]bool
}

// Decode consumes zero or more prefix bytes followed by a primary opcode
// byte (and, for CB/CB-indexed, a further opcode byte) and returns the
// *Opcode selected. It fetches every byte through e, advancing PC.
func (d *Decoder) Decode(e *Environment) *Opcode {
	if d.dialect == Dialect8080 {
		code := e.AdvancePC()
		return d.mustLookup(d.noPrefix[:], code)
	}

	for {
		b := e.Peek(e.Reg.PC())
		if d.dialect == DialectEZ80 {
			switch b {
			case 0x40:
				e.AdvancePC()
				e.St.SetSizePrefix(inst.SizeSIS)
				continue
			case 0x49:
				e.AdvancePC()
				e.St.SetSizePrefix(inst.SizeLIS)
				continue
			case 0x52:
				e.AdvancePC()
				e.St.SetSizePrefix(inst.SizeSIL)
				continue
			case 0x5B:
				e.AdvancePC()
				e.St.SetSizePrefix(inst.SizeLIL)
				continue
			}
		}
		if b == 0xDD {
			e.AdvancePC()
			e.St.SetIndex(inst.IndexIX)
			continue
		}
		if b == 0xFD {
			e.AdvancePC()
			e.St.SetIndex(inst.IndexIY)
			continue
		}
		break
	}

	code := e.AdvancePC()
	switch code {
	case 0xCB:
		if e.St.IsAltIndex() {
			e.LoadDisplacement()
			opc := e.AdvancePC()
			return d.mustLookup(d.cbIndexed[:], opc)
		}
		opc := e.AdvancePC()
		return d.mustLookup(d.cb[:], opc)
	case 0xED:
		opc := e.AdvancePC()
		return d.mustLookup(d.ed[:], opc)
	default:
		if e.St.IsAltIndex() && d.dialect == DialectEZ80 {
			var tbl *[256]*Opcode
			if e.St.Index() == inst.IndexIX {
				tbl = &d.dd
			} else {
				tbl = &d.fd
			}
			if op := tbl[code]; op != nil {
				return op
			}
		}
		if e.St.IsAltIndex() && d.hasDisplacement[code] {
			e.LoadDisplacement()
		}
		return d.mustLookup(d.noPrefix[:], code)
	}
}

func (d *Decoder) mustLookup(table []*Opcode, code uint8) *Opcode {
	op := table[code]
	if op == nil {
		panic("cpu: decode table has no entry for opcode byte")
	}
	return op
}
