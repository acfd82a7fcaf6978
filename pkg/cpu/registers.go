package cpu

import "github.com/tomm/go-ez80/pkg/inst"

// Dialect selects which instruction-set family a Registers/Decoder pair
// emulates. The three dialects share the same storage and the same decode
// machinery (see decoder.go); only table construction and a handful of flag
// rules differ.
type Dialect uint8

const (
	DialectEZ80 Dialect = iota
	DialectZ80
	Dialect8080
)

// Registers holds the full eZ80 register file: the main and shadow 8080/Z80
// register sets, the index registers, both stack pointers, and the mode
// bits that select 16- vs 24-bit addressing.
//
// BC/DE/HL/IX/IY are stored as 24-bit values packed into a uint32 (bits
// 16-23 hold the "U" extension byte used only in ADL mode); the shadow
// copies are 16-bit only, matching the hardware's shadow register file.
type Registers struct {
	af uint32 // A in bits 8-15, F in bits 0-7; no 24-bit extension exists
	bc uint32
	de uint32
	hl uint32
	ix uint32
	iy uint32

	altAF uint16
	altBC uint16
	altDE uint16
	altHL uint16

	i uint8
	r uint8 // 7-bit refresh counter; bit 7 is preserved separately by the driver

	sps uint16 // 16-bit stack pointer (Z80 mode)
	spl uint32 // 24-bit stack pointer (ADL mode)
	pc  uint32 // 24-bit program counter

	iff1, iff2 bool
	im         uint8

	adl     bool
	madl    bool
	mbase   uint8
	dialect Dialect
}

// NewRegisters returns a zeroed register file for the given dialect, with
// ADL set for the eZ80 dialect.
func NewRegisters(d Dialect) *Registers {
	r := &Registers{dialect: d}
	if d == DialectEZ80 {
		r.adl = true
	}
	r.normalizeF()
	return r
}

func (r *Registers) Dialect() Dialect { return r.dialect }

// --- 8-bit access ---

func (r *Registers) Get8(reg inst.Reg8) uint8 {
	switch reg {
	case inst.A:
		return uint8(r.af >> 8)
	case inst.F:
		return uint8(r.af)
	case inst.B:
		return uint8(r.bc >> 8)
	case inst.C:
		return uint8(r.bc)
	case inst.D:
		return uint8(r.de >> 8)
	case inst.E:
		return uint8(r.de)
	case inst.H:
		return uint8(r.hl >> 8)
	case inst.L:
		return uint8(r.hl)
	case inst.IXH:
		return uint8(r.ix >> 8)
	case inst.IXL:
		return uint8(r.ix)
	case inst.IYH:
		return uint8(r.iy >> 8)
	case inst.IYL:
		return uint8(r.iy)
	case inst.I:
		return r.i
	case inst.Rr:
		return r.r
	}
	panic("cpu: Get8 of non-scalar register")
}

func (r *Registers) Set8(reg inst.Reg8, v uint8) {
	switch reg {
	case inst.A:
		r.af = (r.af &^ 0xFF00) | uint32(v)<<8
	case inst.F:
		r.af = (r.af &^ 0xFF) | uint32(v)
		r.normalizeF()
	case inst.B:
		r.bc = (r.bc &^ 0xFF00) | uint32(v)<<8
	case inst.C:
		r.bc = (r.bc &^ 0xFF) | uint32(v)
	case inst.D:
		r.de = (r.de &^ 0xFF00) | uint32(v)<<8
	case inst.E:
		r.de = (r.de &^ 0xFF) | uint32(v)
	case inst.H:
		r.hl = (r.hl &^ 0xFF00) | uint32(v)<<8
	case inst.L:
		r.hl = (r.hl &^ 0xFF) | uint32(v)
	case inst.IXH:
		r.ix = (r.ix &^ 0xFF00) | uint32(v)<<8
	case inst.IXL:
		r.ix = (r.ix &^ 0xFF) | uint32(v)
	case inst.IYH:
		r.iy = (r.iy &^ 0xFF00) | uint32(v)<<8
	case inst.IYL:
		r.iy = (r.iy &^ 0xFF) | uint32(v)
	case inst.I:
		r.i = v
	case inst.Rr:
		r.r = v
	default:
		panic("cpu: Set8 of non-scalar register")
	}
}

// --- 16-bit access ---
//
// Get16/Set16 always operate on the low 16 bits of a pair. Set16 zero-
// extends the pair's upper (bit 16-23) byte, EXCEPT for AF (which has no
// upper byte) and SP (which preserves SPL's upper byte - the hardware
// leaves it undefined across a 16-bit stack-pointer load, and this module
// preserves it rather than zeroing it, matching the source's own choice).

func (r *Registers) Get16(reg inst.Reg16) uint16 {
	switch reg {
	case inst.BC:
		return uint16(r.bc)
	case inst.DE:
		return uint16(r.de)
	case inst.HL:
		return uint16(r.hl)
	case inst.IX:
		return uint16(r.ix)
	case inst.IY:
		return uint16(r.iy)
	case inst.AF:
		return uint16(r.af)
	case inst.SP:
		return r.sps
	case inst.PC:
		return uint16(r.pc)
	}
	panic("cpu: Get16 of unknown pair")
}

func (r *Registers) Set16(reg inst.Reg16, v uint16) {
	switch reg {
	case inst.BC:
		r.bc = uint32(v)
	case inst.DE:
		r.de = uint32(v)
	case inst.HL:
		r.hl = uint32(v)
	case inst.IX:
		r.ix = uint32(v)
	case inst.IY:
		r.iy = uint32(v)
	case inst.AF:
		r.af = uint32(v)
		r.normalizeF()
	case inst.SP:
		r.sps = v
		r.spl = (r.spl &^ 0xFFFF) | uint32(v)
	case inst.PC:
		r.pc = uint32(v)
	default:
		panic("cpu: Set16 of unknown pair")
	}
}

// Set16Preserve17to24 writes the low 16 bits of a pair without touching its
// upper byte, used by EX (SP),HL style operations that must not clobber the
// ADL extension byte of the register being overwritten.
func (r *Registers) Set16Preserve17to24(reg inst.Reg16, v uint16) {
	switch reg {
	case inst.BC:
		r.bc = (r.bc &^ 0xFFFF) | uint32(v)
	case inst.DE:
		r.de = (r.de &^ 0xFFFF) | uint32(v)
	case inst.HL:
		r.hl = (r.hl &^ 0xFFFF) | uint32(v)
	case inst.IX:
		r.ix = (r.ix &^ 0xFFFF) | uint32(v)
	case inst.IY:
		r.iy = (r.iy &^ 0xFFFF) | uint32(v)
	default:
		r.Set16(reg, v)
	}
}

// --- 24-bit access ---

func (r *Registers) Get24(reg inst.Reg16) uint32 {
	switch reg {
	case inst.BC:
		return r.bc & 0xFFFFFF
	case inst.DE:
		return r.de & 0xFFFFFF
	case inst.HL:
		return r.hl & 0xFFFFFF
	case inst.IX:
		return r.ix & 0xFFFFFF
	case inst.IY:
		return r.iy & 0xFFFFFF
	case inst.AF:
		return r.af & 0xFFFF
	case inst.SP:
		return r.spl & 0xFFFFFF
	case inst.PC:
		return r.pc & 0xFFFFFF
	}
	panic("cpu: Get24 of unknown pair")
}

func (r *Registers) Set24(reg inst.Reg16, v uint32) {
	v &= 0xFFFFFF
	switch reg {
	case inst.BC:
		r.bc = v
	case inst.DE:
		r.de = v
	case inst.HL:
		r.hl = v
	case inst.IX:
		r.ix = v
	case inst.IY:
		r.iy = v
	case inst.AF:
		r.af = v & 0xFFFF
		r.normalizeF()
	case inst.SP:
		r.spl = v
	case inst.PC:
		r.pc = v
	default:
		panic("cpu: Set24 of unknown pair")
	}
}

// Swap exchanges a register pair with its shadow copy. Only AF, BC, DE, HL
// have shadow copies, and the exchange is always 16-bit - EXX and EX AF,AF'
// never touch the ADL extension byte of BC/DE/HL, so the upper byte stays
// with the main register across the swap.
func (r *Registers) Swap(reg inst.Reg16) {
	switch reg {
	case inst.AF:
		lo := uint16(r.af)
		r.af = (r.af &^ 0xFFFF) | uint32(r.altAF)
		r.altAF = lo
		r.normalizeF()
	case inst.BC:
		lo := uint16(r.bc)
		r.bc = (r.bc &^ 0xFFFF) | uint32(r.altBC)
		r.altBC = lo
	case inst.DE:
		lo := uint16(r.de)
		r.de = (r.de &^ 0xFFFF) | uint32(r.altDE)
		r.altDE = lo
	case inst.HL:
		lo := uint16(r.hl)
		r.hl = (r.hl &^ 0xFFFF) | uint32(r.altHL)
		r.altHL = lo
	default:
		panic("cpu: Swap of register with no shadow copy")
	}
}

// --- flags ---

func (r *Registers) F() uint8 { return uint8(r.af) }

func (r *Registers) SetF(v uint8) {
	r.af = (r.af &^ 0xFF) | uint32(v)
	r.normalizeF()
}

func (r *Registers) GetFlag(f inst.Flag) bool {
	return uint8(r.af)&uint8(f) != 0
}

func (r *Registers) SetFlag(f inst.Flag, v bool) {
	fb := uint8(r.af)
	if v {
		fb |= uint8(f)
	} else {
		fb &^= uint8(f)
	}
	r.af = (r.af &^ 0xFF) | uint32(fb)
	r.normalizeF()
}

// normalizeF enforces the 8080 dialect's fixed PSW bits: N (bit 1) is
// always read as set, and the undocumented _3/_5 copies always read clear.
func (r *Registers) normalizeF() {
	if r.dialect != Dialect8080 {
		return
	}
	fb := uint8(r.af)
	fb |= uint8(inst.FlagN)
	fb &^= uint8(inst.Flag3) | uint8(inst.Flag5)
	r.af = (r.af &^ 0xFF) | uint32(fb)
}

// --- PC / SP / mode bits ---

func (r *Registers) PC() uint32     { return r.pc & 0xFFFFFF }
func (r *Registers) SetPC(v uint32) { r.pc = v & 0xFFFFFF }

func (r *Registers) SPS() uint16     { return r.sps }
func (r *Registers) SetSPS(v uint16) { r.sps = v }
func (r *Registers) SPL() uint32     { return r.spl & 0xFFFFFF }
func (r *Registers) SetSPL(v uint32) { r.spl = v & 0xFFFFFF }

func (r *Registers) I() uint8     { return r.i }
func (r *Registers) SetI(v uint8) { r.i = v }
func (r *Registers) R() uint8     { return r.r }
func (r *Registers) SetR(v uint8) { r.r = v }

// BumpR increments the refresh counter by one, wrapping its low 7 bits and
// preserving bit 7 - the documented hardware behaviour of the R register.
func (r *Registers) BumpR() {
	r.r = (r.r & 0x80) | ((r.r + 1) & 0x7F)
}

func (r *Registers) IFF1() bool     { return r.iff1 }
func (r *Registers) SetIFF1(v bool) { r.iff1 = v }
func (r *Registers) IFF2() bool     { return r.iff2 }
func (r *Registers) SetIFF2(v bool) { r.iff2 = v }

func (r *Registers) IM() uint8     { return r.im }
func (r *Registers) SetIM(v uint8) { r.im = v }

func (r *Registers) ADL() bool     { return r.adl }
func (r *Registers) SetADL(v bool) { r.adl = v }

func (r *Registers) MADL() bool     { return r.madl }
func (r *Registers) SetMADL(v bool) { r.madl = v }

func (r *Registers) MBASE() uint8     { return r.mbase }
func (r *Registers) SetMBASE(v uint8) { r.mbase = v }
