package inst_test

import (
	"testing"

	"github.com/tomm/go-ez80/pkg/inst"
)

func TestPartsDecomposesOpcodeByte(t *testing.T) {
	// LDIR = $ED $B0; the ED-prefixed byte $B0 decomposes to x=2,y=6,z=0.
	x, y, z, p, q := inst.Parts(0xB0)
	if x != 2 || y != 6 || z != 0 {
		t.Fatalf("Parts($B0) = x=%d,y=%d,z=%d, want x=2,y=6,z=0", x, y, z)
	}
	// p = (code>>4)&3, q = (code>>3)&1, derived independently of x/y/z.
	if p != 3 || q != 0 {
		t.Fatalf("Parts($B0) p=%d,q=%d, want p=3,q=0", p, q)
	}
}

func TestPartsZeroByte(t *testing.T) {
	x, y, z, p, q := inst.Parts(0x00)
	if x != 0 || y != 0 || z != 0 || p != 0 || q != 0 {
		t.Fatalf("Parts($00) = %d,%d,%d,%d,%d, want all zero", x, y, z, p, q)
	}
}

func TestIndexReg16Mapping(t *testing.T) {
	cases := []struct {
		idx  inst.Index
		want inst.Reg16
		name string
	}{
		{inst.IndexHL, inst.HL, "HL"},
		{inst.IndexIX, inst.IX, "IX"},
		{inst.IndexIY, inst.IY, "IY"},
	}
	for _, c := range cases {
		if got := c.idx.Reg16(); got != c.want {
			t.Fatalf("%v.Reg16() = %v, want %v", c.idx, got, c.want)
		}
		if got := c.idx.String(); got != c.name {
			t.Fatalf("%v.String() = %q, want %q", c.idx, got, c.name)
		}
	}
}

func TestSizePrefixStrings(t *testing.T) {
	cases := map[inst.SizePrefix]string{
		inst.SizeNone: "",
		inst.SizeLIL:  ".LIL",
		inst.SizeLIS:  ".LIS",
		inst.SizeSIL:  ".SIL",
		inst.SizeSIS:  ".SIS",
	}
	for sp, want := range cases {
		if got := sp.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", sp, got, want)
		}
	}
}

func TestFlagMasksAreDistinctSingleBits(t *testing.T) {
	flags := []inst.Flag{inst.FlagC, inst.FlagN, inst.FlagPV, inst.Flag3, inst.FlagH, inst.Flag5, inst.FlagZ, inst.FlagS}
	seen := uint8(0)
	for _, f := range flags {
		v := uint8(f)
		if v == 0 || v&(v-1) != 0 {
			t.Fatalf("flag %d is not a single bit", v)
		}
		if seen&v != 0 {
			t.Fatalf("flag bit $%02X used more than once", v)
		}
		seen |= v
	}
}

func TestReg8StringCoversEveryConstant(t *testing.T) {
	regs := []inst.Reg8{inst.A, inst.F, inst.B, inst.C, inst.D, inst.E, inst.H, inst.L,
		inst.IXH, inst.IXL, inst.IYH, inst.IYL, inst.I, inst.Rr, inst.IndHL}
	for _, r := range regs {
		if r.String() == "?" {
			t.Fatalf("Reg8(%d) has no String() case", r)
		}
	}
}
