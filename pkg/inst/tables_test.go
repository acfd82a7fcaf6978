package inst_test

import (
	"testing"

	"github.com/tomm/go-ez80/pkg/inst"
)

func TestRPAndRP2DifferOnlyInLastEntry(t *testing.T) {
	for i := 0; i < 3; i++ {
		if inst.RP[i] != inst.RP2[i] {
			t.Fatalf("RP[%d]=%v != RP2[%d]=%v, want equal for p=0..2", i, inst.RP[i], i, inst.RP2[i])
		}
	}
	if inst.RP[3] != inst.SP {
		t.Fatalf("RP[3] = %v, want SP", inst.RP[3])
	}
	if inst.RP2[3] != inst.AF {
		t.Fatalf("RP2[3] = %v, want AF", inst.RP2[3])
	}
}

func TestRTableIndHLAtSix(t *testing.T) {
	if inst.R[6] != inst.IndHL {
		t.Fatalf("R[6] = %v, want IndHL", inst.R[6])
	}
	if inst.R[7] != inst.A {
		t.Fatalf("R[7] = %v, want A", inst.R[7])
	}
}

func TestBLITableMatchesLDIRByteEncoding(t *testing.T) {
	// LDIR's ED-table byte is $B0: x=2,y=6,z=0 -> y&3 = 2 selects BLI[2].
	_, y, _, _, _ := inst.Parts(0xB0)
	entry := inst.BLI[y&3]
	if entry.Postfix != "IR" || !entry.Inc || !entry.Repeat {
		t.Fatalf("BLI[y&3] = %+v, want {Inc:true Repeat:true Postfix:IR}", entry)
	}
}

func TestCCTableHasEightDistinctConditions(t *testing.T) {
	seen := map[string]bool{}
	for _, cc := range inst.CC {
		if seen[cc.Name] {
			t.Fatalf("condition %q appears more than once in CC", cc.Name)
		}
		seen[cc.Name] = true
	}
	if len(seen) != 8 {
		t.Fatalf("CC has %d distinct conditions, want 8", len(seen))
	}
}

func TestALUTableOrderMatchesClassicEncoding(t *testing.T) {
	want := []string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	for i, name := range want {
		if inst.ALU[i].Name != name {
			t.Fatalf("ALU[%d].Name = %q, want %q", i, inst.ALU[i].Name, name)
		}
	}
}

func TestIMTableMatchesYField(t *testing.T) {
	want := [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}
	if inst.IM != want {
		t.Fatalf("IM = %v, want %v", inst.IM, want)
	}
}
