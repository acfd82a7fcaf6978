// Package conformance runs ZEXALL/ZEXDOC-style CP/M conformance images
// against the core, concurrently, using a worker pool adapted from the
// teacher's own peephole-search worker pool.
package conformance

import (
	"strings"

	"github.com/tomm/go-ez80/pkg/cpu"
	"github.com/tomm/go-ez80/pkg/inst"
	"github.com/tomm/go-ez80/pkg/result"
)

// loadAddr is the fixed CP/M .com transient-program-area load address the
// conformance images assume.
const loadAddr = 0x100

// bdosTrap is the fixed three-byte "out ($0),a; ret" trampoline the original
// test harness installs at address 5 (CP/M's BDOS entry point) so images
// that issue a CALL 5 BDOS request fall straight through to Go code instead
// of a real BDOS implementation.
var bdosTrap = [3]byte{0xD3, 0x00, 0xC9}

const (
	bdosCWrite    = 2
	bdosCWriteStr = 9
)

// RunImage loads code at loadAddr, installs the BDOS trampoline, runs it to
// completion (PC reaching 0, the CP/M warm-boot vector test images jump to
// when done) or maxInstructions (a timeout), and reports the combined
// outcome. Each call gets its own private Cpu/PlainMachine pair, so RunImage
// is safe to call concurrently from multiple goroutines.
func RunImage(dialect cpu.Dialect, name string, code []byte, maxInstructions uint64) result.ImageResult {
	sys := cpu.NewPlainMachine()
	for i, b := range code {
		sys.Mem[loadAddr+i] = b
	}
	for i, b := range bdosTrap {
		sys.Mem[5+i] = b
	}

	c := cpu.NewCpu(dialect, sys)
	c.Reg.SetADL(false)
	c.Reg.SetPC(loadAddr)

	var out strings.Builder
	messages := 0
	allOK := true
	var instrCount uint64
	timeout := false

	for {
		if c.Reg.PC() == 0 {
			break
		}
		if instrCount >= maxInstructions {
			timeout = true
			break
		}
		if c.Reg.PC() == 5 {
			if msg, handled := runBDOS(c, sys); handled && msg != "" {
				messages++
				out.WriteString(msg)
				if !strings.Contains(msg, "OK") {
					allOK = false
				}
			}
		}
		if c.Step() {
			instrCount++
		} else {
			// halted with no reset/NMI pending and no BDOS call in
			// progress: nothing will ever move PC again.
			timeout = true
			break
		}
	}

	return result.ImageResult{
		Name:             name,
		Pass:             !timeout && messages > 0 && allOK,
		Timeout:          timeout,
		Output:           out.String(),
		InstructionCount: instrCount,
	}
}

// runBDOS services the subset of CP/M BDOS calls the ZEXALL/ZEXDOC-style
// images actually issue: C_WRITE (print E) and C_WRITE_STR (print the
// '$'-terminated string at DE). Returns the printed text, if any.
func runBDOS(c *cpu.Cpu, sys *cpu.PlainMachine) (string, bool) {
	switch c.Reg.Get8(inst.C) {
	case bdosCWrite:
		return string(rune(c.Reg.Get8(inst.E))), true
	case bdosCWriteStr:
		addr := uint32(c.Reg.Get16(inst.DE))
		var sb strings.Builder
		for {
			ch := sys.Mem[addr&0xFFFFFF]
			addr++
			if ch == '$' {
				break
			}
			sb.WriteByte(ch)
		}
		return sb.String(), true
	default:
		return "", false
	}
}
