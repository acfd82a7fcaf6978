package cpu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomm/go-ez80/pkg/inst"
)

// Opcode is a decoded instruction: a disassembly name template plus the
// action that executes it. Every decode table entry is built once, at
// decoder construction time, and holds no per-step allocation.
type Opcode struct {
	Name   string
	Action func(*Environment)
}

// disasmArgs carries the operand text substituted into a Name template by
// Disasm; only the fields relevant to the opcode being rendered are set.
type disasmArgs struct {
	nn   uint32 // 16- or 24-bit immediate/address, width per long
	n    uint8  // 8-bit immediate
	d    int8   // signed displacement
	l    uint32 // relative jump target, shown as an absolute address
	long bool   // whether nn should render as 6 hex digits instead of 4
}

// Disasm substitutes the tokens in an opcode's Name template: "nn" (a 16- or
// 24-bit address/immediate), "n" (an 8-bit immediate), "d" (a signed
// displacement, rendered "+$xx"/"-$xx"), and "l" (a relative jump target,
// rendered as its absolute address). When an index prefix is active, "HL"
// in the template is string-replaced with "IX"/"IY".
func Disasm(name string, a disasmArgs, index inst.Index) string {
	out := name
	if strings.Contains(out, "nn") {
		width := 4
		if a.long {
			width = 6
		}
		out = strings.Replace(out, "nn", "$"+pad(strconv.FormatUint(uint64(a.nn), 16), width), 1)
	}
	if strings.Contains(out, "n") {
		out = strings.Replace(out, "n", "$"+pad(strconv.FormatUint(uint64(a.n), 16), 2), 1)
	}
	if strings.Contains(out, "d") {
		sign := "+"
		v := int(a.d)
		if v < 0 {
			sign = "-"
			v = -v
		}
		out = strings.Replace(out, "d", sign+"$"+pad(strconv.FormatUint(uint64(v), 16), 2), 1)
	}
	if strings.Contains(out, "l") {
		out = strings.Replace(out, "l", "$"+pad(strconv.FormatUint(uint64(a.l), 16), 4), 1)
	}
	if index != inst.IndexHL {
		out = strings.ReplaceAll(out, "HL", index.String())
	}
	return out
}

func pad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return strings.ToUpper(s)
}

// sizeSuffix inserts the size-prefix text directly after the mnemonic, in
// front of the name's first space, e.g. "LD.LIL BC,nn".
func sizeSuffix(name string, sz inst.SizePrefix) string {
	if sz == inst.SizeNone {
		return name
	}
	sp := strings.IndexByte(name, ' ')
	suffix := sz.String()
	if sp < 0 {
		return name + suffix
	}
	return name[:sp] + suffix + name[sp:]
}

func formatHex(v uint32, digits int) string {
	return fmt.Sprintf("$%0*X", digits, v)
}
