package conformance

import (
	"testing"

	"github.com/tomm/go-ez80/pkg/cpu"
)

// assembleCWriteStr builds a tiny CP/M-style image: print msg via BDOS
// C_WRITE_STR (C=9, DE->msg), then jump to 0 to signal completion.
func assembleCWriteStr(msg string) []byte {
	code := []byte{
		0x11, 0x00, 0x01, // LD DE,$0100+offset of string (patched below)
		0x0E, 0x09, // LD C,9
		0xCD, 0x05, 0x00, // CALL 5
		0xC3, 0x00, 0x00, // JP 0
	}
	strOff := len(code)
	code[1] = byte((loadAddr + strOff) & 0xFF)
	code[2] = byte((loadAddr + strOff) >> 8)
	code = append(code, []byte(msg+"$")...)
	return code
}

func TestRunImagePassingMessage(t *testing.T) {
	code := assembleCWriteStr("CPU IS OK")
	r := RunImage(cpu.DialectEZ80, "fake-pass", code, 10000)

	if !r.Pass {
		t.Fatalf("expected Pass, got %+v", r)
	}
	if r.Output != "CPU IS OK" {
		t.Fatalf("Output = %q, want %q", r.Output, "CPU IS OK")
	}
	if r.Timeout {
		t.Fatalf("did not expect timeout")
	}
}

func TestRunImageFailingMessage(t *testing.T) {
	code := assembleCWriteStr("CPU ERROR")
	r := RunImage(cpu.DialectEZ80, "fake-fail", code, 10000)

	if r.Pass {
		t.Fatalf("expected failure, got %+v", r)
	}
	if r.Output != "CPU ERROR" {
		t.Fatalf("Output = %q, want %q", r.Output, "CPU ERROR")
	}
}

func TestRunImageTimeout(t *testing.T) {
	code := []byte{0xC3, 0x00, 0x01} // JP $0100 (infinite self-jump)
	r := RunImage(cpu.DialectEZ80, "fake-spin", code, 500)

	if !r.Timeout {
		t.Fatalf("expected timeout, got %+v", r)
	}
	if r.Pass {
		t.Fatalf("a timed-out image must not pass")
	}
}

func TestWorkerPoolRunsAllImages(t *testing.T) {
	images := []Image{
		{Name: "a", Code: assembleCWriteStr("A OK")},
		{Name: "b", Code: assembleCWriteStr("B OK")},
		{Name: "c", Code: assembleCWriteStr("C FAILED")},
	}
	wp := NewWorkerPool(2, cpu.DialectEZ80, 10000)
	wp.Run(images, nil, false)

	if got := wp.Results.Len(); got != 3 {
		t.Fatalf("Results.Len() = %d, want 3", got)
	}
	if got := wp.Results.Passed(); got != 2 {
		t.Fatalf("Results.Passed() = %d, want 2", got)
	}
}
