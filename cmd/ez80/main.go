// Command ez80 is the CLI front end for the eZ80/Z80/8080 interpreter:
// run a binary against the sample agon-style host, disassemble a binary
// image, or drive the concurrent conformance-test harness.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomm/go-ez80/internal/agon"
	"github.com/tomm/go-ez80/internal/conformance"
	"github.com/tomm/go-ez80/pkg/cpu"
	"github.com/tomm/go-ez80/pkg/result"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ez80",
		Short: "eZ80/Z80/8080 interpreter — run, disassemble, or conformance-test a binary",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDisasmCmd())
	rootCmd.AddCommand(newConformanceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseDialect(s string) (cpu.Dialect, error) {
	switch strings.ToLower(s) {
	case "", "ez80":
		return cpu.DialectEZ80, nil
	case "z80":
		return cpu.DialectZ80, nil
	case "8080":
		return cpu.Dialect8080, nil
	default:
		return cpu.DialectEZ80, fmt.Errorf("unknown dialect %q (want ez80, z80, or 8080)", s)
	}
}

func newRunCmd() *cobra.Command {
	var maxInstructions uint64

	cmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Execute a ROM image against the sample agon-style host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading ROM: %w", err)
			}

			m := agon.New(rom, 256)
			c := cpu.NewCpu(cpu.DialectEZ80, m)

			go func() {
				w := bufio.NewWriter(os.Stdout)
				defer w.Flush()
				for b := range m.TX() {
					w.WriteByte(b)
					if b == '\n' {
						w.Flush()
					}
				}
			}()

			if maxInstructions == 0 {
				agon.Run(c, m)
			} else {
				agon.RunN(c, m, maxInstructions)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&maxInstructions, "max-instructions", 0, "stop after N executed instructions (0 = run forever)")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var dialectStr string
	var base uint32
	var length int

	cmd := &cobra.Command{
		Use:   "disasm [binary]",
		Short: "Disassemble a raw binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := parseDialect(dialectStr)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading binary: %w", err)
			}
			if length <= 0 || length > len(data) {
				length = len(data)
			}

			sys := cpu.NewPlainMachine()
			copy(sys.Mem[base:], data[:length])

			reg := cpu.NewRegisters(dialect)
			var dec *cpu.Decoder
			switch dialect {
			case cpu.DialectZ80:
				dec = cpu.NewDecoderZ80()
			case cpu.Dialect8080:
				dec = cpu.NewDecoder8080()
			default:
				dec = cpu.NewDecoderEZ80()
			}

			pc := base
			end := base + uint32(length)
			for pc < end {
				text, n := cpu.DisassembleOne(pc, reg, sys, dec)
				fmt.Printf("%06X  %s\n", pc, text)
				if n == 0 {
					n = 1
				}
				pc += n
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dialectStr, "dialect", "ez80", "instruction set: ez80, z80, or 8080")
	cmd.Flags().Uint32Var(&base, "base", 0, "load/disassembly origin address")
	cmd.Flags().IntVar(&length, "length", 0, "bytes to disassemble (0 = whole file)")
	return cmd
}

func newConformanceCmd() *cobra.Command {
	var dialectStr string
	var workers int
	var maxInstructions uint64
	var checkpointPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "conformance [dir]",
		Short: "Run every .com conformance image in dir concurrently and report pass/fail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := parseDialect(dialectStr)
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(args[0])
			if err != nil {
				return fmt.Errorf("reading conformance directory: %w", err)
			}

			var images []conformance.Image
			for _, e := range entries {
				if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".com") {
					continue
				}
				path := filepath.Join(args[0], e.Name())
				code, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				images = append(images, conformance.Image{Name: e.Name(), Code: code})
			}
			if len(images) == 0 {
				return fmt.Errorf("no .com images found in %s", args[0])
			}

			skip := map[string]bool{}
			var ckpt *result.Checkpoint
			if checkpointPath != "" {
				if loaded, err := result.LoadCheckpoint(checkpointPath); err == nil {
					ckpt = loaded
					skip = ckpt.Completed
					fmt.Printf("Resuming: %d images already completed\n", len(ckpt.Results))
				}
			}

			wp := conformance.NewWorkerPool(workers, dialect, maxInstructions)
			wp.Run(images, skip, verbose)

			results := wp.Results.Results()
			if ckpt != nil {
				results = append(ckpt.Results, results...)
			}

			passed := 0
			for _, r := range results {
				status := "FAIL"
				if r.Pass {
					status = "PASS"
					passed++
				}
				if r.Timeout {
					status = "TIMEOUT"
				}
				fmt.Printf("%-24s %s\n", r.Name, status)
			}
			fmt.Printf("\n%d/%d passed\n", passed, len(results))

			if checkpointPath != "" {
				completed := map[string]bool{}
				for _, r := range results {
					completed[r.Name] = true
				}
				newCkpt := &result.Checkpoint{Results: results, Completed: completed}
				if err := result.SaveCheckpoint(checkpointPath, newCkpt); err != nil {
					return fmt.Errorf("saving checkpoint: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dialectStr, "dialect", "ez80", "instruction set: ez80, z80, or 8080")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of workers (0 = NumCPU)")
	cmd.Flags().Uint64Var(&maxInstructions, "max-instructions", 50_000_000, "per-image instruction budget before declaring a timeout")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "checkpoint file for resuming a long conformance run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each image's result as it completes")
	return cmd
}
