package conformance

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomm/go-ez80/pkg/cpu"
	"github.com/tomm/go-ez80/pkg/result"
)

// Image is one conformance test binary to run.
type Image struct {
	Name string
	Code []byte
}

// WorkerPool runs a batch of conformance Images concurrently, one goroutine
// and one independent Cpu/PlainMachine pair per in-flight image - adapted
// directly from the teacher's own peephole-search WorkerPool (goroutines
// draining a task channel, atomic progress counters, a ticking status
// reporter), repointed at conformance images instead of instruction-sequence
// targets.
type WorkerPool struct {
	NumWorkers      int
	Dialect         cpu.Dialect
	MaxInstructions uint64
	Results         *result.Table

	completed atomic.Int64
	passed    atomic.Int64
}

// NewWorkerPool creates a pool with the given number of workers; numWorkers
// <= 0 defaults to runtime.NumCPU(), matching the teacher's own default.
func NewWorkerPool(numWorkers int, dialect cpu.Dialect, maxInstructions uint64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		NumWorkers:      numWorkers,
		Dialect:         dialect,
		MaxInstructions: maxInstructions,
		Results:         result.NewTable(),
	}
}

// Stats returns how many images have completed and how many passed so far.
func (wp *WorkerPool) Stats() (completed, passed int64) {
	return wp.completed.Load(), wp.passed.Load()
}

// Run distributes images across wp.NumWorkers goroutines, skipping any
// image whose name is already present in skip (the resume set loaded from a
// checkpoint), and returns once every image has been run. A status line is
// printed every 5 seconds while images are still in flight, the same
// ticker-driven progress-reporter pattern the teacher's worker pool uses
// for search progress.
func (wp *WorkerPool) Run(images []Image, skip map[string]bool, verbose bool) {
	pending := make([]Image, 0, len(images))
	for _, img := range images {
		if !skip[img.Name] {
			pending = append(pending, img)
		}
	}
	total := int64(len(pending))
	if total == 0 {
		return
	}

	ch := make(chan Image, len(pending))
	for _, img := range pending {
		ch <- img
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				comp := wp.completed.Load()
				passed := wp.passed.Load()
				elapsed := time.Since(start)
				fmt.Printf("  [%s] %d/%d images (%d passed)\n", elapsed.Round(time.Second), comp, total, passed)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for img := range ch {
				r := RunImage(wp.Dialect, img.Name, img.Code, wp.MaxInstructions)
				wp.Results.Add(r)
				wp.completed.Add(1)
				if r.Pass {
					wp.passed.Add(1)
				}
				if verbose {
					status := "FAIL"
					if r.Pass {
						status = "PASS"
					}
					if r.Timeout {
						status = "TIMEOUT"
					}
					fmt.Printf("  %s: %s (%d instructions)\n", status, img.Name, r.InstructionCount)
				}
			}
		}()
	}
	wg.Wait()
	close(done)

	elapsed := time.Since(start)
	fmt.Printf("  [%s] %d/%d images (%d passed) DONE\n", elapsed.Round(time.Second), total, total, wp.passed.Load())
}
