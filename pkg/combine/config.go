package combine

import (
	"fmt"
	"runtime"

	"repodoc/pkg/filter"
)

// Run holds the settings of one conversion. It is created per run and must
// not be reused once executed.
type Run struct {
	Root          string            // Materialized local root to walk.
	Chunks        int               // Number of output chunks, at least 1.
	Patterns      filter.PatternSet // Allow/deny rules.
	Tree          TreeOptions       // Structure preamble rendering.
	MaxFileSizeKB int               // Files larger than this are skipped; 0 disables the limit.
	SkipBinary    bool              // Skip files that look binary.
	Parallel      bool              // Process chunks concurrently.
	MaxWorkers    int               // Concurrent chunk workers; <= 0 means runtime.NumCPU().

	stage Stage
}

// Stage reports the lifecycle stage reached by the run.
func (r *Run) Stage() Stage { return r.stage }

func (r *Run) validate(sink Sink) error {
	if r.Root == "" {
		return fmt.Errorf("run root is empty")
	}
	if r.Chunks < 1 {
		return fmt.Errorf("chunk count must be at least 1, got %d", r.Chunks)
	}
	if sink.Chunks() != r.Chunks {
		return fmt.Errorf("sink has %d chunks, run expects %d", sink.Chunks(), r.Chunks)
	}
	return nil
}

func (r *Run) workers() int {
	if r.MaxWorkers > 0 {
		return r.MaxWorkers
	}
	return runtime.NumCPU()
}
