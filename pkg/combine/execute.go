// File: pkg/combine/execute.go
package combine

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrRunReused is returned when Execute is called on a run that already started.
var ErrRunReused = errors.New("run already executed")

// Execute performs the conversion: it renders the structure preamble into
// chunk 0, walks and filters the tree, appends one section per accepted file
// to chunk i mod n, and finalizes every chunk exactly once.
//
// Per-file read failures are logged and skipped. Errors returned from sink
// or from walking the root abort the run without finalizing.
//
// Chunks are finalized in order. If finalizing chunk k fails, the artifacts
// of chunks 0..k-1 are already written and stay on disk; the returned Result
// lists them in Artifacts alongside the error.
func (r *Run) Execute(ctx context.Context, fsys afero.Fs, sink Sink, logger *zap.Logger) (Result, error) {
	logger = orNop(logger)

	if r.stage != StageInit {
		return Result{}, ErrRunReused
	}
	if err := r.validate(sink); err != nil {
		return Result{}, err
	}

	logger.Info("Mapping folder structure", zap.String("root", r.Root))
	tree, err := RenderTree(fsys, r.Root, r.Tree, logger)
	if err != nil {
		return Result{}, fmt.Errorf("failed to map folder structure: %w", err)
	}
	if err := sink.AppendPreamble(0, StructureTitle, tree); err != nil {
		return Result{}, fmt.Errorf("failed to write structure preamble: %w", err)
	}
	r.stage = StageStructureEmitted

	files, err := Collect(fsys, r.Root, r.Patterns, logger)
	if err != nil {
		return Result{}, fmt.Errorf("failed to collect files: %w", err)
	}

	r.stage = StageProcessing
	res := Result{Accepted: len(files), ChunkCounts: make([]int, r.Chunks)}
	if r.Parallel && r.Chunks > 1 {
		err = r.processConcurrently(ctx, fsys, files, sink, &res, logger)
	} else {
		err = r.processSequentially(ctx, fsys, files, sink, &res, logger)
	}
	if err != nil {
		return res, err
	}

	for c := 0; c < r.Chunks; c++ {
		artifact, err := sink.Finalize(c)
		if err != nil {
			return res, fmt.Errorf("failed to finalize chunk %d: %w", c+1, err)
		}
		logger.Info("Output chunk written",
			zap.Int("chunk", c+1),
			zap.Int("sections", res.ChunkCounts[c]),
			zap.String("artifact", artifact))
		res.Artifacts = append(res.Artifacts, artifact)
	}
	r.stage = StageFinalized
	return res, nil
}

func (r *Run) processSequentially(ctx context.Context, fsys afero.Fs, files []FileEntry, sink Sink, res *Result, logger *zap.Logger) error {
	opts := r.readOptions()
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		c := ChunkIndex(i, r.Chunks)
		sec, err := processFile(fsys, f, opts, logger)
		if err != nil {
			logger.Warn("Skipping file", zap.String("file", f.RelPath), zap.Error(err))
			res.Skipped++
		} else {
			if err := sink.AppendSection(c, sec.RelPath, sec.Body); err != nil {
				return fmt.Errorf("failed to append %s to chunk %d: %w", f.RelPath, c+1, err)
			}
			res.Processed++
			res.ChunkCounts[c]++
		}

		if (i+1)%progressEvery == 0 {
			logger.Info("Progress", zap.Int("processed", i+1), zap.Int("total", len(files)))
		}
	}
	return nil
}
