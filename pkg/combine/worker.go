// File: pkg/combine/worker.go
package combine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// processConcurrently assigns chunk indices up front and runs one worker per
// chunk. Each worker is the only writer of its chunk and keeps walk order, so
// the output matches the sequential path.
func (r *Run) processConcurrently(ctx context.Context, fsys afero.Fs, files []FileEntry, sink Sink, res *Result, logger *zap.Logger) error {
	chunks := Allocate(files, r.Chunks)
	opts := r.readOptions()

	var processed, skipped, done atomic.Int64
	total := int64(len(files))

	logger.Debug("Initializing chunk workers", zap.Int("chunks", len(chunks)), zap.Int("workers", r.workers()))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	for c, entries := range chunks {
		workerLogger := logger.With(zap.Int("chunk", c+1))
		g.Go(func() error {
			for _, f := range entries {
				if err := gctx.Err(); err != nil {
					return err
				}

				sec, err := processFile(fsys, f, opts, workerLogger)
				if err != nil {
					workerLogger.Warn("Skipping file", zap.String("file", f.RelPath), zap.Error(err))
					skipped.Add(1)
				} else {
					if err := sink.AppendSection(c, sec.RelPath, sec.Body); err != nil {
						return fmt.Errorf("failed to append %s to chunk %d: %w", f.RelPath, c+1, err)
					}
					processed.Add(1)
					res.ChunkCounts[c]++
				}

				if n := done.Add(1); n%progressEvery == 0 {
					logger.Info("Progress", zap.Int64("processed", n), zap.Int64("total", total))
				}
			}
			workerLogger.Debug("Chunk worker finished", zap.Int("files", len(entries)))
			return nil
		})
	}

	err := g.Wait()
	res.Processed = int(processed.Load())
	res.Skipped = int(skipped.Load())
	return err
}
