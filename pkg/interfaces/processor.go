package interfaces

import (
	"context"

	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// BatchCompletionFunc receives the full result list and a statistics snapshot
// when a batch finishes.
type BatchCompletionFunc func(results []*types.ProcessingResult, stats types.StatsSnapshot)

// BatchProcessor decides a strategy per file, executes batches sequentially,
// aggregates statistics and reports combined progress. One batch must finish
// before the next starts on the same instance.
type BatchProcessor interface {
	// AnalyzeFile analyzes a PDF without processing it, attaching an
	// advisory time estimate.
	AnalyzeFile(path string) *types.AnalysisResult

	// ProcessFile processes a single file. An empty outputPath derives a
	// collision-free output name next to the input or in the configured
	// output directory.
	ProcessFile(ctx context.Context, inputPath, outputPath string, forceOCR bool, progress ProgressFunc) *types.ProcessingResult

	// ProcessBatch processes paths in input order; the result slice mirrors
	// that order. One file's failure does not abort the batch.
	ProcessBatch(ctx context.Context, paths []string, progress ProgressFunc, completion BatchCompletionFunc) []*types.ProcessingResult

	// Stats returns a snapshot of the running counters.
	Stats() types.StatsSnapshot

	// ResetStats clears the counters between batch runs.
	ResetStats()
}
