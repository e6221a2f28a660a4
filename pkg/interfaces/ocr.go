package interfaces

import (
	"context"

	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// ProgressFunc receives structured progress events. It may be invoked from a
// worker goroutine and must therefore be safe to call from outside the
// caller's main control flow.
type ProgressFunc func(event types.ProgressEvent)

// OCREngine produces a text-searchable version of one document, trying
// progressively simpler strategies until one succeeds or all fail.
type OCREngine interface {
	// Process runs the fallback chain on a single document. A nil opts uses
	// the engine defaults. Failures are reported in the result value, never
	// as a panic.
	Process(ctx context.Context, inputPath, outputPath string, opts *types.OCROptions, progress ProgressFunc) *types.OCRResult

	// ProcessAsync runs Process in a background goroutine and invokes
	// completion with the result. It does not block the caller.
	ProcessAsync(ctx context.Context, inputPath, outputPath string, opts *types.OCROptions, progress ProgressFunc, completion func(*types.OCRResult))

	// ValidateBackend probes the external recognition backend.
	ValidateBackend() *types.BackendStatus

	// EstimateProcessingTime maps file size to an advisory duration bucket.
	EstimateProcessingTime(path string) (*types.TimeEstimate, error)
}

// OCRStrategy is one tier of the fallback chain. The engine walks an ordered
// list of strategies, stopping at the first success and accumulating failure
// reasons for the final aggregated error.
type OCRStrategy interface {
	// Name identifies the strategy in logs and aggregated errors.
	Name() string

	// Attempt tries to produce outputPath from inputPath. A nil return means
	// outputPath exists and is the searchable result.
	Attempt(ctx context.Context, inputPath, outputPath string, opts types.OCROptions, progress ProgressFunc) error
}
