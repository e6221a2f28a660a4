package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/informaticafecor/OCRProyecto/pkg/analyzer"
	"github.com/informaticafecor/OCRProyecto/pkg/config"
	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/ocr"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

// Processor decides a strategy per file and runs batches sequentially.
// A weighted semaphore of one enforces that a single batch runs per
// instance; statistics accumulate across batches until ResetStats.
type Processor struct {
	cfg      *config.Config
	logger   *logger.Logger
	analyzer interfaces.DocumentAnalyzer
	engine   interfaces.OCREngine
	stats    *BatchStatistics
	batchSem *semaphore.Weighted
}

var _ interfaces.BatchProcessor = (*Processor)(nil)

func NewProcessor(cfg *config.Config, log *logger.Logger) *Processor {
	minLen := cfg.MinTextLength
	if minLen <= 0 {
		minLen = constants.DefaultMinTextLength
	}
	return &Processor{
		cfg:      cfg,
		logger:   log,
		analyzer: analyzer.New(minLen, log),
		engine:   ocr.New(cfg, log),
		stats:    NewBatchStatistics(),
		batchSem: semaphore.NewWeighted(1),
	}
}

// Engine exposes the underlying OCR engine for backend validation and
// time estimates.
func (p *Processor) Engine() interfaces.OCREngine { return p.engine }

func (p *Processor) Stats() types.StatsSnapshot { return p.stats.Snapshot() }

func (p *Processor) ResetStats() { p.stats.Reset() }

func (p *Processor) AnalyzeFile(path string) *types.AnalysisResult {
	result := p.analyzer.Analyze(path)
	if result.Success {
		if estimate, err := p.engine.EstimateProcessingTime(path); err == nil {
			result.TimeEstimate = estimate
		}
	}
	return result
}

func (p *Processor) ProcessFile(ctx context.Context, inputPath, outputPath string, forceOCR bool, progress interfaces.ProgressFunc) *types.ProcessingResult {
	return p.processFile(ctx, inputPath, outputPath, forceOCR, -1, progress)
}

// processFile runs the full per-file pipeline: validate, analyze, decide,
// back up, then copy or recognize. Statistics are updated exactly once per
// call, on the way out.
func (p *Processor) processFile(ctx context.Context, inputPath, outputPath string, forceOCR bool, fileIndex int, progress interfaces.ProgressFunc) *types.ProcessingResult {
	result := &types.ProcessingResult{
		InputPath: inputPath,
		StartedAt: time.Now(),
	}

	finish := func() {
		result.FinishedAt = time.Now()
		result.Duration = result.FinishedAt.Sub(result.StartedAt)
		if result.Success {
			p.stats.RecordSuccess(result.Strategy, result.InputSize, result.Duration)
		} else {
			p.stats.RecordError(result.Duration)
		}
	}

	report := func(percent float64, message string) {
		if progress != nil {
			progress(types.ProgressEvent{FileIndex: fileIndex, Percent: percent, Message: message})
		}
	}

	fail := func(err error) *types.ProcessingResult {
		result.Error = err.Error()
		p.logger.Error("Processing failed for %s: %v", inputPath, err)
		report(-1, fmt.Sprintf("Error: %s", result.Error))
		finish()
		return result
	}

	report(0, fmt.Sprintf("Validating %s...", filepath.Base(inputPath)))
	if valid, reason := p.analyzer.Validate(inputPath); !valid {
		return fail(utils.NewValidationError(reason, nil))
	}

	if info, err := os.Stat(inputPath); err == nil {
		result.InputSize = info.Size()
		if max := p.cfg.MaxFileSizeBytes(); max > 0 && info.Size() > max {
			return fail(utils.NewValidationError(
				fmt.Sprintf("file exceeds the configured size limit (%s)", utils.FormatFileSize(max)), nil))
		}
	}

	report(5, "Analyzing document...")
	analysis := p.analyzer.Analyze(inputPath)
	result.Analysis = analysis
	if !analysis.Success {
		return fail(utils.NewValidationError(analysis.Error, nil))
	}

	if outputPath == "" {
		outDir := p.cfg.Processing.OutputDirectory
		if outDir == "" {
			outDir = filepath.Dir(inputPath)
		}
		outputPath = utils.GenerateOutputFilename(inputPath, outDir, constants.ProcessedSuffix)
	}

	if p.cfg.Processing.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			p.logger.Info("Output already exists, skipping: %s", outputPath)
			result.Success = true
			result.OutputPath = outputPath
			result.Strategy = types.StrategyCopyOnly
			report(100, "Output already exists, skipped")
			finish()
			return result
		}
	}

	force := forceOCR || p.cfg.ForceOCR

	// Forced reprocessing is a deliberate overwrite request; no backup then.
	if p.cfg.Processing.CreateBackups && !force {
		backupDir := filepath.Join(filepath.Dir(inputPath), constants.BackupDirName)
		backupPath, err := utils.CreateBackup(inputPath, backupDir)
		if err != nil {
			return fail(utils.WrapError(err, utils.ErrorTypeIO, "cannot create backup"))
		}
		result.BackupPath = backupPath
	}

	if !analysis.ProcessingNeeded(force) {
		report(10, "Document already searchable, copying...")
		if err := utils.CopyFile(inputPath, outputPath); err != nil {
			return fail(err)
		}
		result.Success = true
		result.OutputPath = outputPath
		result.Strategy = types.StrategyCopyOnly
		result.OutputSize = result.InputSize
		result.CompressionRatio = 1.0
		report(100, "Copied without OCR")
		finish()
		return result
	}

	opts := p.ocrOptions(force)
	ocrResult := p.engine.Process(ctx, inputPath, outputPath, &opts, func(event types.ProgressEvent) {
		if event.Failed() {
			return // the failure sentinel is emitted once, by fail
		}
		// Engine progress spans the remaining 10-100 band of this file.
		report(10+event.Percent*0.9, event.Message)
	})
	if !ocrResult.Success {
		return fail(utils.NewBackendError(ocrResult.Error, nil))
	}

	result.Success = true
	result.OutputPath = ocrResult.OutputPath
	result.Strategy = types.StrategyOCRApplied
	result.OutputSize = ocrResult.OutputSize
	result.SizeChange = ocrResult.SizeChange
	result.CompressionRatio = ocrResult.CompressionRatio
	result.LanguageUsed = ocrResult.LanguageUsed
	report(100, "OCR complete")
	finish()
	return result
}

// ocrOptions derives engine options from configuration plus the per-call
// force flag.
func (p *Processor) ocrOptions(forceOCR bool) types.OCROptions {
	opts := types.DefaultOCROptions(p.cfg.OCR.Language)
	opts.Optimize = p.cfg.OCR.OptimizeLevel
	opts.Clean = p.cfg.OCR.CleanImages
	opts.Deskew = p.cfg.OCR.Deskew
	opts.RemoveBackground = p.cfg.OCR.RemoveBackground
	opts.ForceOCR = forceOCR
	return opts
}

func (p *Processor) ProcessBatch(ctx context.Context, paths []string, progress interfaces.ProgressFunc, completion interfaces.BatchCompletionFunc) []*types.ProcessingResult {
	results := make([]*types.ProcessingResult, 0, len(paths))

	if !p.batchSem.TryAcquire(1) {
		for _, path := range paths {
			results = append(results, &types.ProcessingResult{
				InputPath: path,
				Error:     "another batch is already running on this processor",
			})
		}
		return results
	}
	defer p.batchSem.Release(1)

	p.stats.Begin()
	p.logger.Progress("📦", "Starting batch of %d files", len(paths))

	fileWeight := 0.0
	if len(paths) > 0 {
		fileWeight = 100.0 / float64(len(paths))
	}

	cancelled := false
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			cancelled = true
		}
		if cancelled {
			results = append(results, &types.ProcessingResult{
				InputPath: path,
				Error:     "batch cancelled before this file was processed",
			})
			continue
		}

		index := i
		combined := func(event types.ProgressEvent) {
			if progress == nil {
				return
			}
			if event.Failed() {
				progress(types.ProgressEvent{FileIndex: index, Percent: -1, Message: event.Message})
				return
			}
			overall := float64(index)*fileWeight + event.Percent*fileWeight/100
			progress(types.ProgressEvent{FileIndex: index, Percent: overall, Message: event.Message})
		}

		results = append(results, p.processFile(ctx, path, "", false, index, combined))
	}

	p.stats.End()
	if progress != nil && !cancelled {
		progress(types.ProgressEvent{FileIndex: len(paths) - 1, Percent: 100, Message: "Batch complete"})
	}

	snapshot := p.stats.Snapshot()
	p.logger.Progress("✅", "Batch finished: %d ok, %d errors (%.1f%% success)",
		snapshot.FilesProcessed, snapshot.Errors, snapshot.SuccessRate)
	if completion != nil {
		completion(results, snapshot)
	}
	return results
}

// BatchHandle tracks an asynchronous batch. Results is valid once Done is
// closed; Cancel requests a soft stop between files.
type BatchHandle struct {
	events  chan types.ProgressEvent
	done    chan struct{}
	cancel  context.CancelFunc
	results []*types.ProcessingResult
}

// Progress returns the event stream. The channel closes when the batch ends;
// slow consumers may miss intermediate events but never the terminal state.
func (h *BatchHandle) Progress() <-chan types.ProgressEvent { return h.events }

// Done closes when the batch has finished or was cancelled.
func (h *BatchHandle) Done() <-chan struct{} { return h.done }

// Results returns the per-file outcomes. Call after Done closes.
func (h *BatchHandle) Results() []*types.ProcessingResult {
	<-h.done
	return h.results
}

// Cancel requests a soft stop. The file currently being processed finishes
// or aborts via its context; remaining files are marked cancelled.
func (h *BatchHandle) Cancel() { h.cancel() }

// ProcessBatchAsync runs ProcessBatch in a background goroutine and returns
// a cancellable handle.
func (p *Processor) ProcessBatchAsync(ctx context.Context, paths []string, completion interfaces.BatchCompletionFunc) *BatchHandle {
	batchCtx, cancel := context.WithCancel(ctx)
	handle := &BatchHandle{
		events: make(chan types.ProgressEvent, 64),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(handle.done)
		defer close(handle.events)
		defer cancel()

		handle.results = p.ProcessBatch(batchCtx, paths, func(event types.ProgressEvent) {
			select {
			case handle.events <- event:
			default:
			}
		}, completion)
	}()

	return handle
}
