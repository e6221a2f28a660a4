package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/informaticafecor/OCRProyecto/pkg/config"
	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

func testProcessor(t *testing.T) *Processor {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Processing.CreateBackups = false
	return NewProcessor(cfg, logger.DefaultLogger())
}

func writeCorruptPDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a real pdf"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeSearchablePDF renders a paragraph of text into a single-page PDF,
// enough to clear the embedded-text threshold.
func writeSearchablePDF(t *testing.T, dir, name string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 8, strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10), "", "L", false)

	path := filepath.Join(dir, name)
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
	return path
}

// fakeEngine stands in for the OCR chain; it records the call and writes a
// fixed output file.
type fakeEngine struct {
	processed bool
}

var _ interfaces.OCREngine = (*fakeEngine)(nil)

func (f *fakeEngine) Process(ctx context.Context, inputPath, outputPath string, opts *types.OCROptions, progress interfaces.ProgressFunc) *types.OCRResult {
	f.processed = true
	if err := os.WriteFile(outputPath, []byte("%PDF-1.4 recognized"), 0644); err != nil {
		return &types.OCRResult{InputPath: inputPath, Error: err.Error()}
	}
	return &types.OCRResult{
		Success:      true,
		InputPath:    inputPath,
		OutputPath:   outputPath,
		StrategyUsed: "primary",
	}
}

func (f *fakeEngine) ProcessAsync(ctx context.Context, inputPath, outputPath string, opts *types.OCROptions, progress interfaces.ProgressFunc, completion func(*types.OCRResult)) {
	result := f.Process(ctx, inputPath, outputPath, opts, progress)
	if completion != nil {
		completion(result)
	}
}

func (f *fakeEngine) ValidateBackend() *types.BackendStatus {
	return &types.BackendStatus{Available: true}
}

func (f *fakeEngine) EstimateProcessingTime(path string) (*types.TimeEstimate, error) {
	return &types.TimeEstimate{EstimatedSeconds: 1, Complexity: types.ComplexityLow}, nil
}

func TestProcessFileFailsForMissingInput(t *testing.T) {
	p := testProcessor(t)

	result := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), "", false, nil)
	if result.Success {
		t.Fatal("expected failure for a missing file")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}

	stats := p.Stats()
	if stats.Errors != 1 || stats.FilesProcessed != 0 {
		t.Errorf("stats = %+v, want exactly one error", stats)
	}
}

func TestProcessFileEmitsFailureSentinel(t *testing.T) {
	p := testProcessor(t)

	var last types.ProgressEvent
	p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), "", false,
		func(ev types.ProgressEvent) { last = ev })

	if !last.Failed() {
		t.Errorf("final event = %+v, want the failure sentinel", last)
	}
}

func TestProcessFileCopiesSearchableDocument(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()
	input := writeSearchablePDF(t, dir, "report.pdf")

	result := p.ProcessFile(context.Background(), input, "", false, nil)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.Strategy != types.StrategyCopyOnly {
		t.Errorf("Strategy = %s, want %s", result.Strategy, types.StrategyCopyOnly)
	}

	original, err := os.ReadFile(input)
	if err != nil {
		t.Fatal(err)
	}
	copied, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(original, copied) {
		t.Error("copied output must be byte-identical to the input")
	}
	if result.CompressionRatio != 1.0 {
		t.Errorf("CompressionRatio = %v, want 1.0", result.CompressionRatio)
	}
}

func TestProcessFileForcedRunsOCROnSearchableDocument(t *testing.T) {
	p := testProcessor(t)
	engine := &fakeEngine{}
	p.engine = engine
	input := writeSearchablePDF(t, t.TempDir(), "report.pdf")

	result := p.ProcessFile(context.Background(), input, "", true, nil)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if !engine.processed {
		t.Error("forcing must route the document through the OCR engine")
	}
	if result.Strategy != types.StrategyOCRApplied {
		t.Errorf("Strategy = %s, want %s", result.Strategy, types.StrategyOCRApplied)
	}
}

func TestProcessFileCreatesBackupWhenNotForced(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Processing.CreateBackups = true
	p := NewProcessor(cfg, logger.DefaultLogger())
	dir := t.TempDir()
	input := writeSearchablePDF(t, dir, "report.pdf")

	result := p.ProcessFile(context.Background(), input, "", false, nil)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.BackupPath == "" {
		t.Fatal("expected a backup to be recorded")
	}
	if _, err := os.Stat(result.BackupPath); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestProcessFileSkipsBackupWhenForced(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Processing.CreateBackups = true
	p := NewProcessor(cfg, logger.DefaultLogger())
	p.engine = &fakeEngine{}
	dir := t.TempDir()
	input := writeSearchablePDF(t, dir, "report.pdf")

	result := p.ProcessFile(context.Background(), input, "", true, nil)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.BackupPath != "" {
		t.Errorf("forced run recorded a backup at %q", result.BackupPath)
	}
	if _, err := os.Stat(filepath.Join(dir, constants.BackupDirName)); !os.IsNotExist(err) {
		t.Error("forced runs must not create the backup directory")
	}
}

func TestProcessBatchMirrorsInputOrderAndTolerateFailures(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()

	paths := []string{
		writeCorruptPDF(t, dir, "a.pdf"),
		writeCorruptPDF(t, dir, "b.pdf"),
		writeCorruptPDF(t, dir, "c.pdf"),
	}

	var completionCalled bool
	results := p.ProcessBatch(context.Background(), paths, nil,
		func(results []*types.ProcessingResult, stats types.StatsSnapshot) {
			completionCalled = true
			if len(results) != 3 {
				t.Errorf("completion got %d results", len(results))
			}
		})

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, result := range results {
		if result.InputPath != paths[i] {
			t.Errorf("result %d is for %q, want %q", i, result.InputPath, paths[i])
		}
		if result.Success {
			t.Errorf("result %d: corrupt file should fail", i)
		}
	}
	if !completionCalled {
		t.Error("completion callback never invoked")
	}

	stats := p.Stats()
	if attempted := stats.FilesProcessed + stats.Errors; attempted != len(paths) {
		t.Errorf("processed+errors = %d, want %d", attempted, len(paths))
	}
}

func TestProcessBatchProgressStaysInRange(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()
	paths := []string{
		writeCorruptPDF(t, dir, "a.pdf"),
		writeCorruptPDF(t, dir, "b.pdf"),
	}

	var indexes []int
	p.ProcessBatch(context.Background(), paths, func(ev types.ProgressEvent) {
		if !ev.Failed() && (ev.Percent < 0 || ev.Percent > 100) {
			t.Errorf("combined percent out of range: %v", ev.Percent)
		}
		indexes = append(indexes, ev.FileIndex)
	}, nil)

	if len(indexes) == 0 {
		t.Fatal("no progress events emitted")
	}
	for i := 1; i < len(indexes); i++ {
		if indexes[i] < indexes[i-1] {
			t.Errorf("file index went backwards: %v", indexes)
		}
	}
}

func TestProcessBatchRejectsConcurrentRun(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()
	paths := []string{writeCorruptPDF(t, dir, "a.pdf")}

	// Hold the batch slot to simulate a running batch.
	if !p.batchSem.TryAcquire(1) {
		t.Fatal("could not acquire the batch slot")
	}
	defer p.batchSem.Release(1)

	results := p.ProcessBatch(context.Background(), paths, nil, nil)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Success || !strings.Contains(results[0].Error, "already running") {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestProcessBatchCancelledContextMarksFiles(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()
	paths := []string{
		writeCorruptPDF(t, dir, "a.pdf"),
		writeCorruptPDF(t, dir, "b.pdf"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := p.ProcessBatch(ctx, paths, nil, nil)
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, result := range results {
		if result.Success {
			t.Errorf("result %d succeeded under a cancelled context", i)
		}
		if !strings.Contains(result.Error, "cancelled") {
			t.Errorf("result %d error %q should mention cancellation", i, result.Error)
		}
	}
}

func TestProcessBatchAsyncDeliversResults(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()
	paths := []string{writeCorruptPDF(t, dir, "a.pdf")}

	handle := p.ProcessBatchAsync(context.Background(), paths, nil)

	// Drain progress until the batch finishes.
	for range handle.Progress() {
	}
	<-handle.Done()

	results := handle.Results()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Success {
		t.Error("corrupt file should fail")
	}
}

func TestResetStatsClearsCounters(t *testing.T) {
	p := testProcessor(t)
	p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"), "", false, nil)

	if p.Stats().Errors != 1 {
		t.Fatal("expected one recorded error")
	}
	p.ResetStats()
	if stats := p.Stats(); stats.Errors != 0 || stats.FilesProcessed != 0 {
		t.Errorf("stats survived reset: %+v", stats)
	}
}

func TestAnalyzeFileReportsFailure(t *testing.T) {
	p := testProcessor(t)
	dir := t.TempDir()

	result := p.AnalyzeFile(writeCorruptPDF(t, dir, "broken.pdf"))
	if result.Success {
		t.Fatal("expected analysis failure for a corrupt file")
	}
	if result.TimeEstimate != nil {
		t.Error("failed analysis must not carry a time estimate")
	}
}
