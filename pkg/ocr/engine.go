package ocr

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/informaticafecor/OCRProyecto/pkg/config"
	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

// Engine walks an ordered fallback chain over a single document. Strategies
// run in declared order; the first success wins and failure reasons
// accumulate into one aggregated error when every tier fails.
type Engine struct {
	cfg        *config.Config
	logger     *logger.Logger
	strategies []interfaces.OCRStrategy
}

var _ interfaces.OCREngine = (*Engine)(nil)

func New(cfg *config.Config, log *logger.Logger) *Engine {
	e := &Engine{cfg: cfg, logger: log}
	e.strategies = []interfaces.OCRStrategy{
		newPrimaryStrategy(cfg.OCRmyPDFPath, log),
		newPagewiseStrategy(log),
		newMinimalStrategy(cfg.OCRmyPDFPath, log),
	}
	return e
}

// defaultOptions derives per-run options from the persisted configuration.
func (e *Engine) defaultOptions() types.OCROptions {
	opts := types.DefaultOCROptions(e.cfg.OCR.Language)
	opts.Optimize = e.cfg.OCR.OptimizeLevel
	opts.Clean = e.cfg.OCR.CleanImages
	opts.Deskew = e.cfg.OCR.Deskew
	opts.RemoveBackground = e.cfg.OCR.RemoveBackground
	opts.ForceOCR = e.cfg.ForceOCR
	return opts
}

// progressReporter keeps reported percentages non-decreasing. The failure
// sentinel (-1) always passes through.
type progressReporter struct {
	fn   interfaces.ProgressFunc
	last float64
}

func (p *progressReporter) report(percent float64, message string) {
	if p.fn == nil {
		return
	}
	if percent >= 0 {
		if percent < p.last {
			percent = p.last
		}
		p.last = percent
	}
	p.fn(types.ProgressEvent{Percent: percent, Message: message})
}

// observe adapts the reporter to the ProgressFunc signature used by the
// strategy tiers.
func (p *progressReporter) observe(event types.ProgressEvent) {
	p.report(event.Percent, event.Message)
}

func (e *Engine) Process(ctx context.Context, inputPath, outputPath string, opts *types.OCROptions, progress interfaces.ProgressFunc) *types.OCRResult {
	options := e.defaultOptions()
	if opts != nil {
		options = *opts
	}

	result := &types.OCRResult{
		InputPath:    inputPath,
		LanguageUsed: options.Language,
		OptionsUsed:  options,
	}
	reporter := &progressReporter{fn: progress}

	fail := func(err error) *types.OCRResult {
		result.Error = err.Error()
		reporter.report(-1, fmt.Sprintf("Error: %s", result.Error))
		return result
	}

	reporter.report(0, "Validating input...")
	info, err := os.Stat(inputPath)
	if err != nil {
		return fail(utils.NewNotFoundError(fmt.Sprintf("file not found: %s", inputPath), err))
	}
	if !utils.IsPDF(inputPath) {
		return fail(utils.NewValidationError(fmt.Sprintf("not a PDF file: %s", inputPath), nil))
	}
	result.InputSize = info.Size()

	if err := utils.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fail(err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, constants.DefaultOCRTimeout)
		defer cancel()
	}

	tm := utils.NewTempManager(e.logger)
	defer tm.Cleanup()

	reporter.report(5, "Checking document encryption...")
	workInput, err := e.prepareInput(inputPath, tm)
	if err != nil {
		return fail(err)
	}

	for i, strategy := range e.strategies {
		if err := ctx.Err(); err != nil {
			return fail(utils.WrapError(err, utils.ErrorTypeTimeout, "processing cancelled"))
		}

		base := 20 + float64(i)*25
		reporter.report(base, fmt.Sprintf("Applying %s strategy...", strategy.Name()))
		attemptErr := strategy.Attempt(ctx, workInput, outputPath, options, reporter.observe)
		if attemptErr == nil {
			result.StrategyUsed = strategy.Name()
			break
		}

		e.logger.Warn("Strategy %s failed: %v", strategy.Name(), attemptErr)
		result.AttemptedFallbacks = append(result.AttemptedFallbacks,
			fmt.Sprintf("%s: %v", strategy.Name(), attemptErr))

		// Encryption, I/O, validation and permission failures are not
		// strategy-specific; no later tier can recover from them.
		if !utils.IsRetriable(attemptErr) {
			return fail(attemptErr)
		}
	}

	if result.StrategyUsed == "" {
		return fail(utils.NewBackendError(
			fmt.Sprintf("all OCR strategies failed: %s", strings.Join(result.AttemptedFallbacks, "; ")), nil))
	}

	reporter.report(90, "Finalizing output...")
	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return fail(utils.NewIOError("output file missing after processing", err))
	}
	result.OutputPath = outputPath
	result.OutputSize = outInfo.Size()
	result.SizeChange = result.OutputSize - result.InputSize
	if result.InputSize > 0 {
		result.CompressionRatio = roundTo(float64(result.OutputSize)/float64(result.InputSize), 2)
	}
	result.Success = true

	reporter.report(100, "Processing complete")
	return result
}

func (e *Engine) ProcessAsync(ctx context.Context, inputPath, outputPath string, opts *types.OCROptions, progress interfaces.ProgressFunc, completion func(*types.OCRResult)) {
	go func() {
		result := e.Process(ctx, inputPath, outputPath, opts, progress)
		if completion != nil {
			completion(result)
		}
	}()
}

// prepareInput resolves document encryption before the chain runs. Documents
// encrypted with an empty user password are transparently decrypted to a
// managed temp copy; documents requiring a real password are rejected as
// unsupported input.
func (e *Engine) prepareInput(inputPath string, tm *utils.TempManager) (string, error) {
	pdfCtx, err := api.ReadContextFile(inputPath)
	if err != nil {
		if !isEncryptionErr(err) {
			// Not an encryption problem; let the strategies surface it.
			return inputPath, nil
		}
	} else if pdfCtx.Encrypt == nil {
		return inputPath, nil
	}

	tmp, err := tm.CreateTempFile("decrypted_", ".pdf")
	if err != nil {
		return "", err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.DecryptFile(inputPath, tmp, conf); err != nil {
		return "", utils.NewEncryptionError(
			"document is password protected and cannot be processed without the password", err)
	}
	e.logger.Debug("Decrypted empty-password document to %s", tmp)
	return tmp, nil
}

func isEncryptionErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
