package ocr

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// primaryStrategy runs a full ocrmypdf invocation with every configured
// enhancement enabled. It is the first and preferred link in the chain.
type primaryStrategy struct {
	binPath string
	logger  *logger.Logger
}

func newPrimaryStrategy(binPath string, log *logger.Logger) *primaryStrategy {
	return &primaryStrategy{binPath: binPath, logger: log}
}

func (s *primaryStrategy) Name() string { return "primary" }

func (s *primaryStrategy) Attempt(ctx context.Context, inputPath, outputPath string, opts types.OCROptions, progress interfaces.ProgressFunc) error {
	args := buildOCRArgs(opts)
	args = append(args, inputPath, outputPath)

	s.logger.Debug("Running %s %v", s.binPath, args)
	if progress != nil {
		progress(types.ProgressEvent{Percent: 30, Message: fmt.Sprintf("Recognizing text (%s)...", opts.Language)})
	}

	cmd := exec.CommandContext(ctx, s.binPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return backendError(err, output)
	}
	return nil
}

// buildOCRArgs translates OCROptions into an ocrmypdf argument list. Text
// handling is mutually exclusive: --force-ocr rasterizes everything,
// --skip-text leaves pages with embedded text untouched.
func buildOCRArgs(opts types.OCROptions) []string {
	args := []string{
		"--language", opts.Language,
		"--output-type", "pdf",
		"--optimize", strconv.Itoa(opts.Optimize),
		"--jpeg-quality", strconv.Itoa(opts.JPEGQuality),
		"--png-quality", strconv.Itoa(opts.PNGQuality),
		"--max-image-mpixels", strconv.Itoa(opts.MaxImageMPixels),
		"--skip-big", strconv.FormatFloat(opts.SkipBigMB, 'f', -1, 64),
	}
	if opts.Clean {
		args = append(args, "--clean")
	}
	if opts.Deskew {
		args = append(args, "--deskew")
	}
	if opts.RemoveBackground {
		args = append(args, "--remove-background")
	}
	if opts.RotatePages {
		args = append(args, "--rotate-pages")
	}
	if opts.InvalidateDigitalSignatures {
		args = append(args, "--invalidate-digital-signatures")
	}
	if opts.ForceOCR {
		args = append(args, "--force-ocr")
	} else if opts.SkipText() {
		args = append(args, "--skip-text")
	}
	return args
}
