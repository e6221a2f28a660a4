package ocr

import (
	"context"
	"os/exec"
	"strconv"

	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// minimalStrategy is the last-resort link: ocrmypdf with every enhancement
// disabled, no optimization, and forced recognition. It trades quality and
// file size for the best chance of producing any searchable output.
type minimalStrategy struct {
	binPath string
	logger  *logger.Logger
}

func newMinimalStrategy(binPath string, log *logger.Logger) *minimalStrategy {
	return &minimalStrategy{binPath: binPath, logger: log}
}

func (s *minimalStrategy) Name() string { return "minimal" }

func (s *minimalStrategy) Attempt(ctx context.Context, inputPath, outputPath string, opts types.OCROptions, progress interfaces.ProgressFunc) error {
	args := []string{
		"--language", opts.Language,
		"--output-type", "pdf",
		"--optimize", "0",
		"--max-image-mpixels", strconv.Itoa(opts.MaxImageMPixels),
		"--force-ocr",
		"--invalidate-digital-signatures",
		inputPath, outputPath,
	}

	s.logger.Debug("Running %s with minimal settings", s.binPath)
	if progress != nil {
		progress(types.ProgressEvent{Percent: 75, Message: "Retrying with minimal settings..."})
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
