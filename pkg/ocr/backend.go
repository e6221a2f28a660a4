package ocr

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/otiai10/gosseract/v2"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

// ocrmypdf exit codes, per its documented contract.
const (
	exitBadArgs          = 1
	exitInputFile        = 2
	exitEncryptedPDF     = 3
	exitInvalidOutputPDF = 4
	exitFileAccessError  = 5
	exitAlreadyDoneOCR   = 6
	exitOtherError       = 7
	exitNoImages         = 8
	exitOutOfMemory      = 15
)

// interpretExitCode maps an ocrmypdf exit code to a descriptive message
// distinguishing the documented failure classes.
func interpretExitCode(code int) string {
	switch code {
	case exitBadArgs:
		return "invalid arguments passed to the OCR backend"
	case exitInputFile:
		return "input PDF is invalid or corrupt"
	case exitEncryptedPDF:
		return "input PDF is password protected"
	case exitInvalidOutputPDF:
		return "OCR backend produced an invalid output (possible language problem)"
	case exitFileAccessError:
		return "output file could not be written"
	case exitAlreadyDoneOCR:
		return "PDF already has OCR applied"
	case exitOtherError:
		return "input PDF not suitable for processing"
	case exitNoImages:
		return "PDF contains no raster content to recognize"
	case exitOutOfMemory:
		return "OCR backend ran out of memory or hit a runtime error"
	default:
		return fmt.Sprintf("unknown OCR backend error (exit code %d)", code)
	}
}

// backendError converts a failed ocrmypdf invocation into a typed error.
// Exit code 3 surfaces as an encryption error so callers can report it as
// unsupported input rather than a backend fault.
func backendError(err error, output []byte) error {
	if exitErr, ok := err.(*exec.ExitError); ok {
		msg := interpretExitCode(exitErr.ExitCode())
		if exitErr.ExitCode() == exitEncryptedPDF {
			return utils.NewEncryptionError(msg, err)
		}
		return utils.NewBackendError(msg, fmt.Errorf("%w: %s", err, firstLine(output)))
	}
	return utils.NewBackendError("OCR backend invocation failed", err)
}

// firstLine trims command output to its first line for error context.
func firstLine(output []byte) string {
	for i, b := range output {
		if b == '\n' {
			return string(output[:i])
		}
	}
	return string(output)
}

// ValidateBackend probes the external recognition backend: ocrmypdf on PATH
// for the primary chain and the Tesseract training data for the configured
// language.
func (e *Engine) ValidateBackend() *types.BackendStatus {
	status := &types.BackendStatus{Language: e.cfg.OCR.Language}

	if _, err := exec.LookPath(e.cfg.OCRmyPDFPath); err == nil {
		status.OCRmyPDFAvailable = true
	}
	if _, err := exec.LookPath(e.cfg.TesseractPath); err == nil {
		status.TesseractAvailable = true
	}

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		status.Error = fmt.Sprintf("cannot list Tesseract languages: %v", err)
	} else {
		status.Languages = langs
		for _, l := range langs {
			if l == e.cfg.OCR.Language {
				status.LanguageAvailable = true
				break
			}
		}
	}

	status.Available = status.OCRmyPDFAvailable || status.TesseractAvailable
	return status
}

// EstimateProcessingTime maps file size to an advisory duration bucket at
// roughly 30 seconds per MB, scaled up for larger files. Never used for
// scheduling decisions.
func (e *Engine) EstimateProcessingTime(path string) (*types.TimeEstimate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("file not found: %s", path), err)
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	estimate := &types.TimeEstimate{FileSizeMB: roundTo(sizeMB, 2)}

	switch {
	case sizeMB < 1:
		estimate.EstimatedSeconds = constants.EstimateMinSeconds
		estimate.Complexity = types.ComplexityLow
	case sizeMB < constants.EstimateMediumBoundMB:
		estimate.EstimatedSeconds = int(sizeMB * constants.EstimateBaseSecondsPerMB)
		estimate.Complexity = types.ComplexityMedium
	case sizeMB < constants.EstimateHighBoundMB:
		estimate.EstimatedSeconds = int(sizeMB * constants.EstimateBaseSecondsPerMB * constants.EstimateHighFactor)
		estimate.Complexity = types.ComplexityHigh
	default:
		estimate.EstimatedSeconds = int(sizeMB * constants.EstimateBaseSecondsPerMB * constants.EstimateVeryHighFactor)
		estimate.Complexity = types.ComplexityVeryHigh
	}
	return estimate, nil
}
