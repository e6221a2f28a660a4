package types

// OCROptions is the named-options contract handed to the OCR backend. Every
// field is independently overridable; zero-value construction is not meant to
// be used directly, call DefaultOCROptions instead.
type OCROptions struct {
	// Language is the Tesseract language code (e.g. "spa", "eng").
	Language string `json:"language"`
	// Optimize is the output optimization level (0-3).
	Optimize int `json:"optimize"`
	// Clean runs image cleanup before recognition.
	Clean bool `json:"clean"`
	// Deskew straightens tilted pages before recognition.
	Deskew bool `json:"deskew"`
	// RemoveBackground removes page background before recognition.
	RemoveBackground bool `json:"remove_background"`
	// RotatePages fixes page orientation automatically.
	RotatePages bool `json:"rotate_pages"`
	// SkipBigMB skips recognition on pages whose images exceed this size.
	SkipBigMB float64 `json:"skip_big_mb"`
	// JPEGQuality and PNGQuality control recompression of page images.
	JPEGQuality int `json:"jpeg_quality"`
	PNGQuality  int `json:"png_quality"`
	// MaxImageMPixels caps the pixel count of images fed to recognition.
	MaxImageMPixels int `json:"max_image_mpixels"`
	// ForceOCR re-recognizes pages even when they already carry text. It
	// drives force-ocr/redo-ocr on and skip-text off as a single switch.
	ForceOCR bool `json:"force_ocr"`
	// InvalidateDigitalSignatures strips digital signatures that would
	// otherwise abort processing.
	InvalidateDigitalSignatures bool `json:"invalidate_digital_signatures"`
}

// DefaultOCROptions returns the documented defaults for the given language.
func DefaultOCROptions(language string) OCROptions {
	return OCROptions{
		Language:                    language,
		Optimize:                    1,
		Clean:                       true,
		Deskew:                      true,
		RemoveBackground:            false,
		RotatePages:                 true,
		SkipBigMB:                   100.0,
		JPEGQuality:                 85,
		PNGQuality:                  85,
		MaxImageMPixels:             128,
		ForceOCR:                    false,
		InvalidateDigitalSignatures: true,
	}
}

// SkipText reports whether pages that already carry text should be left
// untouched. It is the inverse of ForceOCR by contract.
func (o OCROptions) SkipText() bool { return !o.ForceOCR }

// OCRResult is the outcome of a single-document OCR operation.
type OCRResult struct {
	Success            bool       `json:"success"`
	InputPath          string     `json:"input_path"`
	OutputPath         string     `json:"output_path,omitempty"`
	InputSize          int64      `json:"input_size,omitempty"`
	OutputSize         int64      `json:"output_size,omitempty"`
	SizeChange         int64      `json:"size_change,omitempty"`
	CompressionRatio   float64    `json:"compression_ratio,omitempty"`
	LanguageUsed       string     `json:"language_used,omitempty"`
	OptionsUsed        OCROptions `json:"options_used"`
	StrategyUsed       string     `json:"strategy_used,omitempty"`
	AttemptedFallbacks []string   `json:"attempted_strategies,omitempty"`
	Error              string     `json:"error,omitempty"`
}

// BackendStatus reports the health of the external recognition backend.
type BackendStatus struct {
	Available          bool     `json:"available"`
	OCRmyPDFAvailable  bool     `json:"ocrmypdf_available"`
	TesseractAvailable bool     `json:"tesseract_available"`
	Languages          []string `json:"available_languages,omitempty"`
	Language           string   `json:"current_language"`
	LanguageAvailable  bool     `json:"language_available"`
	Error              string   `json:"error,omitempty"`
}
