package interfaces

import "github.com/informaticafecor/OCRProyecto/pkg/types"

// DocumentAnalyzer classifies a PDF's text content without mutating it.
type DocumentAnalyzer interface {
	// Validate checks that the path points at a readable, non-empty PDF.
	// It is a pure check with no side effects.
	Validate(path string) (bool, string)

	// HasEmbeddedText reports whether the document carries an extractable
	// text layer, along with the total page count.
	HasEmbeddedText(path string) (bool, int)

	// Analyze runs the full classification. Read errors are captured in the
	// returned result; Analyze never panics past this boundary.
	Analyze(path string) *types.AnalysisResult
}
