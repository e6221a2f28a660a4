// Package analyzer classifies PDF documents by their text content, deciding
// whether a document already carries a machine-readable text layer or needs
// OCR. Only the embedded text layer is inspected; scanned (image-only)
// documents report no text.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// Analyzer implements interfaces.DocumentAnalyzer.
type Analyzer struct {
	minTextLength int
	logger        *logger.Logger
}

var _ interfaces.DocumentAnalyzer = (*Analyzer)(nil)

// New creates an analyzer. minTextLength is the number of meaningful
// characters in the sampled pages above which a document is considered to
// carry embedded text; zero or negative selects the default.
func New(minTextLength int, log *logger.Logger) *Analyzer {
	if minTextLength <= 0 {
		minTextLength = constants.DefaultMinTextLength
	}
	if log == nil {
		log = logger.DefaultLogger()
	}
	return &Analyzer{minTextLength: minTextLength, logger: log}
}

// Validate checks that the path points at a readable, non-empty PDF. It is a
// pure check with no side effects.
func (a *Analyzer) Validate(path string) (bool, string) {
	if _, err := os.Stat(path); err != nil {
		return false, "file does not exist"
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return false, "file does not have a .pdf extension"
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		if isEncryptionErr(err) {
			// Encrypted documents are structurally valid; the engine decides
			// whether they can be unlocked.
			return true, "valid encrypted PDF"
		}
		return false, fmt.Sprintf("cannot read PDF: %v", err)
	}
	if pageCount == 0 {
		return false, "PDF contains no pages"
	}
	return true, fmt.Sprintf("valid PDF with %d pages", pageCount)
}

// HasEmbeddedText reports whether the document carries an extractable text
// layer, along with the total page count. At most the first few pages are
// sampled; text density is assumed uniform across them.
func (a *Analyzer) HasEmbeddedText(path string) (bool, int) {
	f, r, err := pdf.Open(path)
	if err != nil {
		a.logger.Debug("Cannot open PDF for text probe: %v", err)
		return false, 0
	}
	defer f.Close()

	totalPages := r.NumPage()
	pagesToCheck := totalPages
	if pagesToCheck > constants.MaxTextProbePages {
		pagesToCheck = constants.MaxTextProbePages
	}

	fonts := make(map[string]*pdf.Font)
	var total strings.Builder
	for i := 1; i <= pagesToCheck; i++ {
		total.WriteString(a.pageText(r, i, fonts))
	}

	meaningful := meaningfulLength(total.String())
	return meaningful > a.minTextLength, totalPages
}

// Analyze runs the full classification: validation, text probe, per-page
// detail scan, coverage and recommendation. Read errors are captured in the
// result; Analyze never panics past this boundary.
func (a *Analyzer) Analyze(path string) *types.AnalysisResult {
	result := &types.AnalysisResult{
		FilePath: path,
		FileName: filepath.Base(path),
	}

	info, err := os.Stat(path)
	if err != nil {
		result.Error = "file not found"
		return result
	}
	result.FileSize = info.Size()

	if ok, reason := a.Validate(path); !ok {
		result.Error = reason
		return result
	}

	hasText, pageCount := a.HasEmbeddedText(path)
	result.HasEmbeddedText = hasText
	result.PageCount = pageCount

	result.Info = a.documentInfo(path)
	if result.Info.Encrypted && pageCount == 0 {
		if n, err := api.PageCountFile(path); err == nil {
			result.PageCount = n
		}
	}

	result.Pages = a.analyzePages(path, constants.MaxPageDetailPages)
	result.TextCoverage = textCoverage(result.Pages)
	result.Recommendation = recommend(hasText, result.TextCoverage)
	result.Success = true

	a.logger.Info("Analysis completed for %s: embedded text=%v, %d pages, coverage %.0f%%",
		result.FileName, hasText, result.PageCount, result.TextCoverage)

	return result
}

// analyzePages inspects up to maxPages pages individually.
func (a *Analyzer) analyzePages(path string, maxPages int) []types.PageAnalysis {
	f, r, err := pdf.Open(path)
	if err != nil {
		a.logger.Debug("Cannot open PDF for page analysis: %v", err)
		return nil
	}
	defer f.Close()

	pagesToAnalyze := r.NumPage()
	if pagesToAnalyze > maxPages {
		pagesToAnalyze = maxPages
	}

	fonts := make(map[string]*pdf.Font)
	pages := make([]types.PageAnalysis, 0, pagesToAnalyze)
	for i := 1; i <= pagesToAnalyze; i++ {
		text := strings.TrimSpace(a.pageText(r, i, fonts))
		page := r.Page(i)

		pa := types.PageAnalysis{
			PageNumber:        i,
			TextLength:        len(text),
			HasMeaningfulText: len(text) > constants.MeaningfulPageTextLen,
		}
		if !page.V.IsNull() {
			pa.ImageCount = countPageImages(page)
			pa.Width, pa.Height = pageDimensions(page)
		}
		pages = append(pages, pa)
	}
	return pages
}

// pageText extracts the plain text of one page, tolerating per-page errors.
// The underlying reader panics on some malformed font structures; those
// pages count as empty.
func (a *Analyzer) pageText(r *pdf.Reader, num int, fonts map[string]*pdf.Font) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Debug("Text extraction panicked on page %d: %v", num, rec)
			text = ""
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return ""
	}
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			fonts[name] = &f
		}
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		a.logger.Debug("Text extraction failed on page %d: %v", num, err)
		return ""
	}
	return text
}

// documentInfo reads document metadata and the encryption flag.
func (a *Analyzer) documentInfo(path string) types.DocumentInfo {
	info := types.DocumentInfo{Encrypted: isEncrypted(path)}
	if info.Encrypted {
		return info
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return info
	}
	defer f.Close()

	meta := r.Trailer().Key("Info")
	if meta.IsNull() {
		return info
	}
	info.Title = meta.Key("Title").RawString()
	info.Author = meta.Key("Author").RawString()
	info.Creator = meta.Key("Creator").RawString()
	info.Producer = meta.Key("Producer").RawString()
	info.CreationDate = meta.Key("CreationDate").RawString()
	info.ModDate = meta.Key("ModDate").RawString()
	return info
}

// countPageImages counts image XObjects referenced by the page resources.
func countPageImages(p pdf.Page) int {
	xobj := p.V.Key("Resources").Key("XObject")
	if xobj.Kind() != pdf.Dict {
		return 0
	}
	count := 0
	for _, key := range xobj.Keys() {
		if xobj.Key(key).Key("Subtype").Name() == "Image" {
			count++
		}
	}
	return count
}

// pageDimensions reads the media box extent in points.
func pageDimensions(p pdf.Page) (float64, float64) {
	box := p.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() < 4 {
		return 0, 0
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	return w, h
}

// meaningfulLength counts the characters that survive the noise filter:
// everything except letters, digits and whitespace is stripped, then the
// remainder is trimmed.
func meaningfulLength(text string) int {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}
	return utf8.RuneCountInString(strings.TrimSpace(b.String()))
}

// textCoverage is the percentage of sampled pages with meaningful text.
func textCoverage(pages []types.PageAnalysis) float64 {
	if len(pages) == 0 {
		return 0
	}
	withText := 0
	for _, p := range pages {
		if p.HasMeaningfulText {
			withText++
		}
	}
	return float64(withText) / float64(len(pages)) * 100
}

// recommend applies the fixed decision table over text presence and coverage.
func recommend(hasText bool, coverage float64) types.Recommendation {
	if !hasText {
		return types.RecommendationOCRRequired
	}
	switch {
	case coverage > constants.CoverageHigh:
		return types.RecommendationNoOCRNeeded
	case coverage >= constants.CoveragePartial:
		return types.RecommendationPartialOCR
	default:
		return types.RecommendationOCRAdvised
	}
}

// isEncrypted probes the document's encryption dictionary.
func isEncrypted(path string) bool {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return isEncryptionErr(err)
	}
	return ctx.Encrypt != nil
}

// isEncryptionErr reports whether a pdfcpu error indicates an encrypted
// document rather than a corrupt one.
func isEncryptionErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}
