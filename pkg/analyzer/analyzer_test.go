package analyzer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
)

// writeSearchablePDF renders text into a single-page PDF fixture.
func writeSearchablePDF(t *testing.T, dir, name, text string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 8, text, "", "L", false)

	path := filepath.Join(dir, name)
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMeaningfulLength(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"punctuation only", "...---///***", 0},
		{"plain words", "Hello World", 11},
		{"surrounded by noise", "***Hello World***", 11},
		{"digits count", "Invoice 2024", 12},
		{"accented letters count", "adiós", 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := meaningfulLength(tc.text); got != tc.want {
				t.Errorf("meaningfulLength(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestTextCoverage(t *testing.T) {
	pages := func(flags ...bool) []types.PageAnalysis {
		out := make([]types.PageAnalysis, len(flags))
		for i, f := range flags {
			out[i] = types.PageAnalysis{PageNumber: i + 1, HasMeaningfulText: f}
		}
		return out
	}

	cases := []struct {
		name  string
		pages []types.PageAnalysis
		want  float64
	}{
		{"no pages", nil, 0},
		{"all covered", pages(true, true, true), 100},
		{"half covered", pages(true, false, true, false), 50},
		{"none covered", pages(false, false), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textCoverage(tc.pages); got != tc.want {
				t.Errorf("textCoverage = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	cases := []struct {
		name     string
		hasText  bool
		coverage float64
		want     types.Recommendation
	}{
		{"no embedded text", false, 0, types.RecommendationOCRRequired},
		{"no text with stray coverage", false, 90, types.RecommendationOCRRequired},
		{"full coverage", true, 100, types.RecommendationNoOCRNeeded},
		{"just above high bound", true, 80.1, types.RecommendationNoOCRNeeded},
		{"at high bound", true, 80, types.RecommendationPartialOCR},
		{"at partial bound", true, 50, types.RecommendationPartialOCR},
		{"below partial bound", true, 49.9, types.RecommendationOCRAdvised},
		{"near zero", true, 1, types.RecommendationOCRAdvised},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := recommend(tc.hasText, tc.coverage); got != tc.want {
				t.Errorf("recommend(%v, %v) = %s, want %s", tc.hasText, tc.coverage, got, tc.want)
			}
		})
	}
}

func TestHasEmbeddedTextThreshold(t *testing.T) {
	a := New(50, logger.DefaultLogger())
	dir := t.TempDir()

	short := writeSearchablePDF(t, dir, "short.pdf", "Hello World")
	hasText, pages := a.HasEmbeddedText(short)
	if hasText {
		t.Error("a few words must stay below the embedded-text threshold")
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}

	paragraph := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10)
	long := writeSearchablePDF(t, dir, "long.pdf", paragraph)
	if hasText, _ := a.HasEmbeddedText(long); !hasText {
		t.Error("a full paragraph must clear the embedded-text threshold")
	}
}

func TestAnalyzeSearchableDocument(t *testing.T) {
	a := New(50, logger.DefaultLogger())
	paragraph := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10)
	path := writeSearchablePDF(t, t.TempDir(), "report.pdf", paragraph)

	result := a.Analyze(path)
	if !result.Success {
		t.Fatalf("analysis failed: %s", result.Error)
	}
	if !result.HasEmbeddedText {
		t.Error("expected embedded text to be detected")
	}
	if result.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", result.PageCount)
	}
	if result.TextCoverage != 100 {
		t.Errorf("TextCoverage = %v, want 100", result.TextCoverage)
	}
	if result.Recommendation != types.RecommendationNoOCRNeeded {
		t.Errorf("Recommendation = %s, want %s", result.Recommendation, types.RecommendationNoOCRNeeded)
	}
	if result.Info.Encrypted {
		t.Error("fixture is not encrypted")
	}
}

func TestValidateRejectsMissingAndNonPDF(t *testing.T) {
	a := New(50, logger.DefaultLogger())

	if valid, reason := a.Validate(filepath.Join(t.TempDir(), "nope.pdf")); valid {
		t.Error("expected missing file to be invalid")
	} else if reason == "" {
		t.Error("expected a reason for the rejection")
	}

	txt := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if valid, _ := a.Validate(txt); valid {
		t.Error("expected non-PDF extension to be invalid")
	}
}

func TestAnalyzeReportsFailureForCorruptFile(t *testing.T) {
	a := New(50, logger.DefaultLogger())

	bogus := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(bogus, []byte("this is not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	result := a.Analyze(bogus)
	if result.Success {
		t.Fatal("expected analysis of a corrupt file to fail")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
	if result.FilePath != bogus {
		t.Errorf("expected FilePath %q, got %q", bogus, result.FilePath)
	}
}

func TestIsEncryptionErr(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("pdfcpu: please provide the correct password"), true},
		{errors.New("this file is Encrypted"), true},
		{errors.New("xref table corrupt"), false},
	}
	for _, tc := range cases {
		if got := isEncryptionErr(tc.err); got != tc.want {
			t.Errorf("isEncryptionErr(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestValidateReasonMentionsExtension(t *testing.T) {
	a := New(50, logger.DefaultLogger())
	doc := filepath.Join(t.TempDir(), "report.docx")
	if err := os.WriteFile(doc, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	_, reason := a.Validate(doc)
	if !strings.Contains(strings.ToLower(reason), "pdf") {
		t.Errorf("expected reason to mention PDF, got %q", reason)
	}
}
