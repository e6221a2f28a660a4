package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/informaticafecor/OCRProyecto/pkg/types"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [input_file]",
	Short: "Analyze a PDF without processing it",
	Long: `Analyze a PDF document and report whether it needs OCR.

The analysis samples the first pages for embedded text, computes text
coverage over up to ten pages and derives a recommendation, together with an
advisory processing-time estimate.

Examples:
  ocrproyecto analyze document.pdf
  ocrproyecto analyze document.pdf --verbose`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handler := NewAppHandler()
		if err := handler.initialize(); err != nil {
			log.Fatalf("Error: %v", err)
		}

		absPath, err := filepath.Abs(args[0])
		if err != nil {
			log.Fatalf("Error resolving path: %v", err)
		}

		result := handler.processor.AnalyzeFile(absPath)
		displayAnalysis(result)
	},
}

// displayAnalysis renders an analysis result for the terminal.
func displayAnalysis(result *types.AnalysisResult) {
	fmt.Printf("🔍 Document Analysis\n")
	fmt.Printf("====================\n\n")

	if !result.Success {
		fmt.Printf("❌ Analysis failed: %s\n", result.Error)
		return
	}

	fmt.Printf("📄 File:           %s\n", result.FileName)
	fmt.Printf("📦 Size:           %s\n", utils.FormatFileSize(result.FileSize))
	fmt.Printf("📃 Pages:          %d\n", result.PageCount)
	fmt.Printf("🔤 Embedded text:  %v\n", result.HasEmbeddedText)
	fmt.Printf("📊 Text coverage:  %.1f%%\n", result.TextCoverage)
	fmt.Printf("💡 Recommendation: %s\n", recommendationText(result.Recommendation))

	if result.Info.Encrypted {
		fmt.Printf("🔒 Encrypted:      yes\n")
	}
	if result.Info.Title != "" {
		fmt.Printf("🏷️  Title:          %s\n", result.Info.Title)
	}
	if result.Info.Producer != "" {
		fmt.Printf("🏭 Producer:       %s\n", result.Info.Producer)
	}

	if result.TimeEstimate != nil {
		fmt.Printf("\n⏱️  Estimated processing: ~%s (%s complexity)\n",
			utils.FormatDuration(estimateDuration(result.TimeEstimate)), result.TimeEstimate.Complexity)
	}
}

func recommendationText(r types.Recommendation) string {
	switch r {
	case types.RecommendationNoOCRNeeded:
		return "no OCR needed, document is already searchable"
	case types.RecommendationPartialOCR:
		return "partial OCR suggested, some pages lack text"
	case types.RecommendationOCRAdvised:
		return "OCR recommended, text coverage is low"
	case types.RecommendationOCRRequired:
		return "OCR required, document has no embedded text"
	default:
		return string(r)
	}
}

func estimateDuration(e *types.TimeEstimate) time.Duration {
	return time.Duration(e.EstimatedSeconds) * time.Second
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
