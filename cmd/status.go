package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the OCR backend installation",
	Long: `Check that the external OCR backend is installed and usable.

Probes ocrmypdf and tesseract on PATH (or at their configured locations) and
lists the Tesseract language packs, flagging whether the configured
recognition language is available.`,
	Run: func(cmd *cobra.Command, args []string) {
		handler := NewAppHandler()
		if err := handler.initialize(); err != nil {
			log.Fatalf("Error: %v", err)
		}

		status := handler.processor.Engine().ValidateBackend()

		fmt.Println("🔧 OCR Backend Status")
		fmt.Println("=====================")
		fmt.Printf("  ocrmypdf:   %s\n", checkmark(status.OCRmyPDFAvailable))
		fmt.Printf("  tesseract:  %s\n", checkmark(status.TesseractAvailable))
		fmt.Printf("  language:   %s %s\n", status.Language, checkmark(status.LanguageAvailable))

		if len(status.Languages) > 0 {
			fmt.Printf("  installed:  %s\n", strings.Join(status.Languages, ", "))
		}
		if status.Error != "" {
			fmt.Printf("\n⚠️  %s\n", status.Error)
		}
		if !status.Available {
			fmt.Println("\n❌ No OCR backend found. Install ocrmypdf and tesseract.")
		}
	},
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
