package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/informaticafecor/OCRProyecto/pkg/config"
	"github.com/informaticafecor/OCRProyecto/pkg/core"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

var (
	outputPath  string
	language    string
	forceOCR    bool
	recursive   bool
	noBackup    bool
	verbose     bool
	showVersion bool
)

// AppHandler encapsulates application main processing logic
type AppHandler struct {
	config    *config.Config
	logger    *logger.Logger
	processor *core.Processor
}

// NewAppHandler creates an application handler
func NewAppHandler() *AppHandler {
	return &AppHandler{}
}

// Run is the main entry point: a single PDF file or a directory of PDFs.
func (h *AppHandler) Run(inputPath string) error {
	if err := h.initialize(); err != nil {
		return err
	}

	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return utils.WrapError(err, utils.ErrorTypeValidation, "error resolving input path")
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return utils.NewNotFoundError(fmt.Sprintf("input not found: %s", absPath), err)
	}

	if info.IsDir() {
		return h.processDirectory(absPath)
	}
	return h.processSingleFile(absPath)
}

// initialize initializes application components
func (h *AppHandler) initialize() error {
	h.config = config.LoadConfigWithEnvOverrides()
	h.applyCommandLineOverrides()

	if err := h.config.Validate(); err != nil {
		return utils.WrapError(err, utils.ErrorTypeValidation, "configuration validation failed")
	}

	h.logger = logger.NewLogger(h.config.Logging.Level, h.config.EnableVerbose)
	h.processor = core.NewProcessor(h.config, h.logger)
	return nil
}

// applyCommandLineOverrides applies command line parameter overrides
func (h *AppHandler) applyCommandLineOverrides() {
	if language != "" {
		h.config.OCR.Language = language
	}
	if forceOCR {
		h.config.ForceOCR = true
	}
	if recursive {
		h.config.Recursive = true
	}
	if noBackup {
		h.config.Processing.CreateBackups = false
	}
	if verbose {
		h.config.EnableVerbose = true
	}
}

// processSingleFile processes one PDF and displays the result.
func (h *AppHandler) processSingleFile(inputPath string) error {
	ctx := context.Background()

	result := h.processor.ProcessFile(ctx, inputPath, outputPath, h.config.ForceOCR, h.progressFunc())
	if !result.Success {
		return utils.NewBackendError(result.Error, nil)
	}

	h.displayResult(result)
	return nil
}

// processDirectory runs a batch over every PDF found in the directory.
func (h *AppHandler) processDirectory(dirPath string) error {
	files, err := utils.ListPDFFiles(dirPath, h.config.Recursive)
	if err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "cannot list PDF files")
	}
	if len(files) == 0 {
		fmt.Printf("No PDF files found in %s\n", dirPath)
		return nil
	}

	results := h.processor.ProcessBatch(context.Background(), files, h.progressFunc(), nil)

	fmt.Println()
	for _, result := range results {
		if result.Success {
			fmt.Printf("✅ %s → %s (%s)\n",
				filepath.Base(result.InputPath), filepath.Base(result.OutputPath), result.Strategy)
		} else {
			fmt.Printf("❌ %s: %s\n", filepath.Base(result.InputPath), result.Error)
		}
	}
	h.displayStats(h.processor.Stats())
	return nil
}

// progressFunc renders progress events when verbose output is enabled.
func (h *AppHandler) progressFunc() func(types.ProgressEvent) {
	if !h.config.EnableVerbose {
		return nil
	}
	return func(event types.ProgressEvent) {
		if event.Failed() {
			fmt.Printf("  ⚠️  %s\n", event.Message)
			return
		}
		fmt.Printf("  [%5.1f%%] %s\n", event.Percent, event.Message)
	}
}

// displayResult displays a single processing result
func (h *AppHandler) displayResult(result *types.ProcessingResult) {
	fmt.Printf("✅ Processing complete\n")
	fmt.Printf("📄 Output: %s\n", result.OutputPath)
	fmt.Printf("📊 Strategy: %s\n", result.Strategy)
	fmt.Printf("⏱️  Duration: %s\n", utils.FormatDuration(result.Duration))

	if result.Strategy == types.StrategyOCRApplied {
		fmt.Printf("🈯 Language: %s\n", result.LanguageUsed)
		fmt.Printf("📦 Size: %s → %s\n",
			utils.FormatFileSize(result.InputSize), utils.FormatFileSize(result.OutputSize))
	}
	if result.BackupPath != "" {
		fmt.Printf("💾 Backup: %s\n", result.BackupPath)
	}
}

// displayStats displays batch statistics
func (h *AppHandler) displayStats(stats types.StatsSnapshot) {
	fmt.Println("\n📈 Batch Statistics")
	fmt.Println("===================")
	fmt.Printf("  Files processed:  %d\n", stats.FilesProcessed)
	fmt.Printf("  With OCR:         %d\n", stats.FilesWithOCR)
	fmt.Printf("  Copied:           %d\n", stats.FilesCopied)
	fmt.Printf("  Errors:           %d\n", stats.Errors)
	fmt.Printf("  Total size:       %s\n", utils.FormatFileSize(stats.TotalSizeProcessed))
	fmt.Printf("  Success rate:     %.1f%%\n", stats.SuccessRate)
	fmt.Printf("  Total time:       %s\n", utils.FormatDuration(stats.TotalDuration))
	if stats.FilesProcessed > 0 {
		fmt.Printf("  Avg per file:     %s\n", utils.FormatDuration(stats.AverageTimePerFile))
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocrproyecto [input_path]",
	Short: "A CLI tool for making scanned PDFs searchable via OCR",
	Long: `A CLI tool for batch-converting scanned PDF documents into searchable PDFs.

Each document is analyzed first: PDFs that already carry embedded text are
copied unchanged, scanned PDFs go through a recognition chain that falls back
to progressively simpler strategies until one succeeds.

Recognition chain:
- primary: full ocrmypdf run with image cleanup, deskew and optimization
- pagewise: per-page Tesseract recognition with invisible text layers
- minimal: ocrmypdf with every enhancement disabled, as a last resort

Examples:
  ocrproyecto document.pdf                        # Process one PDF
  ocrproyecto ./scans/                            # Process every PDF in a directory
  ocrproyecto ./scans/ --recursive                # Include subdirectories
  ocrproyecto document.pdf -o ./out/searchable.pdf  # Explicit output path
  ocrproyecto document.pdf --force-ocr            # Re-recognize even with embedded text
  ocrproyecto document.pdf --language eng         # Recognition language
  ocrproyecto document.pdf --no-backup            # Skip the timestamped backup
  ocrproyecto document.pdf --verbose              # Show progress events`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Printf("ocrproyecto %s\n", version)
			return
		}

		if len(args) == 0 {
			cmd.Help()
			return
		}

		handler := NewAppHandler()
		if err := handler.Run(args[0]); err != nil {
			if appErr, ok := err.(*utils.AppError); ok {
				log.Fatalf("Error (%s): %s", appErr.Type, appErr.Message)
			} else {
				log.Fatalf("Error: %v", err)
			}
		}
	},
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: {input_name}_processed.pdf next to the input)")
	rootCmd.Flags().StringVarP(&language, "language", "l", "",
		"Recognition language code (spa, eng, fra, deu, ita, por)")
	rootCmd.Flags().BoolVar(&forceOCR, "force-ocr", false,
		"Apply OCR even when the document already carries embedded text")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Process subdirectories when the input is a directory")
	rootCmd.Flags().BoolVar(&noBackup, "no-backup", false,
		"Skip the timestamped backup of the input file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output to show progress information")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false,
		"Show version information")
}
