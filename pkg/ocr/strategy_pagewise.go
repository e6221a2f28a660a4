package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/interfaces"
	"github.com/informaticafecor/OCRProyecto/pkg/logger"
	"github.com/informaticafecor/OCRProyecto/pkg/types"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

// pagewiseStrategy is the second link in the chain. It splits the document
// into single-page PDFs, extracts each page's embedded scan image, runs
// Tesseract on the image and rebuilds the page with an invisible text layer
// over the original raster. Pages whose recognition fails keep their
// original single-page PDF, so the merged output always has the full page
// count.
type pagewiseStrategy struct {
	logger *logger.Logger

	// recognize is swappable for tests that have no Tesseract installed.
	recognize func(imgPath, language string) (string, error)
}

func newPagewiseStrategy(log *logger.Logger) *pagewiseStrategy {
	return &pagewiseStrategy{logger: log, recognize: tesseractRecognize}
}

func (s *pagewiseStrategy) Name() string { return "pagewise" }

func tesseractRecognize(imgPath, language string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imgPath); err != nil {
		return "", err
	}
	if err := client.SetLanguage(language); err != nil {
		return "", err
	}
	return client.Text()
}

func (s *pagewiseStrategy) Attempt(ctx context.Context, inputPath, outputPath string, opts types.OCROptions, progress interfaces.ProgressFunc) error {
	pageCount, err := api.PageCountFile(inputPath)
	if err != nil {
		return utils.NewBackendError("cannot determine page count", err)
	}

	tm := utils.NewTempManager(s.logger)
	defer tm.Cleanup()

	pagesDir, err := tm.CreateTempDir("pages")
	if err != nil {
		return err
	}
	if err := api.SplitFile(inputPath, pagesDir, 1, nil); err != nil {
		return utils.NewBackendError("cannot split document into pages", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	recognized := 0
	ordered := make([]string, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pagePath := filepath.Join(pagesDir, fmt.Sprintf("%s_%d.pdf", base, i))
		if progress != nil {
			percent := 45 + float64(i)/float64(pageCount)*40
			progress(types.ProgressEvent{Percent: percent, Message: fmt.Sprintf("Recognizing page %d of %d...", i, pageCount)})
		}

		rebuilt, err := s.processPage(tm, pagePath, i, opts.Language)
		if err != nil {
			s.logger.Warn("Page %d kept without text layer: %v", i, err)
			ordered = append(ordered, pagePath)
			continue
		}
		recognized++
		ordered = append(ordered, rebuilt)
	}

	if recognized == 0 {
		return utils.NewBackendError(fmt.Sprintf("no text recognized on any of %d pages", pageCount), nil)
	}

	if err := api.MergeCreateFile(ordered, outputPath, false, nil); err != nil {
		return utils.NewBackendError("cannot merge recognized pages", err)
	}
	// Reassembly re-embeds every page image; compact the result. A failed
	// optimize keeps the unoptimized merge.
	if err := api.OptimizeFile(outputPath, "", optimizeConf()); err != nil {
		s.logger.Warn("Optimization of merged output failed: %v", err)
	}
	s.logger.Debug("Pagewise recognition succeeded on %d/%d pages", recognized, pageCount)
	return nil
}

func optimizeConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// processPage turns one single-page PDF into a searchable single-page PDF.
// Returns an error when the page has no extractable image or recognition
// yields nothing; the caller falls back to the original page.
func (s *pagewiseStrategy) processPage(tm *utils.TempManager, pagePath string, pageNum int, language string) (string, error) {
	imgDir, err := tm.CreateTempDir(fmt.Sprintf("img_%d", pageNum))
	if err != nil {
		return "", err
	}
	if err := api.ExtractImagesFile(pagePath, imgDir, nil, nil); err != nil {
		return "", utils.NewBackendError("image extraction failed", err)
	}

	imgPath, imgType, err := findPageImage(imgDir)
	if err != nil {
		return "", err
	}

	text, err := s.recognize(imgPath, language)
	if err != nil {
		return "", utils.NewBackendError("recognition failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", utils.NewBackendError("recognition produced no text", nil)
	}

	out, err := tm.CreateTempFile(fmt.Sprintf("page_%d_", pageNum), ".pdf")
	if err != nil {
		return "", err
	}
	if err := buildSearchablePage(imgPath, imgType, text, pageNum, out); err != nil {
		return "", err
	}
	return out, nil
}

// findPageImage locates the extracted scan image for a page. Scanned pages
// carry a single full-page raster; formats fpdf cannot embed are skipped.
func findPageImage(dir string) (path, imgType string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", utils.NewIOError("cannot read extracted images", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png":
			return filepath.Join(dir, entry.Name()), "PNG", nil
		case ".jpg", ".jpeg":
			return filepath.Join(dir, entry.Name()), "JPEG", nil
		}
	}
	return "", "", utils.NewBackendError("page has no embeddable raster image", nil)
}

// buildSearchablePage composes the original scan image with an invisible
// text layer so the page stays visually identical but becomes selectable
// and searchable.
func buildSearchablePage(imgPath, imgType, text string, pageNum int, outPath string) error {
	f, err := os.Open(imgPath)
	if err != nil {
		return utils.NewIOError("cannot open page image", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return utils.NewBackendError("cannot decode page image", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return utils.NewIOError("cannot rewind page image", err)
	}

	// Pixel dimensions to points at the scan DPI.
	w := float64(cfg.Width) * 72 / constants.PagewiseImageDPI
	h := float64(cfg.Height) * 72 / constants.PagewiseImageDPI

	pdf := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt", SizeStr: "A4"})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

	imgName := fmt.Sprintf("scan%d", pageNum)
	imgOpts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
	pdf.RegisterImageOptionsReader(imgName, imgOpts, f)
	pdf.ImageOptions(imgName, 0, 0, w, h, false, imgOpts, 0, "")

	layer := pdf.AddLayer(fmt.Sprintf("Recognized Text (Page %d)", pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetAlpha(0.0, "Normal")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetXY(0, 0)
	pdf.MultiCell(w, 12, tr(text), "", "L", false)
	pdf.EndLayer()

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return utils.NewIOError("cannot write searchable page", err)
	}
	return nil
}
