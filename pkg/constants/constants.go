package constants

import "time"

// File processing constants
const (
	// Default file permissions
	DefaultFilePermission = 0644
	DefaultDirPermission  = 0755

	// Analysis sampling bounds. Full-document scanning is wasteful for
	// large files; text density is assumed uniform across the first pages.
	MaxTextProbePages  = 5
	MaxPageDetailPages = 10

	// Text thresholds (meaningful characters)
	DefaultMinTextLength  = 50
	MeaningfulPageTextLen = 20

	// Coverage boundaries for the recommendation decision table (percent)
	CoverageHigh    = 80.0
	CoveragePartial = 50.0

	// Output naming
	ProcessedSuffix = "_processed"
	BackupDirName   = "backups"
	BackupTimestamp = "20060102_150405"

	// Timeout for a full recognition run when the caller sets no deadline
	DefaultOCRTimeout = 30 * time.Minute
)

// Time estimation constants. Roughly 30 seconds per MB at baseline, scaled
// up for larger files; purely advisory.
const (
	EstimateBaseSecondsPerMB = 30
	EstimateMinSeconds       = 15
	EstimateMediumBoundMB    = 5
	EstimateHighBoundMB      = 20
	EstimateHighFactor       = 1.5
	EstimateVeryHighFactor   = 2.0
)

// Secondary fallback settings
const (
	// PagewiseImageDPI is the scan resolution assumed when converting page
	// image pixel dimensions back to page points.
	PagewiseImageDPI = 300
)

// Supported OCR languages (code -> display name)
var SupportedLanguages = map[string]string{
	"spa": "Español",
	"eng": "English",
	"fra": "Français",
	"deu": "Deutsch",
	"ita": "Italiano",
	"por": "Português",
}
