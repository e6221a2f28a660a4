package types

import "time"

// ProcessingStrategy identifies the top-level action taken for one file.
type ProcessingStrategy string

const (
	// StrategyOCRApplied means the document went through the OCR engine.
	StrategyOCRApplied ProcessingStrategy = "ocr_applied"
	// StrategyCopyOnly means the document already had embedded text and was
	// copied byte for byte.
	StrategyCopyOnly ProcessingStrategy = "copy_only"
)

// Recommendation classifies the outcome of document analysis.
type Recommendation string

const (
	RecommendationNoOCRNeeded Recommendation = "no_ocr_needed"
	RecommendationPartialOCR  Recommendation = "partial_ocr_suggested"
	RecommendationOCRAdvised  Recommendation = "ocr_recommended"
	RecommendationOCRRequired Recommendation = "ocr_required"
)

// Complexity buckets an advisory processing-time estimate.
type Complexity string

const (
	ComplexityLow      Complexity = "low"
	ComplexityMedium   Complexity = "medium"
	ComplexityHigh     Complexity = "high"
	ComplexityVeryHigh Complexity = "very_high"
)

// PageAnalysis describes a single sampled page.
type PageAnalysis struct {
	PageNumber        int     `json:"page_number"`
	TextLength        int     `json:"text_length"`
	HasMeaningfulText bool    `json:"has_meaningful_text"`
	ImageCount        int     `json:"image_count"`
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
}

// DocumentInfo carries document metadata read during analysis.
type DocumentInfo struct {
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	ModDate      string `json:"modification_date,omitempty"`
	Encrypted    bool   `json:"encrypted"`
}

// AnalysisResult is the immutable outcome of analyzing one PDF. It is created
// by the analyzer and consumed by the batch processor to pick a strategy.
type AnalysisResult struct {
	Success         bool           `json:"success"`
	Error           string         `json:"error,omitempty"`
	FilePath        string         `json:"file_path"`
	FileName        string         `json:"file_name"`
	FileSize        int64          `json:"file_size"`
	PageCount       int            `json:"page_count"`
	HasEmbeddedText bool           `json:"has_embedded_text"`
	TextCoverage    float64        `json:"text_coverage"`
	Recommendation  Recommendation `json:"recommendation"`
	Pages           []PageAnalysis `json:"page_analysis,omitempty"`
	Info            DocumentInfo   `json:"detailed_info"`
	TimeEstimate    *TimeEstimate  `json:"time_estimate,omitempty"`
}

// ProcessingNeeded reports whether the document requires OCR, honoring an
// explicit force request from the caller.
func (a *AnalysisResult) ProcessingNeeded(forceOCR bool) bool {
	return !a.HasEmbeddedText || forceOCR
}

// TimeEstimate is an advisory duration estimate derived from file size. It is
// never used for scheduling decisions.
type TimeEstimate struct {
	FileSizeMB       float64    `json:"file_size_mb"`
	EstimatedSeconds int        `json:"estimated_seconds"`
	Complexity       Complexity `json:"complexity"`
}

// ProcessingResult is the immutable per-file outcome of a processing run.
// Success implies a populated OutputPath; failure implies a populated Error.
type ProcessingResult struct {
	Success          bool               `json:"success"`
	InputPath        string             `json:"input_path"`
	OutputPath       string             `json:"output_path,omitempty"`
	Strategy         ProcessingStrategy `json:"strategy,omitempty"`
	InputSize        int64              `json:"input_size,omitempty"`
	OutputSize       int64              `json:"output_size,omitempty"`
	SizeChange       int64              `json:"size_change,omitempty"`
	CompressionRatio float64            `json:"compression_ratio,omitempty"`
	LanguageUsed     string             `json:"language_used,omitempty"`
	BackupPath       string             `json:"backup_path,omitempty"`
	StartedAt        time.Time          `json:"started_at"`
	FinishedAt       time.Time          `json:"finished_at"`
	Duration         time.Duration      `json:"duration"`
	Error            string             `json:"error,omitempty"`
	Analysis         *AnalysisResult    `json:"analysis,omitempty"`
}

// StatsSnapshot is a read-only view of batch statistics, computed on demand
// from the running counters.
type StatsSnapshot struct {
	FilesProcessed     int           `json:"files_processed"`
	FilesWithOCR       int           `json:"files_with_ocr"`
	FilesCopied        int           `json:"files_copied"`
	Errors             int           `json:"errors"`
	TotalSizeProcessed int64         `json:"total_size_processed"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	TotalDuration      time.Duration `json:"total_duration"`
	AverageTimePerFile time.Duration `json:"average_time_per_file"`
	SuccessRate        float64       `json:"success_rate"`
}

// ProgressEvent is a structured progress notification. Percent is in [0,100]
// with -1 reserved as the failure sentinel; FileIndex is the zero-based index
// of the file being processed, or -1 for single-document operations.
type ProgressEvent struct {
	FileIndex int
	Percent   float64
	Message   string
}

// Failed reports whether the event carries the failure sentinel.
func (e ProgressEvent) Failed() bool { return e.Percent < 0 }
