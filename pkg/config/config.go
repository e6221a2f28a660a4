package config

import (
	"os"
	"strconv"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
)

// Default values
const (
	DefaultLanguage      = "spa"
	DefaultOptimizeLevel = 1
	DefaultLogLevel      = "info"
	DefaultLogDirectory  = "logs"
	DefaultMaxLogFiles   = 10
	DefaultMaxFileSizeMB = 100
	DefaultTheme         = "default"

	DefaultOCRmyPDFPath  = "ocrmypdf"
	DefaultTesseractPath = "tesseract"
)

// OCRSettings mirrors the [ocr] section of the settings file.
type OCRSettings struct {
	Language         string `yaml:"language"`
	OptimizeLevel    int    `yaml:"optimize_level"`
	CleanImages      bool   `yaml:"clean_images"`
	Deskew           bool   `yaml:"deskew"`
	RemoveBackground bool   `yaml:"remove_background"`
}

// ProcessingSettings mirrors the [processing] section.
type ProcessingSettings struct {
	CreateBackups   bool   `yaml:"create_backups"`
	OutputDirectory string `yaml:"output_directory"`
	MaxFileSizeMB   int    `yaml:"max_file_size_mb"`
	SkipExisting    bool   `yaml:"skip_existing"`
}

// GUISettings mirrors the [gui] section. The desktop shell is an external
// collaborator; these values are persisted for it but unused by the core.
type GUISettings struct {
	Theme            string `yaml:"theme"`
	RememberSettings bool   `yaml:"remember_settings"`
}

// LoggingSettings mirrors the [logging] section.
type LoggingSettings struct {
	Level        string `yaml:"level"`
	LogDirectory string `yaml:"log_directory"`
	MaxLogFiles  int    `yaml:"max_log_files"`
}

// Config holds application configuration.
type Config struct {
	OCR        OCRSettings        `yaml:"ocr"`
	Processing ProcessingSettings `yaml:"processing"`
	GUI        GUISettings        `yaml:"gui"`
	Logging    LoggingSettings    `yaml:"logging"`

	// External tool paths
	OCRmyPDFPath  string `yaml:"ocrmypdf_path"`
	TesseractPath string `yaml:"tesseract_path"`

	// Runtime settings (not persisted)
	ForceOCR      bool   `yaml:"-"`
	Recursive     bool   `yaml:"-"`
	EnableVerbose bool   `yaml:"-"`
	MinTextLength int    `yaml:"-"`
	TempDirectory string `yaml:"-"`
}

// DefaultConfig returns a configuration populated with documented defaults.
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRSettings{
			Language:         DefaultLanguage,
			OptimizeLevel:    DefaultOptimizeLevel,
			CleanImages:      true,
			Deskew:           true,
			RemoveBackground: false,
		},
		Processing: ProcessingSettings{
			CreateBackups:   true,
			OutputDirectory: "",
			MaxFileSizeMB:   DefaultMaxFileSizeMB,
			SkipExisting:    false,
		},
		GUI: GUISettings{
			Theme:            DefaultTheme,
			RememberSettings: true,
		},
		Logging: LoggingSettings{
			Level:        DefaultLogLevel,
			LogDirectory: DefaultLogDirectory,
			MaxLogFiles:  DefaultMaxLogFiles,
		},
		OCRmyPDFPath:  DefaultOCRmyPDFPath,
		TesseractPath: DefaultTesseractPath,
		MinTextLength: constants.DefaultMinTextLength,
	}
}

// LoadConfigWithEnvOverrides loads the persisted configuration and applies
// environment variable overrides.
func LoadConfigWithEnvOverrides() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = DefaultConfig()
	}

	if value := os.Getenv("OCRPROYECTO_OCRMYPDF_PATH"); value != "" {
		cfg.OCRmyPDFPath = value
	}
	if value := os.Getenv("OCRPROYECTO_TESSERACT_PATH"); value != "" {
		cfg.TesseractPath = value
	}
	if value := os.Getenv("OCRPROYECTO_LANGUAGE"); value != "" {
		cfg.OCR.Language = value
	}
	if value := os.Getenv("OCRPROYECTO_OUTPUT_DIR"); value != "" {
		cfg.Processing.OutputDirectory = value
	}
	if value := os.Getenv("OCRPROYECTO_CREATE_BACKUPS"); value != "" {
		cfg.Processing.CreateBackups = isTruthy(value)
	}
	if value := os.Getenv("OCRPROYECTO_SKIP_EXISTING"); value != "" {
		cfg.Processing.SkipExisting = isTruthy(value)
	}
	if value := os.Getenv("OCRPROYECTO_MAX_FILE_SIZE_MB"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			cfg.Processing.MaxFileSizeMB = intVal
		}
	}
	if value := os.Getenv("OCRPROYECTO_LOG_LEVEL"); value != "" {
		cfg.Logging.Level = value
	}
	if value := os.Getenv("OCRPROYECTO_VERBOSE"); value != "" {
		cfg.EnableVerbose = isTruthy(value)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return NewConfigValidator().Validate(c)
}

// MaxFileSizeBytes returns the configured size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Processing.MaxFileSizeMB) * 1024 * 1024
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

func isTruthy(value string) bool {
	return value == "true" || value == "1" || value == "yes"
}
