package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

const (
	ConfigFileName = "config.yaml"
	AppDirName     = ".ocrproyecto"
)

// GetConfigDir returns the user configuration directory (~/.ocrproyecto)
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeIO, "failed to get user home directory")
	}
	return filepath.Join(homeDir, AppDirName), nil
}

// GetConfigFilePath returns the full path to the configuration file
func GetConfigFilePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadConfig loads configuration from the settings file, falling back to
// defaults for anything missing. A missing file is not an error.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	path, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeValidation, "failed to parse config file")
	}
	return cfg, nil
}

// SaveConfig writes the persisted sections of the configuration back to the
// settings file, creating the config directory when needed.
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, constants.DefaultDirPermission); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return utils.WrapError(err, utils.ErrorTypeSystem, "failed to serialize configuration")
	}

	path := filepath.Join(configDir, ConfigFileName)
	if err := os.WriteFile(path, data, constants.DefaultFilePermission); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to write config file")
	}
	return nil
}

// GetConfigValue returns a single configuration value by dotted key.
func GetConfigValue(key string) (string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}

	switch key {
	case "ocr.language":
		return cfg.OCR.Language, nil
	case "ocr.optimize_level":
		return fmt.Sprintf("%d", cfg.OCR.OptimizeLevel), nil
	case "ocr.clean_images":
		return fmt.Sprintf("%v", cfg.OCR.CleanImages), nil
	case "ocr.deskew":
		return fmt.Sprintf("%v", cfg.OCR.Deskew), nil
	case "ocr.remove_background":
		return fmt.Sprintf("%v", cfg.OCR.RemoveBackground), nil
	case "processing.create_backups":
		return fmt.Sprintf("%v", cfg.Processing.CreateBackups), nil
	case "processing.output_directory":
		return cfg.Processing.OutputDirectory, nil
	case "processing.max_file_size_mb":
		return fmt.Sprintf("%d", cfg.Processing.MaxFileSizeMB), nil
	case "processing.skip_existing":
		return fmt.Sprintf("%v", cfg.Processing.SkipExisting), nil
	case "gui.theme":
		return cfg.GUI.Theme, nil
	case "gui.remember_settings":
		return fmt.Sprintf("%v", cfg.GUI.RememberSettings), nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.log_directory":
		return cfg.Logging.LogDirectory, nil
	case "logging.max_log_files":
		return fmt.Sprintf("%d", cfg.Logging.MaxLogFiles), nil
	case "ocrmypdf_path":
		return cfg.OCRmyPDFPath, nil
	case "tesseract_path":
		return cfg.TesseractPath, nil
	default:
		return "", utils.NewValidationError(fmt.Sprintf("unknown configuration key: %s", key), nil)
	}
}

// SetConfigValue sets a single configuration value by dotted key and
// persists the file.
func SetConfigValue(key, value string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "ocr.language":
		cfg.OCR.Language = value
	case "ocr.optimize_level":
		if _, err := fmt.Sscanf(value, "%d", &cfg.OCR.OptimizeLevel); err != nil {
			return utils.NewValidationError("optimize_level must be an integer", err)
		}
	case "ocr.clean_images":
		cfg.OCR.CleanImages = isTruthy(value)
	case "ocr.deskew":
		cfg.OCR.Deskew = isTruthy(value)
	case "ocr.remove_background":
		cfg.OCR.RemoveBackground = isTruthy(value)
	case "processing.create_backups":
		cfg.Processing.CreateBackups = isTruthy(value)
	case "processing.output_directory":
		cfg.Processing.OutputDirectory = value
	case "processing.max_file_size_mb":
		if _, err := fmt.Sscanf(value, "%d", &cfg.Processing.MaxFileSizeMB); err != nil {
			return utils.NewValidationError("max_file_size_mb must be an integer", err)
		}
	case "processing.skip_existing":
		cfg.Processing.SkipExisting = isTruthy(value)
	case "gui.theme":
		cfg.GUI.Theme = value
	case "gui.remember_settings":
		cfg.GUI.RememberSettings = isTruthy(value)
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.log_directory":
		cfg.Logging.LogDirectory = value
	case "logging.max_log_files":
		if _, err := fmt.Sscanf(value, "%d", &cfg.Logging.MaxLogFiles); err != nil {
			return utils.NewValidationError("max_log_files must be an integer", err)
		}
	case "ocrmypdf_path":
		cfg.OCRmyPDFPath = value
	case "tesseract_path":
		cfg.TesseractPath = value
	default:
		return utils.NewValidationError(fmt.Sprintf("unknown configuration key: %s", key), nil)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return SaveConfig(cfg)
}

// ConfigKeys lists every settable configuration key.
func ConfigKeys() []string {
	return []string{
		"ocr.language",
		"ocr.optimize_level",
		"ocr.clean_images",
		"ocr.deskew",
		"ocr.remove_background",
		"processing.create_backups",
		"processing.output_directory",
		"processing.max_file_size_mb",
		"processing.skip_existing",
		"gui.theme",
		"gui.remember_settings",
		"logging.level",
		"logging.log_directory",
		"logging.max_log_files",
		"ocrmypdf_path",
		"tesseract_path",
	}
}
