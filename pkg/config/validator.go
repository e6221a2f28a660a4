package config

import (
	"fmt"
	"strings"

	"github.com/informaticafecor/OCRProyecto/pkg/constants"
	"github.com/informaticafecor/OCRProyecto/pkg/utils"
)

// ConfigValidator validates configuration values
type ConfigValidator struct{}

// NewConfigValidator creates a configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate checks the configuration and aggregates all violations.
func (v *ConfigValidator) Validate(c *Config) error {
	var errors []string

	if err := v.validateLanguage(c.OCR.Language); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateNumericValues(c); err != nil {
		errors = append(errors, err.Error())
	}
	if err := v.validateLogLevel(c.Logging.Level); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return utils.NewValidationError("configuration validation failed",
			fmt.Errorf("validation errors: %s", strings.Join(errors, "; ")))
	}
	return nil
}

// validateLanguage checks the OCR language code
func (v *ConfigValidator) validateLanguage(language string) error {
	if language == "" {
		return fmt.Errorf("ocr language cannot be empty")
	}
	if _, ok := constants.SupportedLanguages[language]; !ok {
		return fmt.Errorf("unsupported ocr language: %s", language)
	}
	return nil
}

// validateNumericValues checks numeric bounds
func (v *ConfigValidator) validateNumericValues(c *Config) error {
	if c.OCR.OptimizeLevel < 0 || c.OCR.OptimizeLevel > 3 {
		return fmt.Errorf("optimize level must be between 0 and 3")
	}
	if c.Processing.MaxFileSizeMB < 1 {
		return fmt.Errorf("max file size must be at least 1 MB")
	}
	if c.Logging.MaxLogFiles < 1 {
		return fmt.Errorf("max log files must be at least 1")
	}
	return nil
}

// validateLogLevel checks the logging level
func (v *ConfigValidator) validateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if strings.ToLower(level) == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s", level)
}
