// =============================================================================
// PaymentMaker - Configuration Module
// =============================================================================
//
// This module loads the application configuration: the contractor and default
// customer requisites printed into every document, and the output settings
// (output directory, archive directory, file name format).
//
// The configuration lives in one YAML file. A missing file is not an error:
// the application falls back to the built-in demo requisites, so a fresh
// checkout produces recognizably-placeholder documents instead of failing.
// A file that exists but does not parse IS an error; silently ignoring a
// malformed config would print wrong requisites into real documents.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"paymentmaker/internal/models"
)

// DefaultConfigFile is the config path used when none is given on the
// command line.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// Company is the contractor whose requisites head every document.
	Company models.CompanyDetails `yaml:"company"`

	// Customer is the default customer, used when no customer is named for
	// a document.
	Customer models.CompanyDetails `yaml:"customer"`

	// Output controls where and under what names documents are written.
	Output OutputConfig `yaml:"output"`
}

// OutputConfig holds the output settings.
type OutputConfig struct {
	// Dir is the directory where generated workbooks are placed.
	// Default: "./output"
	Dir string `yaml:"dir"`

	// ArchiveDir is the directory where processed input reports are moved
	// after their documents have been generated.
	// Default: "./input_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// FileNameFormat defines the output file name. Placeholders:
	//   {number}    - The document number
	//   {timestamp} - Generation time (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "invoice_{number}_{timestamp}.xlsx"
	FileNameFormat string `yaml:"file_name_format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct. When the file does not exist, the
//     built-in defaults are returned without error.
//   - An error if an existing file cannot be read or parsed.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// Save writes the configuration back to a YAML file.
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Default returns the built-in configuration: recognizably-placeholder demo
// requisites and the standard output layout.
func Default() *Config {
	config := &Config{
		Company: models.CompanyDetails{
			Name:           "ИП Демо",
			INN:            "000000000000",
			Address:        "г. Москва, ул. Демонстрационная, д. 1",
			Phone:          "т: 8-900-000-00-00",
			BankName:       "ДЕМО БАНК",
			BankBIK:        "000000000",
			BankAccount:    "00000000000000000000",
			CompanyAccount: "00000000000000000000",
		},
		Customer: models.CompanyDetails{
			Name:           "ООО \"Компания\"",
			INN:            "0000000000",
			Address:        "г. Москва, ул. Тестовая, д. 2",
			BankName:       "ДЕМО БАНК КЛИЕНТА",
			BankBIK:        "000000000",
			BankAccount:    "00000000000000000000",
			CompanyAccount: "00000000000000000000",
		},
	}
	applyDefaults(config)
	return config
}

// applyDefaults fills in the output settings a partial config leaves unset.
// Requisites are deliberately NOT defaulted field by field: a config that
// names a company must spell out its requisites in full.
func applyDefaults(config *Config) {
	if config.Output.Dir == "" {
		config.Output.Dir = "./output"
	}
	if config.Output.ArchiveDir == "" {
		config.Output.ArchiveDir = "./input_archive"
	}
	if config.Output.FileNameFormat == "" {
		config.Output.FileNameFormat = "invoice_{number}_{timestamp}.xlsx"
	}
}
