package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dshills/codesweep/internal/review"
)

// Config represents the codesweep configuration.
type Config struct {
	Format           string         `json:"format"`
	FailOn           string         `json:"failOn"`
	ExternalScanners bool           `json:"externalScanners"`
	Scanners         []string       `json:"scanners,omitempty"`
	Standards        []string       `json:"standards,omitempty"`
	Methodologies    []string       `json:"methodologies,omitempty"`
	PatternsFile     string         `json:"patternsFile,omitempty"`
	ScannerTimeoutMs map[string]int `json:"scannerTimeoutMs,omitempty"`
	RequestTimeoutMs int            `json:"requestTimeoutMs,omitempty"`
	Debug            bool           `json:"debug,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:           "text",
		FailOn:           "none",
		ExternalScanners: true,
		Scanners:         []string{"devskim", "semgrep", "codeql"},
	}
}

// ConfigDir returns the platform-appropriate config directory for codesweep.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "codesweep"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "codesweep"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "codesweep"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "codesweep"), nil
	default:
		return filepath.Join(home, ".config", "codesweep"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileConfig mirrors Config with pointer fields so a key that is absent
// from the file can be told apart from one explicitly set to its zero
// value.
type fileConfig struct {
	Format           *string        `json:"format"`
	FailOn           *string        `json:"failOn"`
	ExternalScanners *bool          `json:"externalScanners"`
	Scanners         []string       `json:"scanners"`
	Standards        []string       `json:"standards"`
	Methodologies    []string       `json:"methodologies"`
	PatternsFile     *string        `json:"patternsFile"`
	ScannerTimeoutMs map[string]int `json:"scannerTimeoutMs"`
	RequestTimeoutMs *int           `json:"requestTimeoutMs"`
	Debug            *bool          `json:"debug"`
}

// LoadFile returns the default config overlaid with the config file's
// contents. A missing file yields the defaults unchanged.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	mergeFile(&cfg, fc)
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if !review.ValidThreshold(cfg.FailOn) {
		return Config{}, fmt.Errorf("invalid failOn threshold %q", cfg.FailOn)
	}
	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.Format != nil && *src.Format != "" {
		dst.Format = *src.Format
	}
	if src.FailOn != nil && *src.FailOn != "" {
		dst.FailOn = *src.FailOn
	}
	if src.ExternalScanners != nil {
		dst.ExternalScanners = *src.ExternalScanners
	}
	if len(src.Scanners) > 0 {
		dst.Scanners = src.Scanners
	}
	if len(src.Standards) > 0 {
		dst.Standards = src.Standards
	}
	if len(src.Methodologies) > 0 {
		dst.Methodologies = src.Methodologies
	}
	if src.PatternsFile != nil && *src.PatternsFile != "" {
		dst.PatternsFile = *src.PatternsFile
	}
	if len(src.ScannerTimeoutMs) > 0 {
		dst.ScannerTimeoutMs = src.ScannerTimeoutMs
	}
	if src.RequestTimeoutMs != nil && *src.RequestTimeoutMs > 0 {
		dst.RequestTimeoutMs = *src.RequestTimeoutMs
	}
	if src.Debug != nil {
		dst.Debug = *src.Debug
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("CODESWEEP_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CODESWEEP_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("CODESWEEP_NO_EXTERNAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.ExternalScanners = false
		}
	}
	if v := os.Getenv("CODESWEEP_PATTERNS"); v != "" {
		cfg.PatternsFile = v
	}
	if v := os.Getenv("CODESWEEP_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.Debug = true
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failOn"]; ok && v != "" {
		cfg.FailOn = v
	}
	if v, ok := overrides["noExternal"]; ok && v == "true" {
		cfg.ExternalScanners = false
	}
	if v, ok := overrides["standards"]; ok && v != "" {
		cfg.Standards = splitList(v)
	}
	if v, ok := overrides["methodologies"]; ok && v != "" {
		cfg.Methodologies = splitList(v)
	}
	if v, ok := overrides["patternsFile"]; ok && v != "" {
		cfg.PatternsFile = v
	}
	if v, ok := overrides["requestTimeoutMs"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutMs = n
		}
	}
	if v, ok := overrides["debug"]; ok && v == "true" {
		cfg.Debug = true
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// SetField sets a single configuration field by key name. Used by the
// config set command.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "failOn":
		if !review.ValidThreshold(value) {
			return fmt.Errorf("invalid failOn threshold %q", value)
		}
		cfg.FailOn = value
	case "externalScanners":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %q", key, value)
		}
		cfg.ExternalScanners = b
	case "patternsFile":
		cfg.PatternsFile = value
	case "standards":
		cfg.Standards = splitList(value)
	case "methodologies":
		cfg.Methodologies = splitList(value)
	case "requestTimeoutMs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %q", key, value)
		}
		cfg.RequestTimeoutMs = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
