package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"chromalint/internal/classify"
)

// Config represents the configuration for chromalint. Every threshold the
// engine consumes lives here; nothing reads ambient global state.
type Config struct {
	Version string `yaml:"version" json:"version"`

	// Analysis settings
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`

	// Complexity band boundaries (single source of truth for every surface)
	Bands classify.Thresholds `yaml:"bands" json:"bands"`

	// Health score composition
	Health HealthConfig `yaml:"health" json:"health"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// File patterns
	Files FilesConfig `yaml:"files" json:"files"`
}

type AnalysisConfig struct {
	// Parallel analysis fan-out for batch runs
	MaxWorkers int `yaml:"max_workers" json:"max_workers"`

	// Files whose worst function exceeds this complexity are counted in
	// the summary's files_over_limit
	ComplexityLimit int `yaml:"complexity_limit" json:"complexity_limit"`
}

// HealthConfig holds the sub-score weights and penalty knees used by the
// health score composer. Weights must sum to 1.
type HealthConfig struct {
	Weights HealthWeights `yaml:"weights" json:"weights"`

	// Average complexity above the knee is penalized steeply
	ComplexityKnee float64 `yaml:"complexity_knee" json:"complexity_knee"`

	// Functions longer than this many lines drag the length sub-score down
	FunctionLineCeiling int `yaml:"function_line_ceiling" json:"function_line_ceiling"`

	// Nesting beyond this depth drags the nesting sub-score down
	NestingCeiling int `yaml:"nesting_ceiling" json:"nesting_ceiling"`

	// Display tiers for the overall score
	ScoreThresholds ScoreThresholds `yaml:"score_thresholds" json:"score_thresholds"`
}

// ScoreThresholds splits the 0-100 overall score into display tiers used by
// the console reporter.
type ScoreThresholds struct {
	Excellent float64 `yaml:"excellent" json:"excellent"` // >= 90
	Good      float64 `yaml:"good" json:"good"`           // >= 75
	Fair      float64 `yaml:"fair" json:"fair"`           // >= 50
}

type HealthWeights struct {
	Complexity      float64 `yaml:"complexity" json:"complexity"`
	Maintainability float64 `yaml:"maintainability" json:"maintainability"`
	Length          float64 `yaml:"length" json:"length"`
	Nesting         float64 `yaml:"nesting" json:"nesting"`
}

// Sum returns the total weight mass.
func (w HealthWeights) Sum() float64 {
	return w.Complexity + w.Maintainability + w.Length + w.Nesting
}

type OutputConfig struct {
	// Default output format (console, json, html)
	Format string `yaml:"format" json:"format"`

	// Colorized output
	Colors bool `yaml:"colors" json:"colors"`

	// Verbosity level
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Output file path (optional)
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

type FilesConfig struct {
	// Include patterns (doublestar globs)
	Include []string `yaml:"include" json:"include"`

	// Exclude patterns
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Max file size (in KB); larger files are skipped
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Analysis: AnalysisConfig{
			MaxWorkers:      4,
			ComplexityLimit: 10,
		},
		Bands: classify.DefaultThresholds(),
		Health: HealthConfig{
			Weights: HealthWeights{
				Complexity:      0.35,
				Maintainability: 0.25,
				Length:          0.20,
				Nesting:         0.20,
			},
			ComplexityKnee:      10,
			FunctionLineCeiling: 50,
			NestingCeiling:      4,
			ScoreThresholds: ScoreThresholds{
				Excellent: 90,
				Good:      75,
				Fair:      50,
			},
		},
		Output: OutputConfig{
			Format:  "console",
			Colors:  true,
			Verbose: false,
		},
		Files: FilesConfig{
			Include:     []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx", "**/*.py"},
			Exclude:     []string{"node_modules/**", "vendor/**", ".git/**", "dist/**", "build/**"},
			MaxFileSize: 1024, // 1MB
		},
	}
}

// LoadConfig loads configuration from file or returns defaults. A file, if
// found, is merged on top of the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	possiblePaths := []string{
		".chromalint.yml",
		".chromalint.yaml",
		"chromalint.yml",
		"chromalint.yaml",
		".config/chromalint.yml",
		".config/chromalint.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Bands.Validate(); err != nil {
		return err
	}

	validFormats := []string{"console", "json", "html"}
	formatValid := false
	for _, format := range validFormats {
		if c.Output.Format == format {
			formatValid = true
			break
		}
	}
	if !formatValid {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	if c.Analysis.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1")
	}

	sum := c.Health.Weights.Sum()
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("health weights must sum to 1, got %.3f", sum)
	}
	if c.Health.ComplexityKnee < 1 {
		return fmt.Errorf("complexity_knee must be at least 1")
	}
	if c.Health.FunctionLineCeiling < 1 || c.Health.NestingCeiling < 1 {
		return fmt.Errorf("function_line_ceiling and nesting_ceiling must be at least 1")
	}

	st := c.Health.ScoreThresholds
	if st.Excellent < st.Good || st.Good < st.Fair || st.Fair < 0 {
		return fmt.Errorf("score thresholds must be in descending order")
	}

	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateConfig creates a sample configuration file
func GenerateConfig(configPath string) error {
	config := DefaultConfig()
	return config.SaveConfig(configPath)
}
