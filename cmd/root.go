package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"chromalint/internal/batch"
	"chromalint/internal/config"
	"chromalint/internal/models"
	"chromalint/internal/report"
	"chromalint/internal/watcher"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	formatFlag         string
	watchFlag          bool
	configFlag         string
	generateConfigFlag bool
	failBelowFlag      float64
	outputFlag         string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chromalint [files or directories]",
	Short: "A JavaScript/TypeScript complexity analyzer with code health scoring",
	Long: `chromalint measures cyclomatic complexity, maintainability and code
health for JavaScript, TypeScript and Python sources, and classifies every
function into a severity band.

Examples:
  chromalint .                             # Analyze current directory
  chromalint src/app.ts src/util.js        # Analyze specific files
  chromalint --format=json .               # Output results in JSON format
  chromalint --format=html -o report.html  # Render the HTML report
  chromalint --fail-below=70 .             # Exit non-zero below health 70
  chromalint --generate-config             # Generate sample config file`,
	Run: runAnalysis,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json, html)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch mode for development")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
	rootCmd.Flags().Float64Var(&failBelowFlag, "fail-below", 0, "Exit non-zero when the health score falls below this value")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the report to a file instead of stdout")
}

func runAnalysis(cmd *cobra.Command, args []string) {
	if generateConfigFlag {
		generateConfig()
		return
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		color.Red("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if outputFlag != "" {
		cfg.Output.OutputFile = outputFlag
	}
	if err := cfg.Validate(); err != nil {
		color.Red("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	if watchFlag {
		runWatch(cfg, args)
		return
	}

	result, err := analyzeOnce(cfg, args)
	if result != nil && failBelowFlag > 0 && result.Summary.HealthScore < failBelowFlag {
		color.Red("Health score %.1f is below the required %.1f\n",
			result.Summary.HealthScore, failBelowFlag)
	}
	if code := exitCode(result, err, failBelowFlag); code != 0 {
		os.Exit(code)
	}
}

// exitCode decides the process status for a one-shot run: a failed run, any
// per-file analysis error, or a health score below the gate exits non-zero.
// A nil result without an error means there was nothing to analyze.
func exitCode(result *models.BatchResult, err error, failBelow float64) int {
	if err != nil {
		return 1
	}
	if result == nil {
		return 0
	}
	if len(result.Failures) > 0 {
		return 1
	}
	if failBelow > 0 && result.Summary.HealthScore < failBelow {
		return 1
	}
	return 0
}

// analyzeOnce collects files, runs the batch and emits the report. Errors
// are printed here and returned so the caller can pick the exit status; a
// nil result with a nil error means there was nothing to analyze.
func analyzeOnce(cfg *config.Config, args []string) (*models.BatchResult, error) {
	files, err := batch.CollectFiles(args, cfg.Files)
	if err != nil {
		color.Red("Error collecting files: %v\n", err)
		return nil, err
	}
	if len(files) == 0 {
		color.Yellow("⚠️  No source files found to analyze\n")
		return nil, nil
	}

	if cfg.Output.Verbose {
		color.Cyan("🔍 Analyzing %d files with %d workers...\n\n", len(files), cfg.Analysis.MaxWorkers)
	} else {
		color.Cyan("🔍 Analyzing %d files...\n\n", len(files))
	}

	runner := batch.NewRunner(cfg)
	result, err := runner.Run(context.Background(), files)
	if err != nil {
		color.Red("Analysis failed: %v\n", err)
		return nil, err
	}

	reportGen := report.NewGenerator(cfg)
	rendered, err := reportGen.Generate(result)
	if err != nil {
		color.Red("Failed to generate report: %v\n", err)
		return result, err
	}

	if cfg.Output.OutputFile != "" {
		if err := writeReportToFile(rendered, cfg.Output.OutputFile); err != nil {
			color.Red("Failed to write report to file: %v\n", err)
			return result, err
		}
		color.Green("📄 Report saved to: %s\n", cfg.Output.OutputFile)
	} else {
		fmt.Print(rendered)
	}

	return result, nil
}

// runWatch re-analyzes on every change burst until interrupted.
func runWatch(cfg *config.Config, args []string) {
	fw, err := watcher.NewFileWatcher(cfg)
	if err != nil {
		color.Red("Failed to start watch mode: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	handler := func(changed []string) error {
		color.Cyan("\n👀 Change detected in %d file(s), re-analyzing...\n", len(changed))
		analyzeOnce(cfg, args)
		return nil
	}
	if err := fw.Watch(args, handler); err != nil {
		color.Red("Failed to watch paths: %v\n", err)
		os.Exit(1)
	}

	analyzeOnce(cfg, args)
	color.Cyan("\n👀 Watching for changes (Ctrl+C to stop)...\n")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

func writeReportToFile(rendered, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, []byte(rendered), 0644)
}

func generateConfig() {
	configPath := ".chromalint.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		color.Red("Failed to generate config file: %v\n", err)
		os.Exit(1)
	}
	color.Green("✅ Generated sample configuration file: %s\n", configPath)
	color.Cyan("📝 Edit this file to customize chromalint behavior\n")
	color.Cyan("🚀 Run 'chromalint --config=%s .' to use it\n", configPath)
}
