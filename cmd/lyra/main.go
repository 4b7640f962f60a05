/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Lyra Schema engine. Provides
command-line options, configuration management, and a clean user interface for
generating schemas from data files with structured logging.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/lyra-schema/cmd/lyra/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64

	// Generation configuration
	inputPath        string
	outputPath       string
	outputDir        string
	sampleRows       int
	useBusinessTypes bool
	sourceKind       string
	consensus        float64
	skipBadRecords   bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "lyra-schema",
		Short: "Lyra Schema - automatic schema inference for tabular and semi-structured data",
		Long: `Lyra Schema infers a JSON Schema (draft-07) from a bounded sample of records
drawn from CSV, JSONL, HTML table, or SQLite sources. It reconciles heterogeneous
values into one primitive type per field, classifies string fields into semantic
business types (email, url, uuid, ...), and merges arbitrarily nested structures
observed across the sample into one consistent shape.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")

	// Bind persistent flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))

	// Add generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a schema from a data file",
		Long: `Generate a JSON Schema document from a bounded sample of a data file.
The source kind (csv, jsonl, html, sqlite, parquet) is auto-detected from the
file extension and content unless --source-kind selects one explicitly.`,
		RunE: commands.RunGenerate,
	}

	generateCmd.Flags().StringVar(&inputPath, "input", "", "Path to input data file (required)")
	generateCmd.Flags().StringVar(&outputPath, "output", "", "Path for the schema document (default: stdout)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for timestamped schema files")
	generateCmd.Flags().IntVar(&sampleRows, "sample-rows", 100, "Maximum records to sample")
	generateCmd.Flags().BoolVar(&useBusinessTypes, "business-types", true, "Infer semantic business types for string fields")
	generateCmd.Flags().StringVar(&sourceKind, "source-kind", "", "Explicit source kind (csv, jsonl, html, sqlite, parquet)")
	generateCmd.Flags().Float64Var(&consensus, "consensus", 1.0, "Fraction of sampled values that must agree on a business type")
	generateCmd.Flags().BoolVar(&skipBadRecords, "skip-bad-records", false, "Skip records that fail to decode instead of aborting")

	generateCmd.MarkFlagRequired("input")

	viper.BindPFlag("input", generateCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("output_dir", generateCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("sample_rows", generateCmd.Flags().Lookup("sample-rows"))
	viper.BindPFlag("business_types", generateCmd.Flags().Lookup("business-types"))
	viper.BindPFlag("source_kind", generateCmd.Flags().Lookup("source-kind"))
	viper.BindPFlag("consensus", generateCmd.Flags().Lookup("consensus"))
	viper.BindPFlag("skip_bad_records", generateCmd.Flags().Lookup("skip-bad-records"))

	rootCmd.AddCommand(generateCmd)

	// Add detect command
	detectCmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the source kind of a data file",
		Long: `Detect whether a file is csv, jsonl, html, sqlite, or parquet using its
extension and content, without generating a schema.`,
		RunE: commands.RunDetect,
	}
	detectCmd.Flags().String("input", "", "Path to input data file (required)")
	detectCmd.MarkFlagRequired("input")
	viper.BindPFlag("detect_input", detectCmd.Flags().Lookup("input"))
	rootCmd.AddCommand(detectCmd)

	// Add list-rules command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list-rules",
		Short: "List business type rules and their priorities",
		Long: `List all business type rules in the Lyra Schema engine in priority order,
showing how ambiguity between overlapping patterns is resolved.`,
		Run: commands.ListRules,
	})

	// Add watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a data file and regenerate its schema on change",
		Long: `Watch a data file and regenerate its schema every time the file is written,
writing timestamped schema documents to the output directory. Useful while a
pipeline upstream is still evolving its output format.`,
		RunE: commands.RunWatch,
	}
	watchCmd.Flags().StringVar(&inputPath, "input", "", "Path to input data file (required)")
	watchCmd.Flags().StringVar(&outputDir, "output-dir", "./schemas", "Directory for timestamped schema files")
	watchCmd.Flags().IntVar(&sampleRows, "sample-rows", 100, "Maximum records to sample")
	watchCmd.Flags().BoolVar(&useBusinessTypes, "business-types", true, "Infer semantic business types for string fields")
	watchCmd.MarkFlagRequired("input")
	viper.BindPFlag("watch_input", watchCmd.Flags().Lookup("input"))
	viper.BindPFlag("watch_output_dir", watchCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("watch_sample_rows", watchCmd.Flags().Lookup("sample-rows"))
	viper.BindPFlag("watch_business_types", watchCmd.Flags().Lookup("business-types"))
	rootCmd.AddCommand(watchCmd)

	// Add check command for built-in self-checks
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Perform built-in self-checks for system validation",
		Long: `Perform checks to validate input readability, source kind detectability,
reader availability, and log/output writability. Useful for CI/CD integration.`,
		RunE: commands.PerformSelfCheck,
	})

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
