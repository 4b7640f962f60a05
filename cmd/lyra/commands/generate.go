/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generate.go
Description: Generate command implementation for the Lyra Schema engine. Runs one
schema generation over a bounded sample of the input file and writes the resulting
document to stdout, an explicit path, or a timestamped output directory.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kleascm/lyra-schema/pkg/inference"
	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/kleascm/lyra-schema/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunGenerate executes one schema generation run
func RunGenerate(cmd *cobra.Command, args []string) error {
	fmt.Println("🔮 Lyra Schema - Generating Schema")
	fmt.Println("==================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer CloseLogging()

	input := viper.GetString("input")
	opts := inference.Options{
		SampleRows:        viper.GetInt("sample_rows"),
		UseBusinessTypes:  viper.GetBool("business_types"),
		SourceKind:        viper.GetString("source_kind"),
		BusinessConsensus: viper.GetFloat64("consensus"),
		SkipBadRecords:    viper.GetBool("skip_bad_records"),
		Logger:            EngineLogger(),
	}

	fmt.Printf("📁 Input: %s\n", input)
	if opts.SourceKind != "" {
		fmt.Printf("🎯 Source kind: %s\n", opts.SourceKind)
	} else {
		fmt.Println("🎯 Source kind: auto-detect")
	}
	fmt.Printf("📊 Sample rows: %d\n", opts.SampleRows)
	fmt.Printf("🏷️  Business types: %v\n", opts.UseBusinessTypes)
	fmt.Println()

	startTime := time.Now()
	doc, err := inference.GenerateSchema(context.Background(), input, opts)
	if err != nil {
		if readers.IsDecodeError(err) {
			return fmt.Errorf("malformed record in %s (use --skip-bad-records to drop them): %w", input, err)
		}
		return fmt.Errorf("schema generation failed: %w", err)
	}
	fmt.Printf("✅ Schema generated in %v\n", time.Since(startTime))
	fmt.Printf("   %d rows sampled, %d columns resolved\n", doc.Metadata.NumRows, doc.Metadata.NumColumns)
	fmt.Println()

	// Write results
	if outputDir := viper.GetString("output_dir"); outputDir != "" {
		path, err := utils.WriteSchemaResult(outputDir, doc)
		if err != nil {
			return err
		}
		logSchemaWritten(path)
		fmt.Printf("💾 Schema saved to: %s\n", path)
		return nil
	}

	if output := viper.GetString("output"); output != "" {
		if err := utils.WriteSchemaTo(output, doc); err != nil {
			return err
		}
		logSchemaWritten(output)
		fmt.Printf("💾 Schema saved to: %s\n", output)
		return nil
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func logSchemaWritten(path string) {
	if appLogger == nil {
		return
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	appLogger.LogSchemaWritten(path, size)
}
