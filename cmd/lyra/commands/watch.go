/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: watch.go
Description: Watch command implementation for the Lyra Schema engine. Watches a
data file with fsnotify and regenerates its schema every time the file is written,
emitting timestamped schema documents to the output directory.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kleascm/lyra-schema/pkg/inference"
	"github.com/kleascm/lyra-schema/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Writes often arrive in bursts; wait for the file to settle before reading.
const settleDelay = 250 * time.Millisecond

// RunWatch regenerates the schema whenever the input file changes
func RunWatch(cmd *cobra.Command, args []string) error {
	fmt.Println("👀 Lyra Schema - Watch Mode")
	fmt.Println("===========================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer CloseLogging()

	input := viper.GetString("watch_input")
	outputDir := viper.GetString("watch_output_dir")
	opts := inference.Options{
		SampleRows:       viper.GetInt("watch_sample_rows"),
		UseBusinessTypes: viper.GetBool("watch_business_types"),
		Logger:           EngineLogger(),
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("cannot watch input: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and pipelines often replace the file,
	// which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", input, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping watch...")
		cancel()
	}()

	appLogger.Info("Watching for changes", map[string]interface{}{"source": input})
	fmt.Printf("📁 Watching: %s\n", input)
	fmt.Printf("💾 Output: %s\n", outputDir)
	fmt.Println()

	// Generate once up front so the watcher starts from a known-good state.
	if err := regenerate(ctx, input, outputDir, opts); err != nil {
		fmt.Printf("⚠️  Initial generation failed: %v\n", err)
	}

	target := filepath.Clean(input)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("✨ Watch stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			time.Sleep(settleDelay)
			if err := regenerate(ctx, input, outputDir, opts); err != nil {
				appLogger.Error("Regeneration failed", map[string]interface{}{"error": err.Error()})
				fmt.Printf("⚠️  Regeneration failed: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger.Warning("Watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}

func regenerate(ctx context.Context, input string, outputDir string, opts inference.Options) error {
	doc, err := inference.GenerateSchema(ctx, input, opts)
	if err != nil {
		return err
	}
	path, err := utils.WriteSchemaResult(outputDir, doc)
	if err != nil {
		return err
	}
	logSchemaWritten(path)
	fmt.Printf("✅ %s: %d rows, %d columns → %s\n",
		time.Now().Format("15:04:05"), doc.Metadata.NumRows, doc.Metadata.NumColumns, path)
	return nil
}
