/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command for the Lyra Schema engine. Validates reader
registration, log directory writability, business rule table consistency, and
optionally the readability and detectability of an input file.
*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/lyra-schema/pkg/inference"
	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// PerformSelfCheck performs system validation
func PerformSelfCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Lyra Schema - System Self-Check")
	fmt.Println("==================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	checks := []struct {
		name     string
		function func() error
	}{
		{"Registered Readers", checkRegisteredReaders},
		{"Business Rule Table", checkRuleTable},
		{"Log Directory", checkLogDirectory},
		{"Input File", checkInputFile},
	}

	passed := 0
	total := len(checks)

	for _, check := range checks {
		fmt.Printf("Checking %s... ", check.name)
		if err := check.function(); err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			continue
		}
		fmt.Println("✅ PASSED")
		passed++
	}

	fmt.Println()
	fmt.Printf("📊 %d/%d checks passed\n", passed, total)
	if passed < total {
		return fmt.Errorf("self-check failed: %d of %d checks did not pass", total-passed, total)
	}

	fmt.Println("✨ All checks passed!")
	return nil
}

func checkRegisteredReaders() error {
	kinds := readers.Kinds()
	if len(kinds) == 0 {
		return fmt.Errorf("no readers registered")
	}
	for _, required := range []string{"csv", "jsonl", "html", "sqlite", "parquet"} {
		found := false
		for _, kind := range kinds {
			if kind == required {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("reader for kind %q missing", required)
		}
	}
	return nil
}

func checkRuleTable() error {
	rules := inference.BusinessRules()
	if len(rules) == 0 {
		return fmt.Errorf("business rule table is empty")
	}
	last := 0
	for _, rule := range rules {
		if rule.Priority <= last {
			return fmt.Errorf("rule %q breaks priority ordering", rule.Name)
		}
		last = rule.Priority
	}
	return nil
}

func checkLogDirectory() error {
	logDir := viper.GetString("log_dir")
	if logDir == "" {
		logDir = "./logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	probe := filepath.Join(logDir, ".lyra-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("log directory not writable: %w", err)
	}
	os.Remove(probe)
	return nil
}

func checkInputFile() error {
	input := viper.GetString("input")
	if input == "" {
		// No input supplied; nothing to validate.
		return nil
	}
	kind, err := readers.DetectKind(input)
	if err != nil {
		return err
	}
	fmt.Printf("(detected %s) ", kind)
	return nil
}
