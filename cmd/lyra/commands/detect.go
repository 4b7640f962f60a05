/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detect.go
Description: Detect command implementation for the Lyra Schema engine. Reports the
source kind of a data file using the same detector the generate command relies on.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunDetect detects and prints the source kind of a file
func RunDetect(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Lyra Schema - Source Kind Detection")
	fmt.Println("======================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer CloseLogging()

	input := viper.GetString("detect_input")
	if appLogger != nil {
		appLogger.Debug("Detecting source kind", map[string]interface{}{"source": input})
	}
	kind, err := readers.DetectKind(input)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	if appLogger != nil {
		appLogger.LogDetection(input, kind)
	}

	fmt.Printf("📁 %s\n", input)
	fmt.Printf("🎯 Detected kind: %s\n", kind)
	return nil
}
