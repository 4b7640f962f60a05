/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rules.go
Description: List-rules command implementation for the Lyra Schema engine. Prints
the business type rule table in priority order with example values, making the
ambiguity tie-break policy visible to users.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/lyra-schema/pkg/inference"
	"github.com/spf13/cobra"
)

// ruleExamples shows one representative value per rule.
var ruleExamples = map[string]string{
	"email":        "user@example.com",
	"url":          "https://example.com/path",
	"ipv6_address": "2001:0db8:85a3:0000:0000:8a2e:0370:7334",
	"ip_address":   "192.168.1.1",
	"mac_address":  "00:1A:2B:3C:4D:5E",
	"uuid":         "550e8400-e29b-41d4-a716-446655440000",
	"credit_card":  "4539 1488 0343 6467",
	"hex_color":    "#FF5733",
	"base64":       "SGVsbG8sIFdvcmxkISBCYXNlNjQu",
	"percentage":   "42.5%",
	"currency":     "$1,299.99",
	"timestamp":    "1715203200",
	"datetime":     "2024-05-08 21:30:00",
	"date":         "2024-05-08",
	"phone_number": "555-867-5309",
	"postal_code":  "K1A 0B1",
	"isbn":         "ISBN 9780306406157",
	"json":         `{"key": "value"}`,
	"array":        "red, green, blue",
}

// ListRules lists business type rules in priority order
func ListRules(cmd *cobra.Command, args []string) {
	fmt.Println("🏷️  Lyra Schema - Business Type Rules")
	fmt.Println("=====================================")
	fmt.Println()
	fmt.Println("Rules are checked top to bottom; the first match wins, so more")
	fmt.Println("structurally specific patterns shadow looser ones.")
	fmt.Println()

	for _, rule := range inference.BusinessRules() {
		example := ruleExamples[rule.Name]
		fmt.Printf("  %2d. %-14s e.g. %s\n", rule.Priority, rule.Name, example)
	}

	fmt.Println()
	fmt.Println("✨ Use --business-types=false to disable semantic classification.")
}
