/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: business.go
Description: Business type matcher for the Lyra Schema engine. Classifies string
values against an explicit, priority-ordered table of semantic rules (email, url,
uuid, credit_card, ...). The first matching rule wins, so the tie-break policy is
a visible artifact rather than implicit code order.
*/

package inference

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BusinessRule is one entry in the ordered rule table. Lower priority numbers
// are checked first and win on ambiguity.
type BusinessRule struct {
	Name     string
	Priority int
	Match    func(value string) bool
}

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern      = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)
	ipv6Pattern     = regexp.MustCompile(`^([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)
	ipv4Pattern     = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
	macPattern      = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)
	uuidPattern     = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	cardPattern     = regexp.MustCompile(`^\d{13,19}$`)
	hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
	base64Pattern   = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
	currencyPattern = regexp.MustCompile(`^[\$€£¥₹]\s?[\d,]+\.?\d*$`)
	numberPairRe    = regexp.MustCompile(`^-?\d+\.?\d*,\d+\.?\d*$`)
	isbnPattern     = regexp.MustCompile(`^(ISBN[- ]?)?(\d{10}|\d{13})$`)
	cardStripRe     = regexp.MustCompile(`[\s-]`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`),
		regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),
		regexp.MustCompile(`^\(\d{3}\)\s?\d{3}-\d{4}$`),
		regexp.MustCompile(`^\+\d{1,3}[\s\-]?\d{1,4}[\s\-]?\d{1,4}[\s\-]?\d{1,9}$`),
	}

	postalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{5}(-\d{4})?$`),
		regexp.MustCompile(`(?i)^[A-Z]\d[A-Z]\s?\d[A-Z]\d$`),
		regexp.MustCompile(`(?i)^[A-Z]{1,2}\d{1,2}\s?\d[A-Z]{2}$`),
	}
)

// Date-bearing layouts checked in order. Layouts with a clock component
// classify as datetime, the rest as date.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z07:00",
	"01/02/2006 15:04:05",
	"02/01/2006 15:04:05",
	"15:04:05",
	"15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",
}

// Unix timestamps are plausible between the epoch and 2100-01-01.
const maxUnixTimestamp = 4102444800

// businessRules is the prioritized rule table. Structurally specific patterns
// come before looser numeric/textual ones that could match their substrings.
var businessRules = []BusinessRule{
	{Name: "email", Priority: 1, Match: matchEmail},
	{Name: "url", Priority: 2, Match: matchURL},
	{Name: "ipv6_address", Priority: 3, Match: matchIPv6},
	{Name: "ip_address", Priority: 4, Match: matchIPv4},
	{Name: "mac_address", Priority: 5, Match: matchMAC},
	{Name: "uuid", Priority: 6, Match: matchUUID},
	{Name: "credit_card", Priority: 7, Match: matchCreditCard},
	{Name: "hex_color", Priority: 8, Match: matchHexColor},
	{Name: "base64", Priority: 9, Match: matchBase64},
	{Name: "percentage", Priority: 10, Match: matchPercentage},
	{Name: "currency", Priority: 11, Match: matchCurrency},
	{Name: "timestamp", Priority: 12, Match: matchTimestamp},
	{Name: "datetime", Priority: 13, Match: matchDatetime},
	{Name: "date", Priority: 14, Match: matchDate},
	{Name: "phone_number", Priority: 15, Match: matchPhone},
	{Name: "postal_code", Priority: 16, Match: matchPostalCode},
	{Name: "isbn", Priority: 17, Match: matchISBN},
	{Name: "json", Priority: 18, Match: matchJSON},
	{Name: "array", Priority: 19, Match: matchArray},
}

// BusinessRules returns the rule table in priority order.
func BusinessRules() []BusinessRule {
	rules := make([]BusinessRule, len(businessRules))
	copy(rules, businessRules)
	return rules
}

// businessPriority maps rule names to their priority for resolver tie-breaks.
var businessPriority = func() map[string]int {
	m := make(map[string]int, len(businessRules))
	for _, rule := range businessRules {
		m[rule.Name] = rule.Priority
	}
	return m
}()

// MatchBusinessType returns the highest-priority business type matching the
// value, or ("", false) when no rule matches.
func MatchBusinessType(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, rule := range businessRules {
		if rule.Match(value) {
			return rule.Name, true
		}
	}
	return "", false
}

func matchEmail(v string) bool { return emailPattern.MatchString(v) }
func matchURL(v string) bool   { return urlPattern.MatchString(v) }
func matchIPv6(v string) bool  { return ipv6Pattern.MatchString(v) }
func matchMAC(v string) bool   { return macPattern.MatchString(v) }

func matchIPv4(v string) bool {
	if !ipv4Pattern.MatchString(v) {
		return false
	}
	for _, part := range strings.Split(v, ".") {
		octet, err := strconv.Atoi(part)
		if err != nil || octet > 255 {
			return false
		}
	}
	return true
}

func matchUUID(v string) bool {
	if !uuidPattern.MatchString(v) {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

// matchCreditCard requires a Luhn-valid digit string so arbitrary 13-19 digit
// runs do not classify as card numbers.
func matchCreditCard(v string) bool {
	cleaned := cardStripRe.ReplaceAllString(v, "")
	if !cardPattern.MatchString(cleaned) {
		return false
	}
	return luhnValid(cleaned)
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func matchHexColor(v string) bool { return hexColorPattern.MatchString(v) }

func matchBase64(v string) bool {
	return len(v) > 20 && len(v)%4 == 0 && base64Pattern.MatchString(v)
}

func matchPercentage(v string) bool {
	if !strings.HasSuffix(v, "%") {
		return false
	}
	num := strings.TrimSpace(strings.TrimSuffix(v, "%"))
	_, err := strconv.ParseFloat(num, 64)
	return err == nil
}

func matchCurrency(v string) bool { return currencyPattern.MatchString(v) }

func matchTimestamp(v string) bool {
	ts, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return ts >= 0 && ts <= maxUnixTimestamp
}

func matchDatetime(v string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func matchDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func matchPhone(v string) bool {
	for _, pattern := range phonePatterns {
		if pattern.MatchString(v) {
			return true
		}
	}
	return false
}

func matchPostalCode(v string) bool {
	for _, pattern := range postalPatterns {
		if pattern.MatchString(v) {
			return true
		}
	}
	return false
}

func matchISBN(v string) bool { return isbnPattern.MatchString(v) }

func matchJSON(v string) bool {
	wrapped := (strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}")) ||
		(strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]"))
	return wrapped && json.Valid([]byte(v))
}

// matchArray requires at least two delimiter-separated tokens; a bare value
// with no delimiter is not an array, and neither is a "1.5,2" coordinate pair.
func matchArray(v string) bool {
	if !strings.Contains(v, ",") || numberPairRe.MatchString(v) {
		return false
	}
	parts := strings.Split(v, ",")
	tokens := 0
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			tokens++
		}
	}
	return tokens >= 2
}
