package utils

import (
	"strconv"
	"strings"
)

// MaxAmount is the largest figure ParseAmount accepts
const MaxAmount = 1_000_000_000

// ContainsAny reports whether s contains any of the keywords
func ContainsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ParseAmount parses a non-negative figure such as "1,500", "2k" or "2.5k".
// Returns false for anything non-numeric or above MaxAmount.
func ParseAmount(s string) (int, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ",", "")
	if whole, ok := strings.CutSuffix(s, "k"); ok {
		return parseThousands(whole)
	}
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxAmount {
		return 0, false
	}
	return n, true
}

// parseThousands parses the figure in front of a "k" suffix, allowing up to
// three decimal places
func parseThousands(s string) (int, bool) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 3 || strings.Trim(frac, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(whole)
	if err != nil || n < 0 || n > MaxAmount/1000 {
		return 0, false
	}
	n *= 1000
	if frac != "" {
		f, _ := strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
		n += f
	}
	if n > MaxAmount {
		return 0, false
	}
	return n, true
}

// CleanPlace trims whitespace and stray punctuation from a captured place
// name and collapses inner runs of whitespace
func CleanPlace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, ` !?;:"'()`)
}
