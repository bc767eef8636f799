package credential

import "strings"

// Mask hides all but the first three and last four characters of apiKey.
// Short keys are hidden completely.
func Mask(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 12 {
		return strings.Repeat("*", len(apiKey))
	}
	return apiKey[:3] + strings.Repeat("*", len(apiKey)-7) + apiKey[len(apiKey)-4:]
}
