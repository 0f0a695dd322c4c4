package domain

import "strings"

// NormalizeMSISDN converts a local phone number into its international
// form: non-digits are stripped, a leading "0" is replaced with the
// country prefix, and a number lacking the prefix gets it prepended.
// The function is idempotent: normalizing an already-normalized number
// returns it unchanged.
func NormalizeMSISDN(raw, countryPrefix string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if strings.HasPrefix(cleaned, "0") {
		cleaned = countryPrefix + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, countryPrefix) {
		cleaned = countryPrefix + cleaned
	}
	return cleaned
}
