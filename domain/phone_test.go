package domain

import "testing"

func TestNormalizeMSISDN(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "leading zero replaced with country prefix",
			raw:      "0712345678",
			expected: "254712345678",
		},
		{
			name:     "already international stays unchanged",
			raw:      "254712345678",
			expected: "254712345678",
		},
		{
			name:     "missing prefix gets prepended",
			raw:      "712345678",
			expected: "254712345678",
		},
		{
			name:     "non-digits stripped before normalizing",
			raw:      "+254 712-345-678",
			expected: "254712345678",
		},
		{
			name:     "spaces and leading zero",
			raw:      "07 1234 5678",
			expected: "254712345678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMSISDN(tt.raw, "254")
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNormalizeMSISDN_Idempotent(t *testing.T) {
	inputs := []string{"0712345678", "254712345678", "712345678", "+254 712 345 678"}

	for _, raw := range inputs {
		once := NormalizeMSISDN(raw, "254")
		twice := NormalizeMSISDN(once, "254")
		if once != twice {
			t.Errorf("normalizer not idempotent for %q: %s then %s", raw, once, twice)
		}
	}
}
