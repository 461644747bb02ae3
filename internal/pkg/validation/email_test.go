package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		wantValid      bool
		wantSuggestion string
	}{
		{
			name:      "valid gmail address",
			email:     "jon@gmail.com",
			wantValid: true,
		},
		{
			name:           "transposed provider typo",
			email:          "jon@gmial.com",
			wantValid:      false,
			wantSuggestion: "jon@gmail.com",
		},
		{
			name:           "near miss of common provider",
			email:          "ana@gmaill.com",
			wantValid:      false,
			wantSuggestion: "ana@gmail.com",
		},
		{
			name:      "empty input",
			email:     "",
			wantValid: false,
		},
		{
			name:      "missing at sign",
			email:     "jon.gmail.com",
			wantValid: false,
		},
		{
			name:      "missing tld",
			email:     "jon@gmail",
			wantValid: false,
		},
		{
			name:      "consecutive dots in local part",
			email:     "jon..doe@gmail.com",
			wantValid: false,
		},
		{
			name:      "whitespace is trimmed",
			email:     "  jon@gmail.com  ",
			wantValid: true,
		},
		{
			name:      "philippine provider accepted",
			email:     "maria@yahoo.com.ph",
			wantValid: true,
		},
		{
			name:      "unknown but sane domain accepted without suggestion",
			email:     "dev@example.org",
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateEmail(tt.email)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantSuggestion, result.Suggestion)
		})
	}
}

func TestValidateEmailTLDTypoFix(t *testing.T) {
	// .con is not within edit distance of any list entry for long domains
	// but the explicit TLD fixes should still catch provider typos.
	result := ValidateEmail("jon@gmail.con")
	assert.Equal(t, "jon@gmail.com", result.Suggestion)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("gmail.com", "gmail.com", 2))
	// A transposition counts as two substitutions under plain Levenshtein.
	assert.Equal(t, 2, levenshtein("gmial.com", "gmail.com", 2))
	// Distances beyond the cap bail out at max+1.
	assert.Equal(t, 3, levenshtein("completely", "different!", 2))
}
