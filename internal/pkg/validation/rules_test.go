package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "secret1pass", false},
		{"empty", "", true},
		{"too short", "ab1", true},
		{"no digit", "secretpass", true},
		{"no letter", "12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone(""))
	assert.NoError(t, ValidatePhone("+63 917 123 4567"))
	assert.NoError(t, ValidatePhone("(02) 8123-4567"))
	assert.Error(t, ValidatePhone("12345"))
	assert.Error(t, ValidatePhone("1234567890123456"))
	assert.Error(t, ValidatePhone("call me maybe"))
}
