package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Validation limits
var (
	// Password min length
	PasswordMinLength = 8

	// Phone digit count bounds (local and international formats)
	PhoneMinDigits = 7
	PhoneMaxDigits = 15

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

var phoneAllowedChars = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)

// ValidatePassword checks that a password meets the minimum requirements:
// length, at least one letter and at least one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("password must contain at least one letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	return nil
}

// ValidatePhone checks a phone number by digit count, tolerating separators
// and a leading plus sign. Empty input is accepted; phone is optional
// everywhere it appears.
func ValidatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return nil
	}
	if !phoneAllowedChars.MatchString(trimmed) {
		return fmt.Errorf("phone number contains invalid characters")
	}

	digits := 0
	for _, char := range trimmed {
		if unicode.IsDigit(char) {
			digits++
		}
	}
	if digits < PhoneMinDigits || digits > PhoneMaxDigits {
		return fmt.Errorf("phone number must contain between %d and %d digits", PhoneMinDigits, PhoneMaxDigits)
	}
	return nil
}

// ValidateName checks a person name field against length bounds.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < NameMinLength {
		return fmt.Errorf("name must be at least %d characters long", NameMinLength)
	}
	if len(trimmed) > NameMaxLength {
		return fmt.Errorf("name must be at most %d characters long", NameMaxLength)
	}
	return nil
}
