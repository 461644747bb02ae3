package helpers

import "database/sql"

// GetNullString converts a string pointer to sql.NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetContentNullString converts a string value to sql.NullString, treating
// the empty string as NULL.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// StringOrEmpty dereferences a string pointer, mapping nil to "".
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PtrOrNil returns a pointer to s, or nil when s is empty. Used when
// writing optional columns so empty strings stay NULL in the database.
func PtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
