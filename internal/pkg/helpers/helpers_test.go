package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	// Out-of-range values fall back to defaults
	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, 45, info.TotalItems)

	// An empty result set still reports a single page
	info = NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.TotalPages)

	// A page past the end is clamped
	info = NewPaginationInfo(10, 5, 20)
	assert.Equal(t, 1, info.CurrentPage)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Hour, ParseDuration("1h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestStringHelpers(t *testing.T) {
	s := "hello"
	assert.Equal(t, "hello", StringOrEmpty(&s))
	assert.Equal(t, "", StringOrEmpty(nil))

	assert.Nil(t, PtrOrNil(""))
	if p := PtrOrNil("x"); assert.NotNil(t, p) {
		assert.Equal(t, "x", *p)
	}

	assert.False(t, GetNullString(nil).Valid)
	assert.True(t, GetNullString(&s).Valid)
	assert.False(t, GetContentNullString("").Valid)
	assert.True(t, GetContentNullString("x").Valid)
}
