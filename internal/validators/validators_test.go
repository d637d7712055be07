package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateISBN(t *testing.T) {
	tests := []struct {
		name  string
		isbn  string
		valid bool
	}{
		{"valid ISBN", "9780743273565", true},
		{"valid ISBN with hyphens", "978-0-7432-7356-5", true},
		{"valid ISBN with spaces", "978 0743273565", true},
		{"bad checksum", "9780743273566", false},
		{"too short", "12345", false},
		{"too long", "97807432735650", false},
		{"non-numeric", "97807432735ab", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := ValidateISBN(tt.isbn)
			assert.Equal(t, tt.valid, valid, "reason: %s", reason)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestValidateISBN_ChecksumZero(t *testing.T) {
	// 9780141439518 has check digit computed via (10 - sum mod 10) mod 10
	valid, _ := ValidateISBN("9780141439518")
	assert.True(t, valid)
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year  string
		valid bool
	}{
		{"1925", true},
		{"1000", true},
		{"2100", true},
		{"999", false},
		{"2101", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		valid, _ := ValidateYear(tt.year)
		assert.Equal(t, tt.valid, valid, "year %q", tt.year)
	}
}

func TestValidatePages(t *testing.T) {
	tests := []struct {
		name    string
		current string
		total   string
		valid   bool
	}{
		{"valid pair", "50", "300", true},
		{"blank current treated as zero", "", "300", true},
		{"blank total treated as one", "0", "", true},
		{"current equals total", "300", "300", true},
		{"negative current", "-1", "300", false},
		{"zero total", "0", "0", false},
		{"current exceeds total", "301", "300", false},
		{"non-numeric current", "abc", "300", false},
		{"non-numeric total", "10", "xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidatePages(tt.current, tt.total)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		rating string
		valid  bool
	}{
		{"0", true},
		{"5", true},
		{"3.5", true},
		{"-0.1", false},
		{"5.1", false},
		{"bad", false},
	}

	for _, tt := range tests {
		valid, _ := ValidateRating(tt.rating)
		assert.Equal(t, tt.valid, valid, "rating %q", tt.rating)
	}
}

func TestValidateTitleAndAuthor(t *testing.T) {
	valid, _ := ValidateTitle("The Great Gatsby")
	assert.True(t, valid)

	valid, _ = ValidateTitle("   ")
	assert.False(t, valid)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	valid, _ = ValidateTitle(string(long))
	assert.False(t, valid)

	valid, _ = ValidateAuthor("Harper Lee")
	assert.True(t, valid)

	valid, _ = ValidateAuthor("")
	assert.False(t, valid)
}
