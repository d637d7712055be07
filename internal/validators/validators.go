// Package validators holds the pure field-level checks used when books are
// entered or edited. Every validator returns a pass/fail flag plus a
// human-readable reason the caller can surface directly.
package validators

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateISBN checks an ISBN-13: hyphens and spaces are stripped, the
// result must be exactly 13 digits and the final digit must match the
// ISBN-13 checksum (alternating weights 1 and 3 over the first 12 digits).
func ValidateISBN(isbn string) (bool, string) {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(isbn, "-", ""), " ", "")

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false, "ISBN must contain only numbers"
		}
	}
	if len(cleaned) != 13 {
		return false, "ISBN must be 13 digits"
	}

	total := 0
	for i := 0; i < 12; i++ {
		digit := int(cleaned[i] - '0')
		if i%2 == 0 {
			total += digit
		} else {
			total += digit * 3
		}
	}
	checkDigit := (10 - total%10) % 10

	if int(cleaned[12]-'0') != checkDigit {
		return false, "Invalid ISBN checksum"
	}
	return true, "Valid ISBN"
}

// ValidateYear checks a publication year string: integer, 1000..2100.
func ValidateYear(year string) (bool, string) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return false, "Year must be a valid number"
	}
	if y < 1000 || y > 2100 {
		return false, "Year must be between 1000 and 2100"
	}
	return true, "Valid year"
}

// ValidatePages checks a current/total page pair. A blank current page is
// treated as 0 and a blank total as 1, matching how the entry form leaves
// optional fields empty.
func ValidatePages(currentPage, totalPages string) (bool, string) {
	current := 0
	if strings.TrimSpace(currentPage) != "" {
		c, err := strconv.Atoi(strings.TrimSpace(currentPage))
		if err != nil {
			return false, "Pages must be valid numbers"
		}
		current = c
	}

	total := 1
	if strings.TrimSpace(totalPages) != "" {
		t, err := strconv.Atoi(strings.TrimSpace(totalPages))
		if err != nil {
			return false, "Pages must be valid numbers"
		}
		total = t
	}

	if current < 0 {
		return false, "Current page cannot be negative"
	}
	if total <= 0 {
		return false, "Total pages must be greater than 0"
	}
	if current > total {
		return false, fmt.Sprintf("Current page (%d) cannot exceed total pages (%d)", current, total)
	}
	return true, "Valid pages"
}

// ValidateRating checks a rating string: float, 0.0..5.0.
func ValidateRating(rating string) (bool, string) {
	r, err := strconv.ParseFloat(strings.TrimSpace(rating), 64)
	if err != nil {
		return false, "Rating must be a valid number"
	}
	if r < 0 || r > 5 {
		return false, "Rating must be between 0 and 5"
	}
	return true, "Valid rating"
}

// ValidateTitle checks that a title is non-empty and at most 200 characters.
func ValidateTitle(title string) (bool, string) {
	if strings.TrimSpace(title) == "" {
		return false, "Title cannot be empty"
	}
	if len(title) > 200 {
		return false, "Title cannot exceed 200 characters"
	}
	return true, "Valid title"
}

// ValidateAuthor checks that an author name is non-empty and at most 100
// characters.
func ValidateAuthor(author string) (bool, string) {
	if strings.TrimSpace(author) == "" {
		return false, "Author cannot be empty"
	}
	if len(author) > 100 {
		return false, "Author name cannot exceed 100 characters"
	}
	return true, "Valid author"
}
