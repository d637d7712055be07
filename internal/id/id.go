// Package id produces the unique string identifiers assigned to catalog
// records.
package id

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const suffixLength = 8

// Generate creates a prefixed unique ID from the current timestamp and a
// random NanoID suffix.
// Format: prefix-yyyymmddhhmmss-suffix (e.g., "book-20250901121530-V1StGXR8").
//
// The timestamp keeps IDs roughly sortable by creation time; the NanoID
// suffix disambiguates records created within the same second.
//
// Returns an error if the system has insufficient entropy for secure
// random generation.
func Generate(prefix string) (string, error) {
	suffix, err := gonanoid.New(suffixLength)
	if err != nil {
		return "", fmt.Errorf("generate id suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102150405"), suffix), nil
}

// MustGenerate is like Generate but panics if ID generation fails. Use it
// only where failure should crash the program, e.g. while seeding sample
// data at startup.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
