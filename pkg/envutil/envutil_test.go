//go:build !integration

package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetIntFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"unset uses default", "", 30},
		{"valid value", "45", 45},
		{"surrounding spaces", " 60 ", 60},
		{"lower bound", "1", 1},
		{"upper bound", "3600", 3600},
		{"not a number", "abc", 30},
		{"below bounds", "0", 30},
		{"above bounds", "3601", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TBB_TEST_INT", tt.value)
			assert.Equal(t, tt.expected, GetIntFromEnv("TBB_TEST_INT", 30, 1, 3600, nil))
		})
	}
}

func TestGetURLFromEnv(t *testing.T) {
	const def = "https://nightlies.example.org/builds"

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"unset uses default", "", def},
		{"valid https", "https://mirror.example.net/nightly", "https://mirror.example.net/nightly"},
		{"trailing slash trimmed", "http://localhost:8080/builds/", "http://localhost:8080/builds"},
		{"relative path rejected", "builds/nightly", def},
		{"unsupported scheme rejected", "ftp://mirror.example.net/nightly", def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TBB_TEST_URL", tt.value)
			assert.Equal(t, tt.expected, GetURLFromEnv("TBB_TEST_URL", def, nil))
		})
	}
}
