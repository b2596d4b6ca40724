// Package envutil reads configuration overrides from environment variables.
package envutil

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/tbb-tools/tbtools/pkg/console"
	"github.com/tbb-tools/tbtools/pkg/logger"
)

// GetIntFromEnv reads an integer from envVar and checks it against the
// inclusive [minValue, maxValue] range.
//
// defaultValue is returned when the variable is unset, not a number or out of
// bounds. The last two cases also print a warning to stderr, e.g. for
// TBB_STARTUP_TEST_RUN_FOR=abc.
func GetIntFromEnv(envVar string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	envValue := strings.TrimSpace(os.Getenv(envVar))
	if envValue == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(envValue)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Invalid %s value '%s' (must be a number), using default %d", envVar, envValue, defaultValue),
		))
		return defaultValue
	}

	if val < minValue || val > maxValue {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("%s value %d is out of bounds (must be %d-%d), using default %d", envVar, val, minValue, maxValue, defaultValue),
		))
		return defaultValue
	}

	if log != nil {
		log.Printf("Using %s=%d", envVar, val)
	}
	return val
}

// GetURLFromEnv reads an absolute http(s) URL from envVar. A trailing slash is
// removed so callers can append path segments with "/".
//
// defaultValue is returned when the variable is unset or does not hold an
// absolute http(s) URL; the latter also prints a warning to stderr.
func GetURLFromEnv(envVar string, defaultValue string, log *logger.Logger) string {
	envValue := strings.TrimSpace(os.Getenv(envVar))
	if envValue == "" {
		return defaultValue
	}

	parsed, err := url.Parse(envValue)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Invalid %s value '%s' (must be an absolute http(s) URL), using default %s", envVar, envValue, defaultValue),
		))
		return defaultValue
	}

	val := strings.TrimRight(envValue, "/")
	if log != nil {
		log.Printf("Using %s=%s", envVar, val)
	}
	return val
}
