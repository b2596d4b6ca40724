package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var validatorsLog = logger.New("cli:validators")

// ValidateInputDirectory checks that path names an existing directory. what
// describes the argument in the error message, e.g. "twemoji-svg-dir".
func ValidateInputDirectory(path, what string) error {
	validatorsLog.Printf("Validating %s: %s", what, path)
	if path == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		validatorsLog.Printf("Validation failed: %s does not exist", path)
		return fmt.Errorf("%s '%s' does not exist", what, path)
	}
	if err != nil {
		return fmt.Errorf("failed to access %s '%s': %w", what, path, err)
	}
	if !info.IsDir() {
		validatorsLog.Printf("Validation failed: %s is not a directory", path)
		return fmt.Errorf("%s '%s' is not a directory", what, path)
	}
	return nil
}
