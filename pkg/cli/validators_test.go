//go:build !integration

package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbb-tools/tbtools/pkg/testutil"
)

func TestValidateInputDirectory(t *testing.T) {
	dir := testutil.TempDir(t, "validate-*")
	file := testutil.WriteFile(t, dir, "connectionPane.js", "")

	tests := []struct {
		name        string
		path        string
		wantErr     bool
		errContains string
	}{
		{name: "directory", path: dir},
		{name: "empty", path: "", wantErr: true, errContains: "cldr-dir cannot be empty"},
		{name: "missing", path: filepath.Join(dir, "cldr"), wantErr: true, errContains: "does not exist"},
		{name: "file", path: file, wantErr: true, errContains: "is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputDirectory(tt.path, "cldr-dir")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}
