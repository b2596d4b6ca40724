//go:build !integration

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCI(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "interactive", env: nil, want: ""},
		{name: "gitlab", env: map[string]string{"GITLAB_CI": "true", "CI": "true"}, want: "GitLab CI"},
		{name: "github actions", env: map[string]string{"GITHUB_ACTIONS": "true", "CI": "true"}, want: "GitHub Actions"},
		{name: "generic", env: map[string]string{"CI": "1"}, want: "CI"},
		{name: "legacy variable", env: map[string]string{"CONTINUOUS_INTEGRATION": "yes"}, want: "CI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range ciProviders {
				t.Setenv(p.envVar, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, DetectCI())
		})
	}
}
