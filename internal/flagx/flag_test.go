package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-a", "http://localhost:8000", "-x", "1"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://localhost:8000"},
		},
		{
			name:         "equals form",
			args:         []string{"-t=10", "-a", "h"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t=10"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value kept",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-n", "5"},
			allowedFlags: []string{"-c", "-n"},
			want:         []string{"-c", "-n", "5"},
		},
		{
			name:         "empty",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "hub.yaml", ConfigFileFlag([]string{"-a", "x", "-c", "hub.yaml"}))
	assert.Equal(t, "hub.json", ConfigFileFlag([]string{"-config=hub.json"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-a", "x"}))
	assert.Equal(t, "", ConfigFileFlag(nil))
}
