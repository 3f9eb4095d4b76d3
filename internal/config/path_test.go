package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("PAPERS_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty stays empty", input: "", want: ""},
		{name: "tilde expands", input: "~/documents", want: filepath.Join(home, "documents")},
		{name: "bare tilde expands", input: "~", want: home},
		{name: "env var expands", input: "$PAPERS_TEST_DIR/papers", want: "/var/data/papers"},
		{name: "absolute path unchanged", input: "/tmp/papers", want: "/tmp/papers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
