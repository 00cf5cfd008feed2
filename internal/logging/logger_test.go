package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		debug bool
		env   string
		want  slog.Level
	}{
		{false, "", slog.LevelInfo},
		{true, "", slog.LevelDebug},
		{false, "DEBUG", slog.LevelDebug},
		{true, "error", slog.LevelError},
		{false, "warning", slog.LevelWarn},
		{false, "verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.debug, tt.env), "debug=%v env=%q", tt.debug, tt.env)
	}
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/deploy_contract.go", shortPath("/home/dev/src/treb-deploy/internal/usecase/deploy_contract.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/build/main.go"))
}
