package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/infrastructure/config"
)

func TestNew_JSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{
		Log:     config.LogConfig{Level: "info", Format: "json", Output: out},
		Tracing: config.TracingConfig{ServiceName: "book-api-test"},
	}

	l, cleanup, err := New(cfg)
	require.NoError(t, err)

	l.Debug("debug被过滤")
	l.Info("book created", zap.Int("id", 1))
	assert.Same(t, l, zap.L(), "全局Logger应被替换")
	cleanup()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"book created"`)
	assert.Contains(t, string(data), `"service":"book-api-test"`)
	assert.NotContains(t, string(data), "debug被过滤")
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "verbose", Format: "console", Output: "stdout"}}

	_, _, err := New(cfg)
	assert.Error(t, err)
}
