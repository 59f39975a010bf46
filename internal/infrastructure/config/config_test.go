package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "UTC", cfg.Database.Loc)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: mysql\n  password: from-file\n")
	t.Setenv("BOOKAPI_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKAPI_SERVER_PORT", "7070")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFile_Validate(t *testing.T) {
	t.Run("非法端口", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "server:\n  port: 70000\n"))
		assert.Error(t, err)
	})

	t.Run("未知驱动", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "database:\n  driver: oracle\n"))
		assert.ErrorContains(t, err, "oracle")
	})

	t.Run("未知日志格式", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "log:\n  format: xml\n"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: DriverMySQL, User: "root", Password: "pw", Host: "db", Port: 3306,
			DBName: "bookapi", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
		}
		assert.Equal(t, "root:pw@tcp(db:3306)/bookapi?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
	})

	t.Run("postgres", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: DriverPostgres, User: "app", Password: "pw", Host: "pg", Port: 5432,
			DBName: "bookapi", SSLMode: "disable",
		}
		assert.Equal(t, "host=pg port=5432 user=app password=pw dbname=bookapi sslmode=disable", d.DSN())
	})

	t.Run("sqlite", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"}
		assert.Equal(t, ":memory:", d.DSN())
	})
}
