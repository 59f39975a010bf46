package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        filepath.Join(t.TempDir(), "bookapi.db"),
			AutoMigrate: true,
		},
	}
}

func TestNewDB_SQLite(t *testing.T) {
	db, cleanup, err := NewDB(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, db.Migrator().HasTable("books"))
	assert.True(t, db.Migrator().HasColumn("books", "craated_at"))
	assert.NoError(t, Ping(context.Background(), db))
}

func TestNewDB_SQLiteEnforcesLength(t *testing.T) {
	db, cleanup, err := NewDB(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	now := time.Now()
	assert.Error(t, db.Create(&book.Book{Title: strings.Repeat("x", 201), Author: "a", CraatedAt: now}).Error)
	assert.Error(t, db.Create(&book.Book{Title: "t", Author: strings.Repeat("x", 101), CraatedAt: now}).Error)
	assert.NoError(t, db.Create(&book.Book{Title: strings.Repeat("x", 200), Author: strings.Repeat("x", 100), CraatedAt: now}).Error)

	var count int64
	require.NoError(t, db.Model(&book.Book{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNewDB_WithoutAutoMigrate(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.AutoMigrate = false

	db, cleanup, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, db.Migrator().HasTable("books"))
}

func TestPing_Closed(t *testing.T) {
	db, cleanup, err := NewDB(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	cleanup()

	assert.Error(t, Ping(context.Background(), db))
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{driver: config.DriverMySQL, name: "mysql"},
		{driver: config.DriverPostgres, name: "postgres"},
		{driver: config.DriverSQLite, name: "sqlite"},
		{driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := Dialector(config.DatabaseConfig{Driver: tt.driver})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}
