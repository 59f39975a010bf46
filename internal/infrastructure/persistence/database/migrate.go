package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/migrations"
)

// Migrator 基于goose的版本化迁移
// 脚本内嵌在migrations包中,按驱动名选择子目录
type Migrator struct {
	db  *sql.DB
	dir string
}

// NewMigrator 创建迁移器
// goose的方言和文件系统是包级状态,同一进程内只应使用一种驱动
func NewMigrator(db *gorm.DB, driver string) (*Migrator, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("设置迁移方言失败: %w", err)
	}

	return &Migrator{db: sqlDB, dir: driver}, nil
}

// Up 执行全部未应用的迁移
func (m *Migrator) Up(ctx context.Context) error {
	return goose.UpContext(ctx, m.db, m.dir)
}

// Down 回滚最近一次迁移
func (m *Migrator) Down(ctx context.Context) error {
	return goose.DownContext(ctx, m.db, m.dir)
}

// Status 打印每个迁移的应用状态
func (m *Migrator) Status(ctx context.Context) error {
	return goose.StatusContext(ctx, m.db, m.dir)
}

// Version 当前数据库版本
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return goose.GetDBVersionContext(ctx, m.db)
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case config.DriverMySQL:
		return "mysql", nil
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}
