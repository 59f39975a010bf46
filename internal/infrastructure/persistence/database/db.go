package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，按database.driver选择MySQL、PostgreSQL或SQLite
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. debug模式打印SQL，其他模式只记录慢查询和错误
// 4. auto_migrate开启时自动迁移表结构，生产环境使用cmd/migrate
// 返回的cleanup负责关闭连接池
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// SQLite只允许单写连接，文件库开多连接会出现database is locked
	if cfg.Database.Driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}

	if err := Ping(context.Background(), db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功",
		zap.String("driver", cfg.Database.Driver),
		zap.String("dbname", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Info("表结构自动迁移完成")
	}

	return db, cleanup, nil
}

// Dialector 按驱动创建GORM方言
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// Ping 检查数据库是否可用（/ping健康检查使用）
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// SQLite不校验VARCHAR长度，改走goose脚本建表，由脚本中的CHECK约束限制长度
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == config.DriverSQLite {
		m, err := NewMigrator(db, config.DriverSQLite)
		if err != nil {
			return err
		}
		return m.Up(context.Background())
	}
	return db.AutoMigrate(&book.Book{})
}
