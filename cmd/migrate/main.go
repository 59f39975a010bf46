package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/internal/infrastructure/logger"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/database"
)

// main 数据库迁移工具
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate --config config/config.prod.yaml status
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Book API 数据库迁移工具",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径(默认按config.Load规则查找)")

	root.AddCommand(
		migrateCmd("up", "执行全部未应用的迁移", &configPath, func(cmd *cobra.Command, m *database.Migrator) error {
			if err := m.Up(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("迁移完成")
			return nil
		}),
		migrateCmd("down", "回滚最近一次迁移", &configPath, func(cmd *cobra.Command, m *database.Migrator) error {
			if err := m.Down(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("回滚完成")
			return nil
		}),
		migrateCmd("status", "查看迁移状态", &configPath, func(cmd *cobra.Command, m *database.Migrator) error {
			return m.Status(cmd.Context())
		}),
		migrateCmd("version", "查看当前数据库版本", &configPath, func(cmd *cobra.Command, m *database.Migrator) error {
			v, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("当前版本: %d\n", v)
			return nil
		}),
	)

	return root
}

// migrateCmd 构造子命令：加载配置 → 连接数据库 → 执行迁移动作
func migrateCmd(use, short string, configPath *string, action func(*cobra.Command, *database.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			// 迁移工具自己管理表结构,不走AutoMigrate
			cfg.Database.AutoMigrate = false

			log, cleanupLog, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer cleanupLog()

			db, cleanupDB, err := database.NewDB(cfg, log)
			if err != nil {
				return err
			}
			defer cleanupDB()

			m, err := database.NewMigrator(db, cfg.Database.Driver)
			if err != nil {
				return err
			}

			log.Info("执行迁移", zap.String("command", use), zap.String("driver", cfg.Database.Driver))
			return action(cmd, m)
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	return cfg, nil
}
