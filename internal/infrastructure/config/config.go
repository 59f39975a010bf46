package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、.env文件、环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableSwagger   bool          `mapstructure:"enable_swagger"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | postgres | sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"` // sqlite文件路径，":memory:"为内存库
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN 按驱动生成连接字符串
// mysql:    user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=UTC
// postgres: host=... port=... user=... password=... dbname=... sslmode=disable
// sqlite:   文件路径
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	case DriverSQLite:
		return d.Path
	default:
		// loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
		loc := url.QueryEscape(d.Loc)
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
			d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
	}
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"` // OTLP gRPC端点，如localhost:4317
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// Load 加载配置
// 支持：
// 1. 先加载.env、.env.local（不覆盖已有环境变量）
// 2. 默认加载config/config.yaml，BOOKAPI_ENV指定环境时加载config.<env>.yaml
// 3. 环境变量覆盖（如BOOKAPI_DATABASE_PASSWORD → database.password）
// 4. 配置文件不存在时使用默认值
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	if env := os.Getenv("BOOKAPI_ENV"); env != "" {
		v.SetConfigName("config." + env)
	}
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFile 从指定文件加载配置（命令行工具、测试使用）
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("BOOKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 默认值
// 注意：AutomaticEnv只对viper已知的key生效，所以每个key都要有默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.enable_swagger", false)

	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "bookapi")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "UTC")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "bookapi.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "book-api")
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("不支持的日志格式: %s", cfg.Log.Format)
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("无效的采样率: %v", cfg.Tracing.SampleRatio)
	}

	return nil
}
