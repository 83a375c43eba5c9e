// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Client   ClientConfig   `mapstructure:"client"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// Seed 为 true 时启动后写入默认管理员、分类、标签和系统状态（仅空表）
	Seed                  bool   `mapstructure:"seed"`
	SeedAdminPassword     string `mapstructure:"seed_admin_password"`
	SeedModeratorPassword string `mapstructure:"seed_moderator_password"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
	// LogLevel 控制 gorm SQL 日志：silent / error / warn / info
	LogLevel string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
}

// CORSConfig 对应管理后台与 Mini-App 的跨域来源。
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// ClientConfig 是 appealctl 命令行工具使用的配置。
type ClientConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	TokenPath string        `mapstructure:"token_path"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// AccessTokenTTL 把小时数转换为 time.Duration，未配置时默认 24 小时。
func (c JWTConfig) AccessTokenTTL() time.Duration {
	if c.AccessTokenExpireHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.AccessTokenExpireHours) * time.Hour
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.seed_admin_password", "admin123")
	v.SetDefault("server.seed_moderator_password", "moderator123")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.mysql.log_level", "warn")
	v.SetDefault("database.redis.addr", "localhost:6379")
	v.SetDefault("jwt.access_token_expire_hours", 24)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("client.base_url", "http://localhost:8000/api")
	v.SetDefault("client.token_path", ".appealctl/token")
	v.SetDefault("client.timeout", 15*time.Second)
}

// Load 读取 YAML 配置，并允许用 APPEALS_ 前缀的环境变量覆盖，
// 例如 APPEALS_DATABASE_MYSQL_DSN。configPath 为空时只使用默认值和环境变量。
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("appeals")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Init 加载配置到全局 Conf，失败直接 panic（服务启动阶段使用）。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	Conf = cfg
}
