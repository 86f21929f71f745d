package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name  string
	Env   string // development / production
	Debug bool
	HTTP  HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 非空则同时写文件并切割
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Session struct {
	Secret         string
	Issuer         string
	CookieName     string
	TTLMin         int // 普通会话
	RememberTTLMin int // 勾选 remember 后的长会话
	CookieSecure   bool
}

type Redis struct {
	Addr       string `mapstructure:"addr"` // 留空则不启用缓存
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	UserTTLSec int    `mapstructure:"user_ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App     App
	Log     Log
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
}

// Load 按部署档位取配置：CONFIG_PATH 指定文件优先，
// 否则 APP_ENV 选 configs/config.<env>.yaml（默认 development）。
// 环境变量 APP_* 覆盖任意键，如 APP_APP_HTTP_PORT / APP_APP_DEBUG。
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
		}
		path = fmt.Sprintf("./configs/config.%s.yaml", env)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.Session.Secret == "" {
		log.Fatal("session.secret is required")
	}
	return &c
}
