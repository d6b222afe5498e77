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

const EnvPrefix = "SD"

type Config struct {
	Server        ServerConfig
	Backend       BackendConfig
	Storage       StorageConfig
	Notifications NotificationsConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Log           LogConfig
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig: API REST de ovejas/centros/citas.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig: dónde vive el estado durable (token, user, admin_notifications).
type StorageConfig struct {
	Driver string // file | memory | redis
	Path   string
	Redis  RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type NotificationsConfig struct {
	Store string // kv | postgres
}

type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
}

type AuthConfig struct {
	DemoEnabled bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load: .env (si existe) -> defaults -> config.yaml (opcional) -> env SD_*.
// SD_BACKEND_BASEURL pisa backend.baseURL, etc.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Todas las keys necesitan default para que AutomaticEnv las vea en Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "15s")

	v.SetDefault("backend.baseURL", "http://localhost:5555/api")
	v.SetDefault("backend.timeout", "10s")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "./data/state.json")
	v.SetDefault("storage.redis.addr", "")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "sheep-dashboard:")

	v.SetDefault("notifications.store", "kv")

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.maxOpenConns", 10)

	v.SetDefault("auth.demoEnabled", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Notifications.Store = strings.ToLower(strings.TrimSpace(c.Notifications.Store))

	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("config: backend.baseURL inválida: %w", err)
	}

	switch c.Storage.Driver {
	case "file":
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("config: storage.path requerido con driver file")
		}
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Storage.Redis.Addr) == "" {
			return errors.New("config: storage.redis.addr requerido con driver redis")
		}
	default:
		return fmt.Errorf("config: storage.driver desconocido %q (file|memory|redis)", c.Storage.Driver)
	}

	switch c.Notifications.Store {
	case "kv":
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("config: database.dsn requerido con notifications.store=postgres")
		}
	default:
		return fmt.Errorf("config: notifications.store desconocido %q (kv|postgres)", c.Notifications.Store)
	}
	return nil
}
