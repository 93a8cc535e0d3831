package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ThemeSourceFile     = "file"
	ThemeSourceDatabase = "database"

	DBDriverOracle = "oracle"
	DBDriverSQLite = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Themes   ThemesConfig
	DB       DBConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ThemesConfig selects where theme question lists are read from.
type ThemesConfig struct {
	Source   string
	Dir      string
	CacheTTL time.Duration
}

// DBConfig describes the theme database. Path is only used by the sqlite driver.
type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig is only used when Enabled is true; the theme cache is optional.
type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// SecurityConfig holds the secret used to sign the delete-answer signal cookie.
type SecurityConfig struct {
	SecretKey string
	ForgetTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.idle_timeout", 20)

	v.SetDefault("themes.source", ThemeSourceFile)
	v.SetDefault("themes.dir", "themes")
	v.SetDefault("themes.cache_ttl", "5m")

	v.SetDefault("db.driver", DBDriverOracle)
	v.SetDefault("db.path", "mcq-checker.db")
	v.SetDefault("db.port", 1521)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("security.forget_ttl", "1m")
}

// LoadConfig reads config.yaml (if present) and applies environment overrides.
// A missing config file is not an error; every key has a default.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("logger.env", "ENV", "LOGGER_ENV")
	_ = v.BindEnv("logger.level", "LOG_LEVEL", "LOGGER_LEVEL")
	_ = v.BindEnv("security.secret_key", "SECRET_KEY", "SECURITY_SECRET_KEY")
	_ = v.BindEnv("db.name", "DB_NAME")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("server.idle_timeout")) * time.Second,
		},
		Themes: ThemesConfig{
			Source:   strings.ToLower(v.GetString("themes.source")),
			Dir:      v.GetString("themes.dir"),
			CacheTTL: v.GetDuration("themes.cache_ttl"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Path:     v.GetString("db.path"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Security: SecurityConfig{
			SecretKey: v.GetString("security.secret_key"),
			ForgetTTL: v.GetDuration("security.forget_ttl"),
		},
	}

	switch cfg.Themes.Source {
	case ThemeSourceFile, ThemeSourceDatabase:
	default:
		return nil, fmt.Errorf("unsupported themes.source %q (want %q or %q)", cfg.Themes.Source, ThemeSourceFile, ThemeSourceDatabase)
	}
	switch cfg.DB.Driver {
	case DBDriverOracle, DBDriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported db.driver %q (want %q or %q)", cfg.DB.Driver, DBDriverOracle, DBDriverSQLite)
	}
	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("invalid server.port: %d", cfg.Server.Port)
	}
	return cfg, nil
}

// GetDSN returns the connection string for the configured theme database driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == DBDriverSQLite {
		return "file:" + c.DB.Path + "?_pragma=foreign_keys(1)"
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
