package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded from a YAML
// file per APP_ENV and overridable through environment variables.
type Config struct {
	App           AppConfig           `yaml:"app"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	JWT           JWTConfig           `yaml:"jwt"`
	CORS          CORSConfig          `yaml:"cors"`
}

// AppConfig server-level settings
type AppConfig struct {
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

// DatabaseConfig MySQL connection settings
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// GetDSN builds the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis connection settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ElasticsearchConfig search index settings
type ElasticsearchConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
}

// JWTConfig token verification settings
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // minutes
}

// CORSConfig allowed origins (comma separated)
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// Load reads the YAML config file and applies environment overrides
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	switch c.App.Env {
	case "", "development", "dev", "local":
		return true
	}
	return false
}

func defaults() *Config {
	return &Config{
		App: AppConfig{Env: "local", Port: 8080},
		Database: DatabaseConfig{
			Host:            "127.0.0.1",
			Port:            3306,
			User:            "healthpoints",
			Name:            "healthpoints",
			MaxIdleConns:    5,
			MaxOpenConns:    25,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		Elasticsearch: ElasticsearchConfig{
			Addresses: []string{"http://127.0.0.1:9200"},
		},
		JWT: JWTConfig{ExpiresIn: 60},
	}
}

// applyEnvOverrides lets env vars win over file values.
// Only settings that differ between deploys are overridable.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("APP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("ES_ENABLED"); v != "" {
		cfg.Elasticsearch.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("ES_ADDRESSES"); v != "" {
		cfg.Elasticsearch.Addresses = splitAndTrim(v, ",")
	}
	if v := os.Getenv("ES_USERNAME"); v != "" {
		cfg.Elasticsearch.Username = v
	}
	if v := os.Getenv("ES_PASSWORD"); v != "" {
		cfg.Elasticsearch.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.CORS.AllowOrigins = v
	}
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
