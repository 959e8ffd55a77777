package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"meetgrid/core/logger"
)

// Config holds all runtime configuration, loaded once at startup
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port           int
	LogLevel       string
	LogJSON        bool
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Enabled toggles the realtime responses-changed channel; the service
	// stays fully functional with polling when disabled.
	Enabled bool
}

type WorkerConfig struct {
	Enabled       bool
	SweepSchedule string // cron spec for the expired-event sweep
	RetentionDays int
}

var cfg *Config

// Load reads .env (if present) and environment variables into Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment only")
	}

	v := viper.New()
	v.SetEnvPrefix("MEETGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 7070)
	v.SetDefault("server.loglevel", "info")
	v.SetDefault("server.logjson", false)
	v.SetDefault("server.allowedorigins", "http://localhost:3000")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "meetgrid")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", true)

	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.sweepschedule", "0 3 * * *")
	v.SetDefault("worker.retentiondays", 30)

	cfg = &Config{
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			LogLevel:       v.GetString("server.loglevel"),
			LogJSON:        v.GetBool("server.logjson"),
			AllowedOrigins: splitOrigins(v.GetString("server.allowedorigins")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Enabled:  v.GetBool("redis.enabled"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("worker.enabled"),
			SweepSchedule: v.GetString("worker.sweepschedule"),
			RetentionDays: v.GetInt("worker.retentiondays"),
		},
	}

	return cfg, nil
}

// Get returns the loaded configuration
func Get() *Config {
	return cfg
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
