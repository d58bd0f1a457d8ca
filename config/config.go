package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AdminHTTP    HTTPConfig     `yaml:"admin_http"`
	CustomerHTTP HTTPConfig     `yaml:"customer_http"`
	Database     DatabaseConfig `yaml:"database"`
	Redis        RedisConfig    `yaml:"redis"`
	Kafka        KafkaConfig    `yaml:"kafka"`
	Schedule     ScheduleConfig `yaml:"schedule"`
	Admin        AdminConfig    `yaml:"admin"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	// Driver selects the store: "postgres" (default), "sqlite" or
	// "memory".
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	// Path is the SQLite database file, used only with driver sqlite.
	Path string `yaml:"path"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL renders the postgres:// form the migration runner expects.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type ScheduleConfig struct {
	// UpcomingDays is the customer view window, inclusive of today.
	UpcomingDays    int  `yaml:"upcoming_days"`
	CacheTTLSeconds int  `yaml:"cache_ttl_seconds"`
	SeedOnStart     bool `yaml:"seed_on_start"`
}

type AdminConfig struct {
	SessionSecret string `yaml:"session_secret"`
	CookieName    string `yaml:"cookie_name"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Schedule.UpcomingDays == 0 {
		cfg.Schedule.UpcomingDays = 14
	}
	if cfg.Admin.CookieName == "" {
		cfg.Admin.CookieName = "gymbook_admin"
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Admin.SessionSecret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	return &cfg, nil
}
