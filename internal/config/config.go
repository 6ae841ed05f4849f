package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Policy   PolicyConfig   `toml:"policy"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PolicyConfig параметры политики посещения офиса
type PolicyConfig struct {
	TotalSeats         int    `toml:"total_seats"`
	Timezone           string `toml:"timezone"`            // IANA идентификатор, например "Asia/Kolkata"
	AnchorDate         string `toml:"anchor_date"`         // YYYY-MM-DD, начало ротационной недели 1
	AdvanceBookingDays int    `toml:"advance_booking_days"`
	RegularCutoff      string `toml:"regular_cutoff"` // HH:MM
	ExtraOpen          string `toml:"extra_open"`     // HH:MM
}

// Location загружает часовой пояс политики
func (p *PolicyConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid policy timezone %q: %w", p.Timezone, err)
	}
	return loc, nil
}

// Anchor парсит дату-якорь ротации в часовом поясе политики
func (p *PolicyConfig) Anchor(loc *time.Location) (time.Time, error) {
	anchor, err := time.ParseInLocation(domain.DateFormat, p.AnchorDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: invalid policy anchor_date %q: %w", p.AnchorDate, err)
	}
	return anchor, nil
}

// RegularCutoffTime парсит время закрытия регулярного бронирования
func (p *PolicyConfig) RegularCutoffTime() (types.TimeString, error) {
	return types.NewTimeStringFromString(p.RegularCutoff)
}

// ExtraOpenTime парсит время открытия extra-бронирования
func (p *PolicyConfig) ExtraOpenTime() (types.TimeString, error) {
	return types.NewTimeStringFromString(p.ExtraOpen)
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig возвращает конфигурацию с дефолтными значениями
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			ServiceName: "seat-booking-service",
			Path:        "/metrics",
		},
		Policy: PolicyConfig{
			TotalSeats:         domain.DefaultTotalSeats,
			Timezone:           domain.DefaultTimezone,
			AnchorDate:         domain.DefaultAnchorDate,
			AdvanceBookingDays: domain.DefaultAdvanceBookingDays,
			RegularCutoff:      domain.DefaultRegularCutoff,
			ExtraOpen:          domain.DefaultExtraOpen,
		},
	}
}

func (c *Config) validate() error {
	if c.Policy.TotalSeats <= 0 {
		return fmt.Errorf("config: policy.total_seats must be positive, got %d", c.Policy.TotalSeats)
	}
	if c.Policy.AdvanceBookingDays <= 0 {
		return fmt.Errorf("config: policy.advance_booking_days must be positive, got %d", c.Policy.AdvanceBookingDays)
	}
	if _, err := c.Policy.Location(); err != nil {
		return err
	}
	loc, _ := c.Policy.Location()
	if _, err := c.Policy.Anchor(loc); err != nil {
		return err
	}
	if _, err := c.Policy.RegularCutoffTime(); err != nil {
		return fmt.Errorf("config: invalid policy.regular_cutoff: %w", err)
	}
	if _, err := c.Policy.ExtraOpenTime(); err != nil {
		return fmt.Errorf("config: invalid policy.extra_open: %w", err)
	}
	return nil
}
