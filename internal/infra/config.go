package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config - корневая структура конфигурации агрегатора.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Breaker  BreakerConfig  `mapstructure:"breaker"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig описывает настройки HTTP-сервера.
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// Addr возвращает адрес для http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig описывает HR-бэкенд, из которого собирается статистика.
type UpstreamConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// FetchTimeout ограничивает каждый отдельный запрос к источнику.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// SnapshotDeadline - общий предел на сборку снимка (0 - без предела).
	SnapshotDeadline time.Duration `mapstructure:"snapshot_deadline"`

	// MockMode включает генератор данных в памяти вместо сетевых вызовов.
	MockMode        bool    `mapstructure:"mock_mode"`
	MockFailureRate float64 `mapstructure:"mock_failure_rate"`

	ProbeAttempts uint `mapstructure:"probe_attempts"`
	ActivityLimit int  `mapstructure:"activity_limit"`
}

// BreakerConfig - настройки Circuit Breaker для каждого источника.
type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

// AuthConfig - проверка RS256 токенов на роутах дашборда.
// Пустой ключ означает, что роуты открыты.
type AuthConfig struct {
	PublicKeyPath string `mapstructure:"public_key_path"`
	PublicKey     []byte

	// Пустые Issuer/Audience не проверяются
	Issuer   string        `mapstructure:"issuer"`
	Audience string        `mapstructure:"audience"`
	Leeway   time.Duration `mapstructure:"leeway"`
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig инициализирует конфигурацию, объединяя .env, файл и ENV.
func LoadConfig() (*Config, error) {
	// .env удобен локально, в контейнере его обычно нет
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// UPSTREAM_BASE_URL перекроет upstream.base_url
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Если файла нет - работаем на ENV и дефолтах
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	key, err := loadKeyResource(cfg.Auth.PublicKeyPath, "AUTH_PUBLIC_KEY_DATA")
	if err != nil {
		return nil, err
	}
	cfg.Auth.PublicKey = key

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Ключи без дефолта viper не сопоставит с ENV при Unmarshal
	v.SetDefault("server.host", "")
	v.SetDefault("upstream.base_url", "")
	v.SetDefault("auth.public_key_path", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{})

	v.SetDefault("upstream.fetch_timeout", 5*time.Second)
	v.SetDefault("upstream.snapshot_deadline", time.Duration(0))
	v.SetDefault("upstream.mock_mode", false)
	v.SetDefault("upstream.mock_failure_rate", 0.0)
	v.SetDefault("upstream.probe_attempts", 3)
	v.SetDefault("upstream.activity_limit", 10)

	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", 30*time.Second)
	v.SetDefault("breaker.timeout", 15*time.Second)
	v.SetDefault("breaker.consecutive_failures", 5)

	v.SetDefault("auth.leeway", 30*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

// Validate проверяет логическую целостность конфигурации.
func (c *Config) Validate() error {
	var errs []string

	if !c.Upstream.MockMode && strings.TrimSpace(c.Upstream.BaseURL) == "" {
		errs = append(errs, "upstream.base_url is required unless upstream.mock_mode is enabled")
	}
	if c.Upstream.MockFailureRate < 0 || c.Upstream.MockFailureRate > 1 {
		errs = append(errs, "upstream.mock_failure_rate must be within [0, 1]")
	}
	if c.Upstream.FetchTimeout < 0 || c.Upstream.SnapshotDeadline < 0 {
		errs = append(errs, "upstream timeouts must not be negative")
	}
	if c.Upstream.ActivityLimit <= 0 {
		errs = append(errs, "upstream.activity_limit must be positive")
	}
	if c.Breaker.ConsecutiveFailures == 0 {
		errs = append(errs, "breaker.consecutive_failures must be at least 1")
	}
	if c.Auth.Leeway < 0 {
		errs = append(errs, "auth.leeway must not be negative")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}

// loadKeyResource - PEM из ENV имеет приоритет над файлом по пути из конфига.
// Заданный, но нечитаемый путь - ошибка конфигурации, а не отключенная авторизация.
func loadKeyResource(path string, envDataKey string) ([]byte, error) {
	if data := os.Getenv(envDataKey); data != "" {
		return []byte(data), nil
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read auth public key %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("auth public key %q is empty", path)
	}
	return data, nil
}
