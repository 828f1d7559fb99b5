package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultTaxiID       = 340
	DefaultTaxiAPIURL   = "https://tmotorm.dyndns.org/taxi/api/v2/web"
	DefaultCaptchaURL   = "https://www.google.com/recaptcha/api/siteverify"
	DefaultOrderStream  = "stream:taxi:order:placed"
	defaultConfigFile   = ".env"
	defaultAllowOrigins = "*"
)

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Taxi    TaxiConfig
	Captcha CaptchaConfig
	Redis   RedisConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type CORSConfig struct {
	AllowedOrigin string
}

// TaxiConfig - параметры диспетчерской (upstream)
type TaxiConfig struct {
	ID                   int64
	BaseURL              string
	RequestTimeout       time.Duration
	CalculateBeforeOrder bool
}

// CaptchaConfig - проверка "человек ли это". Пустой Secret отключает проверку.
// Required включает строгий режим: без токена заказ не принимается.
type CaptchaConfig struct {
	Secret    string
	VerifyURL string
	Timeout   time.Duration
	Required  bool
}

type RedisConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Password    string
	DB          int
	OrderStream string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(defaultConfigFile)
	v.AutomaticEnv()
	setDefaults(v)

	// .env необязателен, переменные окружения имеют приоритет
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		CORS: CORSConfig{
			AllowedOrigin: v.GetString("ALLOWED_ORIGIN"),
		},
		Taxi: TaxiConfig{
			ID:                   v.GetInt64("ID_TAXI"),
			BaseURL:              v.GetString("TAXI_API_URL"),
			RequestTimeout:       time.Duration(v.GetInt("TAXI_REQUEST_TIMEOUT")) * time.Second,
			CalculateBeforeOrder: v.GetBool("TAXI_CALCULATE_BEFORE_ORDER"),
		},
		Captcha: CaptchaConfig{
			Secret:    v.GetString("CAPTCHA_SECRET"),
			VerifyURL: v.GetString("CAPTCHA_VERIFY_URL"),
			Timeout:   time.Duration(v.GetInt("CAPTCHA_TIMEOUT")) * time.Second,
			Required:  v.GetBool("CAPTCHA_REQUIRED"),
		},
		Redis: RedisConfig{
			Enabled:     v.GetBool("REDIS_ENABLED"),
			Host:        v.GetString("REDIS_HOST"),
			Port:        v.GetInt("REDIS_PORT"),
			Password:    v.GetString("REDIS_PASSWORD"),
			DB:          v.GetInt("REDIS_DB"),
			OrderStream: v.GetString("REDIS_ORDER_STREAM"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if cfg.CORS.AllowedOrigin == "" {
		cfg.CORS.AllowedOrigin = defaultAllowOrigins
	}
	if cfg.Taxi.ID == 0 {
		cfg.Taxi.ID = DefaultTaxiID
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("ALLOWED_ORIGIN", defaultAllowOrigins)
	v.SetDefault("ID_TAXI", DefaultTaxiID)
	v.SetDefault("TAXI_API_URL", DefaultTaxiAPIURL)
	v.SetDefault("TAXI_REQUEST_TIMEOUT", 20)
	v.SetDefault("TAXI_CALCULATE_BEFORE_ORDER", false)
	v.SetDefault("CAPTCHA_SECRET", "")
	v.SetDefault("CAPTCHA_VERIFY_URL", DefaultCaptchaURL)
	v.SetDefault("CAPTCHA_TIMEOUT", 10)
	v.SetDefault("CAPTCHA_REQUIRED", false)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_ORDER_STREAM", DefaultOrderStream)
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
