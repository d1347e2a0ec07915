package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App  AppConfig
	API  APIConfig
	CORS CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Port     int
	Env      string
	LogLevel string
}

// APIConfig holds the HRMS backend connection settings
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	HealthInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// fileConfig is the optional YAML overlay named by CONFIG_FILE. Environment
// variables still take precedence over anything set here.
type fileConfig struct {
	App struct {
		Name     string `yaml:"name"`
		Port     int    `yaml:"port"`
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`
	API struct {
		BaseURL        string `yaml:"base_url"`
		Timeout        string `yaml:"timeout"`
		HealthInterval string `yaml:"health_interval"`
	} `yaml:"api"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", orInt(file.App.Port, 3000)))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", or(file.App.Name, "HRMS Lite")),
		Port:     appPort,
		Env:      getEnv("APP_ENV", or(file.App.Env, "development")),
		LogLevel: getEnv("LOG_LEVEL", or(file.App.LogLevel, "info")),
	}

	// Backend API configuration
	timeout, err := time.ParseDuration(getEnv("API_TIMEOUT", or(file.API.Timeout, "10s")))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	healthInterval, err := time.ParseDuration(getEnv("API_HEALTH_INTERVAL", or(file.API.HealthInterval, "1m")))
	if err != nil {
		return nil, fmt.Errorf("invalid API_HEALTH_INTERVAL: %w", err)
	}

	config.API = APIConfig{
		BaseURL:        strings.TrimRight(getEnv("API_BASE_URL", or(file.API.BaseURL, "http://localhost:8000")), "/"),
		Timeout:        timeout,
		HealthInterval: healthInterval,
	}

	origins := getEnvSlice("CORS_ORIGINS")
	if len(origins) == 0 {
		origins = file.CORS.AllowedOrigins
	}
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	config.CORS = CORSConfig{AllowedOrigins: origins}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadFile(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535, got %d", c.App.Port)
	}
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	if c.API.HealthInterval <= 0 {
		return errors.New("API_HEALTH_INTERVAL must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orInt(value, fallback int) string {
	if value != 0 {
		return strconv.Itoa(value)
	}
	return strconv.Itoa(fallback)
}
