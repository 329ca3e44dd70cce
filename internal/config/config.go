package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverOracle   = "oracle"

	ProviderGoogleAI  = "googleai"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	LLM     LLMConfig
	Scraper ScraperConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	ServerURL   string
	Temperature float64
	Timeout     time.Duration
	MaxAttempts int
}

type ScraperConfig struct {
	Timeout           time.Duration
	UserAgent         string
	MaxContentChars   int
	MinParagraphChars int
}

type RedisConfig struct {
	Address   string
	Password  string
	DB        int
	DetailTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type CORSConfig struct {
	AllowOrigins string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("llm.provider", ProviderGoogleAI)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.max_attempts", 1)

	v.SetDefault("scraper.timeout", "10s")
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("scraper.max_content_chars", 10000)
	v.SetDefault("scraper.min_paragraph_chars", 50)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.detail_ttl", "24h")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("cors.allow_origins", "*")
}

// bindEnv maps the legacy flat environment names onto nested keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("db.dsn", "DATABASE_URL", "DB_DSN")
	_ = v.BindEnv("db.driver", "DB_DRIVER")
	_ = v.BindEnv("llm.api_key", "LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("llm.server_url", "LLM_SERVER")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("redis.address", "REDIS_ADDRESS")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("logger.env", "ENV")
}

// LoadConfig reads .env, an optional config.yaml and the environment, in that
// order of increasing precedence.
func LoadConfig() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDBConfig is LoadConfig for tools that only touch the database, such as
// the migration command. LLM settings are not checked.
func LoadDBConfig() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateDB(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(v.GetString("db.driver")),
			DSN:             v.GetString("db.dsn"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("db.auto_migrate"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			ServerURL:   v.GetString("llm.server_url"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     v.GetDuration("llm.timeout"),
			MaxAttempts: v.GetInt("llm.max_attempts"),
		},
		Scraper: ScraperConfig{
			Timeout:           v.GetDuration("scraper.timeout"),
			UserAgent:         v.GetString("scraper.user_agent"),
			MaxContentChars:   v.GetInt("scraper.max_content_chars"),
			MinParagraphChars: v.GetInt("scraper.min_paragraph_chars"),
		},
		Redis: RedisConfig{
			Address:   v.GetString("redis.address"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			DetailTTL: v.GetDuration("redis.detail_ttl"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetString("cors.allow_origins"),
		},
	}
}

// Validate reports the settings the service cannot start without.
func (c *Config) Validate() error {
	if err := c.validateDB(); err != nil {
		return err
	}

	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return errors.New("LLM_SERVER must be set for the ollama provider")
		}
	case ProviderGoogleAI, ProviderOpenAI, ProviderAnthropic:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("LLM API key is not set for provider %s", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm provider: %s", c.LLM.Provider)
	}

	if c.LLM.MaxAttempts < 1 {
		c.LLM.MaxAttempts = 1
	}
	return nil
}

func (c *Config) validateDB() error {
	if c.DB.DSN == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverOracle:
	default:
		return fmt.Errorf("unsupported db driver: %s", c.DB.Driver)
	}
	return nil
}
