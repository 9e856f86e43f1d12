package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Scraper ScraperConfig
	Client  ClientConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Path          string
	MigrationsDir string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      time.Duration
}

type LLMConfig struct {
	ServerURL string
	Model     string
}

type ScraperConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// ClientConfig configures the catalog client used by the CLI.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.path", "quizforge.db")
	viper.SetDefault("db.migrations_dir", "database/migrations")
	viper.SetDefault("redis.ttl", 3600)
	viper.SetDefault("llm.server", "http://localhost:11434")
	viper.SetDefault("llm.model", "qwen3:0.6b")
	viper.SetDefault("scraper.timeout", 15)
	viper.SetDefault("scraper.user_agent", "quizforge/1.0")
	viper.SetDefault("client.base_url", "http://localhost:8000")
	viper.SetDefault("client.timeout", 120)
	viper.SetDefault("logger.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Path:          viper.GetString("db.path"),
			MigrationsDir: viper.GetString("db.migrations_dir"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			TTL:      viper.GetDuration("redis.ttl") * time.Second,
		},
		LLM: LLMConfig{
			ServerURL: viper.GetString("llm.server"),
			Model:     viper.GetString("llm.model"),
		},
		Scraper: ScraperConfig{
			Timeout:   viper.GetDuration("scraper.timeout") * time.Second,
			UserAgent: viper.GetString("scraper.user_agent"),
		},
		Client: ClientConfig{
			BaseURL: viper.GetString("client.base_url"),
			Timeout: viper.GetDuration("client.timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   os.Getenv("ENV"),
		},
	}

	// Override with environment variables if set
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if baseURL := os.Getenv("QUIZ_API_BASE"); baseURL != "" {
		config.Client.BaseURL = baseURL
	}

	return config, nil
}
