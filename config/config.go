package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Server struct {
		Port           string   `yaml:"port"`
		SessionSecret  string   `yaml:"session_secret"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
}

// LoadConfig читает config.yaml (если есть) и накладывает переменные окружения
func LoadConfig() *Config {
	config := &Config{}

	data, err := os.ReadFile("config.yaml")
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Fatalf("Ошибка парсинга config.yaml: %v", err)
		}
	}

	// Переменные окружения имеют приоритет над файлом
	overrideEnv(&config.Server.Port, "PORT")
	overrideEnv(&config.Server.SessionSecret, "SESSION_SECRET")
	overrideEnv(&config.Database.Host, "DB_HOST")
	overrideEnv(&config.Database.Port, "DB_PORT")
	overrideEnv(&config.Database.User, "DB_USER")
	overrideEnv(&config.Database.Password, "DB_PASSWORD")
	overrideEnv(&config.Database.DBName, "DB_NAME")
	overrideEnv(&config.Database.SSLMode, "DB_SSLMODE")

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Database.Port == "" {
		config.Database.Port = "5432"
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = "disable"
	}
	if config.Server.SessionSecret == "" {
		log.Fatal("Session secret is required (config.yaml or SESSION_SECRET)")
	}
	if len(config.Server.AllowedOrigins) == 0 {
		// Vite dev-сервер по умолчанию
		config.Server.AllowedOrigins = []string{"http://127.0.0.1:5173", "http://localhost:5173"}
	}

	return config
}

func overrideEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
