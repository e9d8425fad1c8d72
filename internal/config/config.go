package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	IDTokenSecret string
	IDTokenIssuer string
	GinMode       string
	LogLevel      string
	OpenAIAPIKey  string
	TeacherEmails []string
}

func Load() *Config {
	// Local development reads a .env file; deployed environments set
	// real environment variables.
	_ = godotenv.Load()

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "roadmap"),
		DBPassword:    getEnv("DB_PASSWORD", "roadmap"),
		DBName:        getEnv("DB_NAME", "roadmap"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		IDTokenSecret: getEnv("ID_TOKEN_SECRET", ""),
		IDTokenIssuer: getEnv("ID_TOKEN_ISSUER", "classroom-login"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		TeacherEmails: splitList(getEnv("TEACHER_EMAILS", "")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
