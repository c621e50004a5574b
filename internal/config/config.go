package config

import (
	"os"
	"strconv"
)

type EngineConfig struct {
	AdminID           string
	OracleID          string
	InvestigatorID    string
	MinimumTrustScore int64
	JournalBuffer     int

	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
}

type PostgresConfig struct {
	DBname     string
	Username   string
	Password   string
	Host       string
	Port       string
	SchemaPath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

func New() *EngineConfig {
	return &EngineConfig{
		AdminID:           getEnvOrDefault("ENGINE_ADMIN_ID", "admin"),
		OracleID:          getEnvOrDefault("ENGINE_ORACLE_ID", ""),
		InvestigatorID:    getEnvOrDefault("ENGINE_INVESTIGATOR_ID", ""),
		MinimumTrustScore: getEnvInt64("ENGINE_MIN_TRUST_SCORE", 500),
		JournalBuffer:     int(getEnvInt64("ENGINE_JOURNAL_BUFFER", 1024)),
		PostgresCfg: PostgresConfig{
			DBname:     getEnvOrDefault("POSTGRES_DB", "agrisure"),
			Username:   getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password:   getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:       getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:       getEnvOrDefault("POSTGRES_PORT", "5432"),
			SchemaPath: getEnvOrDefault("POSTGRES_SCHEMA_PATH", "schema.sql"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
