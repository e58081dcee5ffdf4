package config

import "os"

type Config struct {
	Port          string
	Env           string
	PostgresURL   string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "messenger"),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
