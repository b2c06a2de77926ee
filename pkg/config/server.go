package config

// ServerConfig configura el servidor HTTP del API.
type ServerConfig struct {
	Port        int
	Environment string
	LogLevel    string
	BaseURL     string
	CORSOrigins []string
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnvInt("SERVER_PORT", 8085),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8085"),
		CORSOrigins: getEnvStringSlice("CORS_ORIGINS", []string{"http://localhost:5173"}),
	}
}
