package app

import (
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
	"github.com/yungbote/clinicsite-backend/internal/utils"
)

type Config struct {
	Port        string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	environment := utils.GetEnv("APP_ENV", "development", log)
	version := utils.GetEnv("APP_VERSION", "dev", log)
	return Config{
		Port:        port,
		Environment: environment,
		Version:     version,
	}
}
