package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                 int
	DataPath             string
	DBPath               string
	CORSOrigins          []string
	OpenAIAPIKey         string
	GoogleAPIKey         string
	DeepLAPIKey          string
	RatingModel          string
	TranslateConcurrency int
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	concurrency, _ := strconv.Atoi(getEnv("TRANSLATE_CONCURRENCY", "3"))
	if concurrency < 1 {
		concurrency = 1
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:                 port,
		DataPath:             dataPath,
		DBPath:               getEnv("DB_PATH", dataPath+"/translations.db"),
		CORSOrigins:          corsOrigins,
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		DeepLAPIKey:          os.Getenv("DEEPL_API_KEY"),
		RatingModel:          getEnv("RATING_MODEL", "gpt-3.5-turbo"),
		TranslateConcurrency: concurrency,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
