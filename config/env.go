package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func getEnvAsString(key string, defaultVal string) string {
	if value, exists := lookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getFirstEnv returns the first non-empty value among keys.
func getFirstEnv(keys []string, defaultVal string) string {
	for _, key := range keys {
		if value, exists := lookupEnv(key); exists && value != "" {
			return value
		}
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if valueStr, exists := lookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultVal
}

// getEnvAsBytes accepts a plain byte count or a size with unit ("5MB", "5 MiB").
func getEnvAsBytes(key string, defaultVal int64) int64 {
	if valueStr, exists := lookupEnv(key); exists {
		if value, err := humanize.ParseBytes(valueStr); err == nil && value > 0 {
			return int64(value)
		}
	}
	return defaultVal
}

// getEnvAsTimeDuration accepts Go duration syntax ("10s") or a bare number of milliseconds.
func getEnvAsTimeDuration(key string, defaultVal time.Duration) time.Duration {
	if valueStr, exists := lookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
		if value, err := strconv.Atoi(valueStr); err == nil {
			return time.Duration(value) * time.Millisecond
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if valueStr, exists := lookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultVal
}

func getEnvAsSlice(key string, defaultVal []string) []string {
	if valueStr, exists := lookupEnv(key); exists {
		// Split by comma and trim whitespace
		parts := strings.Split(valueStr, ",")
		result := make([]string, 0, len(parts))
		for _, v := range parts {
			trimmed := strings.TrimSpace(v)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultVal
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(strings.TrimSpace(key))
}
