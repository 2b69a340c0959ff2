package env

import "os"

// LogFormat selects "json" (default) or "console" log output.
const LogFormat = "LOG_FORMAT"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
