package config

import (
	"log"
	"os"
)

// mustEnv reads a required variable and exits when it is absent, so a
// misconfigured deployment fails at startup instead of on first request.
func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required env %s", key)
	}
	return v
}

func mustEnvBytes(key string) []byte {
	return []byte(mustEnv(key))
}
