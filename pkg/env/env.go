package env

import "os"

// Get reads key from the environment, returning fallback when the
// variable is unset or empty.
func Get(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	return v
}
