package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Strings are used for identifiers and secrets, ints
// for costs and durations measured in whole units.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	JWTSecret   string // secret used to sign JWTs; startup aborts when absent
	TokenTTLHrs int    // session token time-to-live in hours
	BcryptCost  int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. In particular a missing
// JWT_SECRET aborts startup rather than letting the server issue unsigned
// tokens.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        must("APP_PORT"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"), // empty password allowed
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		JWTSecret:   must("JWT_SECRET"),
		TokenTTLHrs: intDefault("TOKEN_TTL_HOURS", 24),
		BcryptCost:  intDefault("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intDefault reads an optional integer variable, falling back to def when the
// variable is unset. A present but malformed value is a fatal error rather
// than a silent default.
func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
