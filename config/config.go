package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// DataDir holds department snapshots when no R2 bucket is configured
	DataDir        string
	AllowedOrigins []string
	AppURL         string
	DefaultLang    string
	// SeedDepartments creates the default department list on an empty database
	SeedDepartments bool
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

// ClientConfig configures the facultyctl panel client
type ClientConfig struct {
	APIURL string
	Lang   string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "db/faculty.db"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		DataDir:           getEnv("DATA_DIR", "static"),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:            getEnv("APP_URL", "http://localhost:8080"),
		DefaultLang:       normalizeLang(getEnv("DEFAULT_LANG", "en")),
		SeedDepartments:   getEnvBool("SEED_DEPARTMENTS", true),
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
	}
}

// LoadClient reads the settings used by the panel client. It never logs defaults
// because the interactive shell shares stdout with the user.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	apiURL := os.Getenv("FACULTY_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	return &ClientConfig{
		APIURL: strings.TrimSuffix(apiURL, "/"),
		Lang:   normalizeLang(os.Getenv("FACULTY_LANG")),
	}
}

// R2Enabled reports whether every R2 credential is present
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// normalizeLang maps anything unsupported to English
func normalizeLang(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "es":
		return "es"
	default:
		return "en"
	}
}
