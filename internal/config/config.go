package config

import (
	"os"
	"strconv"

	"docintake/internal/validation"
)

// UploadConfig bounds what the service accepts on the upload endpoint.
type UploadConfig struct {
	MaxFileBytes int64
}

// ExtractionConfig tunes the text extraction stage.
type ExtractionConfig struct {
	// Language is the Tesseract language code used for image OCR.
	Language string
	// TimeoutSec caps a single extraction; OCR can take multiple seconds.
	TimeoutSec int
	// MaxConcurrent bounds how many extractions run at once so slow OCR
	// calls cannot starve unrelated requests.
	MaxConcurrent int
}

// MinIOConfig holds object storage settings for the optional original-upload
// archive. An empty Endpoint disables archiving entirely.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not
// hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	Upload     UploadConfig
	Extraction ExtractionConfig
	MinIO      MinIOConfig
}

// ArchiveEnabled reports whether an original-upload archive is configured.
func (c *AppConfig) ArchiveEnabled() bool {
	return c.MinIO.Endpoint != ""
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take
// precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Upload: UploadConfig{
			MaxFileBytes: int64(getEnvInt("UPLOAD_MAX_FILE_BYTES", int(validation.DefaultMaxFileBytes))),
		},
		Extraction: ExtractionConfig{
			Language:      getEnv("OCR_LANGUAGE", "eng"),
			TimeoutSec:    getEnvInt("EXTRACT_TIMEOUT_SEC", 60),
			MaxConcurrent: getEnvInt("EXTRACT_MAX_CONCURRENT", 4),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
