package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string

	// Email dispatch
	EmailProvider      string // "sendgrid", "ses" or "stub"
	SendGridAPIKey     string
	SendGridFromEmail  string
	SendGridFromName   string
	SESFromEmail       string
	SESFromName        string
	StaffEmails        []string
	EmailTestMode      bool
	EmailTestRecipient string

	// Consultation scheduling window
	BusinessStartTime string
	BusinessEndTime   string
	BusinessTimezone  string
	SlotInterval      time.Duration

	// Talent pool
	ResumeBucket string

	// Form endpoint rate limiting
	RateLimitPerSecond float64
	RateLimitBurst     int

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),

		EmailProvider:      strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "stub"))),
		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:  getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:   getEnv("SENDGRID_FROM_NAME", "Jua Energy"),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "Jua Energy"),
		StaffEmails:        getEnvAsList("STAFF_NOTIFICATION_EMAILS", nil),
		EmailTestMode:      getEnvAsBool("EMAIL_TEST_MODE", false),
		EmailTestRecipient: getEnv("EMAIL_TEST_RECIPIENT", ""),

		BusinessStartTime: getEnv("BUSINESS_HOURS_START", "09:00"),
		BusinessEndTime:   getEnv("BUSINESS_HOURS_END", "16:00"),
		BusinessTimezone:  getEnv("BUSINESS_TZ", "Africa/Nairobi"),
		SlotInterval:      getEnvAsDuration("SLOT_INTERVAL", 30*time.Minute),

		ResumeBucket: getEnv("RESUME_BUCKET", ""),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 1),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 5),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
