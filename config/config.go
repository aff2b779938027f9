package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName  string
	Env      string // development, staging, production
	Port     string
	GinMode  string
	LogLevel string // overrides the env default (debug in development, info elsewhere)

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Token signing, one secret per role family
	AdminTokenSecret     string
	CandidateTokenSecret string
	RecruiterTokenSecret string
	// TokenExpiryMinutes is read from TOKEN_EXPIRY. Absent means 0, which issues already expired tokens.
	TokenExpiryMinutes int

	// Password reset
	ResetCodeTTL  time.Duration
	ResetCodeEcho bool // return the reset code in the forgot-password response

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESJobsIndex        string

	// Google Cloud Storage, resumes
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// Email content
	CompanyName string
	SupportURL  string

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool

	RateLimitEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parsed reads key with parse, logging and falling back to def on bad input.
func parsed[T any](key string, def T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		log.Printf("invalid value for %s: %v, using default %v", key, err, def)
		return def
	}
	return out
}

func getbool(key string, def bool) bool { return parsed(key, def, strconv.ParseBool) }
func getint(key string, def int) int     { return parsed(key, def, strconv.Atoi) }
func getdur(key string, def time.Duration) time.Duration {
	return parsed(key, def, time.ParseDuration)
}

// Load loads configuration from environment variables
func Load() *Config {
	env := getenv("APP_ENV", "development")
	return &Config{
		AppName:  getenv("APP_NAME", "jobboard-api"),
		Env:      env,
		Port:     getenv("PORT", "8080"),
		GinMode:  getenv("GIN_MODE", "release"),
		LogLevel: getenv("LOG_LEVEL", ""),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "jobboard"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		AdminTokenSecret:     getenv("ADMIN_TOKEN_SECRET", "devadminsecret"),
		CandidateTokenSecret: getenv("CANDIDATE_TOKEN_SECRET", "devcandidatesecret"),
		RecruiterTokenSecret: getenv("RECRUITER_TOKEN_SECRET", "devrecruitersecret"),
		TokenExpiryMinutes:   getint("TOKEN_EXPIRY", 0),

		ResetCodeTTL:  getdur("RESET_CODE_TTL", 600*time.Second),
		ResetCodeEcho: getbool("RESET_CODE_ECHO", env == "development"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESJobsIndex:        getenv("ES_JOBS_INDEX", "jobs"),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		CompanyName: getenv("COMPANY_NAME", "Job Board"),
		SupportURL:  getenv("SUPPORT_URL", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),

		RateLimitEnabled: getbool("RATE_LIMIT_ENABLED", true),
	}
}

// PostgresDSN returns a postgres:// URL usable by pgx and golang-migrate.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

var devSecrets = map[string]bool{"devadminsecret": true, "devcandidatesecret": true, "devrecruitersecret": true}

// Validate rejects signing secrets that are empty or shared between roles.
// Outside development the built-in dev secrets are rejected too.
func (c *Config) Validate() error {
	secrets := map[string]string{
		"ADMIN_TOKEN_SECRET":     c.AdminTokenSecret,
		"CANDIDATE_TOKEN_SECRET": c.CandidateTokenSecret,
		"RECRUITER_TOKEN_SECRET": c.RecruiterTokenSecret,
	}
	seen := make(map[string]string, len(secrets))
	for _, key := range []string{"ADMIN_TOKEN_SECRET", "CANDIDATE_TOKEN_SECRET", "RECRUITER_TOKEN_SECRET"} {
		v := secrets[key]
		if v == "" {
			return fmt.Errorf("%s must be set", key)
		}
		if other, ok := seen[v]; ok {
			return fmt.Errorf("%s and %s must differ", other, key)
		}
		seen[v] = key
		if c.Env != "development" && devSecrets[v] {
			return fmt.Errorf("%s uses the development default", key)
		}
	}
	return nil
}

// TokenExpiry converts TOKEN_EXPIRY minutes into a duration.
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.TokenExpiryMinutes) * time.Minute
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitCSV(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitCSV(c.ElasticsearchAddrs)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
