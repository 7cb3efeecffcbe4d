// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	} `json:"app"`
	Database struct {
		URL string `json:"url"`
	} `json:"database"`
	Server struct {
		Port           string        `json:"port"`
		ReadTimeout    time.Duration `json:"read_timeout"`
		WriteTimeout   time.Duration `json:"write_timeout"`
		AllowedOrigins []string      `json:"allowed_origins"`
	} `json:"server"`
	Site struct {
		// BasePath prefixes every generated template URL: {BasePath}/{slug}/{template}.
		BasePath        string `json:"base_path"`
		DefaultPassword string `json:"default_password"`
	} `json:"site"`
	Media struct {
		Root        string `json:"root"`
		URL         string `json:"url"`
		MaxUploadMB int64  `json:"max_upload_mb"`
	} `json:"media"`
	CRM struct {
		Enabled          bool          `json:"enabled"`
		BaseURL          string        `json:"base_url"`
		APIVersion       string        `json:"api_version"`
		AgencyToken      string        `json:"agency_token"`
		LocationToken    string        `json:"location_token"`
		ContactLocation  string        `json:"contact_location_id"`
		CompanyID        string        `json:"company_id"`
		Timeout          time.Duration `json:"timeout"`
		SchemaTTL        time.Duration `json:"schema_ttl"`
		SyncTimeout      time.Duration `json:"sync_timeout"`
		UpsertRetryCount int           `json:"upsert_retry_count"`
		UpsertRetryWait  time.Duration `json:"upsert_retry_wait"`
		// ReconcileInterval runs the mirror reconciler periodically; zero disables it.
		ReconcileInterval time.Duration `json:"reconcile_interval"`
	} `json:"crm"`
	OTP struct {
		Store        string        `json:"store"`
		TTL          time.Duration `json:"ttl"`
		MaxAttempts  int           `json:"max_attempts"`
		MaxPerMinute int           `json:"max_per_minute"`
	} `json:"otp"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Email struct {
		Provider string `json:"provider"`
		FromName string `json:"from_name"`
	} `json:"email"`
	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
	SMTP map[string]struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	JWT struct {
		Secret       string        `json:"secret"`
		Issuer       string        `json:"issuer"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.Name = getEnv("APP_NAME", "Onboarding API")
	cfg.App.Debug = getEnvBool("DEBUG", false)

	cfg.Database.URL = getEnv("DATABASE_URL", "sqlite://onboarding.db")

	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	// Uploads and CRM mirroring run inside the request, so writes get more room.
	cfg.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 90*time.Second)
	cfg.Server.AllowedOrigins = getEnvSlice("ALLOWED_ORIGINS", []string{"https://*", "http://*"})

	cfg.Site.BasePath = strings.TrimRight(getEnv("SITE_BASE_PATH", "http://localhost:8080/temp"), "/")
	cfg.Site.DefaultPassword = getEnv("DEFAULT_SITE_PASSWORD", "welcome123")

	cfg.Media.Root = getEnv("MEDIA_ROOT", "media")
	cfg.Media.URL = strings.TrimRight(getEnv("MEDIA_URL", "/media"), "/")
	cfg.Media.MaxUploadMB = int64(getEnvInt("MAX_UPLOAD_MB", 32))

	cfg.CRM.Enabled = getEnvBool("CRM_ENABLED", false)
	cfg.CRM.BaseURL = getEnv("CRM_BASE_URL", "https://services.leadconnectorhq.com")
	cfg.CRM.APIVersion = getEnv("CRM_API_VERSION", "2021-07-28")
	cfg.CRM.AgencyToken = getEnv("CRM_AGENCY_TOKEN", "")
	cfg.CRM.LocationToken = getEnv("CRM_LOCATION_TOKEN", "")
	cfg.CRM.ContactLocation = getEnv("CRM_CONTACT_LOCATION_ID", "")
	cfg.CRM.CompanyID = getEnv("CRM_COMPANY_ID", "")
	cfg.CRM.Timeout = getEnvDuration("CRM_TIMEOUT", 30*time.Second)
	cfg.CRM.SchemaTTL = getEnvDuration("CRM_SCHEMA_TTL", 10*time.Minute)
	cfg.CRM.SyncTimeout = getEnvDuration("CRM_SYNC_TIMEOUT", 60*time.Second)
	cfg.CRM.UpsertRetryCount = getEnvInt("CRM_UPSERT_RETRY_COUNT", 3)
	cfg.CRM.UpsertRetryWait = getEnvDuration("CRM_UPSERT_RETRY_WAIT", 2*time.Second)
	cfg.CRM.ReconcileInterval = getEnvDuration("CRM_RECONCILE_INTERVAL", 0)

	cfg.OTP.Store = getEnv("OTP_STORE", "memory")
	cfg.OTP.TTL = getEnvDuration("OTP_TTL", 10*time.Minute)
	cfg.OTP.MaxAttempts = getEnvInt("OTP_MAX_ATTEMPTS", 5)
	cfg.OTP.MaxPerMinute = getEnvInt("OTP_MAX_PER_MINUTE", 3)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Email.Provider = getEnv("EMAIL_PROVIDER", "none")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "Campaign Launchpad")

	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "")

	cfg.SMTP = map[string]struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	}{
		"smtp": {
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}

	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "onboarding")
	cfg.JWT.ExpiryPeriod = getEnvDuration("JWT_EXPIRY", 24*time.Hour)

	return cfg
}

// IsPostgres reports whether DATABASE_URL points at PostgreSQL.
func (c *Config) IsPostgres() bool {
	url := c.Database.URL
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://") ||
		strings.Contains(url, "host=")
}

// SQLitePath strips the sqlite:// scheme from DATABASE_URL.
func (c *Config) SQLitePath() string {
	url := c.Database.URL
	url = strings.TrimPrefix(url, "sqlite:///")
	url = strings.TrimPrefix(url, "sqlite://")
	return url
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvSlice(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
