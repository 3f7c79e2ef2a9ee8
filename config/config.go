package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	DBDriver  string
	SQLiteDSN string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SessionCookieName string
	SessionTTL        time.Duration
	SecureCookies     bool

	CORSAllowedOrigins []string

	TelegramBotToken string
	AdminID          int64
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "taxiservice"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.DBDriver = cast.ToString(getOrReturnDefault("DB_DRIVER", DriverSQLite))
	cfg.SQLiteDSN = cast.ToString(getOrReturnDefault("SQLITE_DSN", "file:taxiservice.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "taxiservice"))

	cfg.SessionCookieName = cast.ToString(getOrReturnDefault("SESSION_COOKIE_NAME", "sessionid"))
	cfg.SessionTTL = time.Duration(cast.ToInt(getOrReturnDefault("SESSION_TTL_HOURS", 336))) * time.Hour
	cfg.SecureCookies = cast.ToBool(getOrReturnDefault("SECURE_COOKIES", false))

	cfg.CORSAllowedOrigins = splitList(cast.ToString(getOrReturnDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")))

	cfg.TelegramBotToken = cast.ToString(getOrReturnDefault("TG_BOT_TOKEN", ""))
	cfg.AdminID = cast.ToInt64(getOrReturnDefault("ADMIN_ID", 0))

	return cfg
}

// PostgresURL builds the connection string shared by pgxpool and migrate.
func (c Config) PostgresURL() string {
	return "postgres://" + c.PostgresUser + ":" + c.PostgresPassword + "@" +
		c.PostgresHost + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
