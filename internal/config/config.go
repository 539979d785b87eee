package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret string

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	CORSOrigins []string

	// Клиентская часть (navedit)
	ServerURL   string
	CSRFToken   string
	CSRFPage    string
	AccessToken string
	HTTPTimeout time.Duration
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует: logger сам зависит от config.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		CORSOrigins: splitList(def(os.Getenv("CORS_ORIGINS"), "*")),

		ServerURL:   strings.TrimRight(def(os.Getenv("NAV_SERVER_URL"), "http://localhost:8080"), "/"),
		CSRFToken:   os.Getenv("NAV_CSRF_TOKEN"),
		CSRFPage:    os.Getenv("NAV_CSRF_PAGE"),
		AccessToken: os.Getenv("NAV_TOKEN"),
	}

	// 0 означает без таймаута
	timeout, err := time.ParseDuration(def(os.Getenv("NAV_HTTP_TIMEOUT"), "0s"))
	if err != nil {
		return nil, fmt.Errorf("NAV_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// частично заданная БД считается ошибкой, незаданная означает хранилище в памяти
	if c.DbHost != "" && (c.DbUser == "" || c.DbName == "") {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}
	if !c.UsePostgres() {
		warnings = append(warnings, "DB_HOST is empty, using in-memory store")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty, mutating routes are not protected")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}

// UsePostgres — true, если настроено подключение к БД.
func (c *Config) UsePostgres() bool {
	return c.DbHost != ""
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
