package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Supabase SupabaseConfig
	Board    BoardConfig
	Session  SessionConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"eighty-six"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// SupabaseConfig holds the connection secrets for the hosted data+auth
// service. URL and Key are startup preconditions: the board refuses to run
// on partial credentials.
type SupabaseConfig struct {
	URL string `envconfig:"SUPABASE_URL" default:""`
	Key string `envconfig:"SUPABASE_KEY" default:""`
	// Table is the logical table holding the 86'd items.
	Table string `envconfig:"SUPABASE_TABLE" default:"eighty_sixed"`
}

// BoardConfig holds board behavior settings.
type BoardConfig struct {
	// AuthMode selects the auth strategy: none, password, persistent, or oauth.
	AuthMode string `envconfig:"BOARD_AUTH_MODE" default:"none"`
	// DBType selects where items live: supabase (default), sqlite, or mysql.
	DBType string `envconfig:"BOARD_DB_TYPE" default:"supabase"`
	// SQLitePath is the database file used when DBType is sqlite.
	SQLitePath string `envconfig:"BOARD_SQLITE_PATH" default:"./data/board.db"`
	// OAuthProvider is the external identity provider for oauth mode.
	OAuthProvider string `envconfig:"BOARD_OAUTH_PROVIDER" default:"google"`
	// OAuthRedirectURL is where the provider sends the authorization code.
	OAuthRedirectURL string `envconfig:"BOARD_OAUTH_REDIRECT_URL" default:"http://localhost:8080/auth/callback"`
	// CookieTTL is how long the persisted token pair survives a reload.
	CookieTTL time.Duration `envconfig:"BOARD_COOKIE_TTL" default:"720h"`
	// CookieSecure marks persisted cookies Secure (HTTPS-only deployments).
	CookieSecure bool `envconfig:"BOARD_COOKIE_SECURE" default:"false"`
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	// StoreType selects the session store: memory or redis.
	StoreType string        `envconfig:"SESSION_STORE_TYPE" default:"memory"`
	TTL       time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// DatabaseConfig holds MySQL connection settings, used when DBType is mysql.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	Name     string `envconfig:"DB_NAME" default:"eightysix"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASS" default:""`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *SessionConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// DSN returns the MySQL data source name.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// NeedsSupabase reports whether this deployment talks to the hosted service
// at all. Only a fully local board (local item DB, no authentication) can
// run without it.
func (c *Config) NeedsSupabase() bool {
	return c.Board.DBType == "supabase" || c.Board.AuthMode != "none"
}

// Validate checks startup preconditions. Missing connection secrets halt
// startup with a single error; the board never runs on partial credentials.
func (c *Config) Validate() error {
	if c.NeedsSupabase() {
		if c.Supabase.URL == "" {
			return fmt.Errorf("missing Supabase credentials: SUPABASE_URL is not set")
		}
		if c.Supabase.Key == "" {
			return fmt.Errorf("missing Supabase credentials: SUPABASE_KEY is not set")
		}
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
