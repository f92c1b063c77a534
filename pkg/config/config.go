package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" json:"http" jsonschema:"description=HTTP server configuration"`
	IMAP     IMAPConfig     `yaml:"imap" json:"imap" jsonschema:"description=IMAP mailbox configuration"`
	Content  ContentConfig  `yaml:"content" json:"content" jsonschema:"description=Content storage configuration"`
	RSS      RSSConfig      `yaml:"rss" json:"rss" jsonschema:"description=Rendered feeds configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
}

// HTTPConfig holds http server settings
type HTTPConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:3000,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"baseurl" json:"baseurl" jsonschema:"default=http://localhost:3000,description=Public base URL used in feed and article links"`
	Auth    struct {
		User         string `yaml:"user" json:"user" jsonschema:"description=API basic auth user, API is open if empty"`
		PasswordHash string `yaml:"password_hash" json:"password_hash" jsonschema:"description=bcrypt hash of the API password"`
	} `yaml:"auth" json:"auth" jsonschema:"description=API authentication"`
}

// IMAPConfig holds mailbox connection settings
type IMAPConfig struct {
	Host     string `yaml:"host" json:"host" jsonschema:"required,description=IMAP server host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=993,description=IMAP server port"`
	TLS      *bool  `yaml:"tls" json:"tls" jsonschema:"default=true,description=Use implicit TLS"`
	User     string `yaml:"user" json:"user" jsonschema:"required,description=IMAP user"`
	Password string `yaml:"password" json:"password" jsonschema:"required,description=IMAP password (can use environment variable)"`
	Box      string `yaml:"box" json:"box" jsonschema:"default=INBOX,description=Mailbox to ingest"`
	Retries  int    `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Connection attempts before giving up"`
	Resync   string `yaml:"resync" json:"resync" jsonschema:"description=Cron spec for a periodic full mailbox resync (e.g. @every 1h)"`
}

// ContentConfig holds file storage settings
type ContentConfig struct {
	Path string `yaml:"path" json:"path" jsonschema:"default=/data/nl2rss/,description=Directory for article bodies and rendered feeds"`
}

// RSSConfig holds feed rendering settings
type RSSConfig struct {
	Limit     int           `yaml:"limit" json:"limit" jsonschema:"default=100,description=Maximum number of items in a rendered feed"`
	CacheTime time.Duration `yaml:"cache_time" json:"cache_time" jsonschema:"default=10m,description=How long a rendered feed is served from cache"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:nl2rss.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// MissingKeyError reports a required configuration parameter that is not set
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("undefined config param %s", e.Key)
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// set defaults for http
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = ":3000"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 30 * time.Second
	}
	if c.HTTP.BaseURL == "" {
		c.HTTP.BaseURL = "http://localhost:3000"
	}
	c.HTTP.BaseURL = strings.TrimRight(c.HTTP.BaseURL, "/")

	// set defaults for imap
	if c.IMAP.Port == 0 {
		c.IMAP.Port = 993
	}
	if c.IMAP.TLS == nil {
		tls := true
		c.IMAP.TLS = &tls
	}
	if c.IMAP.Box == "" {
		c.IMAP.Box = "INBOX"
	}
	if c.IMAP.Retries == 0 {
		c.IMAP.Retries = 3
	}

	if c.Content.Path == "" {
		c.Content.Path = "/data/nl2rss/"
	}

	// set defaults for rss
	if c.RSS.Limit == 0 {
		c.RSS.Limit = 100
	}
	if c.RSS.CacheTime == 0 {
		c.RSS.CacheTime = 10 * time.Minute
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:nl2rss.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// required mailbox parameters, nothing can be ingested without them
	required := []struct {
		key   string
		value string
	}{
		{"imap.host", cfg.IMAP.Host},
		{"imap.user", cfg.IMAP.User},
		{"imap.password", cfg.IMAP.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &MissingKeyError{Key: r.key}
		}
	}

	if cfg.IMAP.Port < 1 || cfg.IMAP.Port > 65535 {
		return fmt.Errorf("imap.port must be between 1 and 65535")
	}
	if cfg.IMAP.Retries < 1 {
		return fmt.Errorf("imap.retries must be at least 1")
	}
	if cfg.RSS.Limit < 1 {
		return fmt.Errorf("rss.limit must be at least 1")
	}
	if cfg.RSS.CacheTime < 0 {
		return fmt.Errorf("rss.cache_time must be non-negative")
	}
	if cfg.HTTP.Auth.User != "" && cfg.HTTP.Auth.PasswordHash == "" {
		return &MissingKeyError{Key: "http.auth.password_hash"}
	}

	// validate server config
	if cfg.HTTP.Timeout < time.Second {
		return fmt.Errorf("http timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.HTTP.Listen, c.HTTP.Timeout
}

// GetAuth returns api credentials, empty user means the api is open
func (c *Config) GetAuth() (user, passwordHash string) {
	return c.HTTP.Auth.User, c.HTTP.Auth.PasswordHash
}

// GetBaseURL returns public base url without trailing slash
func (c *Config) GetBaseURL() string {
	return c.HTTP.BaseURL
}

// GetRSSConfig returns feed rendering configuration
func (c *Config) GetRSSConfig() RSSConfig {
	return c.RSS
}

// GetIMAPConfig returns mailbox configuration
func (c *Config) GetIMAPConfig() IMAPConfig {
	return c.IMAP
}

// UseTLS reports whether the mailbox connection uses implicit TLS
func (c IMAPConfig) UseTLS() bool {
	return c.TLS == nil || *c.TLS
}
