package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
)

// ServerConfiguration contains the server settings
type ServerConfiguration struct {
	Port      int
	Address   string
	CSRFToken string `mapstructure:"csrf-token" json:"-"`
	// SecureCookies marks the csrf cookie as https only
	SecureCookies bool `mapstructure:"secure-cookies"`
}

// DatabaseConfiguration contains the settings required to connect to a database
type DatabaseConfiguration struct {
	Type string
	DSN  string `json:"-"`
	// UseProcedures calls the backend's stored procedures (get_all_tables,
	// toggle_table_audit, enable_all_audits) instead of touching the tables directly
	UseProcedures bool `mapstructure:"use-procedures"`
}

// BehaviourConfiguration configures how the dashboard behaves
type BehaviourConfiguration struct {
	Name string
	// PrimaryKey is the column used to locate rows when reverting a change
	PrimaryKey string `mapstructure:"primary-key"`
	// LogLimit is the amount of recent audit log entries loaded into the feed
	LogLimit int `mapstructure:"log-limit"`
	// RetentionDays is the retention policy of the backend, for display only
	RetentionDays int           `mapstructure:"retention-days"`
	RecentWindow  time.Duration `mapstructure:"recent-window"`
}

// AuthConfiguration configures verification of backend issued tokens
type AuthConfiguration struct {
	JWTSecret string `mapstructure:"jwt-secret" json:"-"`
	JWTAlg    string `mapstructure:"jwt-alg"`
}

// Enabled returns true if requests need to carry a valid token
func (a *AuthConfiguration) Enabled() bool {
	return a != nil && a.JWTSecret != ""
}

// CORSConfiguration very basic cors configuration
type CORSConfiguration struct {
	AllowCredentials bool     `mapstructure:"allow-credentials"`
	AllowedMethods   []string `mapstructure:"allowed-methods"`
	AllowedOrigins   []string `mapstructure:"allowed-origins"`
}

// ManageEndpointConfiguration holds the headless manage endpoint configuration
type ManageEndpointConfiguration struct {
	Enable bool
	CORS   *CORSConfiguration
}

// RedisConfiguration configures the live feed
type RedisConfiguration struct {
	Enable   bool
	Addr     string
	Password string `json:"-"`
	DB       int
	Channel  string
}

// SMTPConfiguration contains the email settings
type SMTPConfiguration struct {
	Enable   bool
	Host     string
	Port     int
	Username string
	Password string `json:"-"`
	// DisplayName will be displayed as email sender
	DisplayName string `mapstructure:"display-name"`
	// Address is the sender address
	Address string
}

// NotificationConfiguration lists who gets notified about reverted changes
type NotificationConfiguration struct {
	Recipients []string
}

// SchedulerConfiguration configures background jobs
type SchedulerConfiguration struct {
	// SyncSchedule is a cron spec for the schema sync, empty disables it
	SyncSchedule string `mapstructure:"sync-schedule"`
}

// MetricsConfiguration configures the prometheus endpoint
type MetricsConfiguration struct {
	Enable bool
	Path   string
}

// Configuration holds the entire quickaudit configuration
type Configuration struct {
	Server         *ServerConfiguration         `mapstructure:"server"`
	Database       *DatabaseConfiguration       `mapstructure:"database"`
	Behaviour      *BehaviourConfiguration      `mapstructure:"behaviour"`
	Auth           *AuthConfiguration           `mapstructure:"auth"`
	ManageEndpoint *ManageEndpointConfiguration `mapstructure:"manage-endpoint"`
	Redis          *RedisConfiguration          `mapstructure:"redis"`
	SMTP           *SMTPConfiguration           `mapstructure:"smtp"`
	Notifications  *NotificationConfiguration   `mapstructure:"notifications"`
	Scheduler      *SchedulerConfiguration      `mapstructure:"scheduler"`
	Metrics        *MetricsConfiguration        `mapstructure:"metrics"`
}

// Validate does some basic validation of the config file and tries to be helpful on missconfiguration
func (c *Configuration) Validate() error {
	if c.Database == nil {
		return errors.New("no database configuration found")
	}
	switch c.Database.Type {
	case "pg", "sqlite":
	default:
		return errors.Newf("unsupported database.type %q, use pg or sqlite", c.Database.Type)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Database.Type == "sqlite" && c.Database.UseProcedures {
		return errors.New("database.use-procedures is only supported with pg")
	}
	if c.Server == nil {
		return errors.New("no server configuration found")
	}
	if c.Server.CSRFToken != "" && len(c.Server.CSRFToken) != 32 {
		return errors.New("server.csrf-token needs to be exactly 32 bytes long")
	}
	if c.Behaviour == nil {
		return errors.New("no behaviour configuration found")
	}
	if c.Behaviour.PrimaryKey == "" {
		return errors.New("behaviour.primary-key must not be empty")
	}
	if c.Behaviour.LogLimit <= 0 {
		return errors.New("behaviour.log-limit needs to be positive")
	}
	if c.Auth.Enabled() {
		switch c.Auth.JWTAlg {
		case "HS256", "HS384", "HS512":
		default:
			return errors.Newf("auth.jwt-alg %q is not supported, use HS256, HS384 or HS512", c.Auth.JWTAlg)
		}
	}
	if c.ManageEndpoint != nil {
		if c.ManageEndpoint.Enable && c.ManageEndpoint.CORS == nil {
			return errors.New("manage endpoint has no cors settings")
		}
	}
	if c.Redis != nil && c.Redis.Enable {
		if c.Redis.Addr == "" {
			return errors.New("redis is enabled but redis.addr is empty")
		}
		if c.Redis.Channel == "" {
			return errors.New("redis is enabled but redis.channel is empty")
		}
	}
	if c.SMTP != nil && c.SMTP.Enable {
		if c.SMTP.Host == "" || c.SMTP.Address == "" {
			return errors.New("smtp is enabled, smtp.host and smtp.address are required")
		}
	}
	return nil
}

// RecentWindow returns the configured window for recent events, defaulting to a day
func (c *Configuration) RecentWindow() time.Duration {
	if c.Behaviour == nil || c.Behaviour.RecentWindow <= 0 {
		return 24 * time.Hour
	}
	return c.Behaviour.RecentWindow
}

// DebugMode returns true if the QA_DEBUG_MODE variable is set
func (*Configuration) DebugMode() bool {
	if r := os.Getenv("QA_DEBUG_MODE"); r == "true" {
		return true
	}
	return false
}
