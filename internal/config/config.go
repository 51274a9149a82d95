package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers understood by the server.
const (
	DriverSQLite  = "sqlite"
	DriverSurreal = "surreal"
)

// Provider exposes configuration values to components that should not depend
// on the concrete Config struct (and to tests that mock it).
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetStoreDriver() string
	GetSQLitePath() string
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetDBExecuteTimeout() time.Duration
	GetAssetsDir() string
	GetLogFormat() string
	GetTracingEnabled() bool
	GetTracingServiceName() string
	GetTracingZipkinURL() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr          string
	AppBaseURL       string
	SessionSecret    string
	StoreDriver      string
	SQLitePath       string
	DBUrl            string
	DBNs             string
	DBDb             string
	DBUser           string
	DBPass           string
	DBQueryTimeout   time.Duration
	DBExecuteTimeout time.Duration
	AssetsDir        string
	LogFormat        string
	TracingEnabled   bool
	TracingService   string
	TracingZipkinURL string
}

// New loads configuration from a .env file (if present) and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("app_addr", ":8080")
	v.SetDefault("app_base_url", "http://localhost:8080")
	v.SetDefault("session_secret", "change-me-in-production-32-bytes!")
	v.SetDefault("store_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "var/learnhub.db")
	v.SetDefault("surreal_url", "ws://localhost:8000/rpc")
	v.SetDefault("surreal_ns", "learnhub")
	v.SetDefault("surreal_db", "learnhub")
	v.SetDefault("surreal_user", "")
	v.SetDefault("surreal_pass", "")
	v.SetDefault("db_query_timeout", 5*time.Second)
	v.SetDefault("db_execute_timeout", 10*time.Second)
	v.SetDefault("assets_dir", "web/static/vendor")
	v.SetDefault("log_format", "text")
	v.SetDefault("tracing_enabled", false)
	v.SetDefault("tracing_service_name", "learnhub")
	v.SetDefault("tracing_zipkin_url", "http://localhost:9411/api/v2/spans")

	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		AppAddr:          v.GetString("app_addr"),
		AppBaseURL:       v.GetString("app_base_url"),
		SessionSecret:    v.GetString("session_secret"),
		StoreDriver:      v.GetString("store_driver"),
		SQLitePath:       v.GetString("sqlite_path"),
		DBUrl:            v.GetString("surreal_url"),
		DBNs:             v.GetString("surreal_ns"),
		DBDb:             v.GetString("surreal_db"),
		DBUser:           v.GetString("surreal_user"),
		DBPass:           v.GetString("surreal_pass"),
		DBQueryTimeout:   v.GetDuration("db_query_timeout"),
		DBExecuteTimeout: v.GetDuration("db_execute_timeout"),
		AssetsDir:        v.GetString("assets_dir"),
		LogFormat:        v.GetString("log_format"),
		TracingEnabled:   v.GetBool("tracing_enabled"),
		TracingService:   v.GetString("tracing_service_name"),
		TracingZipkinURL: v.GetString("tracing_zipkin_url"),
	}

	if cfg.StoreDriver == DriverSurreal && (cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "") {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}

	return cfg
}

func (c *Config) GetAppAddr() string                 { return c.AppAddr }
func (c *Config) GetAppBaseURL() string              { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetStoreDriver() string             { return c.StoreDriver }
func (c *Config) GetSQLitePath() string              { return c.SQLitePath }
func (c *Config) GetDBURL() string                   { return c.DBUrl }
func (c *Config) GetDBNs() string                    { return c.DBNs }
func (c *Config) GetDBDb() string                    { return c.DBDb }
func (c *Config) GetDBUser() string                  { return c.DBUser }
func (c *Config) GetDBPass() string                  { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration   { return c.DBQueryTimeout }
func (c *Config) GetDBExecuteTimeout() time.Duration { return c.DBExecuteTimeout }
func (c *Config) GetAssetsDir() string               { return c.AssetsDir }
func (c *Config) GetLogFormat() string               { return c.LogFormat }
func (c *Config) GetTracingEnabled() bool            { return c.TracingEnabled }
func (c *Config) GetTracingServiceName() string      { return c.TracingService }
func (c *Config) GetTracingZipkinURL() string        { return c.TracingZipkinURL }
