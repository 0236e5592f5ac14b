package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the airport finder.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP search API.
// - ProviderType: The airport data source to use (cloudant, google, postgres).
// - APIKey: The API key for the data source (required for Google).
// - RateLimit: Requests per second allowed against the data source.
// - Timeout: Upper bound for one data source query.
// - CacheSize: Number of distances kept in the memo table.
// - Cloudant: Settings of the Cloudant search index.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         // Env is the current environment: local, development, production.
	Port         int            // Port is the HTTP search API port.
	ProviderType string         // ProviderType specifies which data source to use.
	APIKey       string         // The API key for accessing the data source.
	RateLimit    int            // Requests per second against the data source.
	Timeout      time.Duration  // Upper bound for one data source query.
	CacheSize    int            // Number of memoized distances.
	Cloudant     CloudantConfig // Cloudant holds the search index configuration.
	Database     PostgresConfig // Database holds the postgres database configuration.
}

// CloudantConfig holds the location and optional credentials of the airport search index.
type CloudantConfig struct {
	URL      string // URL of the search index.
	Username string // Username for basic auth, empty for public indexes.
	Password string // Password for basic auth.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration and returns a Config struct. Values come, in order of
// precedence, from AIRFINDER_* environment variables (a .env file is loaded first), the
// YAML file named by AIRFINDER_CONFIG_FILE, and built-in defaults.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AIRFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path, ok := os.LookupEnv("AIRFINDER_CONFIG_FILE"); ok {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	timeout, err := time.ParseDuration(v.GetString("provider.timeout"))
	if err != nil {
		panic("failed to parse provider timeout from configuration")
	}

	port, err := strconv.Atoi(v.GetString("http.port"))
	if err != nil {
		panic("failed to parse port for HTTP server from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("provider.rate_limit"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer types")
	}

	cacheSize, err := strconv.Atoi(v.GetString("cache.size"))
	if err != nil {
		panic("failed to parse cache size from configuration, must be an integer types")
	}

	return &Config{
		Env:          v.GetString("env"),
		Port:         port,
		ProviderType: v.GetString("provider.type"),
		APIKey:       v.GetString("provider.api_key"),
		RateLimit:    rateLimit,
		Timeout:      timeout,
		CacheSize:    cacheSize,
		Cloudant: CloudantConfig{
			URL:      v.GetString("cloudant.url"),
			Username: v.GetString("cloudant.username"),
			Password: v.GetString("cloudant.password"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("http.port", "8080")
	v.SetDefault("provider.type", "cloudant")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.rate_limit", "5")
	v.SetDefault("provider.timeout", "10s")
	v.SetDefault("cache.size", "128")
	v.SetDefault("cloudant.url", "https://mikerhodes.cloudant.com/airportdb/_design/view1/_search/geo")
	v.SetDefault("cloudant.username", "")
	v.SetDefault("cloudant.password", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "airfinder")
}
