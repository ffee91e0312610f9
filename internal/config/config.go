package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	ServiceName string        `mapstructure:"service_name"`
	HTTP        HTTPConfig    `mapstructure:"http"`
	Store       StoreConfig   `mapstructure:"store"`
	Mongo       MongoConfig   `mapstructure:"mongo"`
	Redis       RedisConfig   `mapstructure:"redis"`
	NATS        NATSConfig    `mapstructure:"nats"`
	Storage     StorageConfig `mapstructure:"storage"`
	SMTP        SMTPConfig    `mapstructure:"smtp"`
	Tracing     TracingConfig `mapstructure:"tracing"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
	Catalog     CatalogConfig `mapstructure:"catalog"`
}

type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// StoreConfig picks the content store implementation. The memory driver
// serves listings from a JSON fixture file and is meant for local work.
type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	Fixtures string `mapstructure:"fixtures"`
}

// MongoConfig holds the connection settings for the content store.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// RedisConfig enables the facet option cache when Address is set.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	FacetTTL time.Duration `mapstructure:"facet_ttl"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	ContactSubject string        `mapstructure:"contact_subject"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type StorageConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	Bucket        string        `mapstructure:"bucket"`
	Region        string        `mapstructure:"region"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PresignTTL    time.Duration `mapstructure:"presign_ttl"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type CatalogConfig struct {
	FeaturedLimit int `mapstructure:"featured_limit"`
	LatestLimit   int `mapstructure:"latest_limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "catalog-service")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.request_timeout", "10s")
	v.SetDefault("http.allowed_origins", []string{})

	v.SetDefault("store.driver", StoreDriverMongo)
	v.SetDefault("store.fixtures", "")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.username", "")
	v.SetDefault("mongo.password", "")
	v.SetDefault("mongo.database", "goodmen_catalog")
	v.SetDefault("mongo.collection", "listings")
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("mongo.min_pool_size", 0)
	v.SetDefault("mongo.max_pool_size", 100)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.facet_ttl", "60s")

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.contact_subject", "catalog.contact.submitted")
	v.SetDefault("nats.connect_timeout", "5s")

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "listing-images")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.presign_ttl", "1h")
	v.SetDefault("storage.public_base_url", "/media")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.to", "")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("catalog.featured_limit", 6)
	v.SetDefault("catalog.latest_limit", 8)
}

// LoadConfig reads defaults, an optional YAML file at path and CATALOG_*
// environment variables, in increasing order of precedence. A .env file in
// the working directory is loaded into the environment first.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: ignoring unreadable .env file: %v", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		if fi, err := os.Stat(path); err == nil {
			if fi.IsDir() {
				v.AddConfigPath(path)
				v.SetConfigName("config")
				v.SetConfigType("yaml")
			} else {
				v.SetConfigFile(path)
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: http.port must be positive, got %d", c.HTTP.Port)
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("config: mongo.uri and mongo.database are required for the mongo store")
		}
	case StoreDriverMemory:
		if c.Store.Fixtures == "" {
			return errors.New("config: store.fixtures is required for the memory store")
		}
	default:
		return fmt.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}
	if c.Catalog.FeaturedLimit <= 0 || c.Catalog.LatestLimit <= 0 {
		return errors.New("config: catalog limits must be positive")
	}
	return nil
}
