package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "listings", cfg.Mongo.Collection)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, "catalog.contact.submitted", cfg.NATS.ContactSubject)
	assert.Equal(t, 6, cfg.Catalog.FeaturedLimit)
	assert.Equal(t, 8, cfg.Catalog.LatestLimit)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("http:\n  port: 9000\nstore:\n  driver: memory\n  fixtures: ./testdata/listings.json\nredis:\n  facet_ttl: 5s\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("CATALOG_HTTP_PORT", "9100")
	t.Setenv("CATALOG_MONGO_DATABASE", "from_env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port, "env overrides file")
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "./testdata/listings.json", cfg.Store.Fixtures)
	assert.Equal(t, 5*time.Second, cfg.Redis.FacetTTL)
	assert.Equal(t, "from_env", cfg.Mongo.Database)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			HTTP:    HTTPConfig{Port: 8080},
			Store:   StoreConfig{Driver: StoreDriverMongo},
			Mongo:   MongoConfig{URI: "mongodb://localhost", Database: "db"},
			Catalog: CatalogConfig{FeaturedLimit: 6, LatestLimit: 8},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = StoreDriverMemory
	assert.Error(t, cfg.Validate(), "memory driver needs fixtures")

	cfg = base()
	cfg.Mongo.Database = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.HTTP.Port = 0
	assert.Error(t, cfg.Validate())
}
