package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "contacts-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Redis.StatsTTL)
	assert.Equal(t, 10*time.Second, cfg.Files.Timeout)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("REDIS_STATS_TTL", "90")
	v.Set("FILES_TIMEOUT", "2s")
	v.Set("DB_PORT", "6543")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("MEMORY_SEED_COMPANY_ID", "11111111-1111-1111-1111-111111111111")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 90*time.Second, cfg.Redis.StatsTTL)
	assert.Equal(t, 2*time.Second, cfg.Files.Timeout)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", cfg.Storage.SeedCompanyID)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_ProduccionExigeSecretoJWT(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("JWT_SECRET", "s3cr3t")
	_, err = fromViper(v)
	assert.NoError(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "contacts", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/contacts?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
