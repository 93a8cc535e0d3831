package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, ThemeSourceFile, cfg.Themes.Source)
	assert.Equal(t, "themes", cfg.Themes.Dir)
	assert.Equal(t, 5*time.Minute, cfg.Themes.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Security.ForgetTTL)
	assert.Equal(t, DBDriverOracle, cfg.DB.Driver)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("THEMES_DIR", "/srv/themes")
	t.Setenv("REDIS_ADDRESS", "localhost:6380")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "/srv/themes", cfg.Themes.Dir)
	assert.Equal(t, "localhost:6380", cfg.Redis.Address)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "s3cret", cfg.Security.SecretKey)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestFromViper_RejectsUnknownSource(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("themes.source", "s3")

	_, err := fromViper(v)
	assert.ErrorContains(t, err, "unsupported themes.source")
}

func TestFromViper_RejectsUnknownDriver(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("db.driver", "postgres")

	_, err := fromViper(v)
	assert.ErrorContains(t, err, "unsupported db.driver")
}

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name string
		db   DBConfig
		want string
	}{
		{
			name: "oracle",
			db:   DBConfig{Driver: DBDriverOracle, Host: "db", Port: 1521, User: "quiz", Password: "pw", DBName: "FREEPDB1"},
			want: "oracle://quiz:pw@db:1521/FREEPDB1",
		},
		{
			name: "sqlite",
			db:   DBConfig{Driver: DBDriverSQLite, Path: "/var/lib/mcq/themes.db"},
			want: "file:/var/lib/mcq/themes.db?_pragma=foreign_keys(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DB: tt.db}
			assert.Equal(t, tt.want, cfg.GetDSN())
		})
	}
}
