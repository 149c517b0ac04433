package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        tt.env,
				DBSSLMode:  tt.sslMode,
				DBHost:     "localhost",
				DBName:     "snipshare",
				DBPassword: "secure-password",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProductionPassword(t *testing.T) {
	c := &Config{
		Env:        "production",
		DBSSLMode:  "require",
		DBHost:     "db.internal",
		DBName:     "snipshare",
		DBPassword: "password",
	}
	assert.Error(t, c.Validate())

	c.DBPassword = "sufficiently-strong-password"
	assert.NoError(t, c.Validate())
}

func TestConfig_ValidateSampleRate(t *testing.T) {
	c := &Config{DBHost: "localhost", DBName: "snipshare", TraceSampleRate: 1.5}
	assert.Error(t, c.Validate())

	c.TraceSampleRate = 0.5
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	os.Setenv("APP_ENV", "test")
	defer os.Unsetenv("APP_ENV")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "snipshare", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "stdout", cfg.TracingExporter)
	assert.False(t, cfg.TracingEnabled)
}
