package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		dbPassword  string
		expectError bool
	}{
		{"Production with disable SSL mode", "production", "disable", "strong-password", true},
		{"Production with empty SSL mode", "production", "", "strong-password", true},
		{"Production with require SSL mode", "production", "require", "strong-password", false},
		{"Production with default password", "prod", "require", "password", true},
		{"Development with disable SSL mode", "development", "disable", "password", false},
		{"Test with empty SSL mode", "test", "", "password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        tt.env,
				DBSSLMode:  tt.sslMode,
				DBPassword: tt.dbPassword,
				DBName:     "microsns",
				Port:       "3001",
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

func TestConfig_Validate_RequiredFields(t *testing.T) {
	c := &Config{DBName: "microsns"}
	assert.Error(t, c.Validate(), "missing PORT should fail")

	c = &Config{Port: "3001"}
	assert.Error(t, c.Validate(), "missing DB_NAME should fail")
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotEmpty(t, c.Port)
	assert.Equal(t, "disable", c.DBSSLMode)
}

func TestLoadConfig_SSLModeNormalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
}
