package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptySecretOutsideDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Env: "production"},
		JWT: JWTConfig{Secret: ""},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_EmptySecretAllowedInDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Env: "development"},
		JWT: JWTConfig{Secret: ""},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SecretSet(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Env: "production"},
		JWT: JWTConfig{Secret: "clave"},
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FailsFastWithoutSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
