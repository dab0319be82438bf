package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SQLPILOT_API_KEY", "test-key")
	t.Setenv("SQLPILOT_DB_NAME", "employees")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Equal(t, 10*time.Second, cfg.Completion.ListTimeout)
	assert.Equal(t, 30*time.Second, cfg.Completion.CompleteTimeout)
	assert.Equal(t, 500, cfg.Completion.MaxOutputTokens)
	assert.Equal(t, "outputs", cfg.Output.Directory)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SQLPILOT_DB_HOST", "db.internal")
	t.Setenv("SQLPILOT_DB_PORT", "3307")
	t.Setenv("SQLPILOT_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigPrefixAppliedOnce(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SQLPILOT_DB_HOST", "db.internal")
	t.Setenv("SQLPILOT_SQLPILOT_DB_HOST", "wrong.internal")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing API key",
			env:     map[string]string{"SQLPILOT_DB_NAME": "employees"},
			wantErr: "SQLPILOT_API_KEY is required",
		},
		{
			name:    "missing database name",
			env:     map[string]string{"SQLPILOT_API_KEY": "k"},
			wantErr: "SQLPILOT_DB_NAME is required",
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"SQLPILOT_API_KEY":   "k",
				"SQLPILOT_DB_NAME":   "employees",
				"SQLPILOT_LOG_LEVEL": "loud",
			},
			wantErr: "invalid log level",
		},
		{
			name: "port out of range",
			env: map[string]string{
				"SQLPILOT_API_KEY": "k",
				"SQLPILOT_DB_NAME": "employees",
				"SQLPILOT_DB_PORT": "70000",
			},
			wantErr: "port out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "secret",
		Name:     "employees",
	}

	assert.Equal(t, "root:secret@tcp(localhost:3306)/employees?parseTime=true", d.DSN())
}
