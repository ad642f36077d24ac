package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults so host settings cannot leak
// into assertions. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ADVISOR_PORT", "PORT",
		"ADVISOR_ENV", "ENV", "GO_ENV",
		"DATASET_PATH", "DB_PATH", "WEIGHTS_PATH",
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, errs := Load("")
	require.Empty(t, errs)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Empty(t, cfg.DatasetPath)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.WeightsPath)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
port: 9090
env: production
dataset_path: /data/countries.json
weights_path: /data/weights.json
`)

	cfg, errs := Load(path)
	require.Empty(t, errs)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/data/countries.json", cfg.DatasetPath)
	assert.Equal(t, "/data/weights.json", cfg.WeightsPath)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "port: 9090\nenv: production\n")
	t.Setenv("ADVISOR_PORT", "7070")
	t.Setenv("ADVISOR_ENV", "staging")

	cfg, errs := Load(path)
	require.Empty(t, errs)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "staging", cfg.Env)
}

func TestLoadRejectsBadPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, errs := Load("")
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], ErrInvalidPort)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, errs := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid", Config{Port: 8080, Env: "development"}, nil},
		{"port too small", Config{Port: 0, Env: "development"}, ErrPortOutOfRange},
		{"port too large", Config{Port: 70000, Env: "development"}, ErrPortOutOfRange},
		{"unknown env", Config{Port: 8080, Env: "weird"}, ErrUnknownEnv},
		{
			"conflicting sources",
			Config{Port: 8080, Env: "development", DatasetPath: "a.json", DBPath: "b.db"},
			ErrConflictingSources,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.ErrorIs(t, errs[0], tt.wantErr)
		})
	}
}

func TestLogSummary(t *testing.T) {
	cfg := Config{Port: 8080, Env: "development"}
	summary := cfg.LogSummary()
	assert.Equal(t, "8080", summary["port"])
	assert.Equal(t, "(embedded seed)", summary["dataset"])
	assert.Equal(t, "(defaults)", summary["weights"])

	cfg.DBPath = "advisor.db"
	assert.Equal(t, "sqlite:advisor.db", cfg.LogSummary()["dataset"])
}
