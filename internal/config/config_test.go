package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "https://healthcare-backend-a66n.onrender.com/api", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, filepath.Join(cfg.StateDir, "state.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join(cfg.StateDir, "device.key"), cfg.DeviceKeyPath())
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"careportal", "-a", "https://example.org/api", "-s", "/tmp/cp", "-t", "30"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, "https://example.org/api", cfg.BaseURL)
	assert.Equal(t, "/tmp/cp", cfg.StateDir)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"base_url":"https://json.example/api","request_timeout":"3s","state_dir":"/var/lib/cp"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"careportal", "-config", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "https://json.example/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/var/lib/cp", cfg.StateDir)
}

func TestParseJsonMissingFile(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"careportal", "-c", "/does/not/exist.json"}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	// defaults survive a missing file
	assert.Equal(t, "https://healthcare-backend-a66n.onrender.com/api", cfg.BaseURL)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
}
