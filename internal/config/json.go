package config

import (
	"encoding/json"
	"os"

	"careportal/internal/flagx"
	"careportal/internal/timex"
)

// JsonConfig mirrors Config for the optional JSON config file. Durations may
// be given as strings ("15s") or nanosecond numbers.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDir       string         `json:"state_dir"`
	OpenAIModel    string         `json:"openai_model"`
}

// parseJson overlays values from the file named by -c/-config, if any.
// A missing or malformed file is ignored so the CLI still starts with
// defaults.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.OpenAIModel != "" {
		cfg.OpenAIModel = jc.OpenAIModel
	}
}
