package commands

import (
	"time"

	"tennisleagues/lib/configutil"
	"tennisleagues/lib/telemetry"
)

const defaultConfigPath = "leagues.json5"

type Config struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	UserAgent      string `json:"user_agent"`
	// some deployments sit behind Cloudflare's bot check
	CloudflareBypass bool             `json:"cloudflare_bypass"`
	Telemetry        telemetry.Config `json:"telemetry"`
}

var defaultConfig = Config{
	BaseUrl:        "http://localhost:3000",
	TimeoutSeconds: 30,
	UserAgent:      "leagues-cli",
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// loadConfig merges <path> and <path>.local over the defaults, missing
// files are not an error.
func loadConfig(path string) (Config, error) {
	return configutil.ReadConfigOr(path, defaultConfig)
}
