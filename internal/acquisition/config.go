package acquisition

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/tenderboard/pkg/formatting"
)

// Default relay endpoints. Each prefix is followed by the URL-encoded target.
var DefaultRelays = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?url=",
}

// Config holds document acquisition parameters.
type Config struct {
	Relays            []string `toml:"relays"`
	AttemptTimeout    string   `toml:"attempt_timeout"`
	BatchSize         int      `toml:"batch_size"`
	SmallPayloadBytes int      `toml:"small_payload_bytes"`
	MaxDownloadSize   string   `toml:"max_download_size"`
	UserAgent         string   `toml:"user_agent"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Relays            string
	AttemptTimeout    string
	BatchSize         string
	SmallPayloadBytes string
	MaxDownloadSize   string
	UserAgent         string
}

// AttemptTimeoutDuration returns AttemptTimeout as a time.Duration.
func (c *Config) AttemptTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.AttemptTimeout)
	return d
}

// MaxDownloadBytes returns MaxDownloadSize in bytes.
func (c *Config) MaxDownloadBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxDownloadSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if len(overlay.Relays) > 0 {
		c.Relays = overlay.Relays
	}
	if overlay.AttemptTimeout != "" {
		c.AttemptTimeout = overlay.AttemptTimeout
	}
	if overlay.BatchSize != 0 {
		c.BatchSize = overlay.BatchSize
	}
	if overlay.SmallPayloadBytes != 0 {
		c.SmallPayloadBytes = overlay.SmallPayloadBytes
	}
	if overlay.MaxDownloadSize != "" {
		c.MaxDownloadSize = overlay.MaxDownloadSize
	}
	if overlay.UserAgent != "" {
		c.UserAgent = overlay.UserAgent
	}
}

func (c *Config) loadDefaults() {
	if len(c.Relays) == 0 {
		c.Relays = append([]string(nil), DefaultRelays...)
	}
	if c.AttemptTimeout == "" {
		c.AttemptTimeout = "10s"
	}
	if c.BatchSize == 0 {
		c.BatchSize = 4
	}
	if c.SmallPayloadBytes == 0 {
		c.SmallPayloadBytes = 2000
	}
	if c.MaxDownloadSize == "" {
		c.MaxDownloadSize = "50MB"
	}
	if c.UserAgent == "" {
		c.UserAgent = "tenderboard/0.1"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Relays != "" {
		if v := os.Getenv(env.Relays); v != "" {
			var relays []string
			for r := range strings.SplitSeq(v, ",") {
				if r = strings.TrimSpace(r); r != "" {
					relays = append(relays, r)
				}
			}
			if len(relays) > 0 {
				c.Relays = relays
			}
		}
	}
	if env.AttemptTimeout != "" {
		if v := os.Getenv(env.AttemptTimeout); v != "" {
			c.AttemptTimeout = v
		}
	}
	if env.BatchSize != "" {
		if v := os.Getenv(env.BatchSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.BatchSize = n
			}
		}
	}
	if env.SmallPayloadBytes != "" {
		if v := os.Getenv(env.SmallPayloadBytes); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.SmallPayloadBytes = n
			}
		}
	}
	if env.MaxDownloadSize != "" {
		if v := os.Getenv(env.MaxDownloadSize); v != "" {
			c.MaxDownloadSize = v
		}
	}
	if env.UserAgent != "" {
		if v := os.Getenv(env.UserAgent); v != "" {
			c.UserAgent = v
		}
	}
}

func (c *Config) validate() error {
	if len(c.Relays) == 0 {
		return fmt.Errorf("at least one relay required")
	}
	if d, err := time.ParseDuration(c.AttemptTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid attempt_timeout: %s", c.AttemptTimeout)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive: %d", c.BatchSize)
	}
	if n, err := formatting.ParseBytes(c.MaxDownloadSize); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_download_size: %s", c.MaxDownloadSize)
	}
	return nil
}
