package bot

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/florabot/evalengine/engines/types"
)

// Duration is a time.Duration that unmarshals from YAML strings like "15s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	// Bare numbers are taken as nanoseconds.
	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Config carries the deployment settings for the command surface.
type Config struct {
	// Token authenticates the bot with the chat platform. The engine never
	// reads it; it is carried for the hosting process.
	Token string `yaml:"token"`

	// Prefix is the command prefix the host listens for.
	Prefix string `yaml:"prefix"`

	// Admins lists the user IDs allowed to run the eval commands.
	Admins []string `yaml:"admins"`

	// Engine selects the scripting machine: "starlark" (default) or "risor".
	Engine string `yaml:"engine"`

	// PasteURL overrides the paste service endpoint.
	PasteURL string `yaml:"paste_url"`

	// EvalTimeout bounds the execute stage of one evaluation.
	EvalTimeout Duration `yaml:"eval_timeout"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Prefix == "" {
		c.Prefix = "!"
	}
	if c.Engine == "" {
		c.Engine = types.Starlark.String()
	}
	if c.EvalTimeout == 0 {
		c.EvalTimeout = Duration(15 * time.Second)
	}
}

func (c *Config) validate() error {
	if _, err := types.Parse(c.Engine); err != nil {
		return err
	}
	if c.EvalTimeout < 0 {
		return fmt.Errorf("eval_timeout must not be negative, got %s", time.Duration(c.EvalTimeout))
	}
	return nil
}

// IsAdmin reports whether the given user may run the eval commands.
func (c *Config) IsAdmin(userID string) bool {
	return slices.Contains(c.Admins, userID)
}
