// Package options configures engine construction.
package options

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/florabot/evalengine/engines/types"
	"github.com/florabot/evalengine/present"
	"github.com/florabot/evalengine/platform"
)

// Config holds all configuration for creating an evaluation engine.
type Config struct {
	// Logger for the engine
	handler slog.Handler
	// Type of machine to use (starlark, risor)
	machineType types.Type
	// Paste client used for oversized output; nil selects the default
	paster present.Paster
	// Static symbol registry exposed to evaluated code
	statics map[string]any
	// Wrap behavior for submissions
	wrap platform.WrapOptions
	// Bound on the execute stage; zero disables the timeout
	timeout time.Duration
	// Base URL for the default paste client
	pasteBaseURL string
	// Code block annotation language
	language string
}

// Option is a function that modifies Config.
type Option func(*Config) error

// DefaultConfig returns a Config pre-set for the given machine type.
func DefaultConfig(machineType types.Type) *Config {
	return &Config{
		machineType: machineType,
		wrap:        platform.DefaultWrapOptions(),
		timeout:     15 * time.Second,
		language:    "py",
	}
}

// WithLogger sets the logger for the engine.
func WithLogger(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithPaster sets the paste client used for oversized output.
func WithPaster(paster present.Paster) Option {
	return func(c *Config) error {
		if paster != nil {
			c.paster = paster
		}
		return nil
	}
}

// WithPasteBaseURL points the default paste client at a different service.
func WithPasteBaseURL(baseURL string) Option {
	return func(c *Config) error {
		c.pasteBaseURL = baseURL
		return nil
	}
}

// WithStatics sets the whitelist table of host symbols exposed to evaluated
// code. Per-invocation bindings override these on name collision.
func WithStatics(statics map[string]any) Option {
	return func(c *Config) error {
		c.statics = statics
		return nil
	}
}

// WithWrapOptions overrides the submission wrap behavior.
func WithWrapOptions(wrap platform.WrapOptions) Option {
	return func(c *Config) error {
		if wrap.Wrap && wrap.IndentWidth < 1 {
			return fmt.Errorf("indent width must be at least 1, got %d", wrap.IndentWidth)
		}
		c.wrap = wrap
		return nil
	}
}

// WithTimeout bounds the execute stage. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return fmt.Errorf("timeout must not be negative, got %s", timeout)
		}
		c.timeout = timeout
		return nil
	}
}

// WithLanguage sets the code block annotation language.
func WithLanguage(language string) Option {
	return func(c *Config) error {
		if language != "" {
			c.language = language
		}
		return nil
	}
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if c.machineType == "" || c.machineType == types.Unsupported {
		return fmt.Errorf("no machine type specified")
	}
	return nil
}

// GetHandler returns the configured logger handler.
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// GetMachineType returns the configured machine type.
func (c *Config) GetMachineType() types.Type {
	return c.machineType
}

// GetPaster returns the configured paste client, or nil for the default.
func (c *Config) GetPaster() present.Paster {
	return c.paster
}

// GetPasteBaseURL returns the base URL for the default paste client.
func (c *Config) GetPasteBaseURL() string {
	return c.pasteBaseURL
}

// GetStatics returns the static symbol registry.
func (c *Config) GetStatics() map[string]any {
	return c.statics
}

// GetWrapOptions returns the submission wrap behavior.
func (c *Config) GetWrapOptions() platform.WrapOptions {
	return c.wrap
}

// GetTimeout returns the execute-stage bound.
func (c *Config) GetTimeout() time.Duration {
	return c.timeout
}

// GetLanguage returns the code block annotation language.
func (c *Config) GetLanguage() string {
	return c.language
}
