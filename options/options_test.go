package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florabot/evalengine/engines/types"
	"github.com/florabot/evalengine/platform"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(types.Starlark)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, types.Starlark, cfg.GetMachineType())
	assert.Equal(t, platform.DefaultWrapOptions(), cfg.GetWrapOptions())
	assert.Equal(t, 15*time.Second, cfg.GetTimeout())
	assert.Equal(t, "py", cfg.GetLanguage())
	assert.Nil(t, cfg.GetPaster())
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(types.Risor)

	wrap := platform.WrapOptions{Wrap: true, StripTicks: false, ImplicitReturn: false, IndentWidth: 2}
	for _, opt := range []Option{
		WithPasteBaseURL("https://paste.example.com"),
		WithStatics(map[string]any{"answer": 42}),
		WithWrapOptions(wrap),
		WithTimeout(time.Minute),
		WithLanguage("go"),
	} {
		require.NoError(t, opt(cfg))
	}

	assert.Equal(t, "https://paste.example.com", cfg.GetPasteBaseURL())
	assert.Equal(t, map[string]any{"answer": 42}, cfg.GetStatics())
	assert.Equal(t, wrap, cfg.GetWrapOptions())
	assert.Equal(t, time.Minute, cfg.GetTimeout())
	assert.Equal(t, "go", cfg.GetLanguage())
}

func TestOptionValidation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(types.Starlark)

	assert.Error(t, WithTimeout(-time.Second)(cfg))
	assert.Error(t, WithWrapOptions(platform.WrapOptions{Wrap: true, IndentWidth: 0})(cfg))

	// Indent width is irrelevant when wrapping is off.
	assert.NoError(t, WithWrapOptions(platform.WrapOptions{Wrap: false})(cfg))
}
