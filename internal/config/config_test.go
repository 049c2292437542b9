package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillshell/quill/internal/scrollback"
	"github.com/quillshell/quill/internal/suggest"
)

func TestDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, scrollback.DefaultCapacity, cfg.Scrollback.Capacity)
	assert.Equal(t, suggest.DefaultLimit, cfg.Suggest.Limit)
	assert.True(t, cfg.Prompt.ShowBranch)
	assert.False(t, cfg.Plain)
}

func TestLoadFromReader(t *testing.T) {
	const doc = `
# comment
plain yes

[scrollback]
capacity 250

[suggestions]
limit 8
knowledgeBase /etc/quill/commands.yaml

[prompt]
showBranch off
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, cfg.Plain)
	assert.Equal(t, 250, cfg.Scrollback.Capacity)
	assert.Equal(t, 8, cfg.Suggest.Limit)
	assert.Equal(t, "/etc/quill/commands.yaml", cfg.Suggest.KnowledgeBase)
	assert.False(t, cfg.Prompt.ShowBranch)
	assert.Empty(t, cfg.Warnings)
}

func TestUnknownOptionsWarnButLoad(t *testing.T) {
	const doc = `
bogus value
[scrollback]
capacity 10
nonsense here
[mystery]
anything goes
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err, "a stale config never stops startup")
	assert.Equal(t, 10, cfg.Scrollback.Capacity)
	assert.Len(t, cfg.Warnings, 3)
}

func TestInvalidValuesWarnAndKeepDefaults(t *testing.T) {
	const doc = `
[scrollback]
capacity many
[suggestions]
limit -3
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, scrollback.DefaultCapacity, cfg.Scrollback.Capacity)
	assert.Equal(t, suggest.DefaultLimit, cfg.Suggest.Limit)
	assert.Len(t, cfg.Warnings, 2)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(t.TempDir() + "/does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, scrollback.DefaultCapacity, cfg.Scrollback.Capacity)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QUILL_SCROLLBACK_CAPACITY", "42")
	t.Setenv("QUILL_SUGGESTION_LIMIT", "3")
	t.Setenv("QUILL_PLAIN", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.applyEnv())
	assert.Equal(t, 42, cfg.Scrollback.Capacity)
	assert.Equal(t, 3, cfg.Suggest.Limit)
	assert.True(t, cfg.Plain)
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("QUILL_CONFIG", "/tmp/quill-test-config")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/quill-test-config", p)
}

func TestKnowledgeBaseDefault(t *testing.T) {
	cfg := NewConfig()
	kb, err := cfg.KnowledgeBase()
	require.NoError(t, err)
	assert.True(t, kb.Known("ls"))
}
