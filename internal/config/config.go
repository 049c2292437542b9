// Package config loads quill's configuration: a small option file in
// `optionName value` format with optional [section] headers, layered
// under QUILL_-prefixed environment overrides.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/quillshell/quill/internal/scrollback"
	"github.com/quillshell/quill/internal/suggest"
)

// Config is the resolved application configuration.
type Config struct {
	// Scrollback controls the bounded output buffer.
	Scrollback ScrollbackConfig
	// Suggest controls the completion engine.
	Suggest SuggestConfig
	// Prompt controls prompt rendering.
	Prompt PromptConfig
	// Plain forces the line-mode host instead of the TUI.
	Plain bool
	// Warnings collects non-fatal issues found while loading.
	Warnings []string
}

// ScrollbackConfig controls the output buffer.
type ScrollbackConfig struct {
	Capacity int
}

// SuggestConfig controls the completion engine.
type SuggestConfig struct {
	// Limit caps the candidate list.
	Limit int
	// KnowledgeBase is the path of a YAML command/flag table replacing
	// the built-in one. Empty selects the embedded default.
	KnowledgeBase string
}

// PromptConfig controls prompt rendering.
type PromptConfig struct {
	// ShowBranch toggles the version-control branch in the prompt.
	ShowBranch bool
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Scrollback: ScrollbackConfig{Capacity: scrollback.DefaultCapacity},
		Suggest:    SuggestConfig{Limit: suggest.DefaultLimit},
		Prompt:     PromptConfig{ShowBranch: true},
	}
}

// Path returns the configuration file path: the QUILL_CONFIG
// environment variable when set, else ~/.quill/config.
func Path() (string, error) {
	if p := os.Getenv("QUILL_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home + "/.quill/config", nil
}

// Load reads the config file at the default path (missing file yields
// defaults) and applies environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads configuration from path. A missing file is not an
// error; defaults are returned.
func LoadFromPath(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader parses configuration from r. Unknown options are
// collected as warnings, not errors: a stale config must never stop a
// session from starting.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := NewConfig()
	scanner := bufio.NewScanner(r)

	section := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}
		name, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)
		if err := cfg.setOption(section, name, value); err != nil {
			cfg.addWarning("line %d: %v", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return cfg, nil
}

// setOption applies one option line to the config.
func (c *Config) setOption(section, name, value string) error {
	switch section {
	case "":
		switch name {
		case "plain":
			v, err := parseBool(value)
			if err != nil {
				return fmt.Errorf("plain: %w", err)
			}
			c.Plain = v
		default:
			return fmt.Errorf("unknown option: %s", name)
		}
	case "scrollback":
		switch name {
		case "capacity":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("capacity: invalid integer %q", value)
			}
			if n < 1 {
				return fmt.Errorf("capacity must be positive: %d", n)
			}
			c.Scrollback.Capacity = n
		default:
			return fmt.Errorf("unknown scrollback option: %s", name)
		}
	case "suggestions":
		switch name {
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("limit: invalid integer %q", value)
			}
			if n < 1 {
				return fmt.Errorf("limit must be positive: %d", n)
			}
			c.Suggest.Limit = n
		case "knowledgeBase":
			c.Suggest.KnowledgeBase = value
		default:
			return fmt.Errorf("unknown suggestions option: %s", name)
		}
	case "prompt":
		switch name {
		case "showBranch":
			v, err := parseBool(value)
			if err != nil {
				return fmt.Errorf("showBranch: %w", err)
			}
			c.Prompt.ShowBranch = v
		default:
			return fmt.Errorf("unknown prompt option: %s", name)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
	return nil
}

// envOverrides mirrors the file options for environment configuration.
type envOverrides struct {
	ScrollbackCapacity int    `envconfig:"SCROLLBACK_CAPACITY"`
	SuggestionLimit    int    `envconfig:"SUGGESTION_LIMIT"`
	KnowledgeBase      string `envconfig:"KNOWLEDGE_BASE"`
	Plain              bool   `envconfig:"PLAIN"`
}

// applyEnv overlays QUILL_* environment variables onto the config.
func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("quill", &env); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}
	if env.ScrollbackCapacity > 0 {
		c.Scrollback.Capacity = env.ScrollbackCapacity
	}
	if env.SuggestionLimit > 0 {
		c.Suggest.Limit = env.SuggestionLimit
	}
	if env.KnowledgeBase != "" {
		c.Suggest.KnowledgeBase = env.KnowledgeBase
	}
	if env.Plain {
		c.Plain = true
	}
	return nil
}

// KnowledgeBase resolves the suggestion table: the configured YAML
// file when set, else the embedded default.
func (c *Config) KnowledgeBase() (*suggest.KnowledgeBase, error) {
	if c.Suggest.KnowledgeBase == "" {
		return suggest.Default(), nil
	}
	return suggest.Load(c.Suggest.KnowledgeBase)
}

func (c *Config) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, msg)
	slog.Warn("[config] " + msg)
}

// parseBool accepts true/false, 1/0, yes/no, on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
