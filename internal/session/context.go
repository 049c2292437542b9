package session

import (
	"os"
	"strings"

	"github.com/quillshell/quill/internal/vcs"
)

// Context is the session's environment: where commands run and how the
// prompt is rendered. WorkingDir is mutated only by a successful cd;
// User and Host are resolved once at startup and never change.
type Context struct {
	WorkingDir string
	User       string
	Host       string
	Home       string
	Branch     string
}

// ResolveContext resolves the startup context with documented
// fallbacks: working directory "/", user "user", host "localhost".
// Environment-resolution failures are never surfaced as errors.
func ResolveContext() Context {
	ctx := Context{
		WorkingDir: "/",
		User:       "user",
		Host:       "localhost",
	}
	if wd, err := os.Getwd(); err == nil {
		ctx.WorkingDir = wd
	}
	if user := os.Getenv("USER"); user != "" {
		ctx.User = user
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		ctx.Host = host
	}
	if home, err := os.UserHomeDir(); err == nil {
		ctx.Home = home
	}
	ctx.Branch = vcs.Branch(ctx.WorkingDir)
	return ctx
}

// DisplayDir renders the working directory for the prompt, with the
// home directory collapsed to ~.
func (c Context) DisplayDir() string {
	if c.Home != "" {
		if c.WorkingDir == c.Home {
			return "~"
		}
		if strings.HasPrefix(c.WorkingDir, c.Home+"/") {
			return "~" + strings.TrimPrefix(c.WorkingDir, c.Home)
		}
	}
	return c.WorkingDir
}
