// Command quill is an interactive command-line session: a prompt with
// bounded scrollback, history recall, and knowledge-base completion,
// dispatching built-ins and external processes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/quillshell/quill/internal/config"
	"github.com/quillshell/quill/internal/session"
	"github.com/quillshell/quill/internal/termui"
	"github.com/quillshell/quill/internal/vcs"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	plain := fs.Bool("plain", false, "run the line-mode host instead of the terminal UI")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if *showVersion {
		fmt.Printf("quill version %s\n", version)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		// A broken config never blocks startup.
		cfg = config.NewConfig()
	}
	for _, w := range cfg.Warnings {
		_, _ = fmt.Fprintf(os.Stderr, "warning: config: %s\n", w)
	}

	kb, err := cfg.KnowledgeBase()
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	id := session.NewID()
	logger, closeLog := openLogger(id)
	defer closeLog()

	ctx := session.ResolveContext()
	branchFn := vcs.Branch
	if !cfg.Prompt.ShowBranch {
		ctx.Branch = ""
		branchFn = func(string) string { return "" }
	}

	sess := session.New(session.Config{
		ID:                 id,
		Context:            ctx,
		KnowledgeBase:      kb,
		ScrollbackCapacity: cfg.Scrollback.Capacity,
		SuggestionLimit:    cfg.Suggest.Limit,
		Logger:             logger,
		BranchFunc:         branchFn,
	})

	if *plain || cfg.Plain || !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPlain(sess, os.Stdin, os.Stdout)
	}
	return termui.Run(sess)
}

// openLogger opens the per-session debug log under ~/.quill/logs. Any
// failure degrades to a discarding logger; diagnostics never block a
// session.
func openLogger(id string) (*slog.Logger, func()) {
	discard := slog.New(slog.DiscardHandler)
	home, err := os.UserHomeDir()
	if err != nil {
		return discard, func() {}
	}
	dir := filepath.Join(home, ".quill", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, id+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return discard, func() {}
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { _ = f.Close() }
}
