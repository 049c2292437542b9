// Package dispatch classifies a submitted line as a built-in or
// external command, executes it, and produces the output records and
// context updates the session applies afterward.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quillshell/quill/internal/argv"
	"github.com/quillshell/quill/internal/scrollback"
	"github.com/quillshell/quill/internal/suggest"
)

// stderrPrefix marks captured standard-error lines in the scrollback.
const stderrPrefix = "[stderr] "

// Env is the slice of session context a dispatch needs: where to run,
// and the home directory for cd's default target and ~ expansion.
type Env struct {
	WorkingDir string
	Home       string
}

// Result is the outcome of one dispatch. Records are appended to the
// scrollback by the session, which also applies WorkingDir when set,
// clears the buffer when ClearAll is set, and ends its loop when
// Terminate is set.
type Result struct {
	Records    []scrollback.Record
	WorkingDir string
	ClearAll   bool
	Terminate  bool
}

func (r *Result) say(text string) {
	r.Records = append(r.Records, scrollback.Record{Text: text, Kind: scrollback.SystemOutput})
}

// Request carries the per-dispatch inputs. History is a snapshot of the
// session's history entries for the history built-in; the dispatcher
// never holds a reference to live session state.
type Request struct {
	Env     Env
	History []string
}

// builtin is one internal command: handled entirely inside the engine,
// no child process.
type builtin struct {
	name    string
	summary string
	run     func(d *Dispatcher, args []string, req Request) Result
}

// Dispatcher executes submitted lines. It is stateless between calls;
// all mutable session state stays with the session.
type Dispatcher struct {
	kb       *suggest.KnowledgeBase
	logger   *slog.Logger
	builtins map[string]builtin
	order    []string
}

// New creates a dispatcher. kb is consulted only by the help built-in
// and may be nil; logger may be nil to discard.
func New(kb *suggest.KnowledgeBase, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		kb:       kb,
		logger:   logger,
		builtins: make(map[string]builtin),
	}
	for _, b := range []builtin{
		{"cd", "change the working directory", (*Dispatcher).runCd},
		{"pwd", "print the working directory", (*Dispatcher).runPwd},
		{"clear", "clear the scrollback", (*Dispatcher).runClear},
		{"history", "list submitted commands", (*Dispatcher).runHistory},
		{"exit", "end the session", (*Dispatcher).runExit},
		{"help", "show this help", (*Dispatcher).runHelp},
	} {
		d.builtins[b.name] = b
		d.order = append(d.order, b.name)
	}
	return d
}

// Builtins returns the built-in command names in registration order.
func (d *Dispatcher) Builtins() []string {
	return append([]string(nil), d.order...)
}

// IsBuiltin reports whether name dispatches internally.
func (d *Dispatcher) IsBuiltin(name string) bool {
	_, ok := d.builtins[name]
	return ok
}

// Dispatch executes line. Empty-after-trim input yields an empty
// result; the caller still emits a fresh prompt. External commands run
// until completion or until ctx is cancelled; cancellation kills the
// child process and is reported as a record, never as a session error.
func (d *Dispatcher) Dispatch(ctx context.Context, line string, req Request) Result {
	if strings.TrimSpace(line) == "" {
		return Result{}
	}
	args := argv.Split(line)
	if len(args) == 0 {
		return Result{}
	}
	name := args[0]
	if b, ok := d.builtins[name]; ok {
		d.logger.Debug("dispatching builtin", "command", name)
		return b.run(d, args[1:], req)
	}
	d.logger.Debug("dispatching external", "command", name, "args", args[1:])
	return d.runExternal(ctx, name, args[1:], req.Env)
}

func (d *Dispatcher) runCd(args []string, req Request) Result {
	var res Result
	target := req.Env.Home
	if len(args) > 0 {
		target = args[0]
	}
	if target == "" {
		target = "/"
	}
	if target == "~" || strings.HasPrefix(target, "~/") {
		target = filepath.Join(req.Env.Home, strings.TrimPrefix(target, "~"))
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(req.Env.WorkingDir, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		res.say(fmt.Sprintf("cd: %s: no such directory", target))
		return res
	}
	if !info.IsDir() {
		res.say(fmt.Sprintf("cd: %s: not a directory", target))
		return res
	}
	// Keep the OS-level process working directory in sync so relative
	// paths behave for everything the session spawns.
	if err := os.Chdir(target); err != nil {
		res.say(fmt.Sprintf("cd: %s: %v", target, err))
		return res
	}
	res.WorkingDir = target
	return res
}

func (d *Dispatcher) runPwd(args []string, req Request) Result {
	var res Result
	res.say(req.Env.WorkingDir)
	return res
}

func (d *Dispatcher) runClear(args []string, req Request) Result {
	return Result{ClearAll: true}
}

func (d *Dispatcher) runHistory(args []string, req Request) Result {
	var res Result
	for i, entry := range req.History {
		res.say(fmt.Sprintf("%4d  %s", i+1, entry))
	}
	return res
}

func (d *Dispatcher) runExit(args []string, req Request) Result {
	return Result{Terminate: true}
}

func (d *Dispatcher) runHelp(args []string, req Request) Result {
	var res Result
	res.say("built-in commands:")
	for _, name := range d.order {
		res.say(fmt.Sprintf("  %-8s %s", name, d.builtins[name].summary))
	}
	if d.kb != nil {
		var known []string
		for _, name := range d.kb.Commands() {
			if !d.IsBuiltin(name) {
				known = append(known, name)
			}
		}
		if len(known) > 0 {
			res.say("")
			res.say("completion is available for: " + strings.Join(known, " "))
		}
	}
	res.say("")
	res.say("anything else is run as an external command.")
	return res
}

// runExternal spawns name as a child process in the session's working
// directory and waits for it. Captured stdout becomes output records
// in order; non-empty stderr lines are prefixed; a non-zero exit adds
// one trailing record. Spawn failures are reported, never fatal.
func (d *Dispatcher) runExternal(ctx context.Context, name string, args []string, env Env) Result {
	var res Result

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = env.WorkingDir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	for _, line := range splitLines(stdout.String()) {
		res.say(line)
	}
	for _, line := range splitLines(stderr.String()) {
		if line != "" {
			res.say(stderrPrefix + line)
		}
	}

	switch {
	case err == nil:
	case ctx.Err() != nil:
		res.say(fmt.Sprintf("%s: interrupted", name))
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.say(fmt.Sprintf("%s: exit status %d", name, exitErr.ExitCode()))
		} else {
			// Spawn failure: command not found, permission denied, etc.
			res.say(fmt.Sprintf("%s: %v", name, unwrapExecError(err)))
			d.logger.Debug("spawn failed", "command", name, "error", err)
		}
	}
	return res
}

// unwrapExecError strips the *exec.Error wrapper so the record does
// not repeat the command name twice.
func unwrapExecError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	return err
}

// splitLines splits captured output into lines, dropping the final
// empty fragment a trailing newline produces.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
