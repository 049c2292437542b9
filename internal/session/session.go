// Package session implements the aggregate that owns the editor,
// history, suggestion engine, scrollback, and dispatcher, sequencing
// them per input event. The session is single-threaded: its owner
// applies one event at a time, and only the owner ever appends to the
// scrollback buffer.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillshell/quill/internal/dispatch"
	"github.com/quillshell/quill/internal/editor"
	"github.com/quillshell/quill/internal/history"
	"github.com/quillshell/quill/internal/scrollback"
	"github.com/quillshell/quill/internal/suggest"
	"github.com/quillshell/quill/internal/vcs"
)

// Mode is the session's input sub-mode. The modes are mutually
// exclusive views over the same input state: entering history browsing
// hides suggestions, and any insertion exits history browsing.
type Mode int

const (
	// ModeEditing is plain line editing.
	ModeEditing Mode = iota
	// ModeBrowsingHistory means the editor shows a recalled entry.
	ModeBrowsingHistory
	// ModeBrowsingSuggestions means the last accepted completion can be
	// cycled to the next alternative.
	ModeBrowsingSuggestions
	// ModeAwaitingProcess means a dispatch is in flight. Submit is
	// rejected until it resolves; Interrupt cancels the child process.
	ModeAwaitingProcess
)

// Config carries construction options. Zero values select defaults.
type Config struct {
	// ID overrides the generated session identifier. Hosts that name
	// external resources (log files) after the session pass it in.
	ID                 string
	Context            Context
	KnowledgeBase      *suggest.KnowledgeBase
	ScrollbackCapacity int
	SuggestionLimit    int
	Logger             *slog.Logger
	// BranchFunc resolves the branch shown in the prompt after a
	// directory change. Defaults to vcs.Branch; injectable for tests.
	BranchFunc func(dir string) string
}

// Session sequences all engine state for one interactive session.
type Session struct {
	id     string
	mode   Mode
	ctx    Context
	out    *scrollback.Buffer
	ed     *editor.Editor
	hist   *history.Log
	engine *suggest.Engine
	disp   *dispatch.Dispatcher
	logger *slog.Logger

	branchFn func(dir string) string
	pending  *Pending
	// suggestBase is the editor text before the current completion was
	// applied; cycling restores it before substituting the next one.
	suggestBase string
	terminated  bool
}

// New constructs a session and seeds the scrollback with the initial
// prompt record.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	kb := cfg.KnowledgeBase
	if kb == nil {
		kb = suggest.Default()
	}
	branchFn := cfg.BranchFunc
	if branchFn == nil {
		branchFn = vcs.Branch
	}
	id := cfg.ID
	if id == "" {
		id = NewID()
	}
	s := &Session{
		id:       id,
		ctx:      cfg.Context,
		out:      scrollback.New(cfg.ScrollbackCapacity),
		ed:       editor.New(),
		hist:     history.New(),
		engine:   suggest.NewEngine(kb, cfg.SuggestionLimit),
		disp:     dispatch.New(kb, logger),
		logger:   logger,
		branchFn: branchFn,
	}
	s.out.Append(s.promptRecord())
	s.logger.Info("session started", "id", s.id, "dir", s.ctx.WorkingDir)
	return s
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the current input sub-mode.
func (s *Session) Mode() Mode { return s.mode }

// Ctx returns the current session context.
func (s *Session) Ctx() Context { return s.ctx }

// Terminated reports whether the exit built-in has fired.
func (s *Session) Terminated() bool { return s.terminated }

// Records returns the scrollback contents in submission order.
func (s *Session) Records() []scrollback.Record { return s.out.Records() }

// Input returns the live editor text and cursor offset.
func (s *Session) Input() (text string, cursor int) {
	return s.ed.Text(), s.ed.Cursor()
}

// Suggestions returns the current suggestion state for overlay
// rendering.
func (s *Session) Suggestions() suggest.State { return s.engine.State() }

// Prompt renders the prompt for the current context.
func (s *Session) Prompt() string {
	p := fmt.Sprintf("%s@%s:%s", s.ctx.User, s.ctx.Host, s.ctx.DisplayDir())
	if s.ctx.Branch != "" {
		p += " (" + s.ctx.Branch + ")"
	}
	return p + " $ "
}

func (s *Session) promptRecord() scrollback.Record {
	return scrollback.Record{Text: s.Prompt(), Kind: scrollback.PromptHeader}
}

// Apply processes one logical event. It returns a non-nil Pending only
// when the event was an accepted Submit; the caller resolves it with
// Wait and feeds the result back through CompleteDispatch.
func (s *Session) Apply(ev Event) *Pending {
	if s.terminated {
		return nil
	}
	if s.mode == ModeAwaitingProcess {
		// Only Interrupt is accepted while a dispatch is in flight; it
		// cancels the child process. Everything else, including further
		// Submits, is rejected until resolution.
		if _, ok := ev.(Interrupt); ok && s.pending != nil {
			s.logger.Info("interrupting dispatch")
			s.pending.Cancel()
		}
		return nil
	}

	switch ev := ev.(type) {
	case InsertChar:
		s.hist.StopBrowsing()
		s.ed.Insert(ev.Rune)
		s.mode = ModeEditing
		s.engine.Refresh(s.ed.Text())
	case Backspace:
		s.hist.StopBrowsing()
		s.ed.DeleteBefore()
		s.mode = ModeEditing
		s.engine.Refresh(s.ed.Text())
	case ForwardDelete:
		s.hist.StopBrowsing()
		s.ed.DeleteAt()
		s.mode = ModeEditing
		s.engine.Refresh(s.ed.Text())
	case MoveCursor:
		s.ed.Move(ev.Motion)
		if s.mode == ModeBrowsingSuggestions {
			s.mode = ModeEditing
		}
	case HistoryOlder:
		s.engine.Hide()
		if line := s.hist.Navigate(history.Older); line != "" {
			s.ed.SetText(line)
			s.mode = ModeBrowsingHistory
		}
	case HistoryNewer:
		if !s.hist.Browsing() {
			break
		}
		s.engine.Hide()
		line := s.hist.Navigate(history.Newer)
		s.ed.SetText(line)
		if s.hist.Browsing() {
			s.mode = ModeBrowsingHistory
		} else {
			s.mode = ModeEditing
		}
	case AcceptSuggestion:
		s.acceptSuggestion()
	case Submit:
		return s.submit()
	case Interrupt:
		s.ed.Clear()
		s.engine.Hide()
		s.hist.StopBrowsing()
		s.mode = ModeEditing
	case ClearScreen:
		s.out.Clear()
		s.out.Append(s.promptRecord())
	}
	return nil
}

// acceptSuggestion applies the first candidate, or cycles to the next
// alternative on repeated invocation. When nothing is available the
// fallback is a literal space.
func (s *Session) acceptSuggestion() {
	if s.mode == ModeBrowsingSuggestions && s.engine.State().Visible() {
		s.ed.SetText(s.suggestBase)
		s.engine.Cycle()
		s.engine.Apply(s.ed)
		return
	}
	s.engine.Refresh(s.ed.Text())
	if !s.engine.State().Visible() {
		s.ed.Insert(' ')
		s.engine.Refresh(s.ed.Text())
		return
	}
	s.suggestBase = s.ed.Text()
	s.engine.Cycle()
	s.engine.Apply(s.ed)
	s.mode = ModeBrowsingSuggestions
}

// submit echoes and clears the current line, records it in the
// history, and starts the dispatch. The returned Pending resolves off
// the session goroutine; results re-enter through CompleteDispatch.
func (s *Session) submit() *Pending {
	line := s.ed.Text()
	s.ed.Clear()
	s.engine.Hide()
	s.hist.Record(line)
	s.out.Append(scrollback.Record{Text: line, Kind: scrollback.UserInput})
	s.logger.Info("submit", "line", line)
	s.mode = ModeAwaitingProcess

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pending{cancel: cancel, done: make(chan struct{})}
	req := dispatch.Request{
		Env:     dispatch.Env{WorkingDir: s.ctx.WorkingDir, Home: s.ctx.Home},
		History: s.hist.Entries(),
	}
	go func() {
		defer cancel()
		p.result = s.disp.Dispatch(ctx, line, req)
		close(p.done)
	}()
	s.pending = p
	return p
}

// SubmitLine submits line as if it had been typed and entered. Used by
// the plain line-mode host.
func (s *Session) SubmitLine(line string) *Pending {
	s.ed.SetText(line)
	return s.Apply(Submit{})
}

// CompleteDispatch applies a resolved dispatch result: output records,
// context update, buffer clear, termination. It always concludes with
// a fresh prompt record reflecting the possibly updated context.
func (s *Session) CompleteDispatch(res dispatch.Result) {
	if res.ClearAll {
		s.out.Clear()
	}
	for _, rec := range res.Records {
		s.out.Append(rec)
	}
	if res.WorkingDir != "" {
		s.ctx.WorkingDir = res.WorkingDir
		s.ctx.Branch = s.branchFn(res.WorkingDir)
		s.logger.Info("working directory changed", "dir", res.WorkingDir)
	}
	if res.Terminate {
		s.terminated = true
		s.logger.Info("session terminated", "id", s.id)
	}
	s.pending = nil
	s.mode = ModeEditing
	if !s.terminated {
		s.out.Append(s.promptRecord())
	}
}

// Pending is an in-flight dispatch. Wait blocks until the child
// process (or built-in) resolves; Cancel requests cancellation of the
// underlying process.
type Pending struct {
	cancel context.CancelFunc
	done   chan struct{}
	result dispatch.Result
}

// Wait blocks until the dispatch resolves and returns its result.
func (p *Pending) Wait() dispatch.Result {
	<-p.done
	return p.result
}

// Cancel requests cancellation of the in-flight dispatch. Safe to call
// more than once.
func (p *Pending) Cancel() { p.cancel() }
