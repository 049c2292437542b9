// Package termui is the interactive terminal host for a session. It
// translates key events into logical session events, resolves pending
// dispatches through the bubbletea message loop, and renders the
// scrollback, input line, and suggestion overlay.
//
// The session engine stays presentation-agnostic: this package is the
// only place key codes and styles exist.
package termui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillshell/quill/internal/editor"
	"github.com/quillshell/quill/internal/session"
)

// dispatchDoneMsg delivers a resolved dispatch result back into the
// update loop. Only the update loop touches the session, so the
// single-writer ownership of the scrollback is preserved.
type dispatchDoneMsg struct {
	pending *session.Pending
}

// Model is the bubbletea model wrapping one session.
type Model struct {
	sess    *session.Session
	styles  Styles
	width   int
	height  int
	waiting bool
	// scroll is how many lines the viewport sits above the bottom of
	// the scrollback. Zero means pinned to the newest output; any edit
	// or dispatch re-pins.
	scroll int
}

// NewModel creates the host model for sess.
func NewModel(sess *session.Session) Model {
	return Model{sess: sess, styles: DefaultStyles(), width: 80, height: 24}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dispatchDoneMsg:
		m.waiting = false
		m.scroll = 0
		m.sess.CompleteDispatch(msg.pending.Wait())
		if m.sess.Terminated() {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey maps a key event to a logical session event.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyPgUp:
		m.scroll += m.height / 2
		return m, nil
	case tea.KeyPgDown:
		m.scroll -= m.height / 2
		if m.scroll < 0 {
			m.scroll = 0
		}
		return m, nil
	}
	m.scroll = 0
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.sess.Apply(session.InsertChar{Rune: r})
		}
	case tea.KeySpace:
		m.sess.Apply(session.InsertChar{Rune: ' '})
	case tea.KeyBackspace:
		m.sess.Apply(session.Backspace{})
	case tea.KeyDelete:
		m.sess.Apply(session.ForwardDelete{})
	case tea.KeyLeft:
		m.sess.Apply(session.MoveCursor{Motion: editor.Left})
	case tea.KeyRight:
		m.sess.Apply(session.MoveCursor{Motion: editor.Right})
	case tea.KeyHome:
		m.sess.Apply(session.MoveCursor{Motion: editor.Home})
	case tea.KeyEnd:
		m.sess.Apply(session.MoveCursor{Motion: editor.End})
	case tea.KeyUp:
		m.sess.Apply(session.HistoryOlder{})
	case tea.KeyDown:
		m.sess.Apply(session.HistoryNewer{})
	case tea.KeyTab:
		m.sess.Apply(session.AcceptSuggestion{})
	case tea.KeyEnter:
		if m.waiting {
			return m, nil
		}
		if p := m.sess.Apply(session.Submit{}); p != nil {
			m.waiting = true
			return m, waitFor(p)
		}
	case tea.KeyCtrlC:
		m.sess.Apply(session.Interrupt{})
	case tea.KeyCtrlL:
		m.sess.Apply(session.ClearScreen{})
	case tea.KeyCtrlD:
		// Conventional EOF: quit only on an empty line.
		if text, _ := m.sess.Input(); text == "" && !m.waiting {
			return m, tea.Quit
		}
	}
	return m, nil
}

// waitFor resolves p off the update loop. The blocking Wait happens in
// the command goroutine; the session is only touched when the message
// arrives back in Update.
func waitFor(p *session.Pending) tea.Cmd {
	return func() tea.Msg {
		p.Wait()
		return dispatchDoneMsg{pending: p}
	}
}

// Run starts the interactive terminal over the given session and
// blocks until it exits.
func Run(sess *session.Session) error {
	p := tea.NewProgram(NewModel(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
