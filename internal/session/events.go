package session

import "github.com/quillshell/quill/internal/editor"

// Event is a logical edit or navigation event fed in by the host
// presentation layer. The set is closed: every event type is declared
// here, so event handling is a total switch.
type Event interface {
	isEvent()
}

// InsertChar inserts one character at the cursor. Control characters
// are rejected by the editor and leave all state unchanged.
type InsertChar struct{ Rune rune }

// Backspace removes the grapheme before the cursor.
type Backspace struct{}

// ForwardDelete removes the grapheme at the cursor.
type ForwardDelete struct{}

// MoveCursor applies a logical cursor motion.
type MoveCursor struct{ Motion editor.Motion }

// HistoryOlder recalls the previous history entry into the editor.
type HistoryOlder struct{}

// HistoryNewer recalls the next history entry, or exits history
// browsing past the most recent one.
type HistoryNewer struct{}

// AcceptSuggestion applies the current completion candidate; repeated
// events step through the alternatives. With no candidates available
// it inserts a literal space.
type AcceptSuggestion struct{}

// Submit hands the current line to the dispatcher.
type Submit struct{}

// Interrupt clears pending input, or cancels the in-flight child
// process while one is running.
type Interrupt struct{}

// ClearScreen discards the scrollback contents.
type ClearScreen struct{}

func (InsertChar) isEvent()       {}
func (Backspace) isEvent()        {}
func (ForwardDelete) isEvent()    {}
func (MoveCursor) isEvent()       {}
func (HistoryOlder) isEvent()     {}
func (HistoryNewer) isEvent()     {}
func (AcceptSuggestion) isEvent() {}
func (Submit) isEvent()           {}
func (Interrupt) isEvent()        {}
func (ClearScreen) isEvent()      {}
