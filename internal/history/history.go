// Package history implements the session's command history: an
// append-only list of submitted lines plus a browsing cursor for
// recalling earlier entries into the editor.
package history

import "strings"

// Direction selects which way Navigate moves through the history.
type Direction int

const (
	// Older moves toward the first recorded entry.
	Older Direction = iota
	// Newer moves toward the most recent entry and, past it, back out
	// of browsing.
	Newer
)

// notBrowsing is the sentinel browse index.
const notBrowsing = -1

// Log records submitted lines in order. A line equal to the most
// recent entry is not re-appended, so consecutive duplicates never
// pollute the history. Process-lifetime only; nothing is persisted.
type Log struct {
	entries []string
	browse  int
}

// New returns an empty log.
func New() *Log {
	return &Log{browse: notBrowsing}
}

// Record appends line unless it is empty after trimming or equal to
// the last stored entry. Browsing always stops, whether or not the
// line was stored.
func (l *Log) Record(line string) {
	l.browse = notBrowsing
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(l.entries); n > 0 && l.entries[n-1] == line {
		return
	}
	l.entries = append(l.entries, line)
}

// Navigate moves the browse cursor one step and returns the entry at
// the resulting position. From the not-browsing state, Older begins at
// the most recent entry. Older clamps at the first entry; Newer past
// the most recent entry returns to not-browsing and yields "".
func (l *Log) Navigate(dir Direction) string {
	if len(l.entries) == 0 {
		return ""
	}
	switch dir {
	case Older:
		if l.browse == notBrowsing {
			l.browse = len(l.entries) - 1
		} else if l.browse > 0 {
			l.browse--
		}
	case Newer:
		if l.browse == notBrowsing {
			return ""
		}
		l.browse++
		if l.browse >= len(l.entries) {
			l.browse = notBrowsing
			return ""
		}
	}
	if l.browse == notBrowsing {
		return ""
	}
	return l.entries[l.browse]
}

// Browsing reports whether a navigation is in progress.
func (l *Log) Browsing() bool { return l.browse != notBrowsing }

// StopBrowsing resets the browse cursor. Called on any fresh edit
// outside history navigation.
func (l *Log) StopBrowsing() { l.browse = notBrowsing }

// Entries returns a copy of the recorded lines, oldest first.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int { return len(l.entries) }
