// Package editor implements the line-oriented input editor: a single
// logical line of text plus a cursor. The cursor is a byte offset that
// is kept on a grapheme cluster boundary, so cursor motion and
// deletion operate on what the user perceives as one character.
//
// Every mutating operation re-establishes the invariant
// 0 <= cursor <= len(buffer) before returning.
package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Motion is a logical cursor movement.
type Motion int

const (
	// Left moves one grapheme toward the start of the line.
	Left Motion = iota
	// Right moves one grapheme toward the end of the line.
	Right
	// Home moves to the start of the line.
	Home
	// End moves to the end of the line.
	End
)

// Editor holds the raw input string and the cursor offset.
type Editor struct {
	buf    string
	cursor int
}

// New returns an empty editor.
func New() *Editor { return &Editor{} }

// Text returns the current input string.
func (e *Editor) Text() string { return e.buf }

// Cursor returns the cursor's byte offset into Text.
func (e *Editor) Cursor() int { return e.cursor }

// Insert inserts r at the cursor and advances the cursor past it.
// Control characters, including line feed and carriage return, are
// rejected silently: they must never enter the buffer.
func (e *Editor) Insert(r rune) {
	if unicode.IsControl(r) {
		return
	}
	s := string(r)
	e.buf = e.buf[:e.cursor] + s + e.buf[e.cursor:]
	e.cursor += len(s)
}

// InsertString inserts every insertable rune of s at the cursor.
// Control characters within s are skipped, matching Insert.
func (e *Editor) InsertString(s string) {
	for _, r := range s {
		e.Insert(r)
	}
}

// DeleteBefore removes the grapheme immediately before the cursor.
// No-op when the cursor is at the start of the line.
func (e *Editor) DeleteBefore() {
	if e.cursor == 0 {
		return
	}
	start := prevBoundary(e.buf, e.cursor)
	e.buf = e.buf[:start] + e.buf[e.cursor:]
	e.cursor = start
}

// DeleteAt removes the grapheme at the cursor (forward delete).
// No-op when the cursor is at the end of the line.
func (e *Editor) DeleteAt() {
	if e.cursor >= len(e.buf) {
		return
	}
	end := nextBoundary(e.buf, e.cursor)
	e.buf = e.buf[:e.cursor] + e.buf[end:]
}

// Move applies a logical cursor motion, clamped to [0, len].
func (e *Editor) Move(m Motion) {
	switch m {
	case Left:
		if e.cursor > 0 {
			e.cursor = prevBoundary(e.buf, e.cursor)
		}
	case Right:
		if e.cursor < len(e.buf) {
			e.cursor = nextBoundary(e.buf, e.cursor)
		}
	case Home:
		e.cursor = 0
	case End:
		e.cursor = len(e.buf)
	}
}

// SetText replaces the whole line and places the cursor at the end.
// Used when a history entry is recalled into the editor. Control
// characters are stripped so the buffer invariant holds for any input.
func (e *Editor) SetText(s string) {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	e.buf = b.String()
	e.cursor = len(e.buf)
}

// Clear resets to an empty buffer with the cursor at zero.
func (e *Editor) Clear() {
	e.buf = ""
	e.cursor = 0
}

// CurrentWord returns the word under or before the cursor: the maximal
// run of non-whitespace ending at or containing the cursor. When the
// text before the cursor ends in whitespace the word is empty and
// start is the cursor position.
func (e *Editor) CurrentWord() (word string, start, end int) {
	start = e.cursor
	for start > 0 {
		r, size := lastRune(e.buf[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	end = e.cursor
	if start < e.cursor {
		// The cursor is inside or at the end of a word; extend to the
		// full non-whitespace run.
		for end < len(e.buf) {
			r, size := firstRune(e.buf[end:])
			if unicode.IsSpace(r) {
				break
			}
			end += size
		}
	}
	return e.buf[start:end], start, end
}

// ReplaceCurrentWord substitutes the word under or before the cursor
// with w and a single trailing space, placing the cursor immediately
// after that space. Used when a suggestion is accepted.
func (e *Editor) ReplaceCurrentWord(w string) {
	_, start, end := e.CurrentWord()
	e.buf = e.buf[:start] + w + " " + e.buf[end:]
	e.cursor = start + len(w) + 1
}

// prevBoundary returns the byte offset of the grapheme cluster
// boundary immediately before pos. pos must be > 0.
func prevBoundary(s string, pos int) int {
	var last int
	rest := s
	off := 0
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if off+len(cluster) >= pos {
			last = off
			break
		}
		off += len(cluster)
		last = off
	}
	return last
}

// nextBoundary returns the byte offset of the grapheme cluster
// boundary immediately after pos. pos must be < len(s).
func nextBoundary(s string, pos int) int {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[pos:], -1)
	return pos + len(cluster)
}

func firstRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

func lastRune(s string) (rune, int) {
	return utf8.DecodeLastRuneInString(s)
}
