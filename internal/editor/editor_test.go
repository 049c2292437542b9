package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariant asserts 0 <= cursor <= len(buffer), the contract every
// operation must re-establish before returning.
func checkInvariant(t *testing.T, e *Editor) {
	t.Helper()
	require.GreaterOrEqual(t, e.Cursor(), 0, "cursor below zero")
	require.LessOrEqual(t, e.Cursor(), len(e.Text()), "cursor past end of buffer")
}

func TestInsertAdvancesCursor(t *testing.T) {
	e := New()
	e.Insert('h')
	e.Insert('i')
	assert.Equal(t, "hi", e.Text())
	assert.Equal(t, 2, e.Cursor())
	checkInvariant(t, e)
}

func TestInsertAtCursorMiddle(t *testing.T) {
	e := New()
	e.InsertString("ac")
	e.Move(Left)
	e.Insert('b')
	assert.Equal(t, "abc", e.Text())
	assert.Equal(t, 2, e.Cursor())
}

func TestInsertRejectsControlCharacters(t *testing.T) {
	e := New()
	e.InsertString("ok")
	for _, r := range []rune{'\n', '\r', '\t', 0x00, 0x1b, 0x7f} {
		e.Insert(r)
	}
	assert.Equal(t, "ok", e.Text(), "control characters must never enter the buffer")
	assert.Equal(t, 2, e.Cursor())
}

func TestDeleteBefore(t *testing.T) {
	e := New()
	e.InsertString("abc")
	e.DeleteBefore()
	assert.Equal(t, "ab", e.Text())
	assert.Equal(t, 2, e.Cursor())

	e.Move(Home)
	e.DeleteBefore() // no-op at position 0
	assert.Equal(t, "ab", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

func TestDeleteAt(t *testing.T) {
	e := New()
	e.InsertString("abc")
	e.DeleteAt() // no-op at end
	assert.Equal(t, "abc", e.Text())

	e.Move(Home)
	e.DeleteAt()
	assert.Equal(t, "bc", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

func TestMoveClamps(t *testing.T) {
	e := New()
	e.InsertString("ab")
	e.Move(Right) // already at end
	assert.Equal(t, 2, e.Cursor())
	e.Move(Home)
	e.Move(Left) // already at start
	assert.Equal(t, 0, e.Cursor())
	e.Move(End)
	assert.Equal(t, 2, e.Cursor())
}

func TestGraphemeMotion(t *testing.T) {
	e := New()
	// 🇦🇺 is a regional-indicator pair: one grapheme, eight bytes.
	e.InsertString("a🇦🇺b")
	e.Move(Left) // over 'b'
	e.Move(Left) // over the flag, one step
	assert.Equal(t, 1, e.Cursor())
	e.DeleteAt() // removes the whole flag cluster
	assert.Equal(t, "ab", e.Text())
	checkInvariant(t, e)
}

func TestDeleteBeforeRemovesWholeGrapheme(t *testing.T) {
	e := New()
	e.InsertString("xé") // e + combining accent arrives precomposed here
	e.InsertString("́")  // add a combining mark; cluster is é+mark
	e.DeleteBefore()
	assert.Equal(t, "x", e.Text())
	checkInvariant(t, e)
}

func TestReplaceCurrentWord(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(e *Editor)
		word       string
		wantText   string
		wantCursor int
	}{
		{
			name:       "replaces final token",
			setup:      func(e *Editor) { e.InsertString("gi") },
			word:       "git",
			wantText:   "git ",
			wantCursor: 4,
		},
		{
			name:       "replaces flag token after command",
			setup:      func(e *Editor) { e.InsertString("ls -") },
			word:       "-la",
			wantText:   "ls -la ",
			wantCursor: 7,
		},
		{
			name:       "inserts at empty position after trailing space",
			setup:      func(e *Editor) { e.InsertString("git ") },
			word:       "status",
			wantText:   "git status ",
			wantCursor: 11,
		},
		{
			name: "replaces word containing cursor",
			setup: func(e *Editor) {
				e.InsertString("grep pattern")
				for i := 0; i < 3; i++ {
					e.Move(Left)
				}
			},
			word:       "grub",
			wantText:   "grep grub ",
			wantCursor: 10,
		},
		{
			name:       "empty input",
			setup:      func(e *Editor) {},
			word:       "ls",
			wantText:   "ls ",
			wantCursor: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			tt.setup(e)
			e.ReplaceCurrentWord(tt.word)
			assert.Equal(t, tt.wantText, e.Text())
			assert.Equal(t, tt.wantCursor, e.Cursor())
			checkInvariant(t, e)
		})
	}
}

func TestSetTextStripsControlAndMovesCursorToEnd(t *testing.T) {
	e := New()
	e.SetText("ls -la\n")
	assert.Equal(t, "ls -la", e.Text())
	assert.Equal(t, len("ls -la"), e.Cursor())
}

func TestClear(t *testing.T) {
	e := New()
	e.InsertString("something")
	e.Clear()
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

// TestInvariantUnderOperationSequence drives the editor through a fixed
// pseudo-random mix of operations and checks the cursor invariant after
// every single one.
func TestInvariantUnderOperationSequence(t *testing.T) {
	e := New()
	ops := []func(){
		func() { e.Insert('x') },
		func() { e.Insert('é') },
		func() { e.DeleteBefore() },
		func() { e.DeleteAt() },
		func() { e.Move(Left) },
		func() { e.Move(Right) },
		func() { e.Move(Home) },
		func() { e.Move(End) },
		func() { e.ReplaceCurrentWord("word") },
		func() { e.Clear() },
	}
	// Deterministic walk over the op table; the stride is coprime with
	// the table length so all operations interleave.
	idx := 0
	for i := 0; i < 1000; i++ {
		ops[idx]()
		checkInvariant(t, e)
		idx = (idx + 7) % len(ops)
	}
}
