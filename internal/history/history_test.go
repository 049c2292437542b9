package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordSkipsEmptyAndBlank(t *testing.T) {
	l := New()
	l.Record("")
	l.Record("   ")
	l.Record("\t")
	assert.Equal(t, 0, l.Len())
}

func TestRecordDedupsConsecutive(t *testing.T) {
	l := New()
	l.Record("ls")
	l.Record("ls")
	assert.Equal(t, []string{"ls"}, l.Entries())

	// Non-consecutive repeats are kept.
	l.Record("pwd")
	l.Record("ls")
	assert.Equal(t, []string{"ls", "pwd", "ls"}, l.Entries())
}

func TestRecordStopsBrowsing(t *testing.T) {
	l := New()
	l.Record("ls")
	l.Navigate(Older)
	assert.True(t, l.Browsing())
	l.Record("pwd")
	assert.False(t, l.Browsing())
}

func TestNavigateEmptyLog(t *testing.T) {
	l := New()
	assert.Equal(t, "", l.Navigate(Older))
	assert.Equal(t, "", l.Navigate(Newer))
	assert.False(t, l.Browsing())
}

func TestNavigateOlderBeginsAtMostRecent(t *testing.T) {
	l := New()
	l.Record("ls")
	l.Record("pwd")
	assert.Equal(t, "pwd", l.Navigate(Older))
	assert.Equal(t, "ls", l.Navigate(Older))
}

func TestNavigateClampsAtOldest(t *testing.T) {
	l := New()
	l.Record("ls")
	l.Record("pwd")
	l.Navigate(Older)
	l.Navigate(Older)
	// One more call holds at the oldest entry.
	assert.Equal(t, "ls", l.Navigate(Older))
}

func TestNavigateNewerWithoutBrowsing(t *testing.T) {
	l := New()
	l.Record("ls")
	assert.Equal(t, "", l.Navigate(Newer))
	assert.False(t, l.Browsing())
}

// TestNavigationRoundTrip drives N older steps through every entry,
// verifies one extra older holds, then walks the same number of newer
// steps back out of browsing with an empty final result.
func TestNavigationRoundTrip(t *testing.T) {
	entries := []string{"one", "two", "three", "four"}
	l := New()
	for _, e := range entries {
		l.Record(e)
	}

	for i := 0; i < len(entries); i++ {
		want := entries[len(entries)-1-i]
		assert.Equal(t, want, l.Navigate(Older), "older step %d", i)
	}
	assert.Equal(t, entries[0], l.Navigate(Older), "extra older holds at oldest")

	for i := 0; i < len(entries)-1; i++ {
		want := entries[i+1]
		assert.Equal(t, want, l.Navigate(Newer), "newer step %d", i)
	}
	assert.Equal(t, "", l.Navigate(Newer), "final newer exits browsing")
	assert.False(t, l.Browsing())
}

func TestEntriesIsACopy(t *testing.T) {
	l := New()
	l.Record("ls")
	got := l.Entries()
	got[0] = "mutated"
	assert.Equal(t, []string{"ls"}, l.Entries())
}
