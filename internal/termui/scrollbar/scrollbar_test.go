package scrollbar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rows(s string) []string { return strings.Split(s, "\n") }

func TestViewHeightIsExact(t *testing.T) {
	b := New(8)
	assert.Len(t, rows(b.View(100, 0)), 8)
	assert.Len(t, rows(b.View(3, 0)), 8)
}

func TestContentFitsFillsTrack(t *testing.T) {
	b := New(4)
	top, size := b.thumb(4, 0)
	assert.Equal(t, 0, top)
	assert.Equal(t, 4, size)
}

func TestThumbProportionalToVisibleShare(t *testing.T) {
	b := New(10)
	_, size := b.thumb(100, 0)
	assert.Equal(t, 1, size, "10 of 100 rows visible")

	_, size = b.thumb(20, 0)
	assert.Equal(t, 5, size, "half the content visible")
}

func TestThumbTracksOffset(t *testing.T) {
	b := New(10)

	top, _ := b.thumb(100, 0)
	assert.Equal(t, 0, top, "top of content")

	top, size := b.thumb(100, 90)
	assert.Equal(t, 10, top+size, "bottom of content reaches the track end")
}

func TestOffsetClamped(t *testing.T) {
	b := New(10)
	topLow, _ := b.thumb(100, -5)
	assert.Equal(t, 0, topLow)

	topHigh, size := b.thumb(100, 1000)
	assert.Equal(t, 10, topHigh+size)
}

func TestZeroHeightRendersNothing(t *testing.T) {
	assert.Equal(t, "", New(0).View(50, 0))
}
