// Package scrollbar renders the vertical position indicator shown
// beside the scrollback viewport when the buffer holds more lines than
// fit on screen.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar renders a one-column scrollbar of a fixed height.
type Bar struct {
	// Height is the viewport height in rows. View always returns
	// exactly this many rows.
	Height int

	Thumb lipgloss.Style
	Track lipgloss.Style
}

// New returns a bar with the default styling.
func New(height int) Bar {
	return Bar{
		Height: height,
		Thumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Track:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// View renders the bar for a viewport showing rows [offset,
// offset+Height) of content rows. The thumb height is proportional to
// the visible share of the content; when everything fits the thumb
// fills the track.
func (b Bar) View(content, offset int) string {
	if b.Height <= 0 {
		return ""
	}
	top, size := b.thumb(content, offset)

	var s strings.Builder
	for i := 0; i < b.Height; i++ {
		if i > 0 {
			s.WriteRune('\n')
		}
		if i >= top && i < top+size {
			s.WriteString(b.Thumb.Render("┃"))
		} else {
			s.WriteString(b.Track.Render("│"))
		}
	}
	return s.String()
}

// thumb computes the thumb's top row and height within the track.
func (b Bar) thumb(content, offset int) (top, size int) {
	if content <= b.Height {
		return 0, b.Height
	}
	size = b.Height * b.Height / content
	if size < 1 {
		size = 1
	}
	maxOffset := content - b.Height
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	// Map the scroll offset onto the track space left over by the thumb.
	top = offset * (b.Height - size) / maxOffset
	return top, size
}
