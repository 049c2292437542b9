package termui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/quillshell/quill/internal/scrollback"
	"github.com/quillshell/quill/internal/termui/scrollbar"
)

// Styles groups the lipgloss styles used by the host.
type Styles struct {
	Prompt     lipgloss.Style
	Input      lipgloss.Style
	Output     lipgloss.Style
	Cursor     lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	Waiting    lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Input:      lipgloss.NewStyle(),
		Output:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")),
		Waiting:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	recs := m.sess.Records()
	var lines []string

	for i := 0; i < len(recs); i++ {
		rec := recs[i]
		switch rec.Kind {
		case scrollback.PromptHeader:
			prompt := m.styles.Prompt.Render(rec.Text)
			// A prompt immediately followed by the echoed input renders
			// as one line, the way the user saw it while typing.
			if i+1 < len(recs) && recs[i+1].Kind == scrollback.UserInput {
				lines = append(lines, prompt+m.styles.Input.Render(recs[i+1].Text))
				i++
				continue
			}
			if i == len(recs)-1 {
				// The trailing prompt carries the live input line.
				lines = append(lines, prompt+m.renderInput())
				continue
			}
			lines = append(lines, prompt)
		case scrollback.UserInput:
			lines = append(lines, m.styles.Input.Render(rec.Text))
		default:
			lines = append(lines, m.styles.Output.Render(rec.Text))
		}
	}

	if m.waiting {
		lines = append(lines, m.styles.Waiting.Render("..."))
	}

	overlay := m.renderSuggestions()

	visible := m.height - len(overlay)
	if visible < 1 {
		visible = 1
	}
	body := strings.Join(lines, "\n")
	if len(lines) > visible {
		// Slice the viewport out of the scrollback, honoring any PgUp
		// offset, and mark the position with a scrollbar column.
		maxScroll := len(lines) - visible
		scroll := m.scroll
		if scroll > maxScroll {
			scroll = maxScroll
		}
		start := maxScroll - scroll
		window := strings.Join(lines[start:start+visible], "\n")
		bar := scrollbar.New(visible)
		body = lipgloss.JoinHorizontal(lipgloss.Top, window, " ", bar.View(len(lines), start))
	}
	if len(overlay) > 0 {
		body += "\n" + strings.Join(overlay, "\n")
	}
	return body
}

// renderInput renders the editor text with a block cursor on the
// grapheme at the cursor offset.
func (m Model) renderInput() string {
	text, cursor := m.sess.Input()
	if cursor >= len(text) {
		return m.styles.Input.Render(text) + m.styles.Cursor.Render(" ")
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[cursor:], -1)
	return m.styles.Input.Render(text[:cursor]) +
		m.styles.Cursor.Render(cluster) +
		m.styles.Input.Render(text[cursor+len(cluster):])
}

// renderSuggestions renders the completion overlay, one candidate per
// line, with the selected candidate highlighted.
func (m Model) renderSuggestions() []string {
	state := m.sess.Suggestions()
	if !state.Visible() {
		return nil
	}
	out := make([]string, 0, len(state.Candidates))
	for i, cand := range state.Candidates {
		style := m.styles.Suggestion
		if i == state.Selected {
			style = m.styles.Selected
		}
		out = append(out, "  "+style.Render(cand))
	}
	return out
}
