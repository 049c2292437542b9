package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLimit is the maximum number of candidates offered at once.
const DefaultLimit = 5

// noneSelected is the sentinel for State.Selected.
const noneSelected = -1

// State is the externally visible suggestion state: the ordered
// candidate list (bounded by the engine's limit) and which candidate,
// if any, is selected.
type State struct {
	Candidates []string
	// Selected is the index into Candidates, or -1 for none.
	Selected int
}

// Visible reports whether there is anything to render.
func (s State) Visible() bool { return len(s.Candidates) > 0 }

// Engine recomputes suggestion candidates from the input line on every
// edit. Candidates are drawn from the knowledge base in declared order
// and truncated to the limit; they are never re-sorted.
type Engine struct {
	kb         *KnowledgeBase
	limit      int
	candidates []string
	selected   int
}

// NewEngine creates an engine over kb. A non-positive limit falls back
// to DefaultLimit.
func NewEngine(kb *KnowledgeBase, limit int) *Engine {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Engine{kb: kb, limit: limit, selected: noneSelected}
}

// Refresh recomputes the candidate set for input and resets the
// selection.
//
// Mode selection is positional: the first token completes against
// command names; later tokens starting with "-" complete against the
// first token's declared flags; bare positional arguments yield
// nothing (path completion is out of scope). The current word is the
// final whitespace-separated token, or empty when the input ends in
// whitespace, in which case suggestions are hidden.
func (e *Engine) Refresh(input string) {
	e.candidates = e.candidates[:0]
	e.selected = noneSelected

	if input == "" {
		return
	}
	last, _ := utf8.DecodeLastRuneInString(input)
	if unicode.IsSpace(last) {
		return
	}
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}
	current := fields[len(fields)-1]

	var pool []string
	switch {
	case len(fields) == 1:
		pool = e.kb.Commands()
	case strings.HasPrefix(current, "-"):
		pool = e.kb.Flags(fields[0])
	default:
		return
	}
	for _, cand := range pool {
		if len(e.candidates) == e.limit {
			break
		}
		// An exact match offers nothing new.
		if cand != current && strings.HasPrefix(cand, current) {
			e.candidates = append(e.candidates, cand)
		}
	}
}

// Hide discards the candidate set, e.g. when history browsing begins.
func (e *Engine) Hide() {
	e.candidates = e.candidates[:0]
	e.selected = noneSelected
}

// State returns a snapshot of the current candidates and selection.
func (e *Engine) State() State {
	return State{
		Candidates: append([]string(nil), e.candidates...),
		Selected:   e.selected,
	}
}

// Cycle advances the selection through the candidate list, wrapping
// at the end. With no candidates it is a no-op; from the unselected
// state it selects the first candidate.
func (e *Engine) Cycle() {
	if len(e.candidates) == 0 {
		return
	}
	e.selected = (e.selected + 1) % len(e.candidates)
}

// replacer is the editor operation Apply delegates to.
type replacer interface {
	ReplaceCurrentWord(word string)
}

// Apply substitutes the selected candidate (or the first, when none is
// selected) into ed and reports whether a substitution occurred.
// Callers use a false return to pick a fallback action.
func (e *Engine) Apply(ed replacer) bool {
	if len(e.candidates) == 0 {
		return false
	}
	idx := e.selected
	if idx == noneSelected {
		idx = 0
	}
	ed.ReplaceCurrentWord(e.candidates[idx])
	return true
}
