// Package scrollback implements the bounded output buffer that backs a
// session's scrollback: an ordered sequence of rendered records with
// strict FIFO eviction once the fixed capacity is reached.
package scrollback

// Kind classifies a scrollback record for rendering purposes.
type Kind int

const (
	// UserInput is a line the user submitted, echoed into the scrollback.
	UserInput Kind = iota
	// SystemOutput is output produced by a built-in or external command.
	SystemOutput
	// PromptHeader is a rendered prompt line. The most recent one marks
	// where the live input line is drawn.
	PromptHeader
)

// String returns a short label for the kind, used in logs and tests.
func (k Kind) String() string {
	switch k {
	case UserInput:
		return "input"
	case SystemOutput:
		return "output"
	case PromptHeader:
		return "prompt"
	default:
		return "unknown"
	}
}

// Record is a single rendered line. Records are immutable once created;
// eviction from the owning Buffer is the only destruction path.
type Record struct {
	Text string
	Kind Kind
}

// DefaultCapacity is the canonical scrollback depth.
const DefaultCapacity = 500

// Buffer is a fixed-capacity ring of records. Append never fails: once
// the buffer is full the oldest record is evicted to make room. The
// buffer has exactly one writer (the owning session) and is not safe
// for concurrent use.
type Buffer struct {
	recs []Record
	head int // index of the oldest record
	size int
}

// New creates a buffer with the given capacity. Capacities below one
// fall back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{recs: make([]Record, capacity)}
}

// Append inserts rec at the tail, evicting the oldest record if the
// buffer is already at capacity.
func (b *Buffer) Append(rec Record) {
	tail := (b.head + b.size) % len(b.recs)
	b.recs[tail] = rec
	if b.size == len(b.recs) {
		b.head = (b.head + 1) % len(b.recs)
	} else {
		b.size++
	}
}

// Len returns the number of retained records.
func (b *Buffer) Len() int { return b.size }

// Cap returns the fixed capacity set at construction.
func (b *Buffer) Cap() int { return len(b.recs) }

// Records returns the retained records in submission order. The result
// is a copy; mutating it does not affect the buffer.
func (b *Buffer) Records() []Record {
	out := make([]Record, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.recs[(b.head+i)%len(b.recs)]
	}
	return out
}

// Last returns the most recent record, or false if the buffer is empty.
func (b *Buffer) Last() (Record, bool) {
	if b.size == 0 {
		return Record{}, false
	}
	return b.recs[(b.head+b.size-1)%len(b.recs)], true
}

// Clear discards every retained record. Capacity is unchanged.
func (b *Buffer) Clear() {
	b.head = 0
	b.size = 0
}
