// Package termtest provides a PTY-backed harness for exercising the
// line-mode host against a real terminal device.
package termtest

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Harness wraps a PTY pair. The code under test runs against the slave
// side; the test drives input and asserts on output through the master.
type Harness struct {
	ptm    *os.File
	pts    *os.File
	mu     sync.RWMutex
	output strings.Builder
	closed bool
}

// Open allocates a PTY pair sized 80x24 and starts capturing output
// from the master side.
func Open() (*Harness, error) {
	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open pty: %w", err)
	}
	_ = pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80})

	h := &Harness{ptm: ptm, pts: pts}
	go h.readOutput()
	return h, nil
}

// Slave returns the slave side, for use as the program's stdin/stdout.
func (h *Harness) Slave() *os.File { return h.pts }

// SendLine types input followed by a newline.
func (h *Harness) SendLine(input string) error {
	return h.send(input + "\n")
}

// SendKeys sends a named control sequence.
func (h *Harness) SendKeys(keys string) error {
	var sequence string
	switch strings.ToLower(keys) {
	case "ctrl-c":
		sequence = "\x03"
	case "ctrl-d":
		sequence = "\x04"
	case "enter":
		sequence = "\n"
	case "tab":
		sequence = "\t"
	default:
		return fmt.Errorf("unknown key sequence: %s", keys)
	}
	return h.send(sequence)
}

func (h *Harness) send(input string) error {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		return fmt.Errorf("pty is closed")
	}
	if _, err := h.ptm.WriteString(input); err != nil {
		return fmt.Errorf("failed to write input: %w", err)
	}
	return nil
}

// WaitFor blocks until expected appears in the captured output or the
// timeout elapses.
func (h *Harness) WaitFor(expected string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(h.Output(), expected) {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("expected text %q not found in output after %v (output length: %d)",
		expected, timeout, len(h.Output()))
}

// Output returns everything captured from the master side so far.
func (h *Harness) Output() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.output.String()
}

// Close releases both sides of the PTY.
func (h *Harness) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	var errs []string
	if err := h.pts.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to close pts: %v", err))
	}
	if err := h.ptm.Close(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to close ptm: %v", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (h *Harness) readOutput() {
	buffer := make([]byte, 4096)
	for {
		n, err := h.ptm.Read(buffer)
		if n > 0 {
			h.mu.Lock()
			h.output.Write(buffer[:n])
			h.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}
