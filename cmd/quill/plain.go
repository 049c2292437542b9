package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/quillshell/quill/internal/session"
)

// runPlain is the line-mode host: print the prompt, read a line,
// dispatch it, print the output records. No raw terminal, no
// suggestion overlay. It serves pipes and dumb terminals, and it is
// what the PTY integration tests drive.
func runPlain(sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, sess.Prompt()); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			_, _ = fmt.Fprintln(out)
			return nil
		}
		line := scanner.Text()
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}

		p := sess.SubmitLine(line)
		if p == nil {
			continue
		}
		res := p.Wait()
		if res.ClearAll {
			// Home the cursor and wipe the screen, matching what the
			// scrollback reset means in the full-screen host.
			_, _ = fmt.Fprint(out, "\x1b[2J\x1b[H")
		}
		for _, rec := range res.Records {
			if _, err := fmt.Fprintln(out, rec.Text); err != nil {
				return err
			}
		}
		sess.CompleteDispatch(res)
		if sess.Terminated() {
			return nil
		}
	}
}
