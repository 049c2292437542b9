// Package argv splits a submitted command line into arguments using a
// small POSIX-like tokenizer.
//
// Rules:
//   - Unquoted spaces and tabs split tokens.
//   - Single quotes preserve their contents literally.
//   - Double quotes preserve contents; backslash escapes only $, `, ",
//     and \ inside them.
//   - Outside quotes, backslash escapes the following rune.
//   - No environment expansion, globbing, or comment handling.
//
// Unterminated quotes are tolerated: the token simply runs to the end
// of the input. The input editor forbids newlines, so line
// continuations are not a concern here.
package argv

import "unicode/utf8"

// Split parses s into an ordered argument list.
func Split(s string) []string {
	var (
		out      []string
		buf      []rune
		started  bool
		inSingle bool
		inDouble bool
		esc      bool
	)
	flush := func() {
		if started {
			out = append(out, string(buf))
			buf = buf[:0]
			started = false
		}
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if esc {
			if inDouble {
				switch r {
				case '$', '`', '"', '\\':
					// escape consumed
				default:
					// backslash is literal within double quotes otherwise
					buf = append(buf, '\\')
				}
			}
			buf = append(buf, r)
			started = true
			esc = false
			continue
		}

		switch r {
		case '\\':
			if inSingle {
				buf = append(buf, r)
				started = true
				continue
			}
			esc = true
			started = true
		case '\'':
			if inDouble {
				buf = append(buf, r)
				continue
			}
			inSingle = !inSingle
			started = true
		case '"':
			if inSingle {
				buf = append(buf, r)
				continue
			}
			inDouble = !inDouble
			started = true
		case ' ', '\t':
			if inSingle || inDouble {
				buf = append(buf, r)
				continue
			}
			flush()
		default:
			buf = append(buf, r)
			started = true
		}
	}
	// A trailing backslash is kept literally rather than dropped.
	if esc {
		buf = append(buf, '\\')
		started = true
	}
	flush()
	return out
}
