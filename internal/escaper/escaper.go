package escaper

import (
	"strings"

	"github.com/mcncl/jsonenv/internal/errors"
)

const quote = "'"

// Escaper turns compact JSON text into a single-quoted literal that can be
// pasted into a shell or .env file.
//
// The substitutions are purely textual and run in a fixed order: every
// two-character sequence `\n` becomes `\\n`, then every `"` becomes `\"`.
// Quote escaping must run last.
type Escaper struct{}

// NewEscaper creates a new Escaper instance
func NewEscaper() *Escaper {
	return &Escaper{}
}

// Escape applies both substitutions and wraps the result in apostrophes.
func (e *Escaper) Escape(canonical string) string {
	s := strings.ReplaceAll(canonical, `\n`, `\\n`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return quote + s + quote
}

// Unescape reverses Escape: it strips exactly one apostrophe from each end,
// then undoes the substitutions in the opposite order.
func (e *Escaper) Unescape(escaped string) (string, error) {
	if len(escaped) < 2 || !strings.HasPrefix(escaped, quote) || !strings.HasSuffix(escaped, quote) {
		return "", errors.NewParsingError("escaped value must start and end with an apostrophe", errors.ErrNotQuoted)
	}
	s := escaped[1 : len(escaped)-1]
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\n`, `\n`)
	return s, nil
}
