// Package source implements the immutable source cursor the combinator and lexer layers are built on.
package source

import "regexp"

type Cursor struct {
	Text  string
	Index int
}

func New(text string) Cursor {
	return Cursor{Text: text, Index: 0}
}

func (c Cursor) AtEnd() bool {
	return c.Index >= len(c.Text)
}

// Match anchors re at the cursor's index, re-slicing and anchoring with \A to simulate sticky matching.
func (c Cursor) Match(re *regexp.Regexp) (matched string, next Cursor, ok bool) {
	loc := re.FindStringIndex(c.Text[c.Index:])
	if loc == nil || loc[0] != 0 {
		return "", c, false
	}

	matched = c.Text[c.Index : c.Index+loc[1]]
	next = Cursor{Text: c.Text, Index: c.Index + loc[1]}
	return matched, next, true
}

func Sticky(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + pattern + `)`)
}
