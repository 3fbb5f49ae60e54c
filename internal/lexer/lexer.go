// Package lexer builds tokens on top of internal/combinator: every token consumes its own trailing whitespace and comments.
package lexer

import (
	"regexp"

	"github.com/mikaku-lang/armc/internal/combinator"
	"github.com/mikaku-lang/armc/internal/source"
)

var (
	whitespaceRe  = source.Sticky(`[ \t\r\n]+`)
	lineCommentRe = source.Sticky(`//[^\n]*`)
	// (?s) lets "." match newlines, so a block comment can span lines.
	blockCommentRe = source.Sticky(`(?s)/\*.*?\*/`)

	identifierRe = source.Sticky(`[a-zA-Z_][a-zA-Z0-9_]*`)
	numberRe     = source.Sticky(`[0-9]+`)
)

var Whitespace = combinator.Regexp(whitespaceRe)

var Comments = combinator.Or(combinator.Regexp(lineCommentRe), combinator.Regexp(blockCommentRe))

var Ignored = combinator.ZeroOrMore(combinator.Or(Whitespace, Comments))

func tokenFromParser(p combinator.Parser[string]) combinator.Parser[string] {
	return combinator.Bind(p, func(matched string) combinator.Parser[string] {
		return combinator.And(Ignored, combinator.Constant(matched))
	})
}

func Token(re *regexp.Regexp) combinator.Parser[string] {
	return tokenFromParser(combinator.Regexp(re))
}

// Keyword requires a trailing word boundary so "iffy" lexes as one identifier, not keyword "if" plus "fy".
func Keyword(word string) combinator.Parser[string] {
	return tokenFromParser(combinator.Regexp(source.Sticky(word + `\b`)))
}

var Identifier = tokenFromParser(combinator.Regexp(identifierRe))

var Number = tokenFromParser(combinator.Regexp(numberRe))

func Operator(lit string) combinator.Parser[string] {
	return tokenFromParser(combinator.Regexp(source.Sticky(regexp.QuoteMeta(lit))))
}
