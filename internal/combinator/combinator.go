// Package combinator implements PEG-style parser combinators: a Parser is a pure function from a source.Cursor to an optional parse result.
package combinator

import (
	"regexp"
	"strconv"

	"github.com/mikaku-lang/armc/internal/source"
)

type Result[T any] struct {
	Value  T
	Cursor source.Cursor
}

// Parser wraps a pure parse function. The zero value is not usable.
type Parser[T any] struct {
	run func(source.Cursor) (Result[T], bool)
}

func (p Parser[T]) Run(c source.Cursor) (Result[T], bool) {
	return p.run(c)
}

func newParser[T any](run func(source.Cursor) (Result[T], bool)) Parser[T] {
	return Parser[T]{run: run}
}

func Regexp(re *regexp.Regexp) Parser[string] {
	return newParser(func(c source.Cursor) (Result[string], bool) {
		matched, next, ok := c.Match(re)
		if !ok {
			return Result[string]{}, false
		}
		return Result[string]{Value: matched, Cursor: next}, true
	})
}

func Constant[T any](v T) Parser[T] {
	return newParser(func(c source.Cursor) (Result[T], bool) {
		return Result[T]{Value: v, Cursor: c}, true
	})
}

func Fail[T any]() Parser[T] {
	return newParser(func(source.Cursor) (Result[T], bool) {
		return Result[T]{}, false
	})
}

// Or is ordered choice: b is only tried if a misses.
func Or[T any](a, b Parser[T]) Parser[T] {
	return newParser(func(c source.Cursor) (Result[T], bool) {
		if r, ok := a.Run(c); ok {
			return r, true
		}
		return b.Run(c)
	})
}

func ZeroOrMore[T any](p Parser[T]) Parser[[]T] {
	return newParser(func(c source.Cursor) (Result[[]T], bool) {
		values := []T{}
		for {
			r, ok := p.Run(c)
			if !ok {
				return Result[[]T]{Value: values, Cursor: c}, true
			}
			values = append(values, r.Value)
			c = r.Cursor
		}
	})
}

func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return newParser(func(c source.Cursor) (Result[B], bool) {
		ra, ok := p.Run(c)
		if !ok {
			return Result[B]{}, false
		}
		return f(ra.Value).Run(ra.Cursor)
	})
}

func And[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Bind(a, func(A) Parser[B] { return b })
}

func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return Bind(p, func(a A) Parser[B] { return Constant(f(a)) })
}

func Maybe[T any](p Parser[T]) Parser[T] {
	return newParser(func(c source.Cursor) (Result[T], bool) {
		if r, ok := p.Run(c); ok {
			return r, true
		}
		var zero T
		return Result[T]{Value: zero, Cursor: c}, true
	})
}

// Lazy defers to whatever *slot holds when it's run, not when it's built, so two parsers can refer to each other.
func Lazy[T any](slot *Parser[T]) Parser[T] {
	return newParser(func(c source.Cursor) (Result[T], bool) {
		if slot == nil || slot.run == nil {
			return Result[T]{}, false
		}
		return slot.Run(c)
	})
}

func ParseStringToCompletion[T any](p Parser[T], s string) (T, error) {
	c := source.New(s)

	r, ok := p.Run(c)
	if !ok {
		var zero T
		return zero, &ParseError{Index: 0}
	}
	if !r.Cursor.AtEnd() {
		return r.Value, &ParseError{Index: r.Cursor.Index}
	}

	return r.Value, nil
}

type ParseError struct {
	Index int
}

func (e *ParseError) Error() string {
	return "Parse error at index " + strconv.Itoa(e.Index)
}
