package combinator

import (
	"strconv"
	"testing"

	"github.com/mikaku-lang/armc/internal/source"
)

func TestRegexpAndMap(t *testing.T) {
	digits := Regexp(source.Sticky(`[0-9]+`))
	number := Map(digits, func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})

	v, err := ParseStringToCompletion(number, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestOrOrderedChoice(t *testing.T) {
	p := Or(Regexp(source.Sticky(`foo`)), Regexp(source.Sticky(`bar`)))

	if v, err := ParseStringToCompletion(p, "foo"); err != nil || v != "foo" {
		t.Fatalf("got (%q, %v)", v, err)
	}
	if v, err := ParseStringToCompletion(p, "bar"); err != nil || v != "bar" {
		t.Fatalf("got (%q, %v)", v, err)
	}
	if _, err := ParseStringToCompletion(p, "baz"); err == nil {
		t.Fatalf("expected a miss to become a parse error")
	}
}

func TestZeroOrMoreAlwaysSucceeds(t *testing.T) {
	as := ZeroOrMore(Regexp(source.Sticky(`a`)))

	c := source.New("")
	r, ok := as.Run(c)
	if !ok {
		t.Fatalf("ZeroOrMore must never miss")
	}
	if len(r.Value) != 0 {
		t.Fatalf("expected no matches on empty input, got %v", r.Value)
	}

	c = source.New("aaa")
	r, ok = as.Run(c)
	if !ok || len(r.Value) != 3 {
		t.Fatalf("got %v, %v", r.Value, ok)
	}
}

func TestMaybe(t *testing.T) {
	p := Maybe(Regexp(source.Sticky(`x`)))

	c := source.New("y")
	r, ok := p.Run(c)
	if !ok {
		t.Fatalf("Maybe must never miss")
	}
	if r.Value != "" {
		t.Fatalf("expected zero-value sentinel, got %q", r.Value)
	}
	if r.Cursor.Index != 0 {
		t.Fatalf("Maybe must not advance on a miss")
	}
}

func TestAndKeepsSecondValue(t *testing.T) {
	p := And(Regexp(source.Sticky(`a`)), Regexp(source.Sticky(`b`)))

	v, err := ParseStringToCompletion(p, "ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "b" {
		t.Fatalf("got %q, want %q", v, "b")
	}
}

func TestBindSequencesAndThreadsCursor(t *testing.T) {
	p := Bind(Regexp(source.Sticky(`[0-9]+`)), func(first string) Parser[string] {
		return Bind(Regexp(source.Sticky(`,`)), func(string) Parser[string] {
			return Regexp(source.Sticky(`[0-9]+`))
		})
	})

	v, err := ParseStringToCompletion(p, "12,34")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "34" {
		t.Fatalf("got %q, want %q", v, "34")
	}
}

func TestLazyDefersUntilRun(t *testing.T) {
	var slot Parser[string]
	lazy := Lazy(&slot)

	// Not yet initialized: must miss rather than panic.
	if _, ok := lazy.Run(source.New("x")); ok {
		t.Fatalf("uninitialized Lazy must miss, not succeed")
	}

	slot = Regexp(source.Sticky(`x`))

	v, err := ParseStringToCompletion(lazy, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "x" {
		t.Fatalf("got %q, want %q", v, "x")
	}
}

func TestParseStringToCompletionRejectsTrailingInput(t *testing.T) {
	p := Regexp(source.Sticky(`a`))

	_, err := ParseStringToCompletion(p, "ab")
	if err == nil {
		t.Fatalf("expected an error: trailing input was not consumed")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Index != 1 {
		t.Fatalf("got index %d, want 1", perr.Index)
	}
	if perr.Error() != "Parse error at index 1" {
		t.Fatalf("got message %q", perr.Error())
	}
}

func TestParseStringToCompletionRejectsImmediateMiss(t *testing.T) {
	p := Regexp(source.Sticky(`a`))

	_, err := ParseStringToCompletion(p, "b")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Error() != "Parse error at index 0" {
		t.Fatalf("got message %q", err.Error())
	}
}
