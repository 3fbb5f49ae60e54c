// Package compiler is the facade between parser/codegen and the outside world.
package compiler

import (
	"io"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/mikaku-lang/armc/internal/codegen"
	"github.com/mikaku-lang/armc/internal/grammar"
)

func Compile(source string, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = tracerr.Wrap(rerr)
				return
			}
			panic(r)
		}
	}()

	program, err := grammar.Parse(source)
	if err != nil {
		return tracerr.Wrap(err)
	}

	genErr := codegen.Generate(program, func(line string) {
		if _, werr := io.WriteString(w, line+"\n"); werr != nil {
			panic(werr)
		}
	})
	if genErr != nil {
		return tracerr.Wrap(genErr)
	}

	return nil
}

func CompileToString(source string) (string, error) {
	var sb strings.Builder
	if err := Compile(source, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
