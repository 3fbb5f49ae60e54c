// Package env implements the per-function local-variable environment.
package env

type Environment struct {
	locals          map[string]int32
	nextLocalOffset int32
}

func New() *Environment {
	return &Environment{
		locals:          make(map[string]int32),
		nextLocalOffset: -20,
	}
}

func (e *Environment) BindParameter(name string, index int) {
	e.locals[name] = int32(4*index - 16)
}

func (e *Environment) Bind(name string) int32 {
	offset := e.nextLocalOffset - 4
	e.locals[name] = offset
	e.nextLocalOffset -= 8
	return offset
}

func (e *Environment) Lookup(name string) (offset int32, ok bool) {
	offset, ok = e.locals[name]
	return offset, ok
}
