package thermo

import (
	"sync"

	"thermosense-go/errcode"
)

// BuildInput is handed to a sensor builder.
type BuildInput struct {
	Kind string
	Pin  int
	Log  Logger
}

// Builder constructs the backend for one sensor kind.
type Builder interface {
	Build(in BuildInput) (Backend, error)
}

var (
	muBuilders sync.RWMutex
	builders   = map[string]Builder{}
)

// RegisterBuilder installs a builder for a sensor kind.
// It panics on duplicate registration to catch mistakes at start-up.
func RegisterBuilder(kind string, b Builder) {
	muBuilders.Lock()
	defer muBuilders.Unlock()
	if kind == "" {
		panic("thermo: empty sensor kind for builder")
	}
	if _, exists := builders[kind]; exists {
		panic("thermo: builder already registered for kind " + kind)
	}
	builders[kind] = b
}

// Build looks up the builder for in.Kind and runs it.
func Build(in BuildInput) (Backend, error) {
	muBuilders.RLock()
	b, ok := builders[in.Kind]
	muBuilders.RUnlock()
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownSensor, Op: "thermo.build", Msg: in.Kind}
	}
	return b.Build(in)
}
