package engine

import (
	"fmt"
	"log"
)

// FatalError reports a broken invariant: a stale handle, a double
// registration, a missing sibling the caller relied on. It is raised with
// panic and is never meant to be handled as a recoverable condition.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string {
	return "engine: " + e.Msg
}

// Fatalf panics with a *FatalError.
func Fatalf(format string, args ...any) {
	panic(&FatalError{Msg: fmt.Sprintf(format, args...)})
}

// RecoverFatal is deferred by entry points. It hands a *FatalError to handle
// (typically log and exit) and re-panics anything else.
//
//	defer engine.RecoverFatal(func(err *engine.FatalError) {
//	    log.Printf("Fatal: %v", err)
//	    os.Exit(1)
//	})
func RecoverFatal(handle func(*FatalError)) {
	r := recover()
	if r == nil {
		return
	}
	fe, ok := r.(*FatalError)
	if !ok {
		panic(r)
	}
	if handle == nil {
		log.Printf("Fatal: %v", fe)
		return
	}
	handle(fe)
}
