package panicerr

import "runtime/debug"

// Recover runs f in a new goroutine, returning its error, or an error
// describing a panic or runtime.Goexit that ended it abnormally.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			select {
			case errch <- exitError(name):
			default:
				// f returned or panicked
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- newPanicError(name, e)
			}
		}()
		errch <- f()
	}()
	return <-errch
}

// Guard is like Recover, but runs f on the calling goroutine. A runtime.Goexit
// inside f is not intercepted.
func Guard(name string, f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = newPanicError(name, e)
		}
	}()
	return f()
}

func newPanicError(name string, e interface{}) error {
	if pe, ok := e.(panicError); ok {
		return pe
	}
	return panicError{name: name, e: e, stack: debug.Stack()}
}
