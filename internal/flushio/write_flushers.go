package flushio

import "io"

// WriteFlushers combines any number of WriteFlushers into one that writes to
// and flushes all of them, in order. Nils are skipped and nested combinations
// are flattened.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all teeFlusher
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case teeFlusher:
			all = append(all, impl...)
		default:
			all = append(all, wf)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return all
	}
}

type teeFlusher []WriteFlusher

func (tf teeFlusher) Write(p []byte) (int, error) {
	for _, wf := range tf {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every writer, returning the first error.
func (tf teeFlusher) Flush() (err error) {
	for _, wf := range tf {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
