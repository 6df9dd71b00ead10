package views

import "sync/atomic"

// busy keeps an operation from running concurrently with itself.
type busy struct {
	flag atomic.Bool
}

func (b *busy) enter() error {
	if !b.flag.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (b *busy) leave() { b.flag.Store(false) }

func (b *busy) active() bool { return b.flag.Load() }
