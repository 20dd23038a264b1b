package runtimer

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

type Callback func(s os.Signal)

func New(signals ...os.Signal) *SignalHandler {
	c := make(chan os.Signal, 1)
	signal.Notify(c, signals...)

	sh := &SignalHandler{
		c:    c,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go sh.handle()

	return sh
}

// SignalHandler invokes the registered callbacks once, on the first signal received
type SignalHandler struct {
	c    chan os.Signal
	stop chan struct{}
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	fns []Callback
}

func (sh *SignalHandler) handle() {
	defer close(sh.done)
	defer signal.Stop(sh.c)

	select {
	case s := <-sh.c:
		sh.mu.Lock()
		fns := append([]Callback(nil), sh.fns...)
		sh.mu.Unlock()

		for _, fn := range fns {
			fn(s)
		}
	case <-sh.stop:
	}
}

func (sh *SignalHandler) RegisterCallback(fn Callback) {
	sh.mu.Lock()
	sh.fns = append(sh.fns, fn)
	sh.mu.Unlock()
}

// Context returns a child of parent that's canceled when a signal arrives
func (sh *SignalHandler) Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sh.RegisterCallback(func(s os.Signal) {
		cancel()
	})

	return ctx, cancel
}

// Stop stops listening for signals, callbacks that haven't run yet won't be called
func (sh *SignalHandler) Stop() {
	sh.once.Do(func() {
		close(sh.stop)
	})

	<-sh.done
}
