package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler stops a quick-test sweep on SIGINT/SIGTERM or when the
// parent context ends, and tells the user how far it got.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	sigChan     chan os.Signal
	stop        chan struct{}
	completed   int
	total       int
	interrupted bool
	stopOnce    sync.Once
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
		stop:   make(chan struct{}),
	}
}

// HandleInterrupts returns a context that is canceled on interrupt. Call Stop
// once the sweep is over.
func (h *InterruptHandler) HandleInterrupts(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	h.cancelFunc = cancel

	h.sigChan = make(chan os.Signal, 1)
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-h.sigChan:
		case <-parent.Done():
		case <-h.stop:
			return
		}

		h.mu.Lock()
		if !h.interrupted {
			h.interrupted = true
			h.showInterruptMessage()
		}
		h.mu.Unlock()
		cancel()
	}()

	return ctx
}

// SetProgress records how many of total predictions have finished.
func (h *InterruptHandler) SetProgress(completed, total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = completed
	h.total = total
}

// Stop releases the signal handler without reporting an interrupt.
func (h *InterruptHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
		if h.sigChan != nil {
			signal.Stop(h.sigChan)
		}
		if h.cancelFunc != nil {
			h.cancelFunc()
		}
	})
}

// WasInterrupted returns true if the sweep was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}

// showInterruptMessage must be called with mu held.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning("Quick tests interrupted!")

	if h.total > 0 {
		msg += "\n" + FormatInfo(fmt.Sprintf("%d of %d finished. Their verdicts are in the service history: fraudwatch history", h.completed, h.total))
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}
