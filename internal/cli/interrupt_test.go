package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	assert.NotNil(t, NewInterruptHandler(&bytes.Buffer{}).writer)
	assert.NotNil(t, NewInterruptHandler(nil).writer)
}

func TestHandleInterrupts_ParentCanceled(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	defer handler.Stop()

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)
	handler.SetProgress(2, 5)

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	cancel()

	assert.Eventually(t, handler.WasInterrupted, time.Second, 5*time.Millisecond)
	<-ctx.Done()

	out := output.String()
	assert.Contains(t, out, "Quick tests interrupted!")
	assert.Contains(t, out, "2 of 5 finished")
	assert.Equal(t, 1, strings.Count(out, "Quick tests interrupted!"))
}

func TestHandleInterrupts_StopIsSilent(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	ctx := handler.HandleInterrupts(context.Background())
	handler.Stop()
	handler.Stop()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestShowInterruptMessage_WithoutProgress(t *testing.T) {
	var output bytes.Buffer
	handler := &InterruptHandler{writer: &output}

	handler.showInterruptMessage()

	assert.Contains(t, output.String(), "Quick tests interrupted!")
	assert.NotContains(t, output.String(), "finished")
}
