package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

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
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancelParent := context.WithCancel(context.Background())
	defer cancelParent()

	ctx := handler.HandleInterrupts(parent, func() (int, int) { return 3, 5 })

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	handler.Interrupt()

	<-ctx.Done()
	assert.True(t, handler.WasInterrupted())

	outputStr := output.String()
	assert.Contains(t, outputStr, "Classification interrupted!")
	assert.Contains(t, outputStr, "3 of 5 images were classified before stopping.")
	assert.Contains(t, outputStr, "sortbin history list")
}

func TestHandleInterrupts_ParentCanceled(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancelParent := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, nil)
	cancelParent()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestMultipleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancelParent := context.WithCancel(context.Background())
	defer cancelParent()
	_ = handler.HandleInterrupts(parent, nil)

	handler.Interrupt()
	handler.Interrupt()

	count := strings.Count(output.String(), "Classification interrupted!")
	assert.Equal(t, 1, count, "Interrupt message should only be shown once")
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		progress    func() (int, int)
		name        string
		expected    []string
		notExpected []string
	}{
		{
			name:     "with finished images",
			progress: func() (int, int) { return 2, 4 },
			expected: []string{
				"Classification interrupted!",
				"2 of 4 images were classified before stopping.",
				"Finished results are in your history",
				"See you later!",
			},
		},
		{
			name:     "nothing finished",
			progress: func() (int, int) { return 0, 4 },
			expected: []string{
				"0 of 4 images were classified before stopping.",
			},
			notExpected: []string{
				"Finished results are in your history",
			},
		},
		{
			name: "without progress",
			expected: []string{
				"Classification interrupted!",
				"See you later!",
			},
			notExpected: []string{
				"images were classified",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{
				writer:   &output,
				progress: tt.progress,
			}

			handler.showInterruptMessage()

			outputStr := output.String()
			for _, expected := range tt.expected {
				assert.Contains(t, outputStr, expected)
			}
			for _, notExpected := range tt.notExpected {
				assert.NotContains(t, outputStr, notExpected)
			}
		})
	}
}
