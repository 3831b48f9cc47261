package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "y", input: "y\n", expected: true},
		{name: "yes uppercase", input: "YES\n", expected: true},
		{name: "padded yes", input: "  yes  \n", expected: true},
		{name: "n", input: "n\n", expected: false},
		{name: "empty defaults to no", input: "\n", expected: false},
		{name: "anything else", input: "sure\n", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			in := NewNonBlockingReader(strings.NewReader(tt.input))

			ok, err := Confirm(context.Background(), in, &out, "Clear all history?")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Contains(t, out.String(), "Clear all history? [y/N]")
		})
	}
}

func TestConfirm_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	ok, err := Confirm(ctx, NewNonBlockingReader(strings.NewReader("y\n")), &out, "Delete?")
	assert.ErrorIs(t, err, ErrInputCancelled)
	assert.False(t, ok)
}
