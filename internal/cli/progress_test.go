package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("single image is silent", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(&buf, 1, "Classifying")
		require.NoError(t, bar.Add(1))
		assert.Empty(t, buf.String())
	})

	t.Run("batch renders progress", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(&buf, 3, "Classifying")
		require.NoError(t, bar.Add(3))
		assert.Contains(t, buf.String(), "Classifying")
		assert.Contains(t, buf.String(), "3/3")
	})
}
