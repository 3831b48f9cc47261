package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	err       error
	materials []model.ReferenceMaterial
	calls     int
}

func (f *fakeSource) FetchReferenceCatalog(context.Context) ([]model.ReferenceMaterial, error) {
	f.calls++
	return f.materials, f.err
}

func (f *fakeSource) FetchReferenceMaterial(_ context.Context, material string) (model.ReferenceMaterial, error) {
	for _, m := range f.materials {
		if m.Material == material {
			return m, nil
		}
	}
	return model.ReferenceMaterial{}, common.ErrNotFound
}

func catalog() []model.ReferenceMaterial {
	return []model.ReferenceMaterial{
		{ID: "1", Material: "plastic", DecompositionTime: "450 years", RecyclingRate: 9},
		{ID: "2", Material: "glass", DecompositionTime: "1 million years", RecyclingRate: 27},
	}
}

func TestCatalog_Load(t *testing.T) {
	source := &fakeSource{materials: catalog()}
	c := NewCatalog()

	require.NoError(t, c.Load(context.Background(), source))

	assert.True(t, c.Loaded())
	assert.False(t, c.Loading())
	assert.Len(t, c.Materials(), 2)
	assert.Equal(t, "plastic", c.Materials()[0].Material)
}

func TestCatalog_LoadFailure(t *testing.T) {
	source := &fakeSource{materials: catalog()}
	c := NewCatalog()
	require.NoError(t, c.Load(context.Background(), source))

	source.err = errors.New("refused")
	require.Error(t, c.Load(context.Background(), source))

	assert.Equal(t, MsgLoadFailed, common.UserMessage(c.Err()))
	assert.Len(t, c.Materials(), 2, "previous catalog kept")
}

func TestCatalog_Toggle(t *testing.T) {
	c := NewCatalog()
	require.True(t, c.Complete(c.Begin(), catalog(), nil))

	m, ok := c.Toggle("2")
	require.True(t, ok)
	assert.Equal(t, "glass", m.Material)

	selected, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, model.EntryID("2"), selected.ID)

	m, ok = c.Toggle("1")
	require.True(t, ok)
	assert.Equal(t, "plastic", m.Material)

	_, ok = c.Toggle("1")
	assert.False(t, ok, "toggling the selected card clears the selection")
	_, ok = c.Selected()
	assert.False(t, ok)

	_, ok = c.Toggle("99")
	assert.False(t, ok)
}

func TestCatalog_SelectionDroppedWhenMaterialDisappears(t *testing.T) {
	c := NewCatalog()
	require.True(t, c.Complete(c.Begin(), catalog(), nil))
	_, ok := c.Toggle("2")
	require.True(t, ok)

	require.True(t, c.Complete(c.Begin(), catalog()[:1], nil))
	_, ok = c.Selected()
	assert.False(t, ok)
}

func TestCatalog_StaleDiscarded(t *testing.T) {
	c := NewCatalog()
	first := c.Begin()
	second := c.Begin()

	assert.True(t, c.Complete(second, catalog(), nil))
	assert.False(t, c.Complete(first, nil, errors.New("late failure")))
	assert.NoError(t, c.Err())
	assert.Len(t, c.Materials(), 2)
}

func TestCatalog_Find(t *testing.T) {
	c := NewCatalog()
	c.Complete(c.Begin(), catalog(), nil)

	m, ok := c.Find(" Glass ")
	require.True(t, ok)
	assert.Equal(t, model.EntryID("2"), m.ID)

	_, ok = c.Find("metal")
	assert.False(t, ok)
}
