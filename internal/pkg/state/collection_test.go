package state

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCollections_SetGet(t *testing.T) {
	c := NewCollections[string]()
	space := uuid.New()

	_, ok := c.Get(space)
	assert.False(t, ok)

	c.Set(space, []string{"a", "b"})
	got, ok := c.Get(space)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	got[0] = "mutated"
	again, _ := c.Get(space)
	assert.Equal(t, "a", again[0], "callers must receive copies")
}

func TestCollections_PatchUnloaded(t *testing.T) {
	c := NewCollections[int]()
	space := uuid.New()

	patched := c.Patch(space, func(items []int) []int { return append(items, 1) })
	assert.False(t, patched)

	_, ok := c.Get(space)
	assert.False(t, ok)
}

func TestCollections_Patch(t *testing.T) {
	c := NewCollections[int]()
	space := uuid.New()
	c.Set(space, []int{1})

	patched := c.Patch(space, func(items []int) []int { return append(items, 2) })
	assert.True(t, patched)

	got, _ := c.Get(space)
	assert.Equal(t, []int{1, 2}, got)
}

func TestCollections_Drop(t *testing.T) {
	c := NewCollections[int]()
	space := uuid.New()
	c.Set(space, []int{1})

	c.Drop(space)

	_, ok := c.Get(space)
	assert.False(t, ok)
}
