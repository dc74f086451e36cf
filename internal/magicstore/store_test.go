package magicstore

import (
	"testing"

	"github.com/cricklet/magician/internal/bitboards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openForTest(t *testing.T) *Store {
	store, err := OpenInMemory()
	require.True(t, err.IsNil(), err.Error())
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestPutGet(t *testing.T) {
	store := openForTest(t)

	missing, err := store.Get(bitboards.RookShape, 12)
	assert.True(t, err.IsNil())
	assert.True(t, missing.IsEmpty())

	entry := bitboards.MagicEntry{Magic: 0x8000200040008001, Shift: 52}
	require.True(t, store.Put(bitboards.RookShape, 12, entry).IsNil())

	found, err := store.Get(bitboards.RookShape, 12)
	assert.True(t, err.IsNil())
	assert.True(t, found.HasValue())
	assert.Equal(t, entry, found.Value())

	// shapes do not share keys
	other, err := store.Get(bitboards.BishopShape, 12)
	assert.True(t, err.IsNil())
	assert.True(t, other.IsEmpty())
}

func TestCountAndClear(t *testing.T) {
	store := openForTest(t)

	for square := 0; square < 10; square++ {
		require.True(t, store.Put(bitboards.BishopShape, square, bitboards.MagicEntry{Magic: uint64(square + 1), Shift: 58}).IsNil())
	}
	require.True(t, store.Put(bitboards.RookShape, 63, bitboards.MagicEntry{Magic: 7, Shift: 52}).IsNil())

	count, err := store.Count(bitboards.BishopShape)
	assert.True(t, err.IsNil())
	assert.Equal(t, 10, count)

	count, _ = store.Count(bitboards.RookShape)
	assert.Equal(t, 1, count)

	require.True(t, store.Clear(bitboards.BishopShape).IsNil())

	count, _ = store.Count(bitboards.BishopShape)
	assert.Equal(t, 0, count)
	count, _ = store.Count(bitboards.RookShape)
	assert.Equal(t, 1, count)
}

func TestReopenOnDisk(t *testing.T) {
	dir := t.TempDir()
	entry := bitboards.MagicEntry{Magic: 0x40040844404084, Shift: 58}

	store, err := Open(dir)
	require.True(t, err.IsNil(), err.Error())
	require.True(t, store.Put(bitboards.BishopShape, 9, entry).IsNil())
	require.True(t, store.Close().IsNil())

	store, err = Open(dir)
	require.True(t, err.IsNil(), err.Error())
	defer store.Close()

	found, err := store.Get(bitboards.BishopShape, 9)
	assert.True(t, err.IsNil())
	assert.Equal(t, entry, found.ValueOr(bitboards.MagicEntry{}))
}
