package hashcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ShouldProcess(t *testing.T) {
	payload := []byte(`[{"id":1,"name":"Alice"}]`)

	t.Run("unknown key needs processing", func(t *testing.T) {
		c := New()
		assert.True(t, c.ShouldProcess("k", payload))
	})

	t.Run("committed payload is skipped the second time", func(t *testing.T) {
		c := New()
		require.True(t, c.ShouldProcess("k", payload))
		c.Commit("k", payload)
		assert.False(t, c.ShouldProcess("k", payload))
	})

	t.Run("changed payload needs processing", func(t *testing.T) {
		c := New()
		c.Commit("k", payload)
		assert.True(t, c.ShouldProcess("k", []byte(`[{"id":1,"name":"Bob"}]`)))
	})

	t.Run("invalidated entry needs processing with same payload", func(t *testing.T) {
		c := New()
		c.Commit("k", payload)
		c.Invalidate("k")
		assert.True(t, c.ShouldProcess("k", payload))

		c.Commit("k", payload)
		assert.False(t, c.ShouldProcess("k", payload))
	})

	t.Run("keys are independent", func(t *testing.T) {
		c := New()
		c.Commit("a", payload)
		assert.True(t, c.ShouldProcess("b", payload))
	})
}

func TestCache_Entries(t *testing.T) {
	c := New()
	c.Commit("a", []byte(`[]`))
	c.Invalidate("b")

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Hash([]byte(`[]`)), entries["a"].Hash)
	assert.False(t, entries["a"].Invalidated)
	assert.True(t, entries["b"].Invalidated)
	assert.Empty(t, entries["b"].Hash)

	// The snapshot is a copy.
	delete(entries, "a")
	assert.Len(t, c.Entries(), 2)
}

func TestHash(t *testing.T) {
	t.Run("object key order and whitespace do not matter", func(t *testing.T) {
		a := Hash([]byte(`{"b":1,"a":[1,2]}`))
		b := Hash([]byte("{ \"a\": [1, 2],\n \"b\": 1 }"))
		assert.Equal(t, a, b)
	})

	t.Run("array order matters", func(t *testing.T) {
		assert.NotEqual(t, Hash([]byte(`[1,2]`)), Hash([]byte(`[2,1]`)))
	})

	t.Run("large numbers are preserved", func(t *testing.T) {
		assert.NotEqual(t, Hash([]byte(`[9007199254740993]`)), Hash([]byte(`[9007199254740992]`)))
	})

	t.Run("non json payload is hashed raw", func(t *testing.T) {
		assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", Hash([]byte("hello")))
	})

	t.Run("trailing data is part of the digest", func(t *testing.T) {
		assert.NotEqual(t, Hash([]byte(`[1]`)), Hash([]byte(`[1] [2]`)))
		assert.NotEqual(t, Hash([]byte(`[1]`)), Hash([]byte(`[1]]`)))
		assert.NotEqual(t, Hash([]byte(`[1]`)), Hash([]byte(`[1]garbage`)))
	})

	t.Run("trailing whitespace does not matter", func(t *testing.T) {
		assert.Equal(t, Hash([]byte(`[1]`)), Hash([]byte("[1]\n  ")))
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "weezevent:42:1,2,3", WeezeventKey("42", []string{"3", "1", "2", "1"}))
	assert.Equal(t, WeezeventKey("42", []string{"2", "1"}), WeezeventKey("42", []string{"1", "2"}))
	assert.Equal(t, "toornament:99", ToornamentKey("99"))

	ids := []string{"b", "a"}
	WeezeventKey("1", ids)
	assert.Equal(t, []string{"b", "a"}, ids, "input slice must not be reordered")
}
