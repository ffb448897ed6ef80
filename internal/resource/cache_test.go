package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	loads   map[string]int
	unloads []string
}

func (c *counter) load(key string) (string, error) {
	if key == "broken" {
		return "", errors.New("no such file")
	}
	c.loads[key]++
	return "data:" + key, nil
}

func newCounted() (*Cache[string], *counter) {
	cnt := &counter{loads: map[string]int{}}
	return NewCache(func(v string) { cnt.unloads = append(cnt.unloads, v) }), cnt
}

func TestLoadSharesByKey(t *testing.T) {
	c, cnt := newCounted()
	h1, err := c.Load("crate", cnt.load)
	require.NoError(t, err)
	h2, err := c.Load("crate", cnt.load)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, cnt.loads["crate"])
	assert.Equal(t, "data:crate", *c.MustResolve(h1))
	key, ok := c.Key(h1)
	assert.True(t, ok)
	assert.Equal(t, "crate", key)
	assert.Equal(t, 1, c.Len())
}

func TestReleaseCountsReferences(t *testing.T) {
	c, cnt := newCounted()
	h, _ := c.Load("crate", cnt.load)
	c.Load("crate", cnt.load)

	c.Release(h)
	_, ok := c.Resolve(h)
	assert.True(t, ok, "one reference left")
	assert.Empty(t, cnt.unloads)

	c.Release(h)
	_, ok = c.Resolve(h)
	assert.False(t, ok)
	assert.Equal(t, []string{"data:crate"}, cnt.unloads)
	assert.Equal(t, 0, c.Len())
}

func TestStaleHandleAfterReuse(t *testing.T) {
	c, cnt := newCounted()
	old, _ := c.Load("a", cnt.load)
	c.Release(old)

	h, _ := c.Load("b", cnt.load)
	assert.Equal(t, old.Index, h.Index, "slot is reused")
	assert.NotEqual(t, old.Generation, h.Generation)

	_, ok := c.Resolve(old)
	assert.False(t, ok)
	assert.Equal(t, "data:b", *c.MustResolve(h))
	assert.Panics(t, func() { c.MustResolve(old) })
	assert.Panics(t, func() { c.Release(old) })
}

func TestInvalidHandles(t *testing.T) {
	c, _ := newCounted()
	_, ok := c.Resolve(Handle{})
	assert.False(t, ok)
	_, ok = c.Resolve(Handle{Index: 40, Generation: 1})
	assert.False(t, ok)
	assert.False(t, Handle{}.Valid())
}

func TestLoadErrorIsWrapped(t *testing.T) {
	c, cnt := newCounted()
	h, err := c.Load("broken", cnt.load)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `load resource "broken"`)
	assert.Contains(t, err.Error(), "no such file")
	assert.False(t, h.Valid())
	assert.Equal(t, 0, c.Len())
}

func TestClearUnloadsEverything(t *testing.T) {
	c, cnt := newCounted()
	c.Load("a", cnt.load)
	c.Load("b", cnt.load)
	c.Load("b", cnt.load)

	c.Clear()
	assert.ElementsMatch(t, []string{"data:a", "data:b"}, cnt.unloads)
	assert.Equal(t, 0, c.Len())
}
