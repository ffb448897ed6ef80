package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorVisitsLiveOnly(t *testing.T) {
	w, _, _ := newTestWorld(t)
	var ids []AspectID
	for i := 0; i < 6; i++ {
		p, id := Add[position](w, w.NewEntity())
		p.X = float32(i)
		ids = append(ids, id)
	}
	w.DestroyAspect(ids[1])
	w.DestroyAspect(ids[4])

	var seen []float32
	it := Each[position](w)
	for it.Next() {
		seen = append(seen, it.Get().X)
		assert.Equal(t, it.ID().Entity, it.Entity())
	}
	assert.Equal(t, []float32{0, 2, 3, 5}, seen)
	assert.False(t, it.Next())
}

func TestIteratorReset(t *testing.T) {
	w, _, _ := newTestWorld(t)
	for i := 0; i < 3; i++ {
		Add[position](w, w.NewEntity())
	}
	it := Each[position](w)
	n := 0
	for it.Next() {
		n++
	}
	it.Reset()
	for it.Next() {
		n++
	}
	assert.Equal(t, 6, n)
}

func TestIteratorResumesAfterEnd(t *testing.T) {
	w, _, _ := newTestWorld(t)
	Add[position](w, w.NewEntity())
	it := Each[position](w)
	require.True(t, it.Next())
	require.False(t, it.Next())

	Add[position](w, w.NewEntity())
	assert.True(t, it.Next())
}

// Appending while iterating must not skip, repeat or corrupt the aspects
// that existed before the pass, even when the appends grow the store.
func TestIteratorSurvivesGrowth(t *testing.T) {
	w := NewWorld()
	w.RegisterManager("Position", NewStore(Hooks[position]{}, 4))
	store := w.Manager(0).(*Store[position])

	const initial = 4
	for i := 0; i < initial; i++ {
		p, _ := Add[position](w, w.NewEntity())
		p.X = float32(i)
		p.Y = -1
	}
	capBefore := store.Cap()

	seen := map[float32]int{}
	it := Each[position](w)
	for it.Next() {
		p := it.Get()
		if p.Y == -1 {
			seen[p.X]++
			for j := 0; j < 8; j++ {
				np, _ := Add[position](w, w.NewEntity())
				np.X = 1000
			}
		}
	}

	assert.Greater(t, store.Cap(), capBefore)
	require.Len(t, seen, initial)
	for i := 0; i < initial; i++ {
		assert.Equal(t, 1, seen[float32(i)], "aspect %d", i)
	}
	assert.Equal(t, initial+initial*8, Count[position](w))
}

func TestIteratorSkipsDestroyedDuringPass(t *testing.T) {
	w, _, _ := newTestWorld(t)
	var ids []AspectID
	for i := 0; i < 4; i++ {
		p, id := Add[position](w, w.NewEntity())
		p.X = float32(i)
		ids = append(ids, id)
	}

	var seen []float32
	it := Each[position](w)
	for it.Next() {
		x := it.Get().X
		seen = append(seen, x)
		if x == 0 {
			w.DestroyAspect(ids[2])
		}
	}
	assert.Equal(t, []float32{0, 1, 3}, seen)
}

func TestIteratorGetAfterDestroyIsFatal(t *testing.T) {
	w, _, _ := newTestWorld(t)
	_, id := Add[position](w, w.NewEntity())
	it := Each[position](w)
	require.True(t, it.Next())
	w.DestroyAspect(id)
	requireFatal(t, func() { it.Get() })
}

func TestAllRangeFunc(t *testing.T) {
	w, _, _ := newTestWorld(t)
	for i := 0; i < 5; i++ {
		p, _ := Add[position](w, w.NewEntity())
		p.X = float32(i)
	}
	var sum float32
	for id, p := range All[position](w) {
		assert.True(t, id.Valid())
		sum += p.X
		if p.X == 3 {
			break
		}
	}
	assert.Equal(t, float32(0+1+2+3), sum)
}

func TestFlatStore(t *testing.T) {
	w := NewWorld()
	w.RegisterManager("Label", NewFlatStore(Hooks[label]{}, 0))

	e1, e2 := w.NewEntity(), w.NewEntity()
	l1, id1 := Add[label](w, e1)
	l1.Text = "one"
	l2, id2 := Add[label](w, e2)
	l2.Text = "two"
	assert.Equal(t, uint32(0), id1.Index)
	assert.Equal(t, uint32(1), id2.Index)

	w.DestroyAspect(id1)
	_, ok := Lookup[label](w, id1)
	assert.False(t, ok)

	l3, id3 := Add[label](w, w.NewEntity())
	assert.Equal(t, id1.Index, id3.Index)
	assert.Equal(t, "", l3.Text)

	var texts []string
	for _, l := range All[label](w) {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"", "two"}, texts)
}

func TestCursorIsTypeErased(t *testing.T) {
	w, posT, _ := newTestWorld(t)
	for i := 0; i < 3; i++ {
		Add[position](w, w.NewEntity())
	}
	c := w.Manager(posT).Cursor()
	n := 0
	for c.Next() {
		assert.Equal(t, posT, c.ID().Type)
		n++
	}
	assert.Equal(t, 3, n)
}
