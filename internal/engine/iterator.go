package engine

import "iter"

// Iterator is a restartable cursor over the live aspects of one type.
//
//	it := engine.Each[Transform](w)
//	for it.Next() {
//	    t := it.Get()
//	    ...
//	}
//
// Its only state is the manager and a slot index, so aspects may be added
// while iterating even when that grows the backing array. Aspects added
// behind the cursor are not visited, aspects added ahead of it are. Get
// re-resolves on every call; do not hold its result across an Add.
type Iterator[T any] struct {
	src  TypedManager[T]
	next int
	cur  int
	id   AspectID
}

func newIterator[T any](src TypedManager[T]) *Iterator[T] {
	return &Iterator[T]{src: src, cur: -1}
}

// Next advances to the next live aspect. It returns false at the end; a
// later call picks up anything appended since.
func (it *Iterator[T]) Next() bool {
	for it.next < it.src.Slots() {
		i := it.next
		it.next++
		if _, id, ok := it.src.At(i); ok {
			it.cur = i
			it.id = id
			return true
		}
	}
	it.cur = -1
	return false
}

// Get returns the current aspect.
func (it *Iterator[T]) Get() *T {
	if it.cur < 0 {
		Fatalf("iterator: Get without a current aspect")
	}
	v, id, ok := it.src.At(it.cur)
	if !ok || id != it.id {
		Fatalf("iterator: current aspect %v was destroyed", it.id)
	}
	return v
}

// ID returns the handle of the current aspect.
func (it *Iterator[T]) ID() AspectID {
	return it.id
}

func (it *Iterator[T]) Entity() EntityID {
	return it.id.Entity
}

// Reset rewinds the cursor to the first slot.
func (it *Iterator[T]) Reset() {
	it.next = 0
	it.cur = -1
	it.id = AspectID{}
}

// Seq adapts the cursor for range-over-func loops. Ranging restarts from the
// current position; call Reset first for a full pass.
func (it *Iterator[T]) Seq() iter.Seq2[AspectID, *T] {
	return func(yield func(AspectID, *T) bool) {
		for it.Next() {
			if !yield(it.id, it.Get()) {
				return
			}
		}
	}
}
