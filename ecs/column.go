package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is a type-erased storage column for a single component type.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers a component type with the given registry.
// Every component type must be registered before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.factories[t] = func() componentColumn {
		return &column[T]{}
	}
}

// getFactory returns the column factory for a component type, or nil if the
// type was never registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

const columnBlockSize = 64

// column stores components of type T in fixed-size blocks. Deleted slots are
// kept on a free list and reused by later appends, so indices of live
// components never move except through Compact.
type column[T any] struct {
	blocks    [][columnBlockSize]T
	filled    [][columnBlockSize]bool
	freeSlots []int
	nextIndex int
}

// Append adds a component and returns the slot index it was stored at.
func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	if n := len(c.freeSlots); n > 0 {
		index := c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
		c.blocks[index/columnBlockSize][index%columnBlockSize] = value
		c.filled[index/columnBlockSize][index%columnBlockSize] = true
		return index
	}

	index := c.nextIndex
	c.nextIndex++

	if index/columnBlockSize >= len(c.blocks) {
		c.blocks = append(c.blocks, [columnBlockSize]T{})
		c.filled = append(c.filled, [columnBlockSize]bool{})
	}

	c.blocks[index/columnBlockSize][index%columnBlockSize] = value
	c.filled[index/columnBlockSize][index%columnBlockSize] = true
	return index
}

// Get returns a pointer to the component at index, or nil for empty slots.
func (c *column[T]) Get(index int) any {
	if index < 0 || index/columnBlockSize >= len(c.blocks) {
		return nil
	}
	if !c.filled[index/columnBlockSize][index%columnBlockSize] {
		return nil
	}
	return &c.blocks[index/columnBlockSize][index%columnBlockSize]
}

// Delete marks a slot as empty and queues it for reuse.
func (c *column[T]) Delete(index int) {
	if index < 0 || index/columnBlockSize >= len(c.blocks) {
		return
	}
	if c.filled[index/columnBlockSize][index%columnBlockSize] {
		c.filled[index/columnBlockSize][index%columnBlockSize] = false
		var zero T
		c.blocks[index/columnBlockSize][index%columnBlockSize] = zero
		c.freeSlots = append(c.freeSlots, index)
	}
}

// Has reports whether a live component exists at index.
func (c *column[T]) Has(index int) bool {
	if index < 0 || index/columnBlockSize >= len(c.blocks) {
		return false
	}
	return c.filled[index/columnBlockSize][index%columnBlockSize]
}

// Len returns the number of live components in the column.
func (c *column[T]) Len() int {
	return c.nextIndex - len(c.freeSlots)
}

// Compact rewrites the column without holes and returns the old->new index
// mapping for every surviving component.
func (c *column[T]) Compact() map[int]int {
	indexMap := make(map[int]int)

	live := c.nextIndex - len(c.freeSlots)
	if live == 0 {
		c.blocks = make([][columnBlockSize]T, 1)
		c.filled = make([][columnBlockSize]bool, 1)
		c.freeSlots = nil
		c.nextIndex = 0
		return indexMap
	}

	numBlocks := (live + columnBlockSize - 1) / columnBlockSize
	newBlocks := make([][columnBlockSize]T, numBlocks)
	newFilled := make([][columnBlockSize]bool, numBlocks)

	writePos := 0
	for readIdx := 0; readIdx < c.nextIndex; readIdx++ {
		if !c.filled[readIdx/columnBlockSize][readIdx%columnBlockSize] {
			continue
		}
		indexMap[readIdx] = writePos
		newBlocks[writePos/columnBlockSize][writePos%columnBlockSize] = c.blocks[readIdx/columnBlockSize][readIdx%columnBlockSize]
		newFilled[writePos/columnBlockSize][writePos%columnBlockSize] = true
		writePos++
	}

	c.blocks = newBlocks
	c.filled = newFilled
	c.freeSlots = nil
	c.nextIndex = writePos

	return indexMap
}

// Iter yields the indices of all live components in ascending order.
func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.nextIndex; i++ {
			if i/columnBlockSize >= len(c.filled) {
				continue
			}
			if c.filled[i/columnBlockSize][i%columnBlockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
