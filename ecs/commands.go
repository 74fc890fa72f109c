package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are executed at
// the end of a frame. This prevents structural changes to the ECS storage
// while systems are iterating it.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues an arbitrary function to run after all structural commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Flush applies all buffered commands to the storage and resets the buffer.
// Add/remove operations move entities between archetypes and therefore change
// their IDs; a remap table chases commands queued against stale IDs from
// earlier in the same frame. Commands against deleted entities are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool)
	remapped := make(map[EntityId]EntityId)

	resolve := func(id EntityId) (EntityId, bool) {
		for {
			if deleted[id] {
				return 0, false
			}
			next, ok := remapped[id]
			if !ok {
				return id, true
			}
			id = next
		}
	}

	for _, id := range c.deletes {
		if cur, ok := resolve(id); ok {
			storage.Delete(cur)
			deleted[id] = true
			deleted[cur] = true
		}
	}

	for _, cmd := range c.removes {
		cur, ok := resolve(cmd.entity)
		if !ok {
			continue
		}
		newId := storage.RemoveComponent(cur, cmd.compType)
		if newId == 0 {
			deleted[cmd.entity] = true
			deleted[cur] = true
		} else if newId != cur {
			remapped[cur] = newId
		}
	}

	for _, cmd := range c.adds {
		cur, ok := resolve(cmd.entity)
		if !ok {
			continue
		}
		newId := storage.AddComponent(cur, cmd.component)
		if newId != cur {
			remapped[cur] = newId
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
