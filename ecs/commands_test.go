package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/arcade/ecs"
)

type testSpawnSystem struct {
	executed bool
}

func (s *testSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.executed = true
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type testDeleteSystem struct {
	entityToDelete ecs.EntityId
}

func (s *testDeleteSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Delete(s.entityToDelete)
}

type testAddSystem struct {
	entity    ecs.EntityId
	component any
}

func (s *testAddSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.AddComponent(s.entity, s.component)
}

type testRemoveSystem struct {
	entity   ecs.EntityId
	compType reflect.Type
}

func (s *testRemoveSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.RemoveComponent(s.entity, s.compType)
}

type testDeferSystem struct {
	fn func()
}

func (s *testDeferSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Defer(s.fn)
}

func countView[T any](storage *ecs.Storage) int {
	count := 0
	for range ecs.NewView[T](storage).Iter() {
		count++
	}
	return count
}

func TestCommands(t *testing.T) {
	t.Run("spawn entities", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		system := &testSpawnSystem{}
		scheduler.Register(system)

		if countView[struct{ *Position }](storage) != 0 {
			t.Error("entities spawned before frame execution")
		}

		scheduler.Once(1.0)

		if !system.executed {
			t.Error("system was not executed")
		}
		if got := countView[struct{ *Position }](storage); got != 2 {
			t.Errorf("expected 2 entities after frame, got %d", got)
		}
	})

	t.Run("delete entities", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		e1 := storage.Spawn(Position{X: 1, Y: 2})
		e2 := storage.Spawn(Position{X: 3, Y: 4})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testDeleteSystem{entityToDelete: e1})

		scheduler.Once(1.0)

		if storage.GetComponent(e1, reflect.TypeOf(Position{})) != nil {
			t.Error("entity not deleted after frame")
		}
		if storage.GetComponent(e2, reflect.TypeOf(Position{})) == nil {
			t.Error("wrong entity deleted")
		}
	})

	t.Run("add components", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		entity := storage.Spawn(Position{X: 1, Y: 2})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testAddSystem{entity: entity, component: Velocity{DX: 5, DY: 10}})

		scheduler.Once(1.0)

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)

		found := false
		for item := range view.Values() {
			if item.Position.X == 1 && item.Velocity.DX == 5 {
				found = true
			}
		}

		if !found {
			t.Error("component not added after frame or values incorrect")
		}
	})

	t.Run("remove components", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 5, DY: 10})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testRemoveSystem{entity: entity, compType: reflect.TypeOf(Velocity{})})

		scheduler.Once(1.0)

		if got := countView[struct {
			*Position
			*Velocity
		}](storage); got != 0 {
			t.Error("velocity component not removed")
		}
		if got := countView[struct{ *Position }](storage); got != 1 {
			t.Errorf("expected 1 position-only entity, got %d", got)
		}
	})

	t.Run("deferred functions run after structural commands", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		sawSpawn := false
		scheduler.Register(&testSpawnSystem{})
		scheduler.Register(&testDeferSystem{fn: func() {
			sawSpawn = countView[struct{ *Position }](storage) == 2
		}})

		scheduler.Once(1.0)

		if !sawSpawn {
			t.Error("deferred function should observe entities spawned in the same frame")
		}
	})

	// Cross-system entity mutation: structural commands from earlier systems
	// change entity IDs, later commands against the stale ID must still land.
	t.Run("cross-system remove then add same entity", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 5, DY: 10})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testRemoveSystem{entity: entity, compType: reflect.TypeOf(Velocity{})})
		scheduler.Register(&testAddSystem{entity: entity, component: Health{Current: 50, Max: 100}})
		scheduler.Once(1.0)

		view := ecs.NewView[struct {
			*Position
			*Health
		}](storage)
		found := false
		for item := range view.Values() {
			if item.Position.X == 1 && item.Health.Current == 50 {
				found = true
			}
		}
		if !found {
			t.Error("entity should have Position + Health after cross-system mutations")
		}

		if countView[struct {
			*Position
			*Velocity
		}](storage) != 0 {
			t.Error("entity should not have Velocity after RemoveComponent")
		}
	})

	t.Run("cross-system multiple adds same entity", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		entity := storage.Spawn(Position{X: 3, Y: 4})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testAddSystem{entity: entity, component: Velocity{DX: 1, DY: 2}})
		scheduler.Register(&testAddSystem{entity: entity, component: Health{Current: 50, Max: 100}})
		scheduler.Once(1.0)

		view := ecs.NewView[struct {
			*Position
			*Velocity
			*Health
		}](storage)
		found := false
		for item := range view.Values() {
			if item.Position.X == 3 && item.Velocity.DX == 1 && item.Health.Current == 50 {
				found = true
			}
		}
		if !found {
			t.Error("entity should have all three components after cross-system adds")
		}
	})

	t.Run("cross-system chained removes same entity", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		entity := storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1, DY: 1}, Health{Current: 100, Max: 100})

		// Entity moves archetype twice: Pos+Vel+Health -> Pos+Health -> Pos
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testRemoveSystem{entity: entity, compType: reflect.TypeOf(Velocity{})})
		scheduler.Register(&testRemoveSystem{entity: entity, compType: reflect.TypeOf(Health{})})
		scheduler.Once(1.0)

		foundPosition := false
		for item := range ecs.NewView[struct{ *Position }](storage).Values() {
			if item.Position.X == 5 && item.Position.Y == 6 {
				foundPosition = true
			}
		}
		if !foundPosition {
			t.Error("entity should still have Position after chained mutations")
		}

		if countView[struct {
			*Position
			*Velocity
		}](storage) != 0 {
			t.Error("entity should not have Velocity")
		}
		if countView[struct {
			*Position
			*Health
		}](storage) != 0 {
			t.Error("entity should not have Health")
		}
	})

	t.Run("cross-system mutation after delete is ignored", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		entity := storage.Spawn(Position{X: 7, Y: 8})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testDeleteSystem{entityToDelete: entity})
		scheduler.Register(&testAddSystem{entity: entity, component: Health{Current: 50, Max: 100}})
		scheduler.Once(1.0)

		for item := range ecs.NewView[struct{ *Position }](storage).Values() {
			if item.Position.X == 7 && item.Position.Y == 8 {
				t.Error("entity should have been deleted")
			}
		}

		if countView[struct{ *Health }](storage) > 0 {
			t.Error("no Health-only entities should exist")
		}
	})
}
