package ecs_test

import (
	"testing"

	"github.com/plus3/arcade/ecs"
)

type countingSystem struct {
	count int
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.count++
}

func TestSteppingFreezesSystems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	sysA := &countingSystem{}
	sysB := &countingSystem{}
	overlay := &countingSystem{}

	scheduler.Register(sysA)
	scheduler.Register(sysB)
	scheduler.RegisterAlwaysRun(overlay)

	scheduler.Once(0.016)

	if sysA.count != 1 || sysB.count != 1 || overlay.count != 1 {
		t.Fatalf("expected all systems to run while stepping disabled: %d %d %d",
			sysA.count, sysB.count, overlay.count)
	}

	scheduler.EnableStepping()
	if !scheduler.SteppingEnabled() {
		t.Fatal("expected stepping to be enabled")
	}

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	if sysA.count != 1 || sysB.count != 1 {
		t.Errorf("steppable systems ran while frozen: %d %d", sysA.count, sysB.count)
	}
	if overlay.count != 3 {
		t.Errorf("always-run system should keep running, got %d", overlay.count)
	}
}

func TestStepSystemAdvancesCursor(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	sysA := &countingSystem{}
	sysB := &countingSystem{}

	scheduler.Register(sysA)
	scheduler.Register(sysB)
	scheduler.EnableStepping()

	cursor, ok := scheduler.Cursor()
	if !ok || cursor != 0 {
		t.Fatalf("expected cursor on first system, got %d (ok=%v)", cursor, ok)
	}

	scheduler.StepSystem()
	scheduler.Once(0.016)

	if sysA.count != 1 || sysB.count != 0 {
		t.Errorf("expected only first system to run: %d %d", sysA.count, sysB.count)
	}
	cursor, _ = scheduler.Cursor()
	if cursor != 1 {
		t.Errorf("expected cursor to advance to 1, got %d", cursor)
	}

	scheduler.StepSystem()
	scheduler.Once(0.016)

	if sysA.count != 1 || sysB.count != 1 {
		t.Errorf("expected second system to run: %d %d", sysA.count, sysB.count)
	}

	// Stepping past the last system wraps the cursor to the top
	cursor, _ = scheduler.Cursor()
	if cursor != 0 {
		t.Errorf("expected cursor to wrap to 0, got %d", cursor)
	}
}

func TestStepRequestConsumedOncePerFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	sys := &countingSystem{}
	scheduler.Register(sys)
	scheduler.EnableStepping()

	scheduler.StepSystem()
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	if sys.count != 1 {
		t.Errorf("a single StepSystem request should run the system once, got %d", sys.count)
	}
}

func TestContinueFrameRunsRemainder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	sysA := &countingSystem{}
	sysB := &countingSystem{}
	sysC := &countingSystem{}

	scheduler.Register(sysA)
	scheduler.Register(sysB)
	scheduler.Register(sysC)
	scheduler.EnableStepping()

	// Step past the first system, then continue the rest of the frame
	scheduler.StepSystem()
	scheduler.Once(0.016)

	scheduler.ContinueFrame()
	scheduler.Once(0.016)

	if sysA.count != 1 || sysB.count != 1 || sysC.count != 1 {
		t.Errorf("expected each system to run exactly once: %d %d %d",
			sysA.count, sysB.count, sysC.count)
	}

	cursor, ok := scheduler.Cursor()
	if !ok || cursor != 0 {
		t.Errorf("expected cursor reset to 0 after frame completes, got %d", cursor)
	}
}

func TestSteppingSkipsAlwaysRunSystems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	overlay := &countingSystem{}
	sysA := &countingSystem{}
	sysB := &countingSystem{}

	// Always-run system registered first: the cursor must skip it
	scheduler.RegisterAlwaysRun(overlay)
	scheduler.Register(sysA)
	scheduler.Register(sysB)
	scheduler.EnableStepping()

	cursor, ok := scheduler.Cursor()
	if !ok || cursor != 1 {
		t.Fatalf("expected cursor to skip always-run system, got %d", cursor)
	}

	scheduler.StepSystem()
	scheduler.Once(0.016)

	if sysA.count != 1 || sysB.count != 0 {
		t.Errorf("expected only sysA stepped: %d %d", sysA.count, sysB.count)
	}
	if overlay.count != 1 {
		t.Errorf("always-run system should run every frame, got %d", overlay.count)
	}
}

func TestDisableSteppingResumes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	sys := &countingSystem{}
	scheduler.Register(sys)

	scheduler.EnableStepping()
	scheduler.Once(0.016)
	if sys.count != 0 {
		t.Errorf("system should be frozen, got %d executions", sys.count)
	}

	scheduler.DisableStepping()
	scheduler.Once(0.016)
	if sys.count != 1 {
		t.Errorf("system should resume after stepping disabled, got %d", sys.count)
	}

	if _, ok := scheduler.Cursor(); ok {
		t.Error("Cursor() should report not-ok while stepping is disabled")
	}
}

func TestSteppingCommandsStillFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	spawn := &testSpawnSystem{}
	scheduler.Register(spawn)
	scheduler.EnableStepping()

	scheduler.StepSystem()
	scheduler.Once(0.016)

	if got := countView[struct{ *Position }](storage); got != 2 {
		t.Errorf("commands queued by a stepped system should flush, got %d entities", got)
	}
}
