package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// queryExecutor is implemented by Query fields; the scheduler refreshes each
// system's query caches right before the system runs.
type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system    System
	name      string
	alwaysRun bool
	queries   []queryExecutor
	stats     *systemStatsInternal
}

type stepAction int

const (
	stepActionNone stepAction = iota
	stepActionSystem
	stepActionFrame
)

// Scheduler manages and executes systems in order.
//
// A scheduler can additionally be put into stepping mode for debugging: while
// stepping is enabled, ordinary systems are frozen and only run when stepped,
// one at a time or to the end of the frame. Systems registered with
// RegisterAlwaysRun keep running every frame so input handling and debug
// overlays stay alive while the rest of the schedule is paused.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem

	steppingEnabled bool
	cursor          int
	pending         stepAction
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		systems: make([]*registeredSystem, 0),
	}
}

// Register adds a system to the scheduler and initializes its Query and
// Singleton fields.
func (s *Scheduler) Register(system System) {
	s.register(system, false)
}

// RegisterAlwaysRun adds a system that keeps executing every frame even while
// stepping mode has the rest of the schedule paused.
func (s *Scheduler) RegisterAlwaysRun(system System) {
	s.register(system, true)
}

func (s *Scheduler) register(system System, alwaysRun bool) {
	queries := s.initializeFields(system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:    system,
		name:      systemType.Name(),
		alwaysRun: alwaysRun,
		queries:   queries,
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

// initializeFields calls Init(storage) on every Query and Singleton field of
// the system struct and collects the queries for per-frame refresh.
func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()

		if strings.HasPrefix(typeName, "Query[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on Query field: " + fieldType.Name)
			}
			initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

			if q, ok := field.Addr().Interface().(queryExecutor); ok {
				queries = append(queries, q)
			}
			continue
		}

		if strings.HasPrefix(typeName, "Singleton[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on Singleton field: " + fieldType.Name)
			}
			initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})
			continue
		}
	}

	return queries
}

func (s *Scheduler) runSystem(reg *registeredSystem, frame *UpdateFrame) {
	for _, q := range reg.queries {
		q.Execute()
	}

	start := time.Now()
	reg.system.Execute(frame)
	duration := time.Since(start)

	stats := reg.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Once executes the schedule once with the given delta time. In stepping
// mode, only always-run systems plus whatever was requested via StepSystem or
// ContinueFrame actually execute.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	if !s.steppingEnabled {
		for _, reg := range s.systems {
			s.runSystem(reg, frame)
		}
		frame.Commands.Flush(s.storage)
		return
	}

	for _, reg := range s.systems {
		if reg.alwaysRun {
			s.runSystem(reg, frame)
		}
	}

	switch s.pending {
	case stepActionSystem:
		if idx := s.nextSteppable(s.cursor); idx >= 0 {
			s.runSystem(s.systems[idx], frame)
			if next := s.nextSteppable(idx + 1); next >= 0 {
				s.cursor = next
			} else {
				s.cursor = s.firstSteppable()
			}
		}
	case stepActionFrame:
		for idx := s.nextSteppable(s.cursor); idx >= 0; idx = s.nextSteppable(idx + 1) {
			s.runSystem(s.systems[idx], frame)
		}
		s.cursor = s.firstSteppable()
	}
	s.pending = stepActionNone

	frame.Commands.Flush(s.storage)
}

// nextSteppable returns the index of the first non-always-run system at or
// after from, or -1.
func (s *Scheduler) nextSteppable(from int) int {
	for i := from; i < len(s.systems); i++ {
		if !s.systems[i].alwaysRun {
			return i
		}
	}
	return -1
}

func (s *Scheduler) firstSteppable() int {
	idx := s.nextSteppable(0)
	if idx < 0 {
		return 0
	}
	return idx
}

// EnableStepping freezes the schedule and places the stepping cursor on the
// first steppable system.
func (s *Scheduler) EnableStepping() {
	s.steppingEnabled = true
	s.cursor = s.firstSteppable()
	s.pending = stepActionNone
}

// DisableStepping resumes normal execution.
func (s *Scheduler) DisableStepping() {
	s.steppingEnabled = false
	s.pending = stepActionNone
}

// SteppingEnabled reports whether the schedule is currently frozen.
func (s *Scheduler) SteppingEnabled() bool {
	return s.steppingEnabled
}

// StepSystem requests execution of the single system under the cursor on the
// next Once call. No-op unless stepping is enabled.
func (s *Scheduler) StepSystem() {
	if s.steppingEnabled {
		s.pending = stepActionSystem
	}
}

// ContinueFrame requests execution of the remainder of the frame, from the
// cursor to the end of the schedule. No-op unless stepping is enabled.
func (s *Scheduler) ContinueFrame() {
	if s.steppingEnabled {
		s.pending = stepActionFrame
	}
}

// Cursor returns the index of the system the stepping cursor points at.
// ok is false when stepping is disabled or no system is steppable.
func (s *Scheduler) Cursor() (int, bool) {
	if !s.steppingEnabled || s.nextSteppable(0) < 0 {
		return 0, false
	}
	return s.cursor, true
}

// Systems returns the registered systems in execution order.
func (s *Scheduler) Systems() []SystemInfo {
	infos := make([]SystemInfo, len(s.systems))
	for i, reg := range s.systems {
		infos[i] = SystemInfo{
			Index:     i,
			Name:      reg.name,
			AlwaysRun: reg.alwaysRun,
		}
	}
	return infos
}

// Run executes the schedule repeatedly at the given interval until the
// context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, reg := range s.systems {
		internal := reg.stats

		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
