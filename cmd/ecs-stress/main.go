// ecs-stress runs a headless particle workload against the ECS and prints a
// frame-time and memory report. Particles bounce around a box, spin, age out
// and respawn, which keeps archetype churn and the command queue busy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

const (
	boxHalfExtent = 500.0
	maxLifetime   = 5.0
)

// Position is a particle's location inside the box.
type Position struct {
	Pos geom.Vec2
}

// Velocity in units per second.
type Velocity struct {
	Vel geom.Vec2
}

// Spin is an angular state advanced every frame.
type Spin struct {
	Angle float32
	Rate  float32
}

// Lifetime counts down to the particle's respawn.
type Lifetime struct {
	Remaining float64
}

// MoveSystem integrates velocity and bounces particles off the box walls.
type MoveSystem struct {
	Particles ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for p := range s.Particles.Values() {
		p.Position.Pos = p.Position.Pos.Add(p.Velocity.Vel.Scale(dt))

		if p.Position.Pos.X < -boxHalfExtent || p.Position.Pos.X > boxHalfExtent {
			p.Velocity.Vel.X = -p.Velocity.Vel.X
		}
		if p.Position.Pos.Y < -boxHalfExtent || p.Position.Pos.Y > boxHalfExtent {
			p.Velocity.Vel.Y = -p.Velocity.Vel.Y
		}
	}
}

// SpinSystem advances angular state.
type SpinSystem struct {
	Spinners ecs.Query[struct{ *Spin }]
}

func (s *SpinSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for spinner := range s.Spinners.Values() {
		spinner.Spin.Angle += spinner.Spin.Rate * dt
	}
}

// LifetimeSystem despawns expired particles and queues replacements, so the
// storage sees constant delete and spawn traffic.
type LifetimeSystem struct {
	Aging ecs.Query[struct {
		Id ecs.EntityId
		*Lifetime
	}]
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	for id, aging := range s.Aging.Iter() {
		aging.Lifetime.Remaining -= frame.DeltaTime
		if aging.Lifetime.Remaining > 0 {
			continue
		}
		frame.Commands.Delete(id)
		frame.Commands.Spawn(randomParticle()...)
	}
}

// randomParticle builds component sets of varying shape so entities spread
// across several archetypes.
func randomParticle() []any {
	components := []any{
		Position{Pos: geom.V(
			(rand.Float32()*2-1)*boxHalfExtent,
			(rand.Float32()*2-1)*boxHalfExtent,
		)},
		Velocity{Vel: geom.V(
			(rand.Float32()*2-1)*200,
			(rand.Float32()*2-1)*200,
		)},
		Lifetime{Remaining: rand.Float64() * maxLifetime},
	}
	if rand.Intn(2) == 0 {
		components = append(components, Spin{Rate: rand.Float32() * 10})
	}
	return components
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "how long to run the workload")
	entityCount := flag.Int("entities", 10000, "number of particles to keep alive")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "include GC pause totals in the report")
	flag.Parse()

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Lifetime](registry)

	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MoveSystem{})
	scheduler.Register(&SpinSystem{})
	scheduler.Register(&LifetimeSystem{})

	log.Printf("Populating storage with %d particles...", *entityCount)
	for i := 0; i < *entityCount; i++ {
		storage.Spawn(randomParticle()...)
	}

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Systems:        len(scheduler.Systems()),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.FinalStats = storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
