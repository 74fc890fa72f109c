package debugui

import "github.com/plus3/arcade/ecs"

// RegisterDebugUIComponents adds the component types the debug UI needs to a
// registry.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// SpawnDebugUI creates one ImguiItem entity per debug window: entity browser,
// component inspector, archetype viewer, performance stats, and the stepping
// panel for the given scheduler.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	viewer := NewArchetypeViewerComponent()
	perf := NewPerformanceStatsComponent(120)
	stepping := NewSteppingPanelComponent()
	timer := NewFrameTimer()

	storage.Spawn(ImguiItem{Render: func() {
		browser.Render(storage)
		inspector.Render(storage, browser.SelectedEntity())
	}})
	storage.Spawn(ImguiItem{Render: func() {
		viewer.Render(storage)
	}})
	storage.Spawn(ImguiItem{Render: func() {
		perf.Render(storage, scheduler, timer.GetDeltaTime())
	}})
	storage.Spawn(ImguiItem{Render: func() {
		stepping.Render(scheduler)
	}})
}
