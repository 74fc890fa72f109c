package debugui

import (
	"github.com/plus3/arcade/ecs"
)

// EntityBrowserComponent lists every live entity with a text filter and
// simple pagination. Selecting a row feeds the component inspector.
type EntityBrowserComponent struct {
	cache            *entityCache
	selectedEntityId ecs.EntityId
	filterText       string
	pageSize         int
	page             int
}

// ComponentInspectorComponent shows and edits the component fields of the
// entity selected in the browser.
type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

// ArchetypeViewerComponent summarizes archetype occupancy, largest first.
type ArchetypeViewerComponent struct {
	cache *archetypeCache
}

// PerformanceStatsComponent plots frame times and tabulates per-system
// scheduler timings alongside storage statistics.
type PerformanceStatsComponent struct {
	frameHistory []float32
	frameIndex   int
}

// SteppingPanelComponent drives the scheduler's stepping debugger: it lists
// the schedule with the cursor position and offers step and continue
// controls.
type SteppingPanelComponent struct {
	lastStepped int
}
