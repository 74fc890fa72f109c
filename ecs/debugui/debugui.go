// Package debugui provides immediate-mode debug overlays for ECS games using
// Dear ImGui. Windows are regular entities holding an ImguiItem render
// closure; the ImguiSystem collects them each frame and defers their
// execution to the end of the update so they run inside the ImGui frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

// ImguiItem holds a Dear ImGui render function. Attach it to an entity to
// draw a window or widget set every frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors Dear ImGui's input capture flags as a singleton.
// Gameplay input systems consult it to ignore clicks and keys that the UI
// is consuming.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem gathers every ImguiItem and defers its render function.
// Register it with RegisterAlwaysRun so the overlay keeps drawing while the
// schedule is frozen in stepping mode.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
