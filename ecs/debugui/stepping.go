package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

func NewSteppingPanelComponent() SteppingPanelComponent {
	return SteppingPanelComponent{lastStepped: -1}
}

// Render draws the stepping debugger window: a toggle for stepping mode, the
// schedule with the cursor position, and step / continue controls. Always-run
// systems are listed but marked, since the cursor skips them.
func (sp *SteppingPanelComponent) Render(scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Stepping", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	enabled := scheduler.SteppingEnabled()
	if imgui.Checkbox("Stepping mode", &enabled) {
		if enabled {
			scheduler.EnableStepping()
		} else {
			scheduler.DisableStepping()
		}
		sp.lastStepped = -1
	}

	if !enabled {
		imgui.TextDisabled("Schedule running normally")
		imgui.End()
		return
	}

	if imgui.Button("Step System") {
		if cursor, ok := scheduler.Cursor(); ok {
			sp.lastStepped = cursor
		}
		scheduler.StepSystem()
	}
	imgui.SameLine()
	if imgui.Button("Step Frame") {
		scheduler.ContinueFrame()
		sp.lastStepped = -1
	}

	imgui.Separator()

	cursor, hasCursor := scheduler.Cursor()
	for _, sys := range scheduler.Systems() {
		switch {
		case sys.AlwaysRun:
			imgui.TextDisabled(fmt.Sprintf("   %s (always runs)", sys.Name))
		case hasCursor && sys.Index == cursor:
			imgui.TextColored(imgui.NewVec4(0.3, 0.9, 0.3, 1.0), fmt.Sprintf("-> %s", sys.Name))
		case sys.Index == sp.lastStepped:
			imgui.TextColored(imgui.NewVec4(0.9, 0.9, 0.3, 1.0), fmt.Sprintf("   %s (just ran)", sys.Name))
		default:
			imgui.Text(fmt.Sprintf("   %s", sys.Name))
		}
	}

	imgui.End()
}
