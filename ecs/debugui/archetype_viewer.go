package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

type archetypeRow struct {
	Id             uint32
	ComponentTypes []string
	EntityCount    int
}

type archetypeCache struct {
	rows               []archetypeRow
	lastArchetypeCount int
}

func NewArchetypeViewerComponent() ArchetypeViewerComponent {
	return ArchetypeViewerComponent{
		cache: &archetypeCache{lastArchetypeCount: -1},
	}
}

// Render lists archetypes ordered by occupancy with a proportional bar next
// to each entity count.
func (av *ArchetypeViewerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.refreshCache(storage)

	maxCount := 0
	for _, row := range av.cache.rows {
		if row.EntityCount > maxCount {
			maxCount = row.EntityCount
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Archetypes", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for _, row := range av.cache.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.Id))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))
			if maxCount > 0 && row.EntityCount > 0 {
				barWidth := float32(row.EntityCount) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (av *ArchetypeViewerComponent) refreshCache(storage *ecs.Storage) {
	archetypes := storage.GetArchetypes()

	// Counts shift every frame, only the row set is cached
	if av.cache.lastArchetypeCount != len(archetypes) {
		av.cache.lastArchetypeCount = len(archetypes)
		av.cache.rows = av.cache.rows[:0]

		for _, archetype := range archetypes {
			types := archetype.Types()
			names := make([]string, len(types))
			for i, t := range types {
				names[i] = t.String()
			}
			av.cache.rows = append(av.cache.rows, archetypeRow{
				Id:             archetype.ID(),
				ComponentTypes: names,
			})
		}
	}

	for i := range av.cache.rows {
		if archetype := storage.GetArchetypeById(av.cache.rows[i].Id); archetype != nil {
			av.cache.rows[i].EntityCount = archetype.Count()
		}
	}

	sort.Slice(av.cache.rows, func(i, j int) bool {
		return av.cache.rows[i].EntityCount > av.cache.rows[j].EntityCount
	})
}
