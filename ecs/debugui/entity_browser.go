package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

type entityRow struct {
	Id             ecs.EntityId
	ArchetypeId    uint32
	ComponentTypes []string
}

type entityCache struct {
	rows               []entityRow
	lastArchetypeCount int
	lastEntityCount    int
}

func NewEntityBrowserComponent(pageSize int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache:    &entityCache{lastEntityCount: -1},
		pageSize: pageSize,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refreshCache(storage)

	imgui.InputTextWithHint("##filter", "Filter by id or component...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
		eb.page = 0
	}

	rows := filterEntityRows(eb.cache.rows, eb.filterText)

	totalPages := 1
	if eb.pageSize > 0 {
		totalPages = (len(rows) + eb.pageSize - 1) / eb.pageSize
		if totalPages < 1 {
			totalPages = 1
		}
	}
	if eb.page >= totalPages {
		eb.page = totalPages - 1
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Entities", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := eb.page * eb.pageSize
		end := start + eb.pageSize
		if eb.pageSize <= 0 || end > len(rows) {
			end = len(rows)
		}

		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			selected := eb.selectedEntityId == row.Id
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.Id), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = row.Id
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.ArchetypeId))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < totalPages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}

// SelectedEntity returns the entity picked in the table, or 0.
func (eb *EntityBrowserComponent) SelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

func (eb *EntityBrowserComponent) refreshCache(storage *ecs.Storage) {
	stats := storage.CollectStats()
	if eb.cache.lastArchetypeCount == stats.ArchetypeCount && eb.cache.lastEntityCount == stats.TotalEntityCount {
		return
	}
	eb.cache.lastArchetypeCount = stats.ArchetypeCount
	eb.cache.lastEntityCount = stats.TotalEntityCount

	eb.cache.rows = eb.cache.rows[:0]
	for _, archetype := range storage.GetArchetypes() {
		types := archetype.Types()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}

		for id := range archetype.Iter() {
			eb.cache.rows = append(eb.cache.rows, entityRow{
				Id:             id,
				ArchetypeId:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}

	sort.Slice(eb.cache.rows, func(i, j int) bool {
		return eb.cache.rows[i].Id < eb.cache.rows[j].Id
	})
}

// filterEntityRows keeps rows whose id, archetype id, or component type list
// contains the filter text, case insensitively.
func filterEntityRows(rows []entityRow, filter string) []entityRow {
	if filter == "" {
		return rows
	}

	needle := strings.ToLower(filter)
	filtered := make([]entityRow, 0, len(rows))
	for _, row := range rows {
		idStr := fmt.Sprintf("%d", row.Id)
		archStr := fmt.Sprintf("0x%x", row.ArchetypeId)
		components := strings.ToLower(strings.Join(row.ComponentTypes, " "))

		if strings.Contains(idStr, needle) ||
			strings.Contains(archStr, needle) ||
			strings.Contains(components, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
