package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pong/ecs"
)

// ArchetypeViewer lists archetypes with a bar for their relative population.
type ArchetypeViewer struct {
	archetypes     []ecs.ArchetypeStats
	selectedArchId *uint32
	sortColumn     int
	sortAscending  bool
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: 2}
}

// Render draws the window and returns the archetype clicked this frame, if any.
func (av *ArchetypeViewer) Render(storage *ecs.Storage) *uint32 {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.refresh(storage)

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	var clicked *uint32

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.sortArchetypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			selected := av.selectedArchId != nil && *av.selectedArchId == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				clicked = &id
				av.selectedArchId = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
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
	return clicked
}

func (av *ArchetypeViewer) refresh(storage *ecs.Storage) {
	av.archetypes = storage.CollectStats().ArchetypeBreakdown
	av.sortArchetypes()
}

func (av *ArchetypeViewer) sortArchetypes() {
	sort.SliceStable(av.archetypes, func(i, j int) bool {
		a, b := av.archetypes[i], av.archetypes[j]
		if !av.sortAscending {
			a, b = b, a
		}

		switch av.sortColumn {
		case 0:
			return a.ID < b.ID
		case 1:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			return a.EntityCount < b.EntityCount
		}
	})
}
