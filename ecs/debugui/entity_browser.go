package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pong/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

type EntityBrowser struct {
	entities           []EntityInfo
	lastEntityCount    int
	sortColumn         int
	sortAscending      bool
	selectedEntityId   ecs.EntityId
	filterText         string
	filterArchetypeId  *uint32
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending:      true,
		lastEntityCount:    -1,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterArchetypeId = nil
	}

	filtered := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.Filtered()
		}

		start := min(eb.currentPage*eb.maxEntitiesPerPage, len(filtered))
		end := min(start+eb.maxEntitiesPerPage, len(filtered))

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			selected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the entity list when entities were spawned since the last call.
func (eb *EntityBrowser) refresh(storage *ecs.Storage) {
	if storage.Len() == eb.lastEntityCount {
		return
	}
	eb.lastEntityCount = storage.Len()

	eb.entities = eb.entities[:0]
	for _, archetype := range storage.Archetypes() {
		names := typeNames(archetype)
		for id := range archetype.Entities() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	eb.sortEntities()
}

// SortBy orders the list by entity id (0), archetype (1) or component names (2).
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		if !eb.sortAscending {
			a, b = b, a
		}

		switch eb.sortColumn {
		case 1:
			return a.ArchetypeID < b.ArchetypeID
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			return a.ID < b.ID
		}
	})
}

// FilterArchetype limits the list to one archetype.
func (eb *EntityBrowser) FilterArchetype(id uint32) {
	eb.filterArchetypeId = &id
	eb.currentPage = 0
}

// SetFilterText matches entities by id, archetype id or component name.
func (eb *EntityBrowser) SetFilterText(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Filtered returns the entities that pass the current filters.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterArchetypeId == nil {
		return eb.entities
	}

	needle := strings.ToLower(eb.filterText)
	filtered := make([]EntityInfo, 0, len(eb.entities))
	for _, entity := range eb.entities {
		if eb.filterArchetypeId != nil && entity.ArchetypeID != *eb.filterArchetypeId {
			continue
		}

		if needle != "" {
			haystack := strings.ToLower(fmt.Sprintf("%d 0x%x %s", entity.ID, entity.ArchetypeID, strings.Join(entity.ComponentTypes, " ")))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}
	return filtered
}

func (eb *EntityBrowser) SelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
}

func typeNames(archetype *ecs.Archetype) []string {
	names := make([]string, len(archetype.Types()))
	for i, t := range archetype.Types() {
		names[i] = t.String()
	}
	return names
}
