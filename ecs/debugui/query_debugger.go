package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pong/ecs"
)

// QueryDebugger previews which archetypes a query over a chosen set of
// component types would visit.
type QueryDebugger struct {
	selected map[reflect.Type]bool
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{selected: make(map[reflect.Type]bool)}
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, t := range componentTypes(storage) {
		checked := qd.selected[t]
		if imgui.Checkbox(t.String(), &checked) {
			qd.Toggle(t, checked)
		}
	}

	imgui.Separator()

	if len(qd.selected) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.Matching(storage)
	total := 0
	for _, arch := range matching {
		total += arch.Len()
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", total))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID()))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(typeNames(arch), ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.Len()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebugger) Toggle(t reflect.Type, on bool) {
	if on {
		qd.selected[t] = true
	} else {
		delete(qd.selected, t)
	}
}

// Matching returns the archetypes holding every selected component type.
func (qd *QueryDebugger) Matching(storage *ecs.Storage) []*ecs.Archetype {
	var matching []*ecs.Archetype
	for _, archetype := range storage.Archetypes() {
		ok := true
		for t := range qd.selected {
			if !archetype.HasComponent(t) {
				ok = false
				break
			}
		}
		if ok {
			matching = append(matching, archetype)
		}
	}
	return matching
}

// componentTypes lists every component type in use, sorted by name.
func componentTypes(storage *ecs.Storage) []reflect.Type {
	seen := make(map[reflect.Type]bool)
	var types []reflect.Type
	for _, archetype := range storage.Archetypes() {
		for _, t := range archetype.Types() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}
