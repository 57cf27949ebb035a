package debugui

import "github.com/plus3/pong/ecs"

// RegisterDebugUIComponents registers the components a UI storage needs.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the inspection windows for target to the ui storage.
// scheduler may be nil when target has no scheduler worth profiling.
func SpawnDebugUI(ui *ecs.Storage, target *ecs.Storage, scheduler *ecs.Scheduler) {
	ecs.NewSingleton(ui, ImguiInputState{})

	browser := NewEntityBrowser(100)
	inspector := NewComponentInspector()
	archetypes := NewArchetypeViewer()
	queries := NewQueryDebugger()
	perf := NewPerformanceStats(120)
	timer := NewFrameTimer()

	ui.Spawn(ImguiItem{Title: "Entities", Render: func() {
		browser.Render(target)
		inspector.Render(target, browser.SelectedEntity())
	}})
	ui.Spawn(ImguiItem{Title: "Archetypes", Render: func() {
		if id := archetypes.Render(target); id != nil {
			browser.FilterArchetype(*id)
		}
	}})
	ui.Spawn(ImguiItem{Title: "Query Debugger", Hidden: true, Render: func() { queries.Render(target) }})
	ui.Spawn(ImguiItem{Title: "Performance", Render: func() {
		perf.Render(target, scheduler, timer.DeltaTime())
	}})
}
