// Package debugui provides Dear ImGui inspection windows for ECS storages.
// Windows are ImguiItem entities living in their own UI storage; ImguiSystem
// defers their render functions so they run after every other system.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pong/ecs"
)

// ImguiItem is one debug window. Titled items can be shown and hidden from
// the Windows menu.
type ImguiItem struct {
	Title  string
	Hidden bool
	Render func()
}

// ImguiInputState mirrors whether Dear ImGui wants the mouse or keyboard
// this frame, so games can ignore input the UI consumed.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues the render function of
// every visible item, preceded by the Windows menu.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	var titled []*ImguiItem
	for item := range i.Items.Values() {
		if item.Title != "" {
			titled = append(titled, item.ImguiItem)
		}
	}
	if len(titled) > 0 {
		frame.Commands.Defer(func() { renderWindowsMenu(titled) })
	}

	for item := range i.Items.Values() {
		if !item.Hidden && item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

func renderWindowsMenu(items []*ImguiItem) {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("Windows") {
		for _, item := range items {
			visible := !item.Hidden
			if imgui.MenuItemBoolPtr(item.Title, "", &visible) {
				item.Hidden = !visible
			}
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}
