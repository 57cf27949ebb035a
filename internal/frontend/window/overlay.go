package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/ecs/debugui"
	"github.com/plus3/pong/pong"
)

// overlay is the F1 debug UI: the generic ECS windows pointed at the game
// world plus a match window.
type overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[debugui.ImguiInputState]
}

func newOverlay(game *pong.Game) *overlay {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	debugui.SpawnDebugUI(storage, game.Storage(), game.Scheduler())
	storage.Spawn(debugui.ImguiItem{Title: "Match", Render: func() { renderMatch(game) }})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	return &overlay{
		storage:   storage,
		scheduler: scheduler,
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

func (o *overlay) update(dt float64) {
	o.scheduler.Once(dt)
}

func (o *overlay) wantsKeyboard() bool {
	state := o.input.Get()
	return state != nil && state.WantCaptureKeyboard
}

func renderMatch(game *pong.Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Match", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	match := game.Match()
	imgui.Text(fmt.Sprintf("Mode: %s", game.Mode()))
	imgui.Text(fmt.Sprintf("Score: %d - %d", match.Score[0], match.Score[1]))
	imgui.Text(fmt.Sprintf("Since collision: %.2fs", match.SinceCollision))
	imgui.Text(fmt.Sprintf("Entities: %d", game.Storage().Len()))

	if imgui.Button("Reset match") {
		game.Reset()
	}
	imgui.End()
}
