package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pong/ecs"
)

type PerformanceStats struct {
	frameHistory []float32
	frameIndex   int
	frames       int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		frameHistory: make([]float32, historyFrames),
	}
}

// Record adds one frame time in seconds to the history ring.
func (ps *PerformanceStats) Record(deltaTime float64) {
	ps.frameHistory[ps.frameIndex] = float32(deltaTime * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)
	ps.frames = min(ps.frames+1, len(ps.frameHistory))
}

// AverageMillis returns the mean of the recorded frame times.
func (ps *PerformanceStats) AverageMillis() float32 {
	if ps.frames == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.frames)
}

func (ps *PerformanceStats) Render(storage *ecs.Storage, scheduler *ecs.Scheduler, deltaTime float64) {
	ps.Record(deltaTime)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.AverageMillis(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(millis(sys.AvgDuration))
				imgui.TableNextColumn()
				imgui.Text(millis(sys.MinDuration))
				imgui.TableNextColumn()
				imgui.Text(millis(sys.MaxDuration))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// DeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) DeltaTime() float64 {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime).Seconds()
	ft.lastFrameTime = now
	return delta
}
