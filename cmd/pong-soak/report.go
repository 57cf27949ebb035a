package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/pong/ecs"
)

type Report struct {
	// Configuration
	Frames    int
	Seed      uint64
	DeltaTime float64

	// Results
	SimTime        time.Duration
	WallTime       time.Duration
	FrameTime      Stats
	Score          [2]int
	Points         [2]int
	PaddleHits     int
	WallBounces    int
	Resets         int
	Entities       int
	Archetypes     int
	Systems        []ecs.SystemStats
	Violations     []string
	ViolationCount int
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Passed() bool {
	return r.ViolationCount == 0
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Pong Soak Report

## Run Configuration
- **Frames:** {{.Frames}}
- **Seed:** {{.Seed}}
- **Frame Step:** {{printf "%.4f" .DeltaTime}}s

## Match
- **Simulated Time:** {{.SimTime}}
- **Points:** Player 1 {{index .Points 0}}, Player 2 {{index .Points 1}}
- **Final Score:** {{index .Score 0}} - {{index .Score 1}}
- **Resets:** {{.Resets}}
- **Paddle Hits:** {{.PaddleHits}}
- **Wall Bounces:** {{.WallBounces}}
- **Entities / Archetypes:** {{.Entities}} / {{.Archetypes}}

## Performance
- **Wall Time:** {{.WallTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

| System | Runs | Avg | Max | Total |
|--------|------|-----|-----|-------|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

## Invariants
{{if .Passed}}All invariants held.
{{else}}**{{.ViolationCount}} violation(s)**{{if gt .ViolationCount (len .Violations)}}, first {{len .Violations}} shown{{end}}:
{{range .Violations}}- {{.}}
{{end}}{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
