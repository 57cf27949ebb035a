package debugui

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/plus3/pong/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spot struct {
	X, Y float64
}

type tag struct {
	Name   string
	Active bool
	hidden int
}

type paint struct {
	Color color.RGBA
}

type level uint8

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[spot](registry)
	ecs.RegisterComponent[tag](registry)
	ecs.RegisterComponent[paint](registry)
	ecs.RegisterComponent[level](registry)
	return ecs.NewStorage(registry)
}

func TestEntityBrowser(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(spot{}, tag{Name: "paddle"})
	b := storage.Spawn(spot{})
	c := storage.Spawn(spot{}, tag{Name: "ball"})

	browser := NewEntityBrowser(10)
	browser.refresh(storage)

	ids := func(infos []EntityInfo) []ecs.EntityId {
		var out []ecs.EntityId
		for _, info := range infos {
			out = append(out, info.ID)
		}
		return out
	}

	t.Run("sorted by id", func(t *testing.T) {
		assert.Equal(t, []ecs.EntityId{a, b, c}, ids(browser.Filtered()))
	})

	t.Run("descending", func(t *testing.T) {
		browser.SortBy(0, false)
		assert.Equal(t, []ecs.EntityId{c, b, a}, ids(browser.Filtered()))
		browser.SortBy(0, true)
	})

	t.Run("text filter matches component names", func(t *testing.T) {
		browser.SetFilterText("TAG")
		assert.Equal(t, []ecs.EntityId{a, c}, ids(browser.Filtered()))
		browser.SetFilterText("")
	})

	t.Run("archetype filter", func(t *testing.T) {
		browser.FilterArchetype(storage.ArchetypeOf(b).ID())
		assert.Equal(t, []ecs.EntityId{b}, ids(browser.Filtered()))
	})

	t.Run("refreshes after spawn", func(t *testing.T) {
		browser.filterArchetypeId = nil
		d := storage.Spawn(spot{})
		browser.refresh(storage)
		assert.Len(t, browser.Filtered(), 4)
		assert.Contains(t, ids(browser.Filtered()), d)
	})

	browser.Select(c)
	assert.Equal(t, c, browser.SelectedEntity())
}

func TestQueryDebuggerMatching(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(spot{}, tag{})
	storage.Spawn(spot{})
	storage.Spawn(paint{})

	qd := NewQueryDebugger()
	assert.Len(t, qd.Matching(storage), 3, "no selection matches everything")

	qd.Toggle(reflect.TypeFor[spot](), true)
	assert.Len(t, qd.Matching(storage), 2)

	qd.Toggle(reflect.TypeFor[tag](), true)
	assert.Len(t, qd.Matching(storage), 1)

	qd.Toggle(reflect.TypeFor[spot](), false)
	qd.Toggle(reflect.TypeFor[tag](), false)
	assert.Len(t, qd.Matching(storage), 3)

	names := []string{}
	for _, typ := range componentTypes(storage) {
		names = append(names, typ.String())
	}
	assert.Equal(t, []string{"debugui.paint", "debugui.spot", "debugui.tag"}, names)
}

func TestArchetypeViewerSorting(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(spot{})
	storage.Spawn(spot{}, tag{})
	storage.Spawn(spot{}, tag{})

	viewer := NewArchetypeViewer()
	viewer.refresh(storage)
	require.Len(t, viewer.archetypes, 2)
	assert.Equal(t, 2, viewer.archetypes[0].EntityCount, "most populated first")

	viewer.sortAscending = true
	viewer.sortArchetypes()
	assert.Equal(t, 1, viewer.archetypes[0].EntityCount)
}

func TestReflectionCache(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.GetFields(reflect.TypeFor[tag]())
	require.Len(t, fields, 2, "unexported fields are skipped")
	assert.Equal(t, "Name", fields[0].Name)
	assert.Equal(t, 1, fields[1].Index)

	assert.Nil(t, cache.GetFields(reflect.TypeFor[level]()))

	again := cache.GetFields(reflect.TypeFor[tag]())
	assert.Same(t, &fields[0], &again[0])
}

func TestSetValue(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(spot{}, tag{}, paint{}, level(3))

	s := reflect.ValueOf(storage.GetComponent(id, reflect.TypeFor[spot]())).Elem()
	assert.True(t, SetValue(s.Field(0), 12.5))
	assert.True(t, SetValue(s.Field(1), int64(-4)))
	assert.Equal(t, spot{X: 12.5, Y: -4}, *ecs.ReadComponent[spot](storage, id))

	tg := reflect.ValueOf(storage.GetComponent(id, reflect.TypeFor[tag]())).Elem()
	assert.True(t, SetValue(tg.Field(0), "ball"))
	assert.True(t, SetValue(tg.Field(1), true))
	assert.False(t, SetValue(tg.Field(2), int64(1)), "unexported fields are read-only")
	assert.False(t, SetValue(tg.Field(0), 1.0), "kind mismatch")
	assert.Equal(t, tag{Name: "ball", Active: true}, *ecs.ReadComponent[tag](storage, id))

	p := reflect.ValueOf(storage.GetComponent(id, reflect.TypeFor[paint]())).Elem()
	red := p.Field(0).Field(0)
	assert.True(t, SetValue(red, int64(200)))
	assert.False(t, SetValue(red, int64(300)), "overflow")
	assert.False(t, SetValue(red, int64(-1)))
	assert.Equal(t, uint8(200), ecs.ReadComponent[paint](storage, id).Color.R)

	lv := reflect.ValueOf(storage.GetComponent(id, reflect.TypeFor[level]())).Elem()
	assert.True(t, SetValue(lv, int64(9)))
	assert.Equal(t, level(9), *ecs.ReadComponent[level](storage, id))
}

func TestPerformanceStatsHistory(t *testing.T) {
	ps := NewPerformanceStats(4)
	assert.Zero(t, ps.AverageMillis())

	ps.Record(0.010)
	ps.Record(0.020)
	assert.InDelta(t, 15.0, ps.AverageMillis(), 1e-4)

	for i := 0; i < 10; i++ {
		ps.Record(0.004)
	}
	assert.InDelta(t, 4.0, ps.AverageMillis(), 1e-4)
}

func TestImguiSystemSkipsHiddenItems(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)
	ui := ecs.NewStorage(registry)

	var rendered []string
	ui.Spawn(ImguiItem{Render: func() { rendered = append(rendered, "shown") }})
	ui.Spawn(ImguiItem{Hidden: true, Render: func() { rendered = append(rendered, "hidden") }})
	ui.Spawn(ImguiItem{})

	scheduler := ecs.NewScheduler(ui)
	scheduler.Register(&ImguiSystem{})
	scheduler.Once(1.0 / 60)

	assert.Equal(t, []string{"shown"}, rendered)
}
