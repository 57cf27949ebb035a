package debugui

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pong/ecs"
)

// ComponentInspector shows the components of the selected entity and every
// singleton of the storage. Numeric, bool and string fields can be edited in
// place.
type ComponentInspector struct {
	showSingletons bool
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{showSingletons: true}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	archetype := storage.ArchetypeOf(selected)
	switch {
	case !selected.Valid():
		imgui.Text("No entity selected")
	case archetype == nil:
		imgui.Text(fmt.Sprintf("%s not found", selected))
	default:
		imgui.Text(selected.String())
		imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
		imgui.Separator()

		for _, compType := range archetype.Types() {
			if imgui.TreeNodeStr(compType.String()) {
				renderValue(compType.Name(), reflect.ValueOf(storage.GetComponent(selected, compType)).Elem())
				imgui.TreePop()
			}
		}
	}

	imgui.Separator()
	imgui.Checkbox("Singletons", &ci.showSingletons)
	if ci.showSingletons {
		for typ, ptr := range storage.Singletons() {
			if imgui.TreeNodeStr(typ.String()) {
				renderValue(typ.Name(), reflect.ValueOf(ptr).Elem())
				imgui.TreePop()
			}
		}
	}

	imgui.End()
}

// renderValue draws an editor for val, which must be addressable.
func renderValue(name string, val reflect.Value) {
	label := "##" + name + fmt.Sprintf("%p", val.Addr().UnsafePointer())

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(asInt64(val))
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			SetValue(val, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			SetValue(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetValue(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			SetValue(val, v)
		}

	case reflect.Struct:
		fields := globalReflectionCache.GetFields(val.Type())
		if len(fields) == 0 {
			imgui.Text(name + ": {}")
			return
		}
		for _, field := range fields {
			fieldVal := val.Field(field.Index)
			if field.Embedded {
				renderValue(field.Name, fieldVal)
				continue
			}
			if field.IsStruct || field.Type.Kind() == reflect.Array {
				if imgui.TreeNodeStr(field.Name) {
					renderValue(field.Name, fieldVal)
					imgui.TreePop()
				}
				continue
			}
			renderValue(field.Name, fieldVal)
		}

	case reflect.Array:
		for i := 0; i < val.Len(); i++ {
			renderValue(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func asInt64(val reflect.Value) int64 {
	if val.CanInt() {
		return val.Int()
	}
	u := val.Uint()
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

// SetValue writes x into val, converting between numeric kinds. It returns
// false when val is not settable, x doesn't fit or the kinds don't match.
func SetValue(val reflect.Value, x any) bool {
	if !val.CanSet() {
		return false
	}

	switch v := x.(type) {
	case int64:
		switch {
		case val.CanInt():
			if val.OverflowInt(v) {
				return false
			}
			val.SetInt(v)
		case val.CanUint():
			if v < 0 || val.OverflowUint(uint64(v)) {
				return false
			}
			val.SetUint(uint64(v))
		case val.CanFloat():
			val.SetFloat(float64(v))
		default:
			return false
		}
	case float64:
		if !val.CanFloat() {
			return false
		}
		val.SetFloat(v)
	case bool:
		if val.Kind() != reflect.Bool {
			return false
		}
		val.SetBool(v)
	case string:
		if val.Kind() != reflect.String {
			return false
		}
		val.SetString(v)
	default:
		return false
	}
	return true
}
