package debugui

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name     string
	Type     reflect.Type
	Index    int
	Embedded bool
	IsStruct bool
}

// ReflectionCache memoizes the exported fields of component types so the
// inspector doesn't walk reflect metadata every frame.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// GetFields returns the exported fields of t, or nil if t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	stored, _ := rc.fields.LoadOrStore(t, exportedFields(t))
	return stored.([]FieldInfo)
}

func exportedFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fields = append(fields, FieldInfo{
			Name:     f.Name,
			Type:     f.Type,
			Index:    i,
			Embedded: f.Anonymous,
			IsStruct: f.Type.Kind() == reflect.Struct,
		})
	}
	return fields
}

var globalReflectionCache = NewReflectionCache()
