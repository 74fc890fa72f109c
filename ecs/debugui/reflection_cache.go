package debugui

import (
	"reflect"
	"sync"
)

// fieldInfo describes one exported struct field for the inspector.
type fieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// reflectionCache memoizes per-type field listings so the inspector does not
// walk struct types on every frame.
type reflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

func newReflectionCache() *reflectionCache {
	return &reflectionCache{fields: make(map[reflect.Type][]fieldInfo)}
}

func (rc *reflectionCache) GetFields(t reflect.Type) []fieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, fieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	rc.fields[t] = fields
	return fields
}

var globalReflectionCache = newReflectionCache()
