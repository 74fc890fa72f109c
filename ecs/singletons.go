package ecs

import (
	"reflect"
	"unsafe"
)

// singletonEntry pins one singleton component on the heap so cached pointers
// into it stay valid for the lifetime of the storage.
type singletonEntry struct {
	typ     reflect.Type
	box     reflect.Value // pointer to the stored value, keeps it alive
	dataPtr unsafe.Pointer
}

// AddSingleton stores a component instance that is not attached to any
// entity. A second add for the same type overwrites the stored value in
// place, so existing Singleton accessors keep working.
func (s *Storage) AddSingleton(value any) {
	val := reflect.ValueOf(value)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()

	if entry, ok := s.singletons[typ]; ok {
		entry.box.Elem().Set(val)
		return
	}

	box := reflect.New(typ)
	box.Elem().Set(val)

	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		box:     box,
		dataPtr: box.UnsafePointer(),
	}
}

// getSingletonEntry returns the entry for a singleton type, or nil.
func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// ReadSingleton fills out (which must be a **T) with a pointer to the stored
// singleton of type T. Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a component pointer")
	}

	entry := s.singletons[outVal.Elem().Type().Elem()]
	if entry == nil {
		return false
	}

	outVal.Elem().Set(entry.box)
	return true
}
