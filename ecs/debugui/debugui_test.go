package debugui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterEntityRows(t *testing.T) {
	rows := []entityRow{
		{Id: 1, ArchetypeId: 0xAB, ComponentTypes: []string{"game.Position", "game.Velocity"}},
		{Id: 2, ArchetypeId: 0xAB, ComponentTypes: []string{"game.Position"}},
		{Id: 42, ArchetypeId: 0xCD, ComponentTypes: []string{"game.Paddle"}},
	}

	assert.Len(t, filterEntityRows(rows, ""), 3)
	assert.Len(t, filterEntityRows(rows, "velocity"), 1)
	assert.Len(t, filterEntityRows(rows, "position"), 2)
	assert.Len(t, filterEntityRows(rows, "42"), 1)
	assert.Len(t, filterEntityRows(rows, "0xcd"), 1)
	assert.Empty(t, filterEntityRows(rows, "nothing"))
}

type inspectable struct {
	Health   int
	Speed    float32
	Name     string
	Target   *inspectable
	hidden   bool
	Friendly bool
}

func TestReflectionCacheFields(t *testing.T) {
	cache := newReflectionCache()
	typ := reflect.TypeOf(inspectable{})

	fields := cache.GetFields(typ)
	assert.Len(t, fields, 5)

	byName := make(map[string]fieldInfo)
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.NotContains(t, byName, "hidden")
	assert.Equal(t, reflect.Int, byName["Health"].Type.Kind())
	assert.True(t, byName["Target"].IsPointer)
	assert.Equal(t, typ, byName["Target"].Type)

	// Second lookup hits the cache and returns the same slice
	again := cache.GetFields(typ)
	assert.Equal(t, fields, again)
}

func TestReflectionCacheNonStruct(t *testing.T) {
	cache := newReflectionCache()
	assert.Empty(t, cache.GetFields(reflect.TypeOf(42)))
}
