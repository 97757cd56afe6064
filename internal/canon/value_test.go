package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKeysGeneric(t *testing.T) {
	obj := NewObject(KindGeneric)
	obj.Set("moon", Int(1))
	obj.Set("jup", Int(2))
	obj.Set("sun", Int(3))

	assert.Equal(t, []string{"jup", "moon", "sun"}, obj.OrderedKeys())
}

func TestOrderedKeysChart(t *testing.T) {
	obj := NewObject(KindChart)
	obj.Set("sect", String("diurnal"))
	obj.Set("chartRuler", String("mars"))
	obj.Set("timestamp", String("2024-01-01T00:00:00Z"))
	obj.Set("id", String("natal"))

	assert.Equal(t, []string{"id", "timestamp", "chartRuler", "sect"}, obj.OrderedKeys())
}

func TestOrderedKeysUTF16Ordering(t *testing.T) {
	// U+E000 vs U+10000 - UTF-16 order differs from UTF-8.
	// UTF-16: U+10000 encodes as surrogate pair 0xD800 0xDC00, which sorts
	// before 0xE000. UTF-8 byte order would put U+E000 first.
	obj := NewObject(KindGeneric)
	obj.Set("", Int(1))
	obj.Set("\U00010000", Int(2))

	assert.Equal(t, []string{"\U00010000", ""}, obj.OrderedKeys())
}

func TestObjectSetGet(t *testing.T) {
	obj := NewObject(KindBody)
	obj.Set("lng_1e4", Int(150000))

	v, ok := obj.Get("lng_1e4")
	require.True(t, ok)
	assert.Equal(t, Int(150000), v)

	_, ok = obj.Get("lat_1e4")
	assert.False(t, ok)
	assert.True(t, obj.Has("lng_1e4"))
	assert.Equal(t, 1, obj.Len())
	assert.Equal(t, KindBody, obj.Kind())
}

func TestObjectSetNilPanics(t *testing.T) {
	obj := NewObject(KindGeneric)
	assert.Panics(t, func() {
		obj.Set("x", nil)
	})
}
