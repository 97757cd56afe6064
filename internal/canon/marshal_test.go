package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"zero", Int(0), "0"},
		{"max lng_1e4", Int(3599999), "3599999"},
		{"max int64", Int(9223372036854775807), "9223372036854775807"},
		{"min int64", Int(-9223372036854775808), "-9223372036854775808"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"empty array", Array{}, "[]"},
		{"array of ints", Array{Int(1), Int(2), Int(3)}, "[1,2,3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalGenericObjectSortsKeys(t *testing.T) {
	obj := NewObject(KindGeneric)
	obj.Set("zebra", Int(1))
	obj.Set("alpha", Int(2))
	obj.Set("beta", Int(3))

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":3,"zebra":1}`, string(result))
}

func TestMarshalKindOrderWinsOverAlphabetical(t *testing.T) {
	// Aspect records serialize a, b, t, orb_1e4 regardless of set order.
	obj := NewObject(KindAspect)
	obj.Set("orb_1e4", Int(1234))
	obj.Set("t", String("squ"))
	obj.Set("b", String("moon"))
	obj.Set("a", String("sun"))

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"sun","b":"moon","t":"squ","orb_1e4":1234}`, string(result))
}

func TestMarshalBodyKeyOrder(t *testing.T) {
	body := NewObject(KindBody)
	body.Set("gate", String("25.3"))
	body.Set("term", Int(2))
	body.Set("dec", Int(1))
	body.Set("rx", Bool(true))
	body.Set("lng_1e4", Int(151234))

	result, err := Marshal(body)
	require.NoError(t, err)
	assert.Equal(t, `{"lng_1e4":151234,"rx":true,"dec":1,"term":2,"gate":"25.3"}`, string(result))
}

func TestMarshalUnlistedKeysSortAfterPreferred(t *testing.T) {
	chart := NewObject(KindChart)
	chart.Set("id", String("natal"))
	chart.Set("sect", String("diurnal"))
	chart.Set("zz_extra", Int(1))
	chart.Set("aa_extra", Int(2))

	result, err := Marshal(chart)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"natal","sect":"diurnal","aa_extra":2,"zz_extra":1}`, string(result))
}

func TestMarshalNestedObjects(t *testing.T) {
	inner := NewObject(KindGeneric)
	inner.Set("b", Int(1))
	inner.Set("a", Int(2))

	outer := NewObject(KindGeneric)
	outer.Set("z", inner)
	outer.Set("a", Int(3))

	result, err := Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"z":{"a":2,"b":1}}`, string(result))
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"less than", String("<x>"), `"<x>"`},
		{"ampersand", String("a & b"), `"a & b"`},
		{"quote", String(`say "hi"`), `"say \"hi\""`},
		{"backslash", String(`a\b`), `"a\\b"`},
		{"newline", String("a\nb"), `"a\nb"`},
		{"control char", String("a\x01b"), `"a\u0001b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
			// Verify NO HTML escaping sequences present
			assert.NotContains(t, string(result), `\u003c`) // <
			assert.NotContains(t, string(result), `\u0026`) // &
		})
	}
}

func TestMarshalNFCNormalization(t *testing.T) {
	// e + combining acute accent normalizes to precomposed e-acute.
	decomposed := String("cafe\u0301")
	result, err := Marshal(decomposed)
	require.NoError(t, err)
	assert.Equal(t, `"café"`, string(result))
}

func TestMarshalDeterministic(t *testing.T) {
	obj := NewObject(KindGeneric)
	obj.Set("sun", Int(1000000))
	obj.Set("moon", Int(2000000))
	obj.Set("merc", Int(3000000))

	first, err := Marshal(obj)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := Marshal(obj)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
