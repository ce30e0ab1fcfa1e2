package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SrinivasanNagarajaRao/pig-on-spark/common"
)

func TestRowTable(t *testing.T) {
	table := NewRowTable[int]()
	_, found := table.Get("missing")
	assert.False(t, found)

	table.Set("b", 2)
	table.Set("a", 1)
	table.Set("c", 3)
	table.Set("a", 10)
	assert.Equal(t, 3, table.Len(), "Set over an existing key replaces")

	v, found := table.Get("a")
	require.True(t, found)
	assert.Equal(t, 10, v)

	var keys []string
	table.Iterate(func(key string, _ int) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, keys, "iteration is ordered")

	keys = keys[:0]
	table.Iterate(func(key string, _ int) bool {
		keys = append(keys, key)
		return len(keys) < 2
	})
	assert.Equal(t, []string{"a", "b"}, keys, "a false return stops the walk")
}

func TestEncodeKeyInjective(t *testing.T) {
	cases := []struct {
		name string
		a, b []common.Value
	}{
		{
			name: "adjacent strings cannot blur",
			a:    []common.Value{common.NewStringValue("ab"), common.NewStringValue("c")},
			b:    []common.Value{common.NewStringValue("a"), common.NewStringValue("bc")},
		},
		{
			name: "NULL is not the empty string",
			a:    []common.Value{common.NullValue(common.StringType)},
			b:    []common.Value{common.NewStringValue("")},
		},
		{
			name: "int and long do not alias",
			a:    []common.Value{common.NewIntValue(1)},
			b:    []common.Value{common.NewLongValue(1)},
		},
		{
			name: "sign does not alias magnitude",
			a:    []common.Value{common.NewIntValue(-1)},
			b:    []common.Value{common.NewIntValue(1)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEqual(t, EncodeKey(tc.a), EncodeKey(tc.b))
		})
	}
}

func TestEncodeKeyEquality(t *testing.T) {
	a := []common.Value{common.NewStringValue("x"), common.NewLongValue(42), common.NewBoolValue(true)}
	b := []common.Value{common.NewStringValue("x"), common.NewLongValue(42), common.NewBoolValue(true)}
	assert.Equal(t, EncodeKey(a), EncodeKey(b))
	assert.Equal(t, EncodeKey(nil), EncodeKey([]common.Value{}))
}
