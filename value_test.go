package jsonshape_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonshape "github.com/jsonshape/jsonshape"
)

func TestObject_OrderAndLookup(t *testing.T) {
	obj := jsonshape.NewObject()
	obj.Set("b", jsonshape.IntVal(1))
	obj.Set("a", jsonshape.IntVal(2))
	obj.Set("c", jsonshape.IntVal(3))

	keys := make([]string, 0, obj.Len())
	for _, m := range obj.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"b", "a", "c"}, keys, "insertion order must be preserved")

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestObject_SetReplacesInPlace(t *testing.T) {
	obj := jsonshape.NewObject()
	obj.Set("k", jsonshape.IntVal(1))
	obj.Set("other", jsonshape.IntVal(2))
	obj.Set("k", jsonshape.IntVal(9))

	require.Equal(t, 2, obj.Len())
	assert.Equal(t, "k", obj.Members()[0].Key, "replacement must not move the member")
	v, _ := obj.Get("k")
	assert.Equal(t, int64(9), v.Int)
}

func TestObject_LargeObjectLookup(t *testing.T) {
	// past the linear-scan threshold the object switches to an index
	obj := jsonshape.NewObject()
	for i := 0; i < 32; i++ {
		obj.Set("k"+strconv.Itoa(i), jsonshape.IntVal(int64(i)))
	}
	for i := 0; i < 32; i++ {
		v, ok := obj.Get("k" + strconv.Itoa(i))
		require.True(t, ok)
		assert.Equal(t, int64(i), v.Int)
	}
	_, ok := obj.Get("k99")
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind jsonshape.Kind
		want string
	}{
		{jsonshape.KindNull, "null"},
		{jsonshape.KindBool, "bool"},
		{jsonshape.KindInt, "int"},
		{jsonshape.KindFloat, "float"},
		{jsonshape.KindString, "string"},
		{jsonshape.KindArray, "array"},
		{jsonshape.KindObject, "object"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestNilObject_SafeAccess(t *testing.T) {
	var obj *jsonshape.Object
	assert.Equal(t, 0, obj.Len())
	assert.Nil(t, obj.Members())
	_, ok := obj.Get("k")
	assert.False(t, ok)
}
