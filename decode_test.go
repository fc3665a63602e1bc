package jsonshape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonshape "github.com/jsonshape/jsonshape"
	"github.com/jsonshape/jsonshape/source/gojson"
)

type single struct {
	Expected int64 `json:"expected"`
}

func TestDecode_StrictMissingField(t *testing.T) {
	s := jsonshape.MustBind[single]()
	v, err := gojson.ParseBytes([]byte(`{}`))
	require.NoError(t, err)

	_, err = s.Decode(v, jsonshape.DecodeOpt{})
	requireCode(t, err, jsonshape.CodeMissingField)
}

func TestDecode_LenientLeavesDefault(t *testing.T) {
	s := jsonshape.MustBind[single]()
	v, err := gojson.ParseBytes([]byte(`{}`))
	require.NoError(t, err)

	got, err := s.Decode(v, jsonshape.DecodeOpt{IgnoreMissing: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Expected)
}

type remapped struct {
	Expected int64 `shape:"name=TEST_EXPECTED"`
}

func TestDecode_KeyRemap(t *testing.T) {
	s := jsonshape.MustBind[remapped]()

	v, err := gojson.ParseBytes([]byte(`{"TEST_EXPECTED":1}`))
	require.NoError(t, err)
	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Expected)

	// the local name is not a wire key
	v, err = gojson.ParseBytes([]byte(`{"expected":1}`))
	require.NoError(t, err)
	_, err = s.Decode(v, jsonshape.DecodeOpt{})
	requireCode(t, err, jsonshape.CodeMissingField)
}

type nestedRecord struct {
	Nested string `json:"nested"`
}

type fooRecord struct {
	Foo string `json:"foo"`
}

type fixture struct {
	Array       []float64    `json:"array"`
	Complex     nestedRecord `json:"complex"`
	VeryComplex []fooRecord  `json:"veryComplex"`
}

func TestDecode_NestedArrayFidelity(t *testing.T) {
	s := jsonshape.MustBind[fixture]()
	v, err := gojson.ParseBytes([]byte(
		`{"array":[66.6,420.42,69.69],"complex":{"nested":"x"},"veryComplex":[{"foo":"a"},{"foo":"b"}]}`))
	require.NoError(t, err)

	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Equal(t, []float64{66.6, 420.42, 69.69}, got.Array)
	assert.Equal(t, "x", got.Complex.Nested)
	require.Len(t, got.VeryComplex, 2)
	assert.Equal(t, "a", got.VeryComplex[0].Foo)
	assert.Equal(t, "b", got.VeryComplex[1].Foo)
}

func TestDecode_TypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string for int", `{"expected":"1"}`},
		{"float for int", `{"expected":1.5}`},
		{"bool for int", `{"expected":true}`},
		{"array for int", `{"expected":[1]}`},
		{"null for int", `{"expected":null}`},
	}
	s := jsonshape.MustBind[single]()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := gojson.ParseBytes([]byte(tt.input))
			require.NoError(t, err)
			_, err = s.Decode(v, jsonshape.DecodeOpt{})
			requireCode(t, err, jsonshape.CodeTypeMismatch)
		})
	}
}

func TestDecode_MismatchPathPointsAtElement(t *testing.T) {
	type target struct {
		Xs []int64 `json:"xs"`
	}
	s := jsonshape.MustBind[target]()
	v, err := gojson.ParseBytes([]byte(`{"xs":[1,2,"three"]}`))
	require.NoError(t, err)

	_, err = s.Decode(v, jsonshape.DecodeOpt{})
	iss, ok := jsonshape.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "/xs/2", iss[0].Path)
	assert.Equal(t, jsonshape.CodeTypeMismatch, iss[0].Code)
}

func TestDecode_IntTokenFillsFloatField(t *testing.T) {
	type target struct {
		R float64 `json:"r"`
	}
	s := jsonshape.MustBind[target]()
	v, err := gojson.ParseBytes([]byte(`{"r":3}`))
	require.NoError(t, err)

	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.R)
}

type optionalTarget struct {
	Name  string `json:"name"`
	Score *int64 `json:"score"`
}

func TestDecode_OptionalNull(t *testing.T) {
	s := jsonshape.MustBind[optionalTarget]()

	v, err := gojson.ParseBytes([]byte(`{"name":"a","score":null}`))
	require.NoError(t, err)
	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Nil(t, got.Score)

	v, err = gojson.ParseBytes([]byte(`{"name":"a","score":7}`))
	require.NoError(t, err)
	got, err = s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, int64(7), *got.Score)
}

func TestDecode_OptionalNested(t *testing.T) {
	type target struct {
		Inner *nestedRecord `json:"inner"`
	}
	s := jsonshape.MustBind[target]()
	v, err := gojson.ParseBytes([]byte(`{"inner":{"nested":"deep"}}`))
	require.NoError(t, err)

	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	require.NotNil(t, got.Inner)
	assert.Equal(t, "deep", got.Inner.Nested)
}

func TestDecode_BytesFromString(t *testing.T) {
	type target struct {
		Blob []byte `json:"blob"`
	}
	s := jsonshape.MustBind[target]()
	v, err := gojson.ParseBytes([]byte(`{"blob":"raw text"}`))
	require.NoError(t, err)

	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Equal(t, []byte("raw text"), got.Blob)
}

func TestDecode_FixedArray(t *testing.T) {
	type target struct {
		Pair [2]int64 `json:"pair"`
	}
	s := jsonshape.MustBind[target]()

	v, err := gojson.ParseBytes([]byte(`{"pair":[3,4]}`))
	require.NoError(t, err)
	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Equal(t, [2]int64{3, 4}, got.Pair)

	v, err = gojson.ParseBytes([]byte(`{"pair":[3,4,5]}`))
	require.NoError(t, err)
	_, err = s.Decode(v, jsonshape.DecodeOpt{})
	requireCode(t, err, jsonshape.CodeTypeMismatch)
}

func TestDecode_StrictRejectsExtraKeys(t *testing.T) {
	s := jsonshape.MustBind[single]()
	v, err := gojson.ParseBytes([]byte(`{"expected":1,"extra":2}`))
	require.NoError(t, err)

	_, err = s.Decode(v, jsonshape.DecodeOpt{})
	requireCode(t, err, jsonshape.CodeMissingField)

	// lenient mode ignores the surplus
	got, err := s.Decode(v, jsonshape.DecodeOpt{IgnoreMissing: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Expected)
}

func TestDecode_NonObjectRoot(t *testing.T) {
	s := jsonshape.MustBind[single]()
	_, err := s.Decode(jsonshape.IntVal(1), jsonshape.DecodeOpt{})
	requireCode(t, err, jsonshape.CodeTypeMismatch)
}

func TestDecode_DepthBudget(t *testing.T) {
	type target struct {
		A [][]int64 `json:"a"`
	}
	s := jsonshape.MustBind[target]()
	v, err := gojson.ParseBytes([]byte(`{"a":[[1]]}`))
	require.NoError(t, err)

	_, err = s.Decode(v, jsonshape.DecodeOpt{MaxDepth: 2})
	requireCode(t, err, jsonshape.CodeMaxDepth)

	got, err := s.Decode(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{1}}, got.A)
}

func TestDecodeWithMeta_Presence(t *testing.T) {
	s := jsonshape.MustBind[optionalTarget]()
	v, err := gojson.ParseBytes([]byte(`{"name":"a","score":null}`))
	require.NoError(t, err)

	dm, err := s.DecodeWithMeta(v, jsonshape.DecodeOpt{})
	require.NoError(t, err)
	assert.Nil(t, dm.Value.Score)
	assert.Equal(t, jsonshape.PresenceSeen, dm.Presence["/"])
	assert.Equal(t, jsonshape.PresenceSeen, dm.Presence["/name"])
	assert.Equal(t, jsonshape.PresenceSeen|jsonshape.PresenceWasNull, dm.Presence["/score"])
}

func TestDecodeWithMeta_AbsentNotMarked(t *testing.T) {
	s := jsonshape.MustBind[optionalTarget]()
	v, err := gojson.ParseBytes([]byte(`{"name":"a"}`))
	require.NoError(t, err)

	dm, err := s.DecodeWithMeta(v, jsonshape.DecodeOpt{IgnoreMissing: true})
	require.NoError(t, err)
	assert.Equal(t, jsonshape.PresenceSeen, dm.Presence["/name"])
	_, marked := dm.Presence["/score"]
	assert.False(t, marked, "absent field must not appear in the presence map")
}
