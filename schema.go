package jsonshape

import (
	"reflect"
	"sync"
)

// fieldKind classifies the shape of a bound field.
type fieldKind int

const (
	kindInvalid fieldKind = iota
	kindInt               // int64
	kindFloat             // float64
	kindBool              // bool
	kindString            // string
	kindBytes             // []byte, text on the wire
	kindNested            // struct
	kindList              // slice or array, non-text
	kindOptional          // pointer
)

// typeSpec describes a field's (possibly nested) shape. Immutable after bind.
type typeSpec struct {
	kind   fieldKind
	elem   *typeSpec     // list element / optional inner
	nested *structSchema // kindNested target
	arrLen int           // fixed length for array-backed lists, -1 for slices
}

// fieldSpec is one entry of a struct's field table.
type fieldSpec struct {
	name    string // Go field name
	wireKey string
	index   int // struct field index
	spec    typeSpec
}

// structSchema is the immutable per-type descriptor built once at bind time.
// Unit (struct{}) and unexported fields carry no wire data and are not listed.
type structSchema struct {
	typ    reflect.Type
	naming KeyNaming
	fields []fieldSpec
}

// Schema is the bound, typed entry point for decoding and encoding values of T.
type Schema[T any] struct {
	core *structSchema
}

// Fields reports the wire keys of the bound fields in declaration order.
// Useful for callers that want to diagnose strict-mode failures.
func (s *Schema[T]) Fields() []string {
	keys := make([]string, len(s.core.fields))
	for i, f := range s.core.fields {
		keys[i] = f.wireKey
	}
	return keys
}

type bindCacheKey struct {
	typ    reflect.Type
	naming KeyNaming
}

var bindCache sync.Map // bindCacheKey -> *structSchema

// Bind builds the schema for T, or returns bind-time Issues when T's shape
// cannot be reduced to the supported kinds. Schemas are cached per type and
// naming strategy; repeated binds return the same descriptor.
func Bind[T any](opts ...BindOpt) (*Schema[T], error) {
	var cfg bindConfig
	for _, o := range opts {
		o(&cfg)
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, issuef("/", CodeUnsupportedType, "bind target must be a struct, got %s", typ.Kind())
	}
	key := bindCacheKey{typ: typ, naming: cfg.naming}
	if cached, ok := bindCache.Load(key); ok {
		return &Schema[T]{core: cached.(*structSchema)}, nil
	}
	b := &binder{cfg: cfg, inProgress: map[reflect.Type]bool{}}
	core, err := b.bindStruct(typ, "/")
	if err != nil {
		return nil, err
	}
	actual, _ := bindCache.LoadOrStore(key, core)
	return &Schema[T]{core: actual.(*structSchema)}, nil
}

// MustBind is like Bind but panics on error. Intended for package-level
// schema variables where a bind failure is a programmer error.
func MustBind[T any](opts ...BindOpt) *Schema[T] {
	s, err := Bind[T](opts...)
	if err != nil {
		panic(err)
	}
	return s
}
