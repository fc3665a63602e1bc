package jsonshape

// Kind enumerates the runtime kinds a JSON value can take.
type Kind int

const (
	KindNull   Kind = iota // JSON null.
	KindBool               // true / false.
	KindInt                // Number with no fractional or exponent part.
	KindFloat              // Any other number.
	KindString             // UTF-8 text.
	KindArray              // Ordered sequence.
	KindObject             // Key/value mapping, insertion order preserved.
)

// String returns the lowercase name of the kind for error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged JSON runtime value. Only the payload field matching Kind
// is meaningful; the rest stay at their zero values. Values are produced by
// the parsers under source/ and borrowed, never retained, by the decoder.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Arr   []Value
	Obj   *Object
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// BoolVal wraps a bool.
func BoolVal(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntVal wraps an int64.
func IntVal(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatVal wraps a float64.
func FloatVal(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// StrVal wraps a string.
func StrVal(s string) Value { return Value{Kind: KindString, Str: s} }

// ArrVal wraps a sequence of values.
func ArrVal(elems ...Value) Value { return Value{Kind: KindArray, Arr: elems} }

// ObjVal wraps an object.
func ObjVal(o *Object) Value { return Value{Kind: KindObject, Obj: o} }

// Member is one key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object that preserves member insertion order for
// deterministic re-encoding. Lookup goes through a lazily built index, so
// decode-side key lookups stay O(1) without paying for the index on objects
// that are only ever iterated.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object { return &Object{} }

// Set appends key/v, replacing the value in place when key already exists.
func (o *Object) Set(key string, v Value) {
	if o.index != nil {
		if i, ok := o.index[key]; ok {
			o.members[i].Value = v
			return
		}
	} else {
		for i := range o.members {
			if o.members[i].Key == key {
				o.members[i].Value = v
				return
			}
		}
	}
	o.members = append(o.members, Member{Key: key, Value: v})
	if o.index != nil {
		o.index[key] = len(o.members) - 1
	}
}

// Get looks up key, reporting whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	if o.index == nil && len(o.members) > 8 {
		o.buildIndex()
	}
	if o.index != nil {
		i, ok := o.index[key]
		if !ok {
			return Value{}, false
		}
		return o.members[i].Value, true
	}
	for i := range o.members {
		if o.members[i].Key == key {
			return o.members[i].Value, true
		}
	}
	return Value{}, false
}

// Len reports the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns the members in insertion order. The slice is owned by the
// object and must not be mutated.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

func (o *Object) buildIndex() {
	o.index = make(map[string]int, len(o.members))
	for i := range o.members {
		// first insertion wins on duplicates, matching Set semantics
		if _, ok := o.index[o.members[i].Key]; !ok {
			o.index[o.members[i].Key] = i
		}
	}
}
