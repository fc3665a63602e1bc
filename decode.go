package jsonshape

import (
	"reflect"
	"strconv"
)

// Decode maps an Object value onto a freshly constructed T.
//
// In strict mode (the default) the object must carry exactly the schema's
// fields: a key-count mismatch fails with missing_field before any field is
// inspected, and each schema field must be present under its wire key. With
// IgnoreMissing, absent fields keep their zero value. The value tree is only
// borrowed; the returned T shares no memory with it except strings, which
// are immutable.
func (s *Schema[T]) Decode(v Value, opt DecodeOpt) (T, error) {
	var zero T
	d := &decoder{opt: opt, maxDepth: effectiveDepth(opt.MaxDepth)}
	rv := reflect.New(s.core.typ).Elem()
	if err := d.decodeStruct(s.core, v, rv, "", 0); err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

// DecodeWithMeta is Decode plus presence metadata: every field key that
// appeared in the input is marked PresenceSeen under its JSON Pointer, null
// values additionally PresenceWasNull. The root is always "/".
func (s *Schema[T]) DecodeWithMeta(v Value, opt DecodeOpt) (Decoded[T], error) {
	d := &decoder{
		opt:      opt,
		maxDepth: effectiveDepth(opt.MaxDepth),
		pm:       PresenceMap{"/": PresenceSeen},
	}
	rv := reflect.New(s.core.typ).Elem()
	if err := d.decodeStruct(s.core, v, rv, "", 0); err != nil {
		return Decoded[T]{Presence: d.pm}, err
	}
	return Decoded[T]{Value: rv.Interface().(T), Presence: d.pm}, nil
}

type decoder struct {
	opt      DecodeOpt
	maxDepth int
	pm       PresenceMap // nil unless the WithMeta path is active
}

func (d *decoder) decodeStruct(sc *structSchema, v Value, rv reflect.Value, path string, depth int) error {
	if depth >= d.maxDepth {
		return issuef(orRoot(path), CodeMaxDepth, "nesting exceeds %d levels", d.maxDepth)
	}
	if v.Kind != KindObject {
		return issuef(orRoot(path), CodeTypeMismatch, "expected object, got %s", v.Kind)
	}
	if !d.opt.IgnoreMissing && v.Obj.Len() != len(sc.fields) {
		return issuef(orRoot(path), CodeMissingField,
			"object has %d keys, schema expects %d", v.Obj.Len(), len(sc.fields))
	}
	for i := range sc.fields {
		f := &sc.fields[i]
		fieldPath := path + "/" + f.wireKey
		node, ok := v.Obj.Get(f.wireKey)
		if !ok {
			if d.opt.IgnoreMissing {
				continue
			}
			return issuef(fieldPath, CodeMissingField, "required key %q missing", f.wireKey)
		}
		if d.pm != nil {
			d.pm[fieldPath] |= PresenceSeen
			if node.Kind == KindNull {
				d.pm[fieldPath] |= PresenceWasNull
			}
		}
		if err := d.decodeValue(&f.spec, node, rv.Field(f.index), fieldPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeValue(ts *typeSpec, node Value, rv reflect.Value, path string, depth int) error {
	if depth >= d.maxDepth {
		return issuef(path, CodeMaxDepth, "nesting exceeds %d levels", d.maxDepth)
	}
	switch ts.kind {
	case kindInt:
		if node.Kind != KindInt {
			return issuef(path, CodeTypeMismatch, "expected int, got %s", node.Kind)
		}
		rv.SetInt(node.Int)
	case kindFloat:
		// JSON does not distinguish 1 from 1.0; integer tokens fill float fields.
		switch node.Kind {
		case KindFloat:
			rv.SetFloat(node.Float)
		case KindInt:
			rv.SetFloat(float64(node.Int))
		default:
			return issuef(path, CodeTypeMismatch, "expected float, got %s", node.Kind)
		}
	case kindBool:
		if node.Kind != KindBool {
			return issuef(path, CodeTypeMismatch, "expected bool, got %s", node.Kind)
		}
		rv.SetBool(node.Bool)
	case kindString:
		if node.Kind != KindString {
			return issuef(path, CodeTypeMismatch, "expected string, got %s", node.Kind)
		}
		rv.SetString(node.Str)
	case kindBytes:
		if node.Kind != KindString {
			return issuef(path, CodeTypeMismatch, "expected string, got %s", node.Kind)
		}
		rv.SetBytes([]byte(node.Str))
	case kindOptional:
		if node.Kind == KindNull {
			// absent; leave the pointer nil
			return nil
		}
		p := reflect.New(rv.Type().Elem())
		// one level of indirection, not a nesting level
		if err := d.decodeValue(ts.elem, node, p.Elem(), path, depth); err != nil {
			return err
		}
		rv.Set(p)
	case kindList:
		if node.Kind != KindArray {
			return issuef(path, CodeTypeMismatch, "expected array, got %s", node.Kind)
		}
		if ts.arrLen >= 0 {
			if len(node.Arr) != ts.arrLen {
				return issuef(path, CodeTypeMismatch,
					"expected array of length %d, got %d", ts.arrLen, len(node.Arr))
			}
			for i := range node.Arr {
				if err := d.decodeValue(ts.elem, node.Arr[i], rv.Index(i), path+"/"+strconv.Itoa(i), depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		sl := reflect.MakeSlice(rv.Type(), len(node.Arr), len(node.Arr))
		for i := range node.Arr {
			if err := d.decodeValue(ts.elem, node.Arr[i], sl.Index(i), path+"/"+strconv.Itoa(i), depth+1); err != nil {
				return err
			}
		}
		rv.Set(sl)
	case kindNested:
		return d.decodeStruct(ts.nested, node, rv, path, depth)
	default:
		return issuef(path, CodeUnsupportedType, "unbound field kind")
	}
	return nil
}

func orRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
