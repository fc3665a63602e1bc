package jsonshape

import (
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Marshaler lets a type fully replace its default encoding. When a value (or
// a pointer to it) implements Marshaler, the encoder calls the hook instead
// of the struct/scalar machinery; the hook is responsible for emitting one
// complete JSON value through the Encoder helpers.
type Marshaler interface {
	MarshalShape(e *Encoder) error
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// Encode streams v to sink as JSON text: no indentation, floats in
// scientific notation, strings fully escaped. Output is emitted in chunks;
// on error the sink may have received a prefix of the document.
func Encode(v any, opt EncodeOpt, sink Sink) error {
	e := &Encoder{sink: sink, maxDepth: effectiveDepth(opt.MaxDepth)}
	return e.encodeValue(reflect.ValueOf(v), "")
}

// Encode streams a bound value, resolving wire keys with the schema's naming
// strategy.
func (s *Schema[T]) Encode(v T, opt EncodeOpt, sink Sink) error {
	e := &Encoder{sink: sink, maxDepth: effectiveDepth(opt.MaxDepth), naming: s.core.naming}
	return e.encodeValue(reflect.ValueOf(v), "")
}

// Encoder is the streaming state handed to Marshaler hooks. Its helpers emit
// well-formed fragments; a hook composing them is responsible for overall
// JSON validity of the single value it replaces.
type Encoder struct {
	sink     Sink
	maxDepth int
	naming   KeyNaming
	depth    int
}

// WriteRaw emits s verbatim.
func (e *Encoder) WriteRaw(s string) error { return e.write("", []byte(s)) }

// WriteQuoted emits s as a quoted, escaped JSON string.
func (e *Encoder) WriteQuoted(s string) error { return e.writeString("", s) }

// Encode recursively encodes v with the default machinery, observing the
// same depth budget as the enclosing call.
func (e *Encoder) Encode(v any) error { return e.encodeValue(reflect.ValueOf(v), "") }

func (e *Encoder) write(path string, p []byte) error {
	if err := e.sink.WriteChunk(p); err != nil {
		return Issues{Issue{Path: orRoot(path), Code: CodeSinkFailure, Message: "sink rejected chunk", Cause: err}}
	}
	return nil
}

func (e *Encoder) encodeValue(rv reflect.Value, path string) error {
	if !rv.IsValid() {
		return e.write(path, []byte("null"))
	}
	if e.depth >= e.maxDepth {
		return issuef(orRoot(path), CodeMaxDepth, "nesting exceeds %d levels", e.maxDepth)
	}
	if m, ok := asMarshaler(rv); ok {
		return m.MarshalShape(e)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return e.write(path, []byte("null"))
		}
		// one transparent level of indirection
		return e.encodeValue(rv.Elem(), path)
	case reflect.Bool:
		if rv.Bool() {
			return e.write(path, []byte("true"))
		}
		return e.write(path, []byte("false"))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.write(path, strconv.AppendInt(nil, rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.write(path, strconv.AppendUint(nil, rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return issuef(orRoot(path), CodeUnsupportedType, "%v has no JSON representation", f)
		}
		return e.write(path, strconv.AppendFloat(nil, f, 'e', -1, 64))
	case reflect.String:
		return e.writeString(path, rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.writeString(path, string(rv.Bytes()))
		}
		return e.encodeSeq(rv, path)
	case reflect.Array:
		return e.encodeSeq(rv, path)
	case reflect.Struct:
		return e.encodeStruct(rv, path)
	default:
		return issuef(orRoot(path), CodeUnsupportedType,
			"%s has no JSON representation; implement Marshaler", rv.Type())
	}
}

func (e *Encoder) encodeSeq(rv reflect.Value, path string) error {
	if err := e.write(path, []byte{'['}); err != nil {
		return err
	}
	e.depth++
	n := rv.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := e.write(path, []byte{','}); err != nil {
				return err
			}
		}
		if err := e.encodeValue(rv.Index(i), path+"/"+strconv.Itoa(i)); err != nil {
			return err
		}
	}
	e.depth--
	return e.write(path, []byte{']'})
}

func (e *Encoder) encodeStruct(rv reflect.Value, path string) error {
	if err := e.write(path, []byte{'{'}); err != nil {
		return err
	}
	e.depth++
	typ := rv.Type()
	first := true
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() || isUnit(sf.Type) {
			continue
		}
		key := resolveWireKey(sf, e.naming)
		if key == "-" {
			continue
		}
		if !first {
			if err := e.write(path, []byte{','}); err != nil {
				return err
			}
		}
		first = false
		fieldPath := path + "/" + key
		if err := e.writeString(fieldPath, key); err != nil {
			return err
		}
		if err := e.write(fieldPath, []byte{':'}); err != nil {
			return err
		}
		if err := e.encodeValue(rv.Field(i), fieldPath); err != nil {
			return err
		}
	}
	e.depth--
	return e.write(path, []byte{'}'})
}

// writeString emits s as one quoted chunk according to the escape rules:
// short escapes for the usual control characters, backslash, quote and
// forward slash; \u00xx for other control bytes and every code point outside
// printable ASCII; surrogate pairs for code points above the BMP.
func (e *Encoder) writeString(path, s string) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				buf = append(buf, '\\', '"')
			case c == '\\':
				buf = append(buf, '\\', '\\')
			case c == '/':
				buf = append(buf, '\\', '/')
			case c == '\b':
				buf = append(buf, '\\', 'b')
			case c == '\f':
				buf = append(buf, '\\', 'f')
			case c == '\n':
				buf = append(buf, '\\', 'n')
			case c == '\r':
				buf = append(buf, '\\', 'r')
			case c == '\t':
				buf = append(buf, '\\', 't')
			case c < 0x20 || c == 0x7f:
				buf = appendEscaped(buf, rune(c))
			default:
				buf = append(buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return issuef(orRoot(path), CodeInvalidUnicode, "malformed UTF-8 at byte %d", i)
		}
		if r <= 0xffff {
			buf = appendEscaped(buf, r)
		} else {
			// UTF-16 surrogate pair for code points above the BMP
			r -= 0x10000
			buf = appendEscaped(buf, 0xd800+(r>>10))
			buf = appendEscaped(buf, 0xdc00+(r&0x3ff))
		}
		i += size
	}
	buf = append(buf, '"')
	return e.write(path, buf)
}

const hexDigits = "0123456789abcdef"

func appendEscaped(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigits[r>>12&0xf], hexDigits[r>>8&0xf], hexDigits[r>>4&0xf], hexDigits[r&0xf])
}

func asMarshaler(rv reflect.Value) (Marshaler, bool) {
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if rv.Type().Implements(marshalerType) {
		return rv.Interface().(Marshaler), true
	}
	if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(marshalerType) {
		return rv.Addr().Interface().(Marshaler), true
	}
	return nil, false
}
