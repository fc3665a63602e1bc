package jsonshape

import (
	"reflect"
	"strings"
)

// binder carries one bind session. inProgress guards against recursive type
// definitions, which the descriptor model cannot represent.
type binder struct {
	cfg        bindConfig
	inProgress map[reflect.Type]bool
}

func (b *binder) bindStruct(typ reflect.Type, path string) (*structSchema, error) {
	if b.inProgress[typ] {
		return nil, issuef(path, CodeUnsupportedType, "recursive type %s cannot be bound", typ)
	}
	b.inProgress[typ] = true
	defer delete(b.inProgress, typ)

	sc := &structSchema{typ: typ, naming: b.cfg.naming}
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		wire := b.resolveKey(sf)
		if wire == "-" {
			continue
		}
		if isUnit(sf.Type) {
			// no wire data; omitted from the table entirely
			continue
		}
		fieldPath := path + sf.Name
		spec, err := b.bindType(sf.Type, fieldPath)
		if err != nil {
			return nil, err
		}
		sc.fields = append(sc.fields, fieldSpec{
			name:    sf.Name,
			wireKey: wire,
			index:   i,
			spec:    spec,
		})
	}
	return sc, nil
}

func (b *binder) bindType(typ reflect.Type, path string) (typeSpec, error) {
	switch typ.Kind() {
	case reflect.Int64:
		return typeSpec{kind: kindInt}, nil
	case reflect.Float64:
		return typeSpec{kind: kindFloat}, nil
	case reflect.Bool:
		return typeSpec{kind: kindBool}, nil
	case reflect.String:
		return typeSpec{kind: kindString}, nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return typeSpec{kind: kindBytes}, nil
		}
		elem, err := b.bindType(typ.Elem(), path+"/*")
		if err != nil {
			return typeSpec{}, err
		}
		return typeSpec{kind: kindList, elem: &elem, arrLen: -1}, nil
	case reflect.Array:
		if typ.Elem().Kind() == reflect.Uint8 {
			return typeSpec{}, issuef(path, CodeUnsupportedType, "fixed byte arrays are not bindable; use []byte")
		}
		elem, err := b.bindType(typ.Elem(), path+"/*")
		if err != nil {
			return typeSpec{}, err
		}
		return typeSpec{kind: kindList, elem: &elem, arrLen: typ.Len()}, nil
	case reflect.Pointer:
		inner, err := b.bindType(typ.Elem(), path)
		if err != nil {
			return typeSpec{}, err
		}
		if inner.kind == kindOptional {
			return typeSpec{}, issuef(path, CodeUnsupportedType, "double pointer %s cannot be bound", typ)
		}
		return typeSpec{kind: kindOptional, elem: &inner}, nil
	case reflect.Struct:
		nested, err := b.bindStruct(typ, path+"/")
		if err != nil {
			return typeSpec{}, err
		}
		return typeSpec{kind: kindNested, nested: nested}, nil
	default:
		return typeSpec{}, issuef(path, CodeUnsupportedType,
			"%s does not reduce to a supported kind (int64, float64, bool, string, struct, slice, pointer)", typ)
	}
}

// resolveKey applies the repository-wide rule for a field's wire key.
// Priority: shape:"name=..." > json tag name > naming-converted field name;
// "-" disables the field.
func (b *binder) resolveKey(sf reflect.StructField) string {
	return resolveWireKey(sf, b.cfg.naming)
}

func resolveWireKey(sf reflect.StructField, naming KeyNaming) string {
	if st := sf.Tag.Get("shape"); st != "" {
		if st == "-" {
			return "-"
		}
		for _, p := range strings.Split(st, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i > 0 {
				return jt[:i]
			}
		} else {
			return jt
		}
	}
	return naming.apply(sf.Name)
}

// isUnit reports whether typ carries no data at all.
func isUnit(typ reflect.Type) bool {
	return typ.Kind() == reflect.Struct && typ.NumField() == 0
}
