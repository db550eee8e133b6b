package dsl

import (
	"reflect"
	"strings"
)

// resolveStructKey resolves a struct field's external key used by the DSL.
// Priority: record:"..." > json tag name > field name; "-" disables the field.
func resolveStructKey(sf reflect.StructField) string {
	if rt := sf.Tag.Get("record"); rt != "" {
		if i := strings.IndexByte(rt, ','); i >= 0 {
			return rt[:i]
		}
		return rt
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// structKeyIndex maps resolved keys to exported field indices of rt.
func structKeyIndex(rt reflect.Type) map[string]int {
	out := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := resolveStructKey(sf)
		if key == "" || key == "-" {
			continue
		}
		out[key] = i
	}
	return out
}

// assignValue stores a parsed wire value into a struct field, recursing into
// nested structs when the wire side produced a map.
func assignValue(fv reflect.Value, val any) bool {
	if val == nil {
		switch fv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			fv.Set(reflect.Zero(fv.Type()))
			return true
		default:
			return true // leave the zero value in place
		}
	}
	if m, ok := val.(map[string]any); ok && fv.Kind() == reflect.Struct {
		return hydrateStruct(fv, m)
	}
	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(fv.Type()):
		fv.Set(vv)
	case numericKind(vv.Kind()) && numericKind(fv.Kind()) && vv.Type().ConvertibleTo(fv.Type()):
		fv.Set(vv.Convert(fv.Type()))
	default:
		return false
	}
	return true
}

// numericKind gates the Convert fallback. Conversions outside the numeric
// kinds change meaning (int to string yields a rune, not digits).
func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func hydrateStruct(fv reflect.Value, m map[string]any) bool {
	idx := structKeyIndex(fv.Type())
	for key, i := range idx {
		val, ok := m[key]
		if !ok {
			continue
		}
		if !assignValue(fv.Field(i), val) {
			return false
		}
	}
	return true
}

// encodeValue renders a struct field back into wire shape: nested structs
// become maps, slices of structs become []any, scalars pass through.
func encodeValue(fv reflect.Value) any {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil
		}
		fv = fv.Elem()
	}
	switch fv.Kind() {
	case reflect.Struct:
		return dehydrateStruct(fv)
	case reflect.Slice, reflect.Array:
		if fv.Kind() == reflect.Slice && fv.IsNil() {
			return nil
		}
		out := make([]any, fv.Len())
		for i := 0; i < fv.Len(); i++ {
			out[i] = encodeValue(fv.Index(i))
		}
		return out
	case reflect.Interface:
		if fv.IsNil() {
			return nil
		}
		return fv.Interface()
	default:
		return fv.Interface()
	}
}

func dehydrateStruct(fv reflect.Value) map[string]any {
	idx := structKeyIndex(fv.Type())
	out := make(map[string]any, len(idx))
	for key, i := range idx {
		out[key] = encodeValue(fv.Field(i))
	}
	return out
}
