// Package reflectutils walks and initializes structs through reflection.
package reflectutils

import (
	"reflect"

	"github.com/a-peyrard/inflector/fn"
)

// FieldVisitor is called for every value reached by WalkStruct, with its type and the path of field names leading to it.
type FieldVisitor = fn.TriConsumer[reflect.Value, reflect.Type, []string]

// WalkStruct applies a visitor on the given element and then on all its exported fields, recursively.
//
// The visitor is called before descending, so it can allocate a nil struct pointer that will be walked next.
// A nil pointer to a struct type already being walked (recursive type) is neither visited nor walked, non nil
// ones are walked, so the element must not contain pointer cycles.
func WalkStruct[T any](element T, visitor FieldVisitor) {
	walkStructInternal(reflect.ValueOf(element), nil, visitor, map[reflect.Type]int{})
}

func walkStructInternal(val reflect.Value, path []string, visitor FieldVisitor, walking map[reflect.Type]int) {
	if !val.IsValid() {
		return
	}
	if val.Kind() == reflect.Pointer && val.IsNil() && walking[val.Type().Elem()] > 0 {
		return
	}
	visitor(val, val.Type(), path)

	val = Deref(val)
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	walking[typ]++
	defer func() { walking[typ]-- }()

	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}
		fieldPath := append(path[:len(path):len(path)], structField.Name)
		walkStructInternal(val.Field(i), fieldPath, visitor, walking)
	}
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// CreateNilStructs creates new struct instances for nil struct pointers
func CreateNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer &&
		val.IsNil() &&
		val.CanSet() &&
		typ.Elem().Kind() == reflect.Struct {

		val.Set(reflect.New(typ.Elem()))
	}
}

// CreateEmptySlices replaces nil slices by empty ones.
func CreateEmptySlices(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Slice && val.IsNil() && val.CanSet() {
		val.Set(reflect.MakeSlice(typ, 0, 0))
	}
}
