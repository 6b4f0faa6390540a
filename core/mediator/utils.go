package mediator

import (
	"reflect"
	"sync"
)

// typeNameCache caches reflection results for type name lookups.
var typeNameCache sync.Map

// typeName derives a short name from a reflect.Type.
// Pointers are dereferenced, named types use their name, anything else its string form.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if name, ok := typeNameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var name string
	if t.Name() != "" {
		name = t.Name()
	} else {
		name = t.String()
	}

	typeNameCache.Store(original, name)
	return name
}

func typeNameOf[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

// TypeName returns the short type name of v, e.g. "CreateUser" for CreateUser{} or &CreateUser{}.
// It is the name behaviors see in Request.Name.
func TypeName(v any) string {
	return typeName(reflect.TypeOf(v))
}
