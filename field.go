package structview

import (
	"fmt"
	"reflect"
	"strings"
)

// Field identifies one serializable field of record type T. The type
// parameter scopes identifiers per record type: a Field of one type cannot
// be used with a View or FieldSet of another.
type Field[T any] struct {
	ord int
}

// Index returns the field declaration-order rank within the catalog.
func (f Field[T]) Index() int {
	return f.ord
}

// Name returns the serialized field name.
func (f Field[T]) Name() string {
	aCatalog := mustCatalogFor[T]()
	if f.ord >= len(aCatalog.fields) {
		return ""
	}
	return aCatalog.fields[f.ord].name
}

// FieldName returns the Go struct field name.
func (f Field[T]) FieldName() string {
	aCatalog := mustCatalogFor[T]()
	if f.ord >= len(aCatalog.fields) {
		return ""
	}
	return aCatalog.fields[f.ord].fieldName
}

func (f Field[T]) String() string {
	return f.Name()
}

// FieldsOf returns the closed, declaration-ordered field enumeration of T.
// The result is deterministic and identical on every call. FieldsOf panics
// if T is not a struct type; use FieldOf to surface that as an error.
func FieldsOf[T any]() []Field[T] {
	aCatalog := mustCatalogFor[T]()
	ret := make([]Field[T], len(aCatalog.fields))
	for i := range ret {
		ret[i] = Field[T]{ord: i}
	}
	return ret
}

// FieldOf returns the field identified by its serialized or Go name.
func FieldOf[T any](name string) (Field[T], error) {
	aCatalog, err := catalogFor[T]()
	if err != nil {
		return Field[T]{}, err
	}
	index, ok := aCatalog.byName[name]
	if !ok {
		return Field[T]{}, &UnknownFieldError{Name: name, Type: aCatalog.rType}
	}
	return Field[T]{ord: index}, nil
}

// MustFieldOf is FieldOf that panics on unknown name, intended for
// package-level field identifier declarations.
func MustFieldOf[T any](name string) Field[T] {
	ret, err := FieldOf[T](name)
	if err != nil {
		panic(err)
	}
	return ret
}

// ParseFields resolves a comma separated field name list; surrounding
// whitespace per item is ignored, duplicates collapse on insertion.
func ParseFields[T any](names string) ([]Field[T], error) {
	var ret []Field[T]
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		field, err := FieldOf[T](name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, field)
	}
	return ret, nil
}

// UnknownFieldError reports a field name absent from a type's catalog.
type UnknownFieldError struct {
	Name string
	Type reflect.Type
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("structview: unknown field %q in %s", e.Name, e.Type)
}
