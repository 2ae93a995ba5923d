package structview

import (
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

var byteType = reflect.TypeOf(byte(0))

func ensureStruct(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr:
		return ensureStruct(t.Elem())
	}
	return nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
