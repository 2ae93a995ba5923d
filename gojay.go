package structview

import (
	"reflect"

	"github.com/francoispqt/gojay"
	"github.com/viant/xunsafe"
)

// MarshalJSONObject implements gojay.MarshalerJSONObject. Scalar fields use
// typed encoder keys; composite fields are pre-encoded and embedded. The
// gojay marshaler contract carries no error return, so a composite field
// that fails to encode is emitted as null there; use MarshalJSON or
// EncodeTo when encode errors must propagate.
func (v *View[T]) MarshalJSONObject(enc *gojay.Encoder) {
	if v.IsNil() {
		return
	}
	names, _ := v.catalog.keysFor(v.options.CaseFormat)
	e := newEncoder(&v.options)
	ptr := xunsafe.AsPointer(v.value)
	for i := range v.catalog.fields {
		if !v.set.has(i) {
			continue
		}
		field := &v.catalog.fields[i]
		fieldPtr := field.xField.Pointer(ptr)
		if field.omitEmpty && isEmptyField(field, fieldPtr) {
			continue
		}
		name := names[i]
		if !field.custom {
			switch field.kind {
			case reflect.String:
				enc.StringKey(name, *(*string)(fieldPtr))
				continue
			case reflect.Bool:
				enc.BoolKey(name, *(*bool)(fieldPtr))
				continue
			case reflect.Int:
				enc.IntKey(name, *(*int)(fieldPtr))
				continue
			case reflect.Int64:
				enc.Int64Key(name, *(*int64)(fieldPtr))
				continue
			case reflect.Float64:
				enc.FloatKey(name, *(*float64)(fieldPtr))
				continue
			}
		}
		data, err := e.appendField(nil, field, fieldPtr)
		if err != nil {
			enc.NullKey(name)
			continue
		}
		embedded := gojay.EmbeddedJSON(data)
		enc.AddEmbeddedJSONKey(name, &embedded)
	}
}

// IsNil implements gojay.MarshalerJSONObject.
func (v *View[T]) IsNil() bool {
	return v == nil || v.value == nil
}
