package structview

import (
	"encoding"
	"encoding/base64"
	stdjson "encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"time"
	"unsafe"

	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type encoder struct {
	caseFormat   text.CaseFormat
	timeLayout   string
	nilSliceNull bool
}

func newEncoder(options *Options) encoder {
	layout := options.TimeLayout
	if layout == "" {
		layout = time.RFC3339
	}
	return encoder{
		caseFormat:   options.CaseFormat,
		timeLayout:   layout,
		nilSliceNull: options.NilSlicePolicy == NilSliceAsNull,
	}
}

type encoderSession struct {
	buf []byte
}

var sessionPool = sync.Pool{New: func() interface{} { return &encoderSession{buf: make([]byte, 0, 256)} }}

func acquireSession() *encoderSession {
	sess := sessionPool.Get().(*encoderSession)
	sess.buf = sess.buf[:0]
	return sess
}

func releaseSession(sess *encoderSession) {
	const maxPooledCap = 64 << 10
	if cap(sess.buf) > maxPooledCap {
		sess.buf = make([]byte, 0, 256)
	}
	sess.buf = sess.buf[:0]
	sessionPool.Put(sess)
}

var (
	jsonMarshalerType = reflect.TypeOf((*stdjson.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Marshal serializes value with this package's encoding: struct fields in
// declaration order, field bytes identical to what a full-selection View
// of the same record produces.
func Marshal(value interface{}, opts ...Option) ([]byte, error) {
	options := resolveOptions(opts)
	e := newEncoder(&options)
	sess := acquireSession()
	defer releaseSession(sess)
	out, err := e.marshal(sess.buf, value)
	if err != nil {
		return nil, err
	}
	sess.buf = out[:0]
	return append([]byte(nil), out...), nil
}

func (e *encoder) marshal(dst []byte, value interface{}) ([]byte, error) {
	if value == nil {
		return append(dst, "null"...), nil
	}
	rt := reflect.TypeOf(value)
	if rt.Kind() == reflect.Ptr && rt.Elem().Kind() == reflect.Struct && rt.Elem() != timeType && !hasCustomMarshaler(rt.Elem()) {
		ptr := xunsafe.AsPointer(value)
		if ptr == nil {
			return append(dst, "null"...), nil
		}
		aCatalog, err := catalogOf(rt.Elem())
		if err != nil {
			return nil, err
		}
		return e.appendObject(dst, aCatalog, ptr, nil)
	}
	return e.appendValue(dst, reflect.ValueOf(value))
}

// appendObject writes fields selected by the bitset in catalog order; a nil
// bitset selects all fields.
func (e *encoder) appendObject(dst []byte, c *catalog, ptr unsafe.Pointer, selected []uint64) ([]byte, error) {
	_, keys := c.keysFor(e.caseFormat)
	dst = append(dst, '{')
	counter := 0
	for i := range c.fields {
		if selected != nil && (i>>6 >= len(selected) || selected[i>>6]&(1<<(uint(i)&63)) == 0) {
			continue
		}
		field := &c.fields[i]
		fieldPtr := field.xField.Pointer(ptr)
		if field.omitEmpty && isEmptyField(field, fieldPtr) {
			continue
		}
		if counter > 0 {
			dst = append(dst, ',')
		}
		counter++
		dst = append(dst, keys[i]...)
		var err error
		if dst, err = e.appendField(dst, field, fieldPtr); err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func (e *encoder) appendField(dst []byte, field *fieldMeta, fieldPtr unsafe.Pointer) ([]byte, error) {
	if field.appendFn != nil {
		return field.appendFn(dst, fieldPtr), nil
	}
	return e.appendValue(dst, reflect.NewAt(field.rType, fieldPtr).Elem())
}

func (e *encoder) appendValue(dst []byte, rv reflect.Value) ([]byte, error) {
	if !rv.IsValid() {
		return append(dst, "null"...), nil
	}
	if hasCustomMarshaler(rv.Type()) {
		if handled, out, err := appendCustomMarshaler(dst, rv); handled || err != nil {
			return out, err
		}
	}
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return append(dst, "null"...), nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if rv.Type() == timeType {
			return strconv.AppendQuote(dst, rv.Interface().(time.Time).Format(e.timeLayout)), nil
		}
		if hasCustomMarshaler(rv.Type()) {
			if handled, out, err := appendCustomMarshaler(dst, rv); handled || err != nil {
				return out, err
			}
		}
		aCatalog, err := catalogOf(rv.Type())
		if err != nil {
			return nil, err
		}
		return e.appendObject(dst, aCatalog, structPointer(rv), nil)
	case reflect.Slice, reflect.Array:
		return e.appendSequence(dst, rv)
	case reflect.Map:
		return e.appendMap(dst, rv)
	case reflect.String:
		return strconv.AppendQuote(dst, rv.String()), nil
	case reflect.Bool:
		if rv.Bool() {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(dst, rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.AppendUint(dst, rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.AppendFloat(dst, rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.AppendFloat(dst, rv.Float(), 'g', -1, 64), nil
	default:
		return nil, fmt.Errorf("structview: unsupported marshal kind: %s", rv.Kind())
	}
}

func (e *encoder) appendSequence(dst []byte, rv reflect.Value) ([]byte, error) {
	if rv.Kind() == reflect.Slice {
		if rv.IsNil() {
			if e.nilSliceNull {
				return append(dst, "null"...), nil
			}
			return append(dst, '[', ']'), nil
		}
		if rv.Type().Elem() == byteType {
			return appendBase64(dst, rv), nil
		}
	}
	dst = append(dst, '[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		if dst, err = e.appendValue(dst, rv.Index(i)); err != nil {
			return nil, err
		}
	}
	return append(dst, ']'), nil
}

func appendBase64(dst []byte, rv reflect.Value) []byte {
	data := rv.Bytes()
	dst = append(dst, '"')
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(encoded, data)
	dst = append(dst, encoded...)
	return append(dst, '"')
}

// appendMap writes entries sorted by key so output is deterministic.
func (e *encoder) appendMap(dst []byte, rv reflect.Value) ([]byte, error) {
	if rv.IsNil() {
		return append(dst, "null"...), nil
	}
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	dst = append(dst, '{')
	for i := range entries {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendKey(dst, entries[i].key)
		var err error
		if dst, err = e.appendValue(dst, entries[i].value); err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func mapKeyString(key reflect.Value) (string, error) {
	if tm, ok := key.Interface().(encoding.TextMarshaler); ok {
		data, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	switch key.Kind() {
	case reflect.String:
		return key.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(key.Uint(), 10), nil
	}
	return "", fmt.Errorf("structview: unsupported map key kind: %s", key.Kind())
}

func appendCustomMarshaler(dst []byte, rv reflect.Value) (bool, []byte, error) {
	if !rv.IsValid() {
		return false, dst, nil
	}
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return false, dst, nil
	}
	if rv.CanInterface() {
		if m, ok := rv.Interface().(stdjson.Marshaler); ok {
			data, err := m.MarshalJSON()
			if err != nil {
				return true, nil, err
			}
			return true, append(dst, data...), nil
		}
		if tm, ok := rv.Interface().(encoding.TextMarshaler); ok {
			data, err := tm.MarshalText()
			if err != nil {
				return true, nil, err
			}
			return true, strconv.AppendQuote(dst, string(data)), nil
		}
	}
	if rv.Kind() != reflect.Ptr && rv.CanAddr() {
		return appendCustomMarshaler(dst, rv.Addr())
	}
	return false, dst, nil
}

var customTypes sync.Map //reflect.Type -> bool

func hasCustomMarshaler(rt reflect.Type) bool {
	if isTimeTypeOrPtr(rt) {
		return false
	}
	if cached, ok := customTypes.Load(rt); ok {
		return cached.(bool)
	}
	has := rt.Implements(jsonMarshalerType) || rt.Implements(textMarshalerType)
	if !has && rt.Kind() != reflect.Ptr {
		prt := reflect.PointerTo(rt)
		has = prt.Implements(jsonMarshalerType) || prt.Implements(textMarshalerType)
	}
	customTypes.Store(rt, has)
	return has
}

func isTimeTypeOrPtr(rt reflect.Type) bool {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt == timeType
}

// structPointer returns an addressable pointer to rv, copying when rv is not
// addressable (e.g. obtained from an interface).
func structPointer(rv reflect.Value) unsafe.Pointer {
	if rv.CanAddr() {
		return rv.Addr().UnsafePointer()
	}
	holder := reflect.New(rv.Type())
	holder.Elem().Set(rv)
	return holder.UnsafePointer()
}

func fastAppender(rType reflect.Type) func(dst []byte, fieldPtr unsafe.Pointer) []byte {
	switch rType.Kind() {
	case reflect.String:
		return func(dst []byte, fieldPtr unsafe.Pointer) []byte {
			return strconv.AppendQuote(dst, *(*string)(fieldPtr))
		}
	case reflect.Bool:
		return func(dst []byte, fieldPtr unsafe.Pointer) []byte {
			if *(*bool)(fieldPtr) {
				return append(dst, "true"...)
			}
			return append(dst, "false"...)
		}
	case reflect.Int:
		return func(dst []byte, fieldPtr unsafe.Pointer) []byte {
			return strconv.AppendInt(dst, int64(*(*int)(fieldPtr)), 10)
		}
	case reflect.Int64:
		return func(dst []byte, fieldPtr unsafe.Pointer) []byte {
			return strconv.AppendInt(dst, *(*int64)(fieldPtr), 10)
		}
	case reflect.Float64:
		return func(dst []byte, fieldPtr unsafe.Pointer) []byte {
			return strconv.AppendFloat(dst, *(*float64)(fieldPtr), 'g', -1, 64)
		}
	}
	return nil
}

func isEmptyField(field *fieldMeta, fieldPtr unsafe.Pointer) bool {
	return isEmptyValue(reflect.NewAt(field.rType, fieldPtr).Elem())
}

func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	}
	return false
}
