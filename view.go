package structview

import (
	"fmt"

	"github.com/viant/xunsafe"
)

// View pairs a borrowed record with an owned field selection. A freshly
// constructed View selects all fields, so serializing it unmodified yields
// the same output as serializing the bare record. Narrow the selection with
// WithFields or a FieldSet; selection mutators replace, not union.
//
// Serializing a View is a pure read: a View may be serialized repeatedly
// and re-narrowed between serializations. The View borrows the record and
// must not outlive it; concurrent serialization of the same record is safe
// only while nothing writes to the record.
type View[T any] struct {
	value   *T
	catalog *catalog
	set     *FieldSet[T]
	options Options
}

// AsView wraps a record with all fields selected. It panics when T is not
// a struct type (the catalog cannot be derived).
func AsView[T any](value *T, opts ...Option) *View[T] {
	return &View[T]{
		value:   value,
		catalog: mustCatalogFor[T](),
		set:     AllFields[T](),
		options: resolveOptions(opts),
	}
}

// WithFields replaces the selection with exactly the supplied fields;
// duplicates collapse and order is irrelevant. No fields selects nothing.
func (v *View[T]) WithFields(fields ...Field[T]) *View[T] {
	v.set = NewFieldSet[T](fields...)
	return v
}

// WithFieldSet replaces the selection with the supplied set; nil selects
// nothing. The View takes ownership of the set.
func (v *View[T]) WithFieldSet(set *FieldSet[T]) *View[T] {
	if set == nil {
		set = NewFieldSet[T]()
	}
	v.set = set
	return v
}

// WithNamedFields replaces the selection resolving each name via FieldOf.
func (v *View[T]) WithNamedFields(names ...string) (*View[T], error) {
	set := NewFieldSet[T]()
	for _, name := range names {
		field, err := FieldOf[T](name)
		if err != nil {
			return nil, err
		}
		set.Insert(field)
	}
	v.set = set
	return v, nil
}

// AddFields extends the current selection.
func (v *View[T]) AddFields(fields ...Field[T]) *View[T] {
	for _, field := range fields {
		v.set.Insert(field)
	}
	return v
}

// ExcludeFields shrinks the current selection.
func (v *View[T]) ExcludeFields(fields ...Field[T]) *View[T] {
	for _, field := range fields {
		v.set.Remove(field)
	}
	return v
}

// FieldSet returns the owned selection.
func (v *View[T]) FieldSet() *FieldSet[T] {
	return v.set
}

// Value returns the borrowed record.
func (v *View[T]) Value() *T {
	return v.value
}

// MarshalJSON implements json.Marshaler: it emits exactly the selected
// fields, each once, in catalog declaration order, with per-field bytes
// identical to Marshal of the full record. An empty selection yields {}.
// The first field encoding failure aborts and propagates.
func (v *View[T]) MarshalJSON() ([]byte, error) {
	if v == nil || v.value == nil {
		return []byte("null"), nil
	}
	e := newEncoder(&v.options)
	sess := acquireSession()
	defer releaseSession(sess)
	out, err := e.appendObject(sess.buf, v.catalog, xunsafe.AsPointer(v.value), v.set.words)
	if err != nil {
		return nil, err
	}
	sess.buf = out[:0]
	return append([]byte(nil), out...), nil
}

// FieldSink receives filtered record fields from a View in catalog
// declaration order, for structured outputs other than JSON.
type FieldSink interface {
	BeginObject() error
	WriteField(name string, value interface{}) error
	EndObject() error
}

// EncodeTo forwards the selected fields to the sink: BeginObject, then one
// WriteField per selected field with the live field value, then EndObject.
// The first sink failure aborts and propagates.
func (v *View[T]) EncodeTo(sink FieldSink) error {
	if v == nil || v.value == nil {
		return fmt.Errorf("structview: view holds no record")
	}
	names, _ := v.catalog.keysFor(v.options.CaseFormat)
	ptr := xunsafe.AsPointer(v.value)
	if err := sink.BeginObject(); err != nil {
		return err
	}
	for i := range v.catalog.fields {
		if !v.set.has(i) {
			continue
		}
		field := &v.catalog.fields[i]
		if err := sink.WriteField(names[i], field.xField.Value(ptr)); err != nil {
			return err
		}
	}
	return sink.EndObject()
}

// AsMap collects the selected fields into a map keyed by output name.
func (v *View[T]) AsMap() (map[string]interface{}, error) {
	sink := &mapSink{}
	if err := v.EncodeTo(sink); err != nil {
		return nil, err
	}
	return sink.values, nil
}

type mapSink struct {
	values map[string]interface{}
}

func (s *mapSink) BeginObject() error {
	s.values = map[string]interface{}{}
	return nil
}

func (s *mapSink) WriteField(name string, value interface{}) error {
	s.values[name] = value
	return nil
}

func (s *mapSink) EndObject() error { return nil }
