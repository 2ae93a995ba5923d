package structview

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"unsafe"

	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type (
	//catalog holds per struct type field metadata, built once per type
	catalog struct {
		rType  reflect.Type
		fields []fieldMeta
		names  []string
		keys   [][]byte
		byName map[string]int
		words  int

		mu       sync.RWMutex
		caseKeys map[text.CaseFormat]*namedKeys
	}

	fieldMeta struct {
		fieldName string
		name      string
		index     int
		explicit  bool
		omitEmpty bool
		custom    bool
		kind      reflect.Kind
		rType     reflect.Type
		xField    *xunsafe.Field
		appendFn  func(dst []byte, fieldPtr unsafe.Pointer) []byte
	}

	namedKeys struct {
		names []string
		keys  [][]byte
	}
)

var catalogs sync.Map //reflect.Type -> *catalog

func catalogOf(rType reflect.Type) (*catalog, error) {
	if rType == nil {
		return nil, fmt.Errorf("structview: supplied type was nil")
	}
	aStruct := ensureStruct(rType)
	if aStruct == nil {
		return nil, fmt.Errorf("structview: %s is not a struct type", rType)
	}
	if value, ok := catalogs.Load(aStruct); ok {
		return value.(*catalog), nil
	}
	built := newCatalog(aStruct)
	actual, _ := catalogs.LoadOrStore(aStruct, built)
	return actual.(*catalog), nil
}

func catalogFor[T any]() (*catalog, error) {
	return catalogOf(typeOf[T]())
}

func mustCatalogFor[T any]() *catalog {
	ret, err := catalogFor[T]()
	if err != nil {
		panic(err)
	}
	return ret
}

func newCatalog(aStruct reflect.Type) *catalog {
	numField := aStruct.NumField()
	ret := &catalog{
		rType:    aStruct,
		byName:   make(map[string]int, numField),
		caseKeys: map[text.CaseFormat]*namedKeys{},
	}
	for i := 0; i < numField; i++ {
		field := aStruct.Field(i)
		if field.PkgPath != "" { //unexported
			continue
		}
		tag := parseJSONTag(field.Name, field.Tag.Get("json"))
		if tag.Transient {
			continue
		}
		custom := hasCustomMarshaler(field.Type)
		meta := fieldMeta{
			fieldName: field.Name,
			name:      tag.Name,
			index:     len(ret.fields),
			explicit:  tag.Explicit,
			omitEmpty: tag.OmitEmpty,
			custom:    custom,
			kind:      field.Type.Kind(),
			rType:     field.Type,
			xField:    xunsafe.NewField(field),
		}
		if !custom {
			meta.appendFn = fastAppender(field.Type)
		}
		ret.byName[tag.Name] = meta.index
		if _, ok := ret.byName[field.Name]; !ok {
			ret.byName[field.Name] = meta.index
		}
		ret.names = append(ret.names, tag.Name)
		ret.keys = append(ret.keys, appendKey(nil, tag.Name))
		ret.fields = append(ret.fields, meta)
	}
	ret.words = (len(ret.fields) + 63) / 64
	return ret
}

// keysFor returns output names and precomputed key literals for the case format.
func (c *catalog) keysFor(caseFormat text.CaseFormat) ([]string, [][]byte) {
	if caseFormat == text.CaseFormatUndefined {
		return c.names, c.keys
	}
	c.mu.RLock()
	cached, ok := c.caseKeys[caseFormat]
	c.mu.RUnlock()
	if ok {
		return cached.names, cached.keys
	}
	built := &namedKeys{
		names: make([]string, len(c.fields)),
		keys:  make([][]byte, len(c.fields)),
	}
	for i := range c.fields {
		field := &c.fields[i]
		name := field.name
		if !field.explicit {
			name = formatName(field.fieldName, caseFormat)
		}
		built.names[i] = name
		built.keys[i] = appendKey(nil, name)
	}
	c.mu.Lock()
	if cached, ok = c.caseKeys[caseFormat]; !ok {
		c.caseKeys[caseFormat] = built
		cached = built
	}
	c.mu.Unlock()
	return cached.names, cached.keys
}

func formatName(fieldName string, caseFormat text.CaseFormat) string {
	if fieldName == "ID" {
		switch caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(fieldName)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(fieldName, caseFormat)
}

func appendKey(dst []byte, name string) []byte {
	dst = strconv.AppendQuote(dst, name)
	return append(dst, ':')
}
