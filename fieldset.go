package structview

import "math/bits"

// FieldSet holds a runtime-chosen subset of T's field identifiers as an
// ordinal-keyed bitset. Membership operations are O(1) and iteration is
// always in catalog declaration order, regardless of insertion order.
// Create instances with NewFieldSet or AllFields.
type FieldSet[T any] struct {
	words []uint64
}

// NewFieldSet returns a set holding exactly the supplied fields; duplicates
// collapse to a single membership.
func NewFieldSet[T any](fields ...Field[T]) *FieldSet[T] {
	aCatalog := mustCatalogFor[T]()
	ret := &FieldSet[T]{words: make([]uint64, aCatalog.words)}
	for _, field := range fields {
		ret.Insert(field)
	}
	return ret
}

// AllFields returns a set with every field of T selected.
func AllFields[T any]() *FieldSet[T] {
	aCatalog := mustCatalogFor[T]()
	ret := &FieldSet[T]{words: make([]uint64, aCatalog.words)}
	for i := 0; i < len(aCatalog.fields); i++ {
		ret.words[i>>6] |= 1 << (uint(i) & 63)
	}
	return ret
}

// Insert adds a field; inserting a present field is a no-op.
func (s *FieldSet[T]) Insert(field Field[T]) *FieldSet[T] {
	if word := field.ord >> 6; word < len(s.words) {
		s.words[word] |= 1 << (uint(field.ord) & 63)
	}
	return s
}

// Remove drops a field; removing an absent field is a no-op.
func (s *FieldSet[T]) Remove(field Field[T]) *FieldSet[T] {
	if word := field.ord >> 6; word < len(s.words) {
		s.words[word] &^= 1 << (uint(field.ord) & 63)
	}
	return s
}

// Contains reports field membership.
func (s *FieldSet[T]) Contains(field Field[T]) bool {
	return s.has(field.ord)
}

func (s *FieldSet[T]) has(ord int) bool {
	word := ord >> 6
	return word < len(s.words) && s.words[word]&(1<<(uint(ord)&63)) != 0
}

// Union returns a new set holding members of both sets.
func (s *FieldSet[T]) Union(other *FieldSet[T]) *FieldSet[T] {
	size := len(s.words)
	if other != nil && len(other.words) > size {
		size = len(other.words)
	}
	ret := &FieldSet[T]{words: make([]uint64, size)}
	copy(ret.words, s.words)
	if other != nil {
		for i := range other.words {
			ret.words[i] |= other.words[i]
		}
	}
	return ret
}

// Fields returns members in catalog declaration order.
func (s *FieldSet[T]) Fields() []Field[T] {
	var ret []Field[T]
	s.Each(func(field Field[T]) {
		ret = append(ret, field)
	})
	return ret
}

// Each visits members in catalog declaration order.
func (s *FieldSet[T]) Each(cb func(field Field[T])) {
	numField := len(mustCatalogFor[T]().fields)
	for i := 0; i < numField; i++ {
		if s.has(i) {
			cb(Field[T]{ord: i})
		}
	}
}

// Len returns the member count.
func (s *FieldSet[T]) Len() int {
	ret := 0
	for _, word := range s.words {
		ret += bits.OnesCount64(word)
	}
	return ret
}

// IsEmpty reports whether no field is selected.
func (s *FieldSet[T]) IsEmpty() bool {
	for _, word := range s.words {
		if word != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *FieldSet[T]) Clone() *FieldSet[T] {
	ret := &FieldSet[T]{words: make([]uint64, len(s.words))}
	copy(ret.words, s.words)
	return ret
}
