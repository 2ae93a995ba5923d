package structview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldSet(t *testing.T) {
	id := MustFieldOf[Product]("id")
	name := MustFieldOf[Product]("name")
	tags := MustFieldOf[Product]("tags")

	var testCases = []struct {
		description string
		set         func() *FieldSet[Product]
		expect      []string
	}{
		{
			description: "empty set",
			set: func() *FieldSet[Product] {
				return NewFieldSet[Product]()
			},
			expect: nil,
		},
		{
			description: "duplicates collapse",
			set: func() *FieldSet[Product] {
				return NewFieldSet(id, id, id)
			},
			expect: []string{"id"},
		},
		{
			description: "iteration in declaration order regardless of insertion",
			set: func() *FieldSet[Product] {
				return NewFieldSet[Product]().Insert(tags).Insert(id)
			},
			expect: []string{"id", "tags"},
		},
		{
			description: "insert is idempotent",
			set: func() *FieldSet[Product] {
				return NewFieldSet(name).Insert(name)
			},
			expect: []string{"name"},
		},
		{
			description: "remove absent member is a no-op",
			set: func() *FieldSet[Product] {
				return NewFieldSet(id).Remove(tags)
			},
			expect: []string{"id"},
		},
		{
			description: "union",
			set: func() *FieldSet[Product] {
				return NewFieldSet(tags).Union(NewFieldSet(id))
			},
			expect: []string{"id", "tags"},
		},
		{
			description: "all fields",
			set: func() *FieldSet[Product] {
				return AllFields[Product]()
			},
			expect: []string{"id", "name", "tags"},
		},
	}

	for _, testCase := range testCases {
		set := testCase.set()
		var names []string
		for _, field := range set.Fields() {
			names = append(names, field.Name())
		}
		assert.EqualValues(t, testCase.expect, names, testCase.description)
		assert.Equal(t, len(testCase.expect), set.Len(), testCase.description)
		assert.Equal(t, len(testCase.expect) == 0, set.IsEmpty(), testCase.description)
	}
}

func TestFieldSet_Contains(t *testing.T) {
	id := MustFieldOf[Product]("id")
	name := MustFieldOf[Product]("name")
	set := NewFieldSet(id)
	assert.True(t, set.Contains(id))
	assert.False(t, set.Contains(name))
	set.Remove(id)
	assert.False(t, set.Contains(id))
}

func TestFieldSet_UnionLeavesOperandsIntact(t *testing.T) {
	id := MustFieldOf[Product]("id")
	name := MustFieldOf[Product]("name")
	left := NewFieldSet(id)
	right := NewFieldSet(name)
	union := left.Union(right)
	assert.Equal(t, 2, union.Len())
	assert.Equal(t, 1, left.Len())
	assert.Equal(t, 1, right.Len())
}

func TestFieldSet_Clone(t *testing.T) {
	id := MustFieldOf[Product]("id")
	name := MustFieldOf[Product]("name")
	original := NewFieldSet(id)
	clone := original.Clone()
	clone.Insert(name)
	assert.Equal(t, 1, original.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestFieldSet_WideStruct(t *testing.T) {
	type wide struct {
		F00, F01, F02, F03, F04, F05, F06, F07, F08, F09 int
		F10, F11, F12, F13, F14, F15, F16, F17, F18, F19 int
		F20, F21, F22, F23, F24, F25, F26, F27, F28, F29 int
		F30, F31, F32, F33, F34, F35, F36, F37, F38, F39 int
		F40, F41, F42, F43, F44, F45, F46, F47, F48, F49 int
		F50, F51, F52, F53, F54, F55, F56, F57, F58, F59 int
		F60, F61, F62, F63, F64, F65, F66, F67, F68, F69 int
	}
	fields := FieldsOf[wide]()
	assert.Equal(t, 70, len(fields))
	set := NewFieldSet(fields[0], fields[63], fields[64], fields[69])
	assert.Equal(t, 4, set.Len())
	assert.True(t, set.Contains(fields[64]), "membership across word boundary")
	var ranks []int
	set.Each(func(field Field[wide]) {
		ranks = append(ranks, field.Index())
	})
	assert.EqualValues(t, []int{0, 63, 64, 69}, ranks)
}
