package structview

import (
	"testing"

	"github.com/francoispqt/gojay"
	"github.com/stretchr/testify/assert"
)

func TestView_MarshalJSONObject(t *testing.T) {
	type metrics struct {
		Count int      `json:"count"`
		Total int64    `json:"total"`
		Ratio float64  `json:"ratio"`
		On    bool     `json:"on"`
		Label string   `json:"label"`
		Tags  []string `json:"tags"`
	}
	value := metrics{Count: 3, Total: 9, Ratio: 0.5, On: true, Label: "a", Tags: []string{"x"}}

	var testCases = []struct {
		description string
		view        func() *View[metrics]
		expect      string
	}{
		{
			description: "all fields",
			view: func() *View[metrics] {
				return AsView(&value)
			},
			expect: `{"count":3,"total":9,"ratio":0.5,"on":true,"label":"a","tags":["x"]}`,
		},
		{
			description: "scalar subset uses typed keys",
			view: func() *View[metrics] {
				return AsView(&value).WithFields(MustFieldOf[metrics]("label"), MustFieldOf[metrics]("count"))
			},
			expect: `{"count":3,"label":"a"}`,
		},
		{
			description: "composite field embedded",
			view: func() *View[metrics] {
				return AsView(&value).WithFields(MustFieldOf[metrics]("tags"))
			},
			expect: `{"tags":["x"]}`,
		},
	}

	for _, testCase := range testCases {
		actual, err := gojay.MarshalJSONObject(testCase.view())
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestView_GojayMatchesMarshalJSON(t *testing.T) {
	view := AsView(&testProduct).WithFields(MustFieldOf[Product]("id"), MustFieldOf[Product]("tags"))
	expect, err := view.MarshalJSON()
	assert.Nil(t, err)
	actual, err := gojay.MarshalJSONObject(view)
	assert.Nil(t, err)
	assert.Equal(t, string(expect), string(actual))
}
