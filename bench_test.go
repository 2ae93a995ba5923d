package structview

import (
	"testing"
)

type benchRecord struct {
	Id     string   `json:"id"`
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Active bool     `json:"active"`
	Tags   []string `json:"tags"`
}

var benchValue = benchRecord{Id: "a1", Name: "Widget", Count: 42, Active: true, Tags: []string{"x", "y", "z"}}

func BenchmarkMarshal(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(&benchValue); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkView_MarshalJSON(b *testing.B) {
	view := AsView(&benchValue).WithFields(
		MustFieldOf[benchRecord]("id"),
		MustFieldOf[benchRecord]("name"),
	)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := view.MarshalJSON(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkView_MarshalJSONAllFields(b *testing.B) {
	view := AsView(&benchValue)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := view.MarshalJSON(); err != nil {
			b.Fatal(err)
		}
	}
}
