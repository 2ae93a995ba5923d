package structview

import (
	"time"

	"github.com/viant/tagly/format/text"
)

// Option mutates encoding options.
type Option interface{ apply(*Options) }

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// NilSlicePolicy controls how nil slices are encoded.
type NilSlicePolicy int

const (
	NilSliceAsNull NilSlicePolicy = iota
	NilSliceAsEmpty
)

// Options define encoding behavior shared by Marshal and View.
type Options struct {
	CaseFormat     text.CaseFormat
	TimeLayout     string
	NilSlicePolicy NilSlicePolicy
}

// WithCaseFormat formats output names of fields without an explicit tag name.
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) { o.CaseFormat = caseFormat })
}

// WithTimeLayout overrides the time.Time output layout.
func WithTimeLayout(layout string) Option {
	return optionFn(func(o *Options) { o.TimeLayout = layout })
}

// WithNilSlicePolicy overrides nil slice encoding.
func WithNilSlicePolicy(policy NilSlicePolicy) Option {
	return optionFn(func(o *Options) { o.NilSlicePolicy = policy })
}

func defaultOptions() Options {
	return Options{
		CaseFormat:     text.CaseFormatUndefined,
		TimeLayout:     time.RFC3339,
		NilSlicePolicy: NilSliceAsNull,
	}
}

func resolveOptions(opts []Option) Options {
	result := defaultOptions()
	for _, opt := range opts {
		opt.apply(&result)
	}
	return result
}
