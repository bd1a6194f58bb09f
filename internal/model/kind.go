package model

import (
	"fmt"

	"github.com/danmuck/modelcodec/internal/codec"
)

// Kind is a model type with its Go type erased, for callers that pick the
// model at runtime by name.
type Kind interface {
	Name() string
	Fields() []string
	DefaultFormat() string
	// New returns a pointer to a default-valued instance.
	New() any
	// Sample returns a pointer to a representative instance.
	Sample() any
	Encode(f codec.Factory, v any) ([]byte, error)
	Decode(f codec.Factory, data []byte) (any, error)
	// Transcode decodes data with from and re-encodes the value with to.
	Transcode(from, to codec.Factory, data []byte) ([]byte, error)
}

type kind[M any] struct {
	schema *Schema[M]
	sample func() M
}

// KindOf erases the type of s. sample builds the instance returned by Sample;
// the schema defaults are used when it is nil.
func KindOf[M any](s *Schema[M], sample func() M) Kind {
	if sample == nil {
		sample = s.New
	}
	return &kind[M]{schema: s, sample: sample}
}

func (k *kind[M]) Name() string          { return k.schema.Name() }
func (k *kind[M]) Fields() []string      { return k.schema.FieldNames() }
func (k *kind[M]) DefaultFormat() string { return FormatName(k.schema.DefaultFormat()) }

func (k *kind[M]) New() any {
	m := k.schema.New()
	return &m
}

func (k *kind[M]) Sample() any {
	m := k.sample()
	return &m
}

func (k *kind[M]) Encode(f codec.Factory, v any) ([]byte, error) {
	switch m := v.(type) {
	case *M:
		return k.schema.EncodeBy(f, m)
	case M:
		return k.schema.EncodeBy(f, &m)
	default:
		return nil, fmt.Errorf("model: %s cannot encode %T", k.schema.Name(), v)
	}
}

func (k *kind[M]) Decode(f codec.Factory, data []byte) (any, error) {
	m, err := k.schema.DecodeBy(f, data)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (k *kind[M]) Transcode(from, to codec.Factory, data []byte) ([]byte, error) {
	m, err := k.schema.DecodeBy(from, data)
	if err != nil {
		return nil, err
	}
	return k.schema.EncodeBy(to, &m)
}
