// Package model binds struct types to codecs through explicit field tables.
//
// A model type declares its fields once in a Schema. The schema is built
// lazily on first use and is immutable afterwards, so every instance and every
// codec sees the same field order.
package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/danmuck/modelcodec/internal/codec"
	"github.com/rs/zerolog/log"
)

// Descriptor is one registered field with its Go type erased.
type Descriptor[M any] interface {
	Name() string
	// Dump writes the field of m through e.
	Dump(m *M, e codec.Encoder) error
	// Load reads the field of m from d.
	Load(m *M, d codec.Decoder) error
}

type field[M, T any] struct {
	name string
	typ  Type[T]
	get  func(*M) *T
}

func (f *field[M, T]) Name() string { return f.name }

func (f *field[M, T]) Dump(m *M, e codec.Encoder) error {
	return f.typ.encode(e, f.get(m))
}

func (f *field[M, T]) Load(m *M, d codec.Decoder) error {
	return f.typ.decode(d, f.get(m))
}

// Registrar collects fields while a schema is being defined. It is only valid
// inside the define callback passed to NewSchema.
type Registrar[M any] struct {
	fields []Descriptor[M]
	names  map[string]struct{}
	sealed bool
}

// Field registers a field under name. get must return the address of the field
// inside the given instance. Registration order is wire order.
//
// Field panics on an empty, duplicate or unquotable name, or when called after
// the schema was built: these are definition errors, not data errors.
func Field[M, T any](r *Registrar[M], name string, typ Type[T], get func(*M) *T) {
	if r.sealed {
		panic(fmt.Sprintf("model: field %q registered after schema was built", name))
	}
	if name == "" || strings.ContainsAny(name, "\"\\") {
		panic(fmt.Sprintf("model: invalid field name %q", name))
	}
	if get == nil {
		panic(fmt.Sprintf("model: field %q has no accessor", name))
	}
	if _, ok := r.names[name]; ok {
		panic(fmt.Sprintf("model: duplicate field %q", name))
	}
	r.names[name] = struct{}{}
	r.fields = append(r.fields, &field[M, T]{name: name, typ: typ, get: get})
}

// Schema is the field table of model type M plus its defaults and default
// format.
type Schema[M any] struct {
	name     string
	define   func(*Registrar[M])
	defaults func(*M)
	format   codec.Factory

	once   sync.Once
	fields []Descriptor[M]
}

// Option configures a Schema.
type Option[M any] func(*Schema[M])

// WithDefaults sets the initializer applied by New before a decode.
func WithDefaults[M any](fn func(*M)) Option[M] {
	return func(s *Schema[M]) {
		s.defaults = fn
	}
}

// WithFormat sets the codec used by Encode and Decode. Literal is used when
// unset.
func WithFormat[M any](f codec.Factory) Option[M] {
	return func(s *Schema[M]) {
		s.format = f
	}
}

// NewSchema declares model type M. define runs once, on first use.
func NewSchema[M any](name string, define func(r *Registrar[M]), opts ...Option[M]) *Schema[M] {
	s := &Schema[M]{name: name, define: define}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the model name used in error messages.
func (s *Schema[M]) Name() string {
	return s.name
}

// Fields returns the ordered field table, building it on first call.
func (s *Schema[M]) Fields() []Descriptor[M] {
	s.once.Do(func() {
		r := &Registrar[M]{names: make(map[string]struct{})}
		if s.define != nil {
			s.define(r)
		}
		r.sealed = true
		s.fields = r.fields
		log.Debug().Str("schema", s.name).Int("fields", len(s.fields)).Msg("schema built")
	})
	return s.fields
}

// FieldNames returns the field names in declaration order.
func (s *Schema[M]) FieldNames() []string {
	fields := s.Fields()
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name())
	}
	return out
}

// New returns a default-valued instance.
func (s *Schema[M]) New() M {
	var m M
	if s.defaults != nil {
		s.defaults(&m)
	}
	return m
}

// DefaultFormat returns the codec factory used by Encode and Decode.
func (s *Schema[M]) DefaultFormat() codec.Factory {
	if s.format == nil {
		return Literal
	}
	return s.format
}

// EncodeTo writes m into a caller-held encoder.
func (s *Schema[M]) EncodeTo(e codec.Encoder, m *M) error {
	fields := s.Fields()
	if err := e.BeginModel(len(fields)); err != nil {
		return codec.Wrap(err, s.name)
	}
	for i, f := range fields {
		if err := e.NextField(i, f.Name()); err != nil {
			return codec.Wrap(err, s.name+"."+f.Name())
		}
		if err := f.Dump(m, e); err != nil {
			return codec.Wrap(err, s.name+"."+f.Name())
		}
	}
	if err := e.EndModel(); err != nil {
		return codec.Wrap(err, s.name)
	}
	return nil
}

// DecodeFrom reads one model from a caller-held decoder into m. Trailing data
// is left for the caller, so several values may share one buffer.
//
// On failure m is left partially populated: fields before the failing one hold
// decoded values, the rest keep what they held before the call.
func (s *Schema[M]) DecodeFrom(d codec.Decoder, m *M) error {
	if err := d.DecodeModel(); err != nil {
		return codec.Wrap(err, s.name)
	}
	for i, f := range s.Fields() {
		if err := d.DecodeField(i, f.Name()); err != nil {
			return codec.Wrap(err, s.name+"."+f.Name())
		}
		if err := f.Load(m, d); err != nil {
			return codec.Wrap(err, s.name+"."+f.Name())
		}
	}
	if err := d.EndDecodeModel(); err != nil {
		return codec.Wrap(err, s.name)
	}
	return nil
}

// EncodeBy encodes m with a fresh codec from f and returns the buffer.
func (s *Schema[M]) EncodeBy(f codec.Factory, m *M) ([]byte, error) {
	c := f()
	if err := s.EncodeTo(c, m); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// DecodeInto decodes data with a fresh codec from f into m and rejects
// trailing data. m follows the partial population rule of DecodeFrom.
func (s *Schema[M]) DecodeInto(f codec.Factory, data []byte, m *M) error {
	c := f()
	c.Reset(data)
	if err := s.DecodeFrom(c, m); err != nil {
		log.Debug().Str("schema", s.name).Str("format", c.Format()).Err(err).Msg("decode failed")
		return err
	}
	return c.Finish()
}

// DecodeBy decodes data into a default-valued instance. The zero M is
// returned with any error.
func (s *Schema[M]) DecodeBy(f codec.Factory, data []byte) (M, error) {
	m := s.New()
	if err := s.DecodeInto(f, data, &m); err != nil {
		var zero M
		return zero, err
	}
	return m, nil
}
