package model

import "github.com/danmuck/modelcodec/internal/codec"

// Model is implemented by pointers to model types. Schema must not depend on
// the receiver's contents; it is also called on a zero value to find the
// schema before decoding.
type Model[M any] interface {
	*M
	Schema() *Schema[M]
}

func schemaOf[M any, P Model[M]]() *Schema[M] {
	var zero M
	return P(&zero).Schema()
}

// Encode serializes m with its schema's default format.
func Encode[M any, P Model[M]](m P) ([]byte, error) {
	s := m.Schema()
	return s.EncodeBy(s.DefaultFormat(), (*M)(m))
}

// EncodeBy serializes m with the format built by f.
func EncodeBy[M any, P Model[M]](m P, f codec.Factory) ([]byte, error) {
	return m.Schema().EncodeBy(f, (*M)(m))
}

// Decode builds a default-valued M and loads data into it with the schema's
// default format.
func Decode[M any, P Model[M]](data []byte) (M, error) {
	s := schemaOf[M, P]()
	return s.DecodeBy(s.DefaultFormat(), data)
}

// DecodeBy is Decode with an explicit format.
func DecodeBy[M any, P Model[M]](f codec.Factory, data []byte) (M, error) {
	return schemaOf[M, P]().DecodeBy(f, data)
}

// EncodeTo appends m to a caller-held codec.
func EncodeTo[M any, P Model[M]](c codec.Encoder, m P) error {
	return m.Schema().EncodeTo(c, (*M)(m))
}

// DecodeFrom reads the next model from a caller-held codec into m.
func DecodeFrom[M any, P Model[M]](c codec.Decoder, m P) error {
	return m.Schema().DecodeFrom(c, (*M)(m))
}
