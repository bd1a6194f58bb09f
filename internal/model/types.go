package model

import (
	"strconv"

	"github.com/danmuck/modelcodec/internal/codec"
)

// Type tells the field table how values of T travel through a codec.
type Type[T any] struct {
	name   string
	zero   func() T
	encode func(codec.Encoder, *T) error
	decode func(codec.Decoder, *T) error
}

// Name describes the type in error messages and listings.
func (t Type[T]) Name() string {
	return t.name
}

// Encode writes *v through e.
func (t Type[T]) Encode(e codec.Encoder, v *T) error {
	return t.encode(e, v)
}

// Decode reads *v from d.
func (t Type[T]) Decode(d codec.Decoder, v *T) error {
	return t.decode(d, v)
}

func (t Type[T]) newValue() T {
	if t.zero != nil {
		return t.zero()
	}
	var v T
	return v
}

func scalar[T any](name string, enc func(codec.Encoder, T) error, dec func(codec.Decoder, *T) error) Type[T] {
	return Type[T]{
		name:   name,
		encode: func(e codec.Encoder, v *T) error { return enc(e, *v) },
		decode: dec,
	}
}

var (
	Bool    = scalar("bool", codec.Encoder.EncodeBool, codec.Decoder.DecodeBool)
	Int8    = scalar("int8", codec.Encoder.EncodeInt8, codec.Decoder.DecodeInt8)
	Int16   = scalar("int16", codec.Encoder.EncodeInt16, codec.Decoder.DecodeInt16)
	Int32   = scalar("int32", codec.Encoder.EncodeInt32, codec.Decoder.DecodeInt32)
	Int64   = scalar("int64", codec.Encoder.EncodeInt64, codec.Decoder.DecodeInt64)
	Uint8   = scalar("uint8", codec.Encoder.EncodeUint8, codec.Decoder.DecodeUint8)
	Uint16  = scalar("uint16", codec.Encoder.EncodeUint16, codec.Decoder.DecodeUint16)
	Uint32  = scalar("uint32", codec.Encoder.EncodeUint32, codec.Decoder.DecodeUint32)
	Uint64  = scalar("uint64", codec.Encoder.EncodeUint64, codec.Decoder.DecodeUint64)
	Float32 = scalar("float32", codec.Encoder.EncodeFloat32, codec.Decoder.DecodeFloat32)
	Float64 = scalar("float64", codec.Encoder.EncodeFloat64, codec.Decoder.DecodeFloat64)
	String  = scalar("string", codec.Encoder.EncodeString, codec.Decoder.DecodeString)
)

// SliceOf is a sequence of elem. The decoded slice is assigned only once every
// element has been read; zero elements decode to an empty, non-nil slice.
func SliceOf[T any](elem Type[T]) Type[[]T] {
	return Type[[]T]{
		name: "[]" + elem.name,
		encode: func(e codec.Encoder, v *[]T) error {
			return encodeSeq(e, *v, elem)
		},
		decode: func(d codec.Decoder, v *[]T) error {
			return decodeSeq(d, v, elem)
		},
	}
}

// ModelOf nests the model described by s. Nested values are decoded in place,
// starting from s's defaults when they are sequence elements.
func ModelOf[M any](s *Schema[M]) Type[M] {
	return Type[M]{
		name: s.name,
		zero: s.New,
		encode: func(e codec.Encoder, v *M) error {
			return s.EncodeTo(e, v)
		},
		decode: func(d codec.Decoder, v *M) error {
			return s.DecodeFrom(d, v)
		},
	}
}

func encodeSeq[T any](e codec.Encoder, items []T, elem Type[T]) error {
	if err := e.BeginSeq(len(items)); err != nil {
		return err
	}
	for i := range items {
		if err := e.NextElem(i); err != nil {
			return err
		}
		if err := elem.encode(e, &items[i]); err != nil {
			return codec.Wrap(err, indexContext(i))
		}
	}
	return e.EndSeq()
}

func decodeSeq[T any](d codec.Decoder, v *[]T, elem Type[T]) error {
	n, err := d.DecodeSeq()
	if err != nil {
		return err
	}
	var out []T
	if n >= 0 {
		out = make([]T, 0, n)
	} else {
		out = []T{}
	}
	for i := 0; n < 0 || i < n; i++ {
		if n < 0 {
			more, err := d.MoreElems(i)
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
		x := elem.newValue()
		if err := elem.decode(d, &x); err != nil {
			return codec.Wrap(err, indexContext(i))
		}
		out = append(out, x)
	}
	if err := d.EndDecodeSeq(); err != nil {
		return err
	}
	*v = out
	return nil
}

func indexContext(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
