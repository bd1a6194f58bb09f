package codec

// Format names of the codecs shipped with this module.
const (
	FormatLiteral = "literal"
	FormatJSON    = "json"
	FormatBinary  = "binary"
)

// Encoder writes typed values into a codec buffer.
//
// Sequences and models are written through paired Begin/End hooks so the
// element and field iteration lives once in the model package while each
// format decides its own delimiters, separators and framing.
type Encoder interface {
	EncodeBool(v bool) error
	EncodeInt8(v int8) error
	EncodeInt16(v int16) error
	EncodeInt32(v int32) error
	EncodeInt64(v int64) error
	EncodeUint8(v uint8) error
	EncodeUint16(v uint16) error
	EncodeUint32(v uint32) error
	EncodeUint64(v uint64) error
	EncodeFloat32(v float32) error
	EncodeFloat64(v float64) error
	EncodeString(v string) error

	// BeginSeq opens a sequence of n elements.
	BeginSeq(n int) error
	// NextElem is called before element i is written.
	NextElem(i int) error
	EndSeq() error

	// BeginModel opens a model with the given number of fields.
	BeginModel(fields int) error
	// NextField is called before field i is written.
	NextField(i int, name string) error
	EndModel() error
}

// Decoder reads typed values from a codec buffer at an implicit cursor.
type Decoder interface {
	DecodeBool(v *bool) error
	DecodeInt8(v *int8) error
	DecodeInt16(v *int16) error
	DecodeInt32(v *int32) error
	DecodeInt64(v *int64) error
	DecodeUint8(v *uint8) error
	DecodeUint16(v *uint16) error
	DecodeUint32(v *uint32) error
	DecodeUint64(v *uint64) error
	DecodeFloat32(v *float32) error
	DecodeFloat64(v *float64) error
	DecodeString(v *string) error

	// DecodeSeq opens a sequence and returns its element count, or -1 when the
	// format delimits sequences instead of counting them. In the delimited
	// case MoreElems drives the loop.
	DecodeSeq() (int, error)
	// MoreElems reports whether element i follows in a delimited sequence.
	MoreElems(i int) (bool, error)
	EndDecodeSeq() error

	DecodeModel() error
	// DecodeField positions the cursor at the value of field i.
	DecodeField(i int, name string) error
	EndDecodeModel() error

	// Finish fails if anything other than insignificant padding remains.
	Finish() error
}

// Codec is one wire format bound to one buffer. A Codec is not safe for
// concurrent use.
type Codec interface {
	Encoder
	Decoder

	// Format returns the registered format name.
	Format() string
	// Bytes returns the buffer contents.
	Bytes() []byte
	// Reset replaces the buffer with data and rewinds the cursor.
	Reset(data []byte)
}

// Factory creates a fresh codec with an empty buffer.
type Factory func() Codec
