package tagged

import (
	"encoding/binary"
	"math"

	"github.com/danmuck/modelcodec/internal/codec"
)

// Codec reads and writes the tagged binary format over one byte buffer.
type Codec struct {
	buf    []byte
	pos    int
	limits Limits
}

var _ codec.Codec = (*Codec)(nil)

// Option configures a Codec.
type Option func(*Codec)

// WithLimits overrides DefaultLimits.
func WithLimits(l Limits) Option {
	return func(c *Codec) {
		c.limits = l
	}
}

// New returns a binary codec with an empty buffer.
func New(opts ...Option) *Codec {
	c := &Codec{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Format() string {
	return codec.FormatBinary
}

func (c *Codec) Bytes() []byte {
	return c.buf
}

func (c *Codec) Reset(data []byte) {
	c.buf = data[:len(data):len(data)]
	c.pos = 0
}

func (c *Codec) Finish() error {
	if n := c.remaining(); n > 0 {
		return codec.Structural("trailing data at offset %d: %d bytes", c.pos, n)
	}
	return nil
}

func (c *Codec) remaining() int {
	return len(c.buf) - c.pos
}

func (c *Codec) putLength(n int, what string) error {
	if n < 0 || uint64(n) > c.limits.maxLength() {
		return codec.Capacity("%s length %d exceeds limit %d", what, n, c.limits.maxLength())
	}
	c.buf = binary.BigEndian.AppendUint32(c.buf, uint32(n))
	return nil
}

func (c *Codec) number() []byte {
	c.buf = append(c.buf, TagNumber)
	return c.buf
}

func (c *Codec) EncodeBool(v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	c.buf = append(c.number(), b)
	return nil
}

func (c *Codec) EncodeInt8(v int8) error   { return c.EncodeUint8(uint8(v)) }
func (c *Codec) EncodeInt16(v int16) error { return c.EncodeUint16(uint16(v)) }
func (c *Codec) EncodeInt32(v int32) error { return c.EncodeUint32(uint32(v)) }
func (c *Codec) EncodeInt64(v int64) error { return c.EncodeUint64(uint64(v)) }

func (c *Codec) EncodeUint8(v uint8) error {
	c.buf = append(c.number(), v)
	return nil
}

func (c *Codec) EncodeUint16(v uint16) error {
	c.buf = binary.BigEndian.AppendUint16(c.number(), v)
	return nil
}

func (c *Codec) EncodeUint32(v uint32) error {
	c.buf = binary.BigEndian.AppendUint32(c.number(), v)
	return nil
}

func (c *Codec) EncodeUint64(v uint64) error {
	c.buf = binary.BigEndian.AppendUint64(c.number(), v)
	return nil
}

func (c *Codec) EncodeFloat32(v float32) error { return c.EncodeUint32(math.Float32bits(v)) }
func (c *Codec) EncodeFloat64(v float64) error { return c.EncodeUint64(math.Float64bits(v)) }

func (c *Codec) EncodeString(v string) error {
	c.buf = append(c.buf, TagString)
	if err := c.putLength(len(v), "string"); err != nil {
		return err
	}
	c.buf = append(c.buf, v...)
	return nil
}

func (c *Codec) BeginSeq(n int) error {
	c.buf = append(c.buf, TagArray)
	return c.putLength(n, "array")
}

func (c *Codec) NextElem(int) error { return nil }
func (c *Codec) EndSeq() error      { return nil }

func (c *Codec) BeginModel(int) error {
	c.buf = append(c.buf, TagModel)
	return nil
}

func (c *Codec) NextField(int, string) error { return nil }
func (c *Codec) EndModel() error             { return nil }

// expectTag consumes tag or fails without moving the cursor.
func (c *Codec) expectTag(tag byte) error {
	if c.remaining() < 1 {
		return codec.Structural("expected %s tag 0x%02X, found end of input", tagName(tag), tag)
	}
	if got := c.buf[c.pos]; got != tag {
		return codec.Structural("expected %s tag 0x%02X at offset %d, found 0x%02X (%s)", tagName(tag), tag, c.pos, got, tagName(got))
	}
	c.pos++
	return nil
}

// read consumes exactly n bytes. It never reads past the end of the buffer.
func (c *Codec) read(n int, what string) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, codec.Value("insufficient bytes for %s: need %d, have %d", what, n, c.remaining())
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *Codec) readNumber(width int, what string) ([]byte, error) {
	if err := c.expectTag(TagNumber); err != nil {
		return nil, err
	}
	return c.read(width, what)
}

// readLength reads a length or count and checks it against the limit and
// the bytes left while it is still unsigned, so the returned int is never
// negative and never larger than the buffer. Each unit of n needs at least
// one byte: a string byte or an element tag.
func (c *Codec) readLength(what string) (int, error) {
	b, err := c.read(LengthLen, what+" length")
	if err != nil {
		return 0, err
	}
	n := uint64(binary.BigEndian.Uint32(b))
	if n > c.limits.maxLength() {
		return 0, codec.Capacity("%s length %d exceeds limit %d", what, n, c.limits.maxLength())
	}
	if n > uint64(c.remaining()) {
		return 0, codec.Value("insufficient bytes for %s: need %d, have %d", what, n, c.remaining())
	}
	return int(n), nil
}

func (c *Codec) DecodeBool(v *bool) error {
	b, err := c.readNumber(1, "bool")
	if err != nil {
		return err
	}
	switch b[0] {
	case 0:
		*v = false
	case 1:
		*v = true
	default:
		return codec.Value("invalid bool byte 0x%02X", b[0])
	}
	return nil
}

func (c *Codec) DecodeInt8(v *int8) error {
	var u uint8
	if err := c.decodeUint8(&u, "int8"); err != nil {
		return err
	}
	*v = int8(u)
	return nil
}

func (c *Codec) DecodeInt16(v *int16) error {
	var u uint16
	if err := c.decodeUint16(&u, "int16"); err != nil {
		return err
	}
	*v = int16(u)
	return nil
}

func (c *Codec) DecodeInt32(v *int32) error {
	var u uint32
	if err := c.decodeUint32(&u, "int32"); err != nil {
		return err
	}
	*v = int32(u)
	return nil
}

func (c *Codec) DecodeInt64(v *int64) error {
	var u uint64
	if err := c.decodeUint64(&u, "int64"); err != nil {
		return err
	}
	*v = int64(u)
	return nil
}

func (c *Codec) DecodeUint8(v *uint8) error   { return c.decodeUint8(v, "uint8") }
func (c *Codec) DecodeUint16(v *uint16) error { return c.decodeUint16(v, "uint16") }
func (c *Codec) DecodeUint32(v *uint32) error { return c.decodeUint32(v, "uint32") }
func (c *Codec) DecodeUint64(v *uint64) error { return c.decodeUint64(v, "uint64") }

func (c *Codec) DecodeFloat32(v *float32) error {
	var u uint32
	if err := c.decodeUint32(&u, "float32"); err != nil {
		return err
	}
	*v = math.Float32frombits(u)
	return nil
}

func (c *Codec) DecodeFloat64(v *float64) error {
	var u uint64
	if err := c.decodeUint64(&u, "float64"); err != nil {
		return err
	}
	*v = math.Float64frombits(u)
	return nil
}

func (c *Codec) decodeUint8(v *uint8, what string) error {
	b, err := c.readNumber(1, what)
	if err != nil {
		return err
	}
	*v = b[0]
	return nil
}

func (c *Codec) decodeUint16(v *uint16, what string) error {
	b, err := c.readNumber(2, what)
	if err != nil {
		return err
	}
	*v = binary.BigEndian.Uint16(b)
	return nil
}

func (c *Codec) decodeUint32(v *uint32, what string) error {
	b, err := c.readNumber(4, what)
	if err != nil {
		return err
	}
	*v = binary.BigEndian.Uint32(b)
	return nil
}

func (c *Codec) decodeUint64(v *uint64, what string) error {
	b, err := c.readNumber(8, what)
	if err != nil {
		return err
	}
	*v = binary.BigEndian.Uint64(b)
	return nil
}

func (c *Codec) DecodeString(v *string) error {
	if err := c.expectTag(TagString); err != nil {
		return err
	}
	n, err := c.readLength("string")
	if err != nil {
		return err
	}
	b, err := c.read(n, "string")
	if err != nil {
		return err
	}
	*v = string(b)
	return nil
}

// DecodeSeq returns the element count. A count larger than the bytes left is
// rejected before any allocation sized by it.
func (c *Codec) DecodeSeq() (int, error) {
	if err := c.expectTag(TagArray); err != nil {
		return 0, err
	}
	return c.readLength("array")
}

// MoreElems is only consulted for delimited sequences; arrays here are
// counted.
func (c *Codec) MoreElems(int) (bool, error) {
	return false, codec.Structural("array: element count is carried by the array header")
}

func (c *Codec) EndDecodeSeq() error { return nil }

func (c *Codec) DecodeModel() error {
	return c.expectTag(TagModel)
}

func (c *Codec) DecodeField(int, string) error { return nil }
func (c *Codec) EndDecodeModel() error         { return nil }
