// Package text implements the two text wire formats: the parenthesized
// literal format and the JSON-shaped format.
//
// Both formats share scalars and sequences:
//
//	number := strconv integer or float text
//	bool   := 0 | 1 | true | True | TRUE | false | False | FALSE
//	          (decode accepts every spelling; encode always writes true or false)
//	string := '"' char* '"'            (no escapes; '"' cannot appear inside)
//	array  := '[' (value (',' value)*)? ']'
//
// and differ only in how a model is framed. Blanks (space, tab, newline,
// carriage return) are skipped before every token on decode. Parsing is a
// single pass over a shared cursor and the first mismatch fails the decode.
package text

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/danmuck/modelcodec/internal/codec"
)

// base carries everything the literal and JSON codecs have in common. The
// buffer is written by Encode* calls and read by Decode* calls, so one codec
// can encode a value and decode it back.
type base struct {
	scanner
}

// Bytes returns the buffer contents.
func (b *base) Bytes() []byte {
	return b.buf
}

// Reset replaces the buffer and rewinds the cursor. Later writes never alias
// data.
func (b *base) Reset(data []byte) {
	b.buf = data[:len(data):len(data)]
	b.pos = 0
}

// Finish fails on anything but trailing blanks.
func (b *base) Finish() error {
	return b.finish()
}

func (b *base) writeByte(c byte) {
	b.buf = append(b.buf, c)
}

func (b *base) writeString(s string) {
	b.buf = append(b.buf, s...)
}

func (b *base) EncodeBool(v bool) error {
	b.buf = strconv.AppendBool(b.buf, v)
	return nil
}

func (b *base) EncodeInt8(v int8) error   { return b.encodeInt(int64(v)) }
func (b *base) EncodeInt16(v int16) error { return b.encodeInt(int64(v)) }
func (b *base) EncodeInt32(v int32) error { return b.encodeInt(int64(v)) }
func (b *base) EncodeInt64(v int64) error { return b.encodeInt(v) }

func (b *base) EncodeUint8(v uint8) error   { return b.encodeUint(uint64(v)) }
func (b *base) EncodeUint16(v uint16) error { return b.encodeUint(uint64(v)) }
func (b *base) EncodeUint32(v uint32) error { return b.encodeUint(uint64(v)) }
func (b *base) EncodeUint64(v uint64) error { return b.encodeUint(v) }

func (b *base) EncodeFloat32(v float32) error { return b.encodeFloat(float64(v), 32) }
func (b *base) EncodeFloat64(v float64) error { return b.encodeFloat(v, 64) }

func (b *base) encodeInt(v int64) error {
	b.buf = strconv.AppendInt(b.buf, v, 10)
	return nil
}

func (b *base) encodeUint(v uint64) error {
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return nil
}

// encodeFloat writes the shortest text that parses back to the same value at
// the given width. NaN and infinities have no spelling in either grammar.
func (b *base) encodeFloat(v float64, bits int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return codec.Value("float%d: %v has no text representation", bits, v)
	}
	b.buf = strconv.AppendFloat(b.buf, v, 'g', -1, bits)
	return nil
}

func (b *base) EncodeString(v string) error {
	if i := strings.IndexByte(v, '"'); i >= 0 {
		return codec.Value("string: '\"' at index %d cannot be represented", i)
	}
	b.writeByte('"')
	b.writeString(v)
	b.writeByte('"')
	return nil
}

func (b *base) BeginSeq(int) error {
	b.writeByte('[')
	return nil
}

func (b *base) NextElem(i int) error {
	if i > 0 {
		b.writeByte(',')
	}
	return nil
}

func (b *base) EndSeq() error {
	b.writeByte(']')
	return nil
}

var boolTokens = map[string]bool{
	"0":     false,
	"1":     true,
	"true":  true,
	"True":  true,
	"TRUE":  true,
	"false": false,
	"False": false,
	"FALSE": false,
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isNumberByte(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

// DecodeBool accepts exactly the spellings in boolTokens. The whole word is
// read first, so "truex" or "10" are rejected instead of matching a prefix.
func (b *base) DecodeBool(v *bool) error {
	if _, ok := b.peek(); !ok {
		return codec.Structural("bool: unexpected end of input")
	}
	start := b.pos
	word := b.token(isWordByte)
	if word == "" {
		return b.missingValue("bool", start)
	}
	out, ok := boolTokens[word]
	if !ok {
		return codec.Value("bool: invalid token %q at offset %d", word, start)
	}
	*v = out
	return nil
}

func (b *base) DecodeInt8(v *int8) error {
	n, err := b.decodeInt(8)
	if err != nil {
		return err
	}
	*v = int8(n)
	return nil
}

func (b *base) DecodeInt16(v *int16) error {
	n, err := b.decodeInt(16)
	if err != nil {
		return err
	}
	*v = int16(n)
	return nil
}

func (b *base) DecodeInt32(v *int32) error {
	n, err := b.decodeInt(32)
	if err != nil {
		return err
	}
	*v = int32(n)
	return nil
}

func (b *base) DecodeInt64(v *int64) error {
	n, err := b.decodeInt(64)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

func (b *base) DecodeUint8(v *uint8) error {
	n, err := b.decodeUint(8)
	if err != nil {
		return err
	}
	*v = uint8(n)
	return nil
}

func (b *base) DecodeUint16(v *uint16) error {
	n, err := b.decodeUint(16)
	if err != nil {
		return err
	}
	*v = uint16(n)
	return nil
}

func (b *base) DecodeUint32(v *uint32) error {
	n, err := b.decodeUint(32)
	if err != nil {
		return err
	}
	*v = uint32(n)
	return nil
}

func (b *base) DecodeUint64(v *uint64) error {
	n, err := b.decodeUint(64)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

func (b *base) DecodeFloat32(v *float32) error {
	n, err := b.decodeFloat(32)
	if err != nil {
		return err
	}
	*v = float32(n)
	return nil
}

func (b *base) DecodeFloat64(v *float64) error {
	n, err := b.decodeFloat(64)
	if err != nil {
		return err
	}
	*v = n
	return nil
}

func (b *base) number(what string) (string, error) {
	if _, ok := b.peek(); !ok {
		return "", codec.Structural("%s: unexpected end of input", what)
	}
	start := b.pos
	tok := b.token(isNumberByte)
	if tok == "" {
		return "", b.missingValue(what, start)
	}
	return tok, nil
}

func isDelimiter(c byte) bool {
	return c == ',' || c == ']' || c == ')' || c == '}'
}

// missingValue reports a value slot that holds no token. A delimiter there
// means the framing is wrong; anything else is a malformed value.
func (b *base) missingValue(what string, at int) error {
	c := b.buf[at]
	if isDelimiter(c) {
		return codec.Structural("%s: expected value at offset %d, found delimiter %s", what, at, quote(c))
	}
	return codec.Value("%s: expected %s at offset %d, found %s", what, what, at, quote(c))
}

func (b *base) decodeInt(bits int) (int64, error) {
	what := "int" + strconv.Itoa(bits)
	tok, err := b.number(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(tok, 10, bits)
	if err != nil {
		return 0, codec.Value("%s: cannot parse %q: %s", what, tok, reason(err))
	}
	return n, nil
}

func (b *base) decodeUint(bits int) (uint64, error) {
	what := "uint" + strconv.Itoa(bits)
	tok, err := b.number(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(tok, 10, bits)
	if err != nil {
		return 0, codec.Value("%s: cannot parse %q: %s", what, tok, reason(err))
	}
	return n, nil
}

func (b *base) decodeFloat(bits int) (float64, error) {
	what := "float" + strconv.Itoa(bits)
	tok, err := b.number(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(tok, bits)
	if err != nil {
		return 0, codec.Value("%s: cannot parse %q: %s", what, tok, reason(err))
	}
	return n, nil
}

func reason(err error) string {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err.Error()
	}
	return err.Error()
}

func (b *base) DecodeString(v *string) error {
	s, err := b.quoted("string")
	if err != nil {
		return err
	}
	*v = s
	return nil
}

func (b *base) DecodeSeq() (int, error) {
	if err := b.expect('[', "sequence start"); err != nil {
		return 0, err
	}
	return -1, nil
}

func (b *base) MoreElems(i int) (bool, error) {
	c, ok := b.peek()
	if !ok {
		return false, codec.Structural("sequence: unexpected end of input")
	}
	if c == ']' {
		return false, nil
	}
	if i > 0 {
		if err := b.expect(',', "sequence separator"); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (b *base) EndDecodeSeq() error {
	return b.expect(']', "sequence end")
}
