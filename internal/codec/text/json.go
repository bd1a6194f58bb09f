package text

import "github.com/danmuck/modelcodec/internal/codec"

// JSON is the JSON-shaped format. Models are objects keyed by field name:
//
//	model := '{' ('"' name '"' ':' value (',' '"' name '"' ':' value)*)? '}'
//
// Decoding is positional: keys must arrive in field declaration order, and
// each key is checked against the field expected at that position. A
// reordered object fails instead of being matched by name.
type JSON struct {
	base
}

var _ codec.Codec = (*JSON)(nil)

// NewJSON returns a JSON codec with an empty buffer.
func NewJSON() *JSON {
	return &JSON{}
}

func (j *JSON) Format() string {
	return codec.FormatJSON
}

func (j *JSON) BeginModel(int) error {
	j.writeByte('{')
	return nil
}

func (j *JSON) NextField(i int, name string) error {
	if i > 0 {
		j.writeByte(',')
	}
	j.writeByte('"')
	j.writeString(name)
	j.writeByte('"')
	j.writeByte(':')
	return nil
}

func (j *JSON) EndModel() error {
	j.writeByte('}')
	return nil
}

func (j *JSON) DecodeModel() error {
	return j.expect('{', "object start")
}

func (j *JSON) DecodeField(i int, name string) error {
	if i > 0 {
		if err := j.expect(',', "object separator"); err != nil {
			return err
		}
	}
	key, err := j.quoted("key")
	if err != nil {
		return err
	}
	if key != name {
		return codec.Structural("key: expected %q at position %d, found %q", name, i, key)
	}
	return j.expect(':', "key "+name)
}

func (j *JSON) EndDecodeModel() error {
	return j.expect('}', "object end")
}
