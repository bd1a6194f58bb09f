package text

import "github.com/danmuck/modelcodec/internal/codec"

// Literal is the parenthesized "repr" format. Models are written as a
// positional tuple of field values:
//
//	model := '(' (value (',' value)*)? ')'
type Literal struct {
	base
}

var _ codec.Codec = (*Literal)(nil)

// NewLiteral returns a literal codec with an empty buffer.
func NewLiteral() *Literal {
	return &Literal{}
}

func (l *Literal) Format() string {
	return codec.FormatLiteral
}

func (l *Literal) BeginModel(int) error {
	l.writeByte('(')
	return nil
}

func (l *Literal) NextField(i int, _ string) error {
	if i > 0 {
		l.writeByte(',')
	}
	return nil
}

func (l *Literal) EndModel() error {
	l.writeByte(')')
	return nil
}

func (l *Literal) DecodeModel() error {
	return l.expect('(', "model start")
}

func (l *Literal) DecodeField(i int, name string) error {
	if i == 0 {
		return nil
	}
	return l.expect(',', "field "+name)
}

func (l *Literal) EndDecodeModel() error {
	return l.expect(')', "model end")
}
