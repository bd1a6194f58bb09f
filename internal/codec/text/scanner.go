package text

import (
	"fmt"

	"github.com/danmuck/modelcodec/internal/codec"
)

// scanner is the read cursor shared by the text codecs. Every token read skips
// leading blanks first; nothing is ever pushed back.
type scanner struct {
	buf []byte
	pos int
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (s *scanner) skipBlanks() {
	for s.pos < len(s.buf) && isBlank(s.buf[s.pos]) {
		s.pos++
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.buf)
}

// peek returns the next non-blank byte without consuming it.
func (s *scanner) peek() (byte, bool) {
	s.skipBlanks()
	if s.eof() {
		return 0, false
	}
	return s.buf[s.pos], true
}

// see reports whether the next non-blank byte is c.
func (s *scanner) see(c byte) bool {
	got, ok := s.peek()
	return ok && got == c
}

// expect consumes c or fails without moving the cursor.
func (s *scanner) expect(c byte, what string) error {
	got, ok := s.peek()
	if !ok {
		return codec.Structural("%s: expected %s, found end of input", what, quote(c))
	}
	if got != c {
		return codec.Structural("%s: expected %s at offset %d, found %s", what, quote(c), s.pos, quote(got))
	}
	s.pos++
	return nil
}

// token consumes the longest run of bytes accepted by keep.
func (s *scanner) token(keep func(byte) bool) string {
	s.skipBlanks()
	start := s.pos
	for s.pos < len(s.buf) && keep(s.buf[s.pos]) {
		s.pos++
	}
	return string(s.buf[start:s.pos])
}

// quoted reads a '"'-delimited string. There is no escape processing.
func (s *scanner) quoted(what string) (string, error) {
	if err := s.expect('"', what+" start"); err != nil {
		return "", err
	}
	start := s.pos
	for s.pos < len(s.buf) {
		if s.buf[s.pos] == '"' {
			out := string(s.buf[start:s.pos])
			s.pos++
			return out, nil
		}
		s.pos++
	}
	return "", codec.Structural("%s: unterminated string starting at offset %d", what, start-1)
}

// finish fails when anything but blanks remains.
func (s *scanner) finish() error {
	s.skipBlanks()
	if !s.eof() {
		return codec.Structural("trailing data at offset %d: %d bytes", s.pos, len(s.buf)-s.pos)
	}
	return nil
}

func quote(c byte) string {
	if c >= 0x20 && c < 0x7f {
		return fmt.Sprintf("'%c'", c)
	}
	return fmt.Sprintf("0x%02X", c)
}
