package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/modelcodec/internal/codec"
	"github.com/danmuck/modelcodec/internal/codec/tagged"
	"github.com/danmuck/modelcodec/internal/codec/text"
)

var ErrUnknownFormat = errors.New("model: unknown format")

var (
	Literal codec.Factory = func() codec.Codec { return text.NewLiteral() }
	JSON    codec.Factory = func() codec.Codec { return text.NewJSON() }
	Binary  codec.Factory = func() codec.Codec { return tagged.New() }
)

var formats = map[string]codec.Factory{
	codec.FormatLiteral: Literal,
	codec.FormatJSON:    JSON,
	codec.FormatBinary:  Binary,
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for name := range formats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LookupFormat resolves a format by name. "repr" is accepted for the literal
// format.
func LookupFormat(name string) (codec.Factory, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "repr" {
		key = codec.FormatLiteral
	}
	f, ok := formats[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// FormatName returns the name of the format f builds.
func FormatName(f codec.Factory) string {
	return f().Format()
}
