package transcode

import (
	"time"

	"github.com/danmuck/modelcodec/internal/catalog"
	"github.com/danmuck/modelcodec/internal/codec"
	"github.com/danmuck/modelcodec/internal/model"
	"github.com/danmuck/modelcodec/internal/observability"
	"github.com/rs/zerolog/log"
)

// Service resolves kinds and formats by name and runs codec work on them.
type Service struct {
	catalog *catalog.Catalog
}

func NewService(cat *catalog.Catalog) *Service {
	return &Service{catalog: cat}
}

// Catalog returns the kinds the service can work on.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) resolve(kindID string, formats ...string) (model.Kind, []codec.Factory, error) {
	kind, err := s.catalog.Resolve(kindID)
	if err != nil {
		return nil, nil, err
	}
	factories := make([]codec.Factory, 0, len(formats))
	for _, name := range formats {
		f, err := model.LookupFormat(name)
		if err != nil {
			return nil, nil, err
		}
		factories = append(factories, f)
	}
	return kind, factories, nil
}

// Decode decodes data into a new instance of the kind.
func (s *Service) Decode(kindID, format string, data []byte) (any, error) {
	kind, f, err := s.resolve(kindID, format)
	if err != nil {
		return nil, err
	}
	return s.decode(kindID, kind, f[0], data)
}

// Encode encodes v, which must be an instance (or pointer to one) of the kind.
func (s *Service) Encode(kindID, format string, v any) ([]byte, error) {
	kind, f, err := s.resolve(kindID, format)
	if err != nil {
		return nil, err
	}
	return s.encode(kindID, kind, f[0], v)
}

// Sample encodes the kind's sample instance.
func (s *Service) Sample(kindID, format string) ([]byte, error) {
	kind, f, err := s.resolve(kindID, format)
	if err != nil {
		return nil, err
	}
	return s.encode(kindID, kind, f[0], kind.Sample())
}

// Transcode decodes data with from and re-encodes it with to.
func (s *Service) Transcode(kindID, from, to string, data []byte) ([]byte, error) {
	kind, f, err := s.resolve(kindID, from, to)
	if err != nil {
		return nil, err
	}
	v, err := s.decode(kindID, kind, f[0], data)
	if err != nil {
		return nil, err
	}
	return s.encode(kindID, kind, f[1], v)
}

func (s *Service) decode(kindID string, kind model.Kind, f codec.Factory, data []byte) (any, error) {
	format := model.FormatName(f)
	start := time.Now()
	v, err := kind.Decode(f, data)
	observability.RecordCodecOp(kindID, "decode", format, len(data), time.Since(start), err == nil)
	if err != nil {
		log.Debug().Str("kind", kindID).Str("format", format).Err(err).Msg("decode rejected")
		return nil, err
	}
	return v, nil
}

func (s *Service) encode(kindID string, kind model.Kind, f codec.Factory, v any) ([]byte, error) {
	format := model.FormatName(f)
	start := time.Now()
	out, err := kind.Encode(f, v)
	observability.RecordCodecOp(kindID, "encode", format, len(out), time.Since(start), err == nil)
	if err != nil {
		log.Debug().Str("kind", kindID).Str("format", format).Err(err).Msg("encode rejected")
		return nil, err
	}
	return out, nil
}
