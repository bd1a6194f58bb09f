package models

import "github.com/danmuck/modelcodec/internal/model"

// Position is a point in 3D space.
type Position struct {
	X, Y, Z float64
}

var positionSchema = model.NewSchema("Position", func(r *model.Registrar[Position]) {
	model.Field(r, "x", model.Float64, func(p *Position) *float64 { return &p.X })
	model.Field(r, "y", model.Float64, func(p *Position) *float64 { return &p.Y })
	model.Field(r, "z", model.Float64, func(p *Position) *float64 { return &p.Z })
})

func (*Position) Schema() *model.Schema[Position] {
	return positionSchema
}

// Telemetry is one device report. It carries every scalar width the codecs
// support, so it doubles as a coverage fixture.
type Telemetry struct {
	Device   string
	Seq      uint64
	Online   bool
	Signal   int8
	Channel  uint8
	Temp     int16
	Port     uint16
	Uptime   int32
	Load     float32
	Offset   int64
	Position Position
	Tags     []string
	Samples  [][]int16
}

var telemetrySchema = model.NewSchema("Telemetry", func(r *model.Registrar[Telemetry]) {
	model.Field(r, "device", model.String, func(t *Telemetry) *string { return &t.Device })
	model.Field(r, "seq", model.Uint64, func(t *Telemetry) *uint64 { return &t.Seq })
	model.Field(r, "online", model.Bool, func(t *Telemetry) *bool { return &t.Online })
	model.Field(r, "signal", model.Int8, func(t *Telemetry) *int8 { return &t.Signal })
	model.Field(r, "channel", model.Uint8, func(t *Telemetry) *uint8 { return &t.Channel })
	model.Field(r, "temp", model.Int16, func(t *Telemetry) *int16 { return &t.Temp })
	model.Field(r, "port", model.Uint16, func(t *Telemetry) *uint16 { return &t.Port })
	model.Field(r, "uptime", model.Int32, func(t *Telemetry) *int32 { return &t.Uptime })
	model.Field(r, "load", model.Float32, func(t *Telemetry) *float32 { return &t.Load })
	model.Field(r, "offset", model.Int64, func(t *Telemetry) *int64 { return &t.Offset })
	model.Field(r, "position", model.ModelOf(positionSchema), func(t *Telemetry) *Position { return &t.Position })
	model.Field(r, "tags", model.SliceOf(model.String), func(t *Telemetry) *[]string { return &t.Tags })
	model.Field(r, "samples", model.SliceOf(model.SliceOf(model.Int16)), func(t *Telemetry) *[][]int16 { return &t.Samples })
}, model.WithDefaults(func(t *Telemetry) {
	t.Device = "unknown"
	t.Tags = []string{}
	t.Samples = [][]int16{}
}), model.WithFormat[Telemetry](model.Binary))

func (*Telemetry) Schema() *model.Schema[Telemetry] {
	return telemetrySchema
}
