package models

import (
	"github.com/danmuck/modelcodec/internal/catalog"
	"github.com/danmuck/modelcodec/internal/model"
)

// Kind ids of the samples.
const (
	KindUser      = "user"
	KindResponse  = "response"
	KindPosition  = "position"
	KindTelemetry = "telemetry"
)

// SampleResponse is the two-user response used in docs and tests.
func SampleResponse() Response {
	return Response{
		Code: 0,
		Msg:  "",
		Data: []User{
			{ID: 123, Name: "Alice"},
			{ID: 456, Name: "Bob"},
		},
	}
}

// SampleTelemetry fills every field with a non-default value.
func SampleTelemetry() Telemetry {
	return Telemetry{
		Device:   "sensor-7",
		Seq:      1 << 40,
		Online:   true,
		Signal:   -42,
		Channel:  11,
		Temp:     -273,
		Port:     8443,
		Uptime:   86400,
		Load:     0.75,
		Offset:   -1 << 33,
		Position: Position{X: 1.5, Y: -2.25, Z: 1e-3},
		Tags:     []string{"edge", "lab"},
		Samples:  [][]int16{{1, -2, 3}, {}, {32767, -32768}},
	}
}

// Register adds every sample kind to c.
func Register(c *catalog.Catalog) error {
	kinds := []struct {
		id   string
		kind model.Kind
	}{
		{KindUser, model.KindOf(userSchema, func() User { return User{ID: 123, Name: "Alice"} })},
		{KindResponse, model.KindOf(responseSchema, SampleResponse)},
		{KindPosition, model.KindOf(positionSchema, nil)},
		{KindTelemetry, model.KindOf(telemetrySchema, SampleTelemetry)},
	}
	for _, k := range kinds {
		if err := c.Register(k.id, k.kind); err != nil {
			return err
		}
	}
	return nil
}

// Catalog returns a new catalog holding the samples.
func Catalog() *catalog.Catalog {
	c := catalog.New()
	if err := Register(c); err != nil {
		panic(err)
	}
	return c
}
