// Package api exposes the coordinate-transformation engine over an HTTP JSON
// surface.
package api

import (
	"fmt"

	"github.com/signalsfoundry/geodesy/core"
)

// PointPayload is the wire form of a coordinate triple. For geodetic points
// the triple is (lon, lat, hgt); for ECEF it is (X, Y, Z) and for ENU it is
// (E, N, U), all in the engine's native units.
type PointPayload struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// ConvertRequest asks for a point to be re-expressed in another frame.
//
// When SRID is zero the conversion is between the three native frames; Base
// anchors an ENU input and TargetBase anchors an ENU output. When SRID is
// set, the request is routed to the projection subsystem instead: a geodetic
// point projects forward onto the SRID plane, a planar (ENU) point inverts
// back to geodetic.
type ConvertRequest struct {
	Point      PointPayload  `json:"point"`
	Target     string        `json:"target,omitempty"`
	Base       *PointPayload `json:"base,omitempty"`
	TargetBase *PointPayload `json:"target_base,omitempty"`
	SRID       int           `json:"srid,omitempty"`
}

// ConvertResponse carries the converted point plus its canonical textual
// rendering.
type ConvertResponse struct {
	Point PointPayload `json:"point"`
	Text  string       `json:"text"`
}

// QueryRequest asks for a pairwise measurement between two points expressed
// in the same frame.
type QueryRequest struct {
	Op string       `json:"op"` // distance | distance2d | elevation | azimuth
	A  PointPayload `json:"a"`
	B  PointPayload `json:"b"`
}

// QueryResponse carries the scalar result; Unit is "m" for distances and
// "rad" for angles.
type QueryResponse struct {
	Op    string  `json:"op"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// decodePoint turns a wire payload into a frame value.
func decodePoint(p PointPayload) (core.Coords, error) {
	c, err := core.MakeCoords(p.Kind, p.X, p.Y, p.Z)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return c, nil
}

// decodeBase turns an optional wire payload into a tangent-plane anchor. Only
// absolute frames can anchor one, so an ENU payload is rejected.
func decodeBase(p *PointPayload, field string) (core.Base, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: missing %s", errInvalidRequest, field)
	}
	c, err := decodePoint(*p)
	if err != nil {
		return nil, err
	}
	base, ok := c.(core.Base)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be GEO or ECEF, not %s", errInvalidRequest, field, c.Kind())
	}
	return base, nil
}

// encodePoint renders a frame value back onto the wire.
func encodePoint(c core.Coords) PointPayload {
	switch p := c.(type) {
	case core.GeoCoords:
		return PointPayload{Kind: p.Kind().String(), X: p.Lon, Y: p.Lat, Z: p.Hgt}
	case core.ECEFCoords:
		return PointPayload{Kind: p.Kind().String(), X: p.X, Y: p.Y, Z: p.Z}
	case core.ENUCoords:
		return PointPayload{Kind: p.Kind().String(), X: p.E, Y: p.N, Z: p.U}
	default:
		return PointPayload{}
	}
}
