// Package core implements the geodetic coordinate-transformation engine:
// conversions between geodetic, ECEF, and local tangent-plane (ENU) frames,
// the Lambert-93 and UTM map projections, and the pairwise queries (distance,
// elevation, azimuth) built on top of them.
package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// WGS-84 reference ellipsoid.
const (
	// Re is the equatorial radius in metres.
	Re = 6378137.0
	// Fe is the flattening.
	Fe = 1.0 / 298.257223563
)

const (
	rad2deg = 180.0 / math.Pi
	deg2rad = math.Pi / 180.0
)

// Kind identifies which frame a coordinate triple is expressed in.
type Kind int

const (
	KindGeodetic Kind = iota
	KindECEF
	KindENU
)

// String returns the canonical token for the kind.
func (k Kind) String() string {
	switch k {
	case KindGeodetic:
		return "GEO"
	case KindECEF:
		return "ECEF"
	case KindENU:
		return "ENU"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrUnknownKind is returned when a coordinate-kind token cannot be parsed.
var ErrUnknownKind = errors.New("unknown coordinate kind")

// ParseKind maps a case-insensitive kind token to a Kind. Both the short
// ("GEO") and long ("GEOCOORDS") spellings are accepted.
func ParseKind(token string) (Kind, error) {
	switch strings.ToUpper(token) {
	case "GEO", "GEOCOORDS":
		return KindGeodetic, nil
	case "ECEF", "ECEFCOORDS":
		return KindECEF, nil
	case "ENU", "ENUCOORDS":
		return KindENU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, token)
	}
}

// Coords is the closed set of frame value types. Call sites dispatch with a
// type switch over GeoCoords, ECEFCoords, and ENUCoords.
type Coords interface {
	Kind() Kind
	String() string
}

// MakeCoords constructs the frame value named by token from a raw (x, y, z)
// triple. For geodetic coordinates the triple is (lon, lat, hgt).
func MakeCoords(token string, x, y, z float64) (Coords, error) {
	kind, err := ParseKind(token)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindGeodetic:
		return GeoCoords{Lon: x, Lat: y, Hgt: z}, nil
	case KindECEF:
		return ECEFCoords{X: x, Y: y, Z: z}, nil
	default:
		return ENUCoords{E: x, N: y, U: z}, nil
	}
}

// Base anchors a local tangent-plane frame. Only the absolute frames can
// anchor one, so the interface is satisfied by GeoCoords and ECEFCoords alone;
// an ENU value is never a valid base on its own.
type Base interface {
	ECEF() ECEFCoords
}

// GeoCoords is a geodetic position: longitude and latitude in decimal
// degrees, height in metres above the reference ellipsoid. Values are not
// range-checked; out-of-range or NaN inputs propagate through the math.
type GeoCoords struct {
	Lon float64
	Lat float64
	Hgt float64
}

// Kind reports KindGeodetic.
func (g GeoCoords) Kind() Kind { return KindGeodetic }

// String renders the point in the canonical fixed-width diagnostic format.
func (g GeoCoords) String() string {
	return fmt.Sprintf("[lon=%12.9f, lat=%11.9f, hgt=%7.3f]", g.Lon, g.Lat, g.Hgt)
}

// ECEFCoords is an Earth-Centered-Earth-Fixed Cartesian position in metres,
// with the origin at the ellipsoid centre and Z along the rotation axis.
type ECEFCoords struct {
	X float64
	Y float64
	Z float64
}

// Kind reports KindECEF.
func (c ECEFCoords) Kind() Kind { return KindECEF }

// String renders the point in the canonical fixed-width diagnostic format.
func (c ECEFCoords) String() string {
	return fmt.Sprintf("[X=%12.3f, Y=%12.3f, Z=%12.3f]", c.X, c.Y, c.Z)
}

// Norm returns the Euclidean norm of the vector.
func (c ECEFCoords) Norm() float64 {
	return math.Sqrt(c.Dot(c))
}

// Dot returns the dot product of two vectors.
func (c ECEFCoords) Dot(other ECEFCoords) float64 {
	return c.X*other.X + c.Y*other.Y + c.Z*other.Z
}

// Add returns c + other.
func (c ECEFCoords) Add(other ECEFCoords) ECEFCoords {
	return ECEFCoords{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Sub returns c - other.
func (c ECEFCoords) Sub(other ECEFCoords) ECEFCoords {
	return ECEFCoords{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Scale returns the vector multiplied by factor.
func (c ECEFCoords) Scale(factor float64) ECEFCoords {
	return ECEFCoords{X: c.X * factor, Y: c.Y * factor, Z: c.Z * factor}
}

// ENUCoords is a position in a local tangent-plane frame: East, North, and Up
// offsets in metres from a base point. The base is not stored in the value;
// every conversion back to an absolute frame must be given the same base that
// produced it.
type ENUCoords struct {
	E float64
	N float64
	U float64
}

// Kind reports KindENU.
func (e ENUCoords) Kind() Kind { return KindENU }

// String renders the point in the canonical fixed-width diagnostic format.
func (e ENUCoords) String() string {
	return fmt.Sprintf("[E=%12.3f, N=%12.3f, U=%12.3f]", e.E, e.N, e.U)
}

// Norm returns the Euclidean norm of the vector.
func (e ENUCoords) Norm() float64 {
	return math.Sqrt(e.Dot(e))
}

// Norm2D returns the planimetric (East, North) norm, ignoring Up.
func (e ENUCoords) Norm2D() float64 {
	return math.Sqrt(e.E*e.E + e.N*e.N)
}

// Dot returns the dot product of two vectors.
func (e ENUCoords) Dot(other ENUCoords) float64 {
	return e.E*other.E + e.N*other.N + e.U*other.U
}

// Add returns e + other.
func (e ENUCoords) Add(other ENUCoords) ENUCoords {
	return ENUCoords{E: e.E + other.E, N: e.N + other.N, U: e.U + other.U}
}

// Sub returns e - other.
func (e ENUCoords) Sub(other ENUCoords) ENUCoords {
	return ENUCoords{E: e.E - other.E, N: e.N - other.N, U: e.U - other.U}
}

// Rotate returns the point rotated by theta radians in the horizontal plane,
// counter-clockwise about the Up axis. Up is unchanged.
func (e ENUCoords) Rotate(theta float64) ENUCoords {
	ct := math.Cos(theta)
	st := math.Sin(theta)
	return ENUCoords{
		E: ct*e.E - st*e.N,
		N: st*e.E + ct*e.N,
		U: e.U,
	}
}

// Scale returns the point scaled by h in the horizontal plane. Up is
// unchanged.
func (e ENUCoords) Scale(h float64) ENUCoords {
	return ENUCoords{E: e.E * h, N: e.N * h, U: e.U}
}

// Translate returns the point shifted by (tx, ty, tz).
func (e ENUCoords) Translate(tx, ty, tz float64) ENUCoords {
	return ENUCoords{E: e.E + tx, N: e.N + ty, U: e.U + tz}
}
