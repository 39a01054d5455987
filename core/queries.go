package core

import "math"

// Pairwise queries. All four are defined for each frame kind by reducing to
// the ENU representation of the target relative to the origin point; a
// zero-length offset yields 0 for elevation and azimuth through atan2, never
// an error.

// DistanceTo returns the 3D straight-line distance in metres between two
// geodetic points, computed through ECEF.
func (g GeoCoords) DistanceTo(point GeoCoords) float64 {
	return g.ECEF().DistanceTo(point.ECEF())
}

// Distance2DTo returns the planimetric distance in metres: the (East, North)
// norm of the target expressed in the tangent plane anchored at g. This is
// the projected 2D distance, not the 3D distance with height dropped.
func (g GeoCoords) Distance2DTo(point GeoCoords) float64 {
	return point.ENU(g).Norm2D()
}

// ElevationTo returns the signed elevation angle in radians of the target
// above the local horizontal plane at g.
func (g GeoCoords) ElevationTo(point GeoCoords) float64 {
	target := point.ENU(g)
	return math.Atan2(target.U, target.Norm2D())
}

// AzimuthTo returns the bearing in radians of the target measured clockwise
// from local north at g, in (-pi, pi].
func (g GeoCoords) AzimuthTo(point GeoCoords) float64 {
	target := point.ENU(g)
	return math.Atan2(target.E, target.N)
}

// DistanceTo returns the 3D straight-line distance in metres between two
// ECEF points.
func (c ECEFCoords) DistanceTo(point ECEFCoords) float64 {
	return point.Sub(c).Norm()
}

// Distance2DTo returns the planimetric distance in metres in the tangent
// plane anchored at c.
func (c ECEFCoords) Distance2DTo(point ECEFCoords) float64 {
	return point.ENU(c).Norm2D()
}

// ElevationTo returns the signed elevation angle in radians of the target
// above the local horizontal plane at c.
func (c ECEFCoords) ElevationTo(point ECEFCoords) float64 {
	target := point.ENU(c)
	return math.Atan2(target.U, target.Norm2D())
}

// AzimuthTo returns the bearing in radians of the target measured clockwise
// from local north at c, in (-pi, pi].
func (c ECEFCoords) AzimuthTo(point ECEFCoords) float64 {
	target := point.ENU(c)
	return math.Atan2(target.E, target.N)
}

// DistanceTo returns the 3D distance in metres between two points expressed
// in the same tangent plane.
func (e ENUCoords) DistanceTo(point ENUCoords) float64 {
	return point.Sub(e).Norm()
}

// Distance2DTo returns the planimetric distance in metres between two points
// expressed in the same tangent plane.
func (e ENUCoords) Distance2DTo(point ENUCoords) float64 {
	return point.Sub(e).Norm2D()
}

// ElevationTo returns the signed elevation angle in radians of the target as
// seen from e, both expressed in the same tangent plane.
func (e ENUCoords) ElevationTo(point ENUCoords) float64 {
	target := point.Sub(e)
	return math.Atan2(target.U, target.Norm2D())
}

// AzimuthTo returns the bearing in radians of the target measured clockwise
// from north as seen from e, both expressed in the same tangent plane.
func (e ENUCoords) AzimuthTo(point ENUCoords) float64 {
	target := point.Sub(e)
	return math.Atan2(target.E, target.N)
}
