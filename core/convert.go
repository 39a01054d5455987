package core

import "math"

// eccentricity returns the first eccentricity of the reference ellipsoid.
func eccentricity() float64 {
	return math.Sqrt(Fe * (2 - Fe))
}

// ECEF converts the geodetic position to absolute ECEF coordinates. The
// conversion is closed-form: with N the prime-vertical radius of curvature,
//
//	X = (N+h) cos(lat) cos(lon)
//	Y = (N+h) cos(lat) sin(lon)
//	Z = ((1-e^2) N + h) sin(lat)
func (g GeoCoords) ECEF() ECEFCoords {
	e := eccentricity()

	lon := g.Lon * deg2rad
	lat := g.Lat * deg2rad
	hgt := g.Hgt

	es := e * math.Sin(lat)
	n := Re / math.Sqrt(1-es*es)

	return ECEFCoords{
		X: (n + hgt) * math.Cos(lat) * math.Cos(lon),
		Y: (n + hgt) * math.Cos(lat) * math.Sin(lon),
		Z: ((1-e*e)*n + hgt) * math.Sin(lat),
	}
}

// Geodetic converts absolute ECEF coordinates to geodetic longitude, latitude
// (decimal degrees) and height (metres). It uses Bowring's closed form: the
// latitude comes from the parametric angle t = atan2(Z*Re, p*b) without any
// convergence loop, with sub-millimetre accuracy for terrestrial heights.
func (c ECEFCoords) Geodetic() GeoCoords {
	b := Re * (1 - Fe)
	e := eccentricity()

	h := Re*Re - b*b
	p := math.Sqrt(c.X*c.X + c.Y*c.Y)
	t := math.Atan2(c.Z*Re, p*b)

	st := math.Sin(t)
	ct := math.Cos(t)

	lon := math.Atan2(c.Y, c.X)
	lat := math.Atan2(c.Z+h/b*st*st*st, p-h/Re*ct*ct*ct)

	es := e * math.Sin(lat)
	n := Re / math.Sqrt(1-es*es)
	hgt := p/math.Cos(lat) - n

	return GeoCoords{
		Lon: lon * rad2deg,
		Lat: lat * rad2deg,
		Hgt: hgt,
	}
}

// ECEF returns the receiver unchanged; it exists so ECEFCoords satisfies Base
// and so callers can normalise any absolute frame to ECEF uniformly.
func (c ECEFCoords) ECEF() ECEFCoords { return c }

// ENU expresses the point in the local tangent-plane frame anchored at base.
// The offset vector (point - base) is rotated from geocentric axes to local
// East/North/Up axes using the base's geodetic longitude and latitude.
func (c ECEFCoords) ENU(base Base) ENUCoords {
	b := base.ECEF()
	bg := b.Geodetic()

	blon := bg.Lon * deg2rad
	blat := bg.Lat * deg2rad

	x := c.X - b.X
	y := c.Y - b.Y
	z := c.Z - b.Z

	slon := math.Sin(blon)
	slat := math.Sin(blat)
	clon := math.Cos(blon)
	clat := math.Cos(blat)

	return ENUCoords{
		E: -x*slon + y*clon,
		N: -x*clon*slat - y*slon*slat + z*clat,
		U: x*clon*clat + y*slon*clat + z*slat,
	}
}

// ECEF converts the local tangent-plane point back to absolute ECEF
// coordinates. base must be the same anchor that produced the ENU value; the
// rotation applied is the transpose of the one in ECEFCoords.ENU.
func (e ENUCoords) ECEF(base Base) ECEFCoords {
	b := base.ECEF()
	bg := b.Geodetic()

	blon := bg.Lon * deg2rad
	blat := bg.Lat * deg2rad

	slon := math.Sin(blon)
	slat := math.Sin(blat)
	clon := math.Cos(blon)
	clat := math.Cos(blat)

	return ECEFCoords{
		X: -e.E*slon - e.N*clon*slat + e.U*clon*clat + b.X,
		Y: e.E*clon - e.N*slon*slat + e.U*slon*clat + b.Y,
		Z: e.N*clat + e.U*slat + b.Z,
	}
}

// ENU expresses the geodetic point in the local tangent-plane frame anchored
// at base, pivoting through ECEF.
func (g GeoCoords) ENU(base Base) ENUCoords {
	return g.ECEF().ENU(base)
}

// Geodetic converts the local tangent-plane point to geodetic coordinates,
// pivoting through ECEF. base must be the anchor that produced the ENU value.
func (e ENUCoords) Geodetic(base Base) GeoCoords {
	return e.ECEF(base).Geodetic()
}

// Rebase re-expresses the point, currently anchored at from, in the tangent
// plane anchored at to. There is no shortcut: the point goes through ECEF.
func (e ENUCoords) Rebase(from, to Base) ENUCoords {
	return e.ECEF(from).ENU(to)
}
