package core

import (
	"errors"
	"fmt"
	"math"
)

// SRIDLambert93 is the EPSG code of the French Lambert-93 conformal conic
// projection.
const SRIDLambert93 = 2154

// UTM SRID range. Codes 32601-32660 are the northern-hemisphere zones,
// 32701-32760 the southern ones.
const (
	sridUTMBase  = 32600
	sridUTMSouth = 32700
	sridUTMMax   = 32799
)

// ErrUnsupportedSRID is returned when an SRID names a projection the engine
// does not implement, or an operation the projection does not support.
var ErrUnsupportedSRID = errors.New("unsupported SRID")

// Projection is a planar map projection selected by SRID. The zero value is
// not usable; construct one with NewProjection.
type Projection struct {
	srid  int
	zone  int  // UTM zone number, 1..60; 0 for Lambert-93
	north bool // UTM hemisphere; unused for Lambert-93
}

// NewProjection validates an SRID and returns the corresponding projection.
// Supported codes are 2154 (Lambert-93) and the UTM ranges 32601-32660
// (north) and 32701-32760 (south); any other code fails with
// ErrUnsupportedSRID.
func NewProjection(srid int) (Projection, error) {
	if srid == SRIDLambert93 {
		return Projection{srid: srid}, nil
	}
	if srid >= sridUTMBase && srid <= sridUTMMax {
		zone := srid % 100
		if zone >= 1 && zone <= 60 {
			return Projection{srid: srid, zone: zone, north: srid < sridUTMSouth}, nil
		}
	}
	return Projection{}, fmt.Errorf("%w: %d", ErrUnsupportedSRID, srid)
}

// SRID returns the projection's SRID code.
func (p Projection) SRID() int { return p.srid }

// Forward projects a geodetic position onto the plane, returning easting and
// northing as an ENU value (Up carries the height through unchanged). Only
// Lambert-93 has a forward projection; UTM forward is not implemented.
func (p Projection) Forward(g GeoCoords) (ENUCoords, error) {
	switch {
	case p.srid == SRIDLambert93:
		return forwardLambert93(g), nil
	case p.zone != 0:
		return ENUCoords{}, fmt.Errorf("%w: no forward projection for SRID %d", ErrUnsupportedSRID, p.srid)
	default:
		return ENUCoords{}, fmt.Errorf("%w: %d", ErrUnsupportedSRID, p.srid)
	}
}

// Inverse recovers the geodetic position from planar easting/northing given
// as an ENU value (Up carries the height through unchanged).
func (p Projection) Inverse(e ENUCoords) (GeoCoords, error) {
	switch {
	case p.srid == SRIDLambert93:
		return inverseLambert93(e), nil
	case p.zone != 0:
		return inverseUTM(e, p.zone, p.north), nil
	default:
		return GeoCoords{}, fmt.Errorf("%w: %d", ErrUnsupportedSRID, p.srid)
	}
}

// Lambert-93 projection parameters (RGF93 datum, metropolitan France).
const (
	lam93E       = 0.08181919106     // ellipsoid first eccentricity
	lam93Xp      = 700000.000        // false easting
	lam93Yp      = 12655612.050      // false northing
	lam93N       = 0.725607765053267 // cone constant
	lam93C       = 11754255.4260960  // projection scale
	lam93Lambda0 = 0.0523598775598299
)

// forwardLambert93 maps geodetic coordinates onto the Lambert-93 plane using
// the closed conformal-conic form.
func forwardLambert93(g GeoCoords) ENUCoords {
	lon := g.Lon * deg2rad
	phi := g.Lat * deg2rad

	es := lam93E * math.Sin(phi)
	latiso := math.Log(math.Tan(math.Pi/4+phi/2) * math.Pow((1-es)/(1+es), lam93E/2))

	r := lam93C * math.Exp(-lam93N*latiso)
	theta := lam93N * (lon - lam93Lambda0)

	return ENUCoords{
		E: lam93Xp + r*math.Sin(theta),
		N: lam93Yp - r*math.Cos(theta),
		U: g.Hgt,
	}
}

// inverseLambert93 recovers geodetic coordinates from the Lambert-93 plane.
// The longitude is direct; the latitude is refined from the isometric
// latitude with exactly 10 fixed-point iterations. The iteration count is
// part of the output contract: downstream reference data was produced with
// it, so it must not be replaced by a convergence test.
func inverseLambert93(e ENUCoords) GeoCoords {
	x := e.E
	y := e.N

	lon := math.Atan(-(x-lam93Xp)/(y-lam93Yp))/lam93N + lam93Lambda0
	latiso := -math.Log(math.Hypot(x-lam93Xp, y-lam93Yp)/lam93C) / lam93N

	phi := 2*math.Atan(math.Exp(latiso)) - math.Pi/2
	for i := 0; i < 10; i++ {
		es := lam93E * math.Sin(phi)
		phi = 2*math.Atan(math.Pow((1+es)/(1-es), lam93E/2)*math.Exp(latiso)) - math.Pi/2
	}

	return GeoCoords{
		Lon: lon * rad2deg,
		Lat: phi * rad2deg,
		Hgt: e.U,
	}
}

// inverseUTM recovers geodetic coordinates from UTM easting/northing using
// the standard series expansion: footpoint latitude from the rectifying
// series, then ellipsoidal correction terms up to the 8th order.
func inverseUTM(coords ENUCoords, zone int, northern bool) GeoCoords {
	x := coords.E - 500000
	y := coords.N
	if !northern {
		y -= 10000000
	}

	centralLon := float64((zone-1)*6 - 180 + 3)

	const k0 = 0.9996
	const e1 = 0.00669438
	e2 := e1 * e1
	e3 := e2 * e1
	ep2 := e1 / (1.0 - e1)

	sqrtE := math.Sqrt(1 - e1)
	es := (1 - sqrtE) / (1 + sqrtE)
	es2 := es * es
	es3 := es2 * es
	es4 := es3 * es
	es5 := es4 * es

	m1 := 1 - e1/4 - 3*e2/64 - 5*e3/256
	p2 := 3.0/2*es - 27.0/32*es3 + 269.0/512*es5
	p3 := 21.0/16*es2 - 55.0/32*es4
	p4 := 151.0/96*es3 - 417.0/128*es5
	p5 := 1097.0 / 512 * es4

	m := y / k0
	mu := m / (Re * m1)

	// Footpoint latitude.
	pRad := mu +
		p2*math.Sin(2*mu) +
		p3*math.Sin(4*mu) +
		p4*math.Sin(6*mu) +
		p5*math.Sin(8*mu)

	pSin := math.Sin(pRad)
	pSin2 := pSin * pSin
	pCos := math.Cos(pRad)

	pTan := pSin / pCos
	pTan2 := pTan * pTan
	pTan4 := pTan2 * pTan2

	epSin := 1 - e1*pSin2
	epSinSqrt := math.Sqrt(epSin)

	n := Re / epSinSqrt
	r := (1 - e1) / epSin
	c := ep2 * pCos * pCos
	c2 := c * c

	d := x / (n * k0)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := pRad -
		(pTan/r)*(d2/2-d4/24*(5+3*pTan2+10*c-4*c2-9*ep2)) +
		d6/720*(61+90*pTan2+298*c+45*pTan4-252*ep2-3*c2)

	lon := (d -
		d3/6*(1+2*pTan2+c) +
		d5/120*(5-2*c+28*pTan2-3*c2+8*ep2+24*pTan4)) / pCos

	lon += centralLon * deg2rad

	return GeoCoords{
		Lon: lon * rad2deg,
		Lat: lat * rad2deg,
		Hgt: coords.U,
	}
}
