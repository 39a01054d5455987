package core

import (
	"math"
	"testing"
)

func TestGeoToECEF_KnownPoints(t *testing.T) {
	// Equator / prime meridian at zero height sits on the X axis at one
	// equatorial radius.
	ecef := GeoCoords{Lon: 0, Lat: 0, Hgt: 0}.ECEF()
	if math.Abs(ecef.X-Re) > 1e-6 {
		t.Errorf("X = %v, want %v", ecef.X, Re)
	}
	if math.Abs(ecef.Y) > 1e-6 || math.Abs(ecef.Z) > 1e-6 {
		t.Errorf("Y, Z = %v, %v, want 0, 0", ecef.Y, ecef.Z)
	}

	// The north pole sits on the Z axis at the polar radius b = Re*(1-Fe).
	pole := GeoCoords{Lon: 0, Lat: 90, Hgt: 0}.ECEF()
	b := Re * (1 - Fe)
	if math.Abs(pole.Z-b) > 1e-6 {
		t.Errorf("pole Z = %v, want %v", pole.Z, b)
	}
	if math.Abs(pole.X) > 1e-3 || math.Abs(pole.Y) > 1e-3 {
		t.Errorf("pole X, Y = %v, %v, want ~0", pole.X, pole.Y)
	}
}

func TestRoundTrip_GeoECEFGeo(t *testing.T) {
	points := []GeoCoords{
		{Lon: 2.3522, Lat: 48.8566, Hgt: 35},       // Paris
		{Lon: -74.006, Lat: 40.7128, Hgt: 10},      // New York
		{Lon: 151.2093, Lat: -33.8688, Hgt: 58},    // Sydney
		{Lon: -178.95, Lat: -0.01, Hgt: 0},         // near antimeridian
		{Lon: 18.4233, Lat: -78.45, Hgt: 2835},     // high southern latitude
		{Lon: 0.0, Lat: 89.5, Hgt: 120},            // near the pole
		{Lon: 86.925, Lat: 27.9881, Hgt: 8848},     // Everest
	}

	for _, p := range points {
		back := p.ECEF().Geodetic()
		if math.Abs(back.Lon-p.Lon) > 1e-7 {
			t.Errorf("%v: lon came back as %v", p, back.Lon)
		}
		if math.Abs(back.Lat-p.Lat) > 1e-7 {
			t.Errorf("%v: lat came back as %v", p, back.Lat)
		}
		if math.Abs(back.Hgt-p.Hgt) > 1e-3 {
			t.Errorf("%v: hgt came back as %v", p, back.Hgt)
		}
	}
}

func TestRoundTrip_ECEFENUECEF(t *testing.T) {
	base := GeoCoords{Lon: 2.3522, Lat: 48.8566, Hgt: 35}
	points := []ECEFCoords{
		GeoCoords{Lon: 2.2945, Lat: 48.8584, Hgt: 330}.ECEF(),  // nearby
		GeoCoords{Lon: 5.3698, Lat: 43.2965, Hgt: 12}.ECEF(),   // ~700 km away
		GeoCoords{Lon: -74.006, Lat: 40.7128, Hgt: 10}.ECEF(),  // other side of the Atlantic
		{X: Re + 500000, Y: 0, Z: 0},                           // not on the surface at all
	}

	for _, p := range points {
		back := p.ENU(base).ECEF(base)
		if math.Abs(back.X-p.X) > 1e-6 ||
			math.Abs(back.Y-p.Y) > 1e-6 ||
			math.Abs(back.Z-p.Z) > 1e-6 {
			t.Errorf("round trip of %v through ENU gave %v", p, back)
		}
	}
}

func TestENU_BaseMayBeGeodeticOrECEF(t *testing.T) {
	baseGeo := GeoCoords{Lon: 5.0, Lat: 45.0, Hgt: 200}
	baseECEF := baseGeo.ECEF()
	point := GeoCoords{Lon: 5.01, Lat: 45.01, Hgt: 250}.ECEF()

	fromGeo := point.ENU(baseGeo)
	fromECEF := point.ENU(baseECEF)
	if math.Abs(fromGeo.E-fromECEF.E) > 1e-9 ||
		math.Abs(fromGeo.N-fromECEF.N) > 1e-9 ||
		math.Abs(fromGeo.U-fromECEF.U) > 1e-9 {
		t.Errorf("ENU differs by base representation: %v vs %v", fromGeo, fromECEF)
	}
}

func TestENU_PointAtBaseIsOrigin(t *testing.T) {
	base := GeoCoords{Lon: 2.3522, Lat: 48.8566, Hgt: 35}
	enu := base.ENU(base)
	if math.Abs(enu.E) > 1e-6 || math.Abs(enu.N) > 1e-6 || math.Abs(enu.U) > 1e-6 {
		t.Errorf("base relative to itself = %v, want origin", enu)
	}
}

func TestENU_UpAxisPointsAwayFromEllipsoid(t *testing.T) {
	base := GeoCoords{Lon: 2.3522, Lat: 48.8566, Hgt: 0}
	above := GeoCoords{Lon: 2.3522, Lat: 48.8566, Hgt: 1000}
	enu := above.ENU(base)
	if math.Abs(enu.U-1000) > 1e-3 {
		t.Errorf("point 1000 m overhead has U = %v", enu.U)
	}
	if math.Abs(enu.E) > 1e-6 || math.Abs(enu.N) > 1e-6 {
		t.Errorf("point straight overhead has E, N = %v, %v", enu.E, enu.N)
	}
}

func TestRebase_PivotsThroughECEF(t *testing.T) {
	base1 := GeoCoords{Lon: 2.3522, Lat: 48.8566, Hgt: 35}
	base2 := GeoCoords{Lon: 2.2945, Lat: 48.8584, Hgt: 330}
	point := GeoCoords{Lon: 2.32, Lat: 48.86, Hgt: 100}

	enu1 := point.ENU(base1)
	enu2 := enu1.Rebase(base1, base2)
	want := point.ENU(base2)

	if math.Abs(enu2.E-want.E) > 1e-6 ||
		math.Abs(enu2.N-want.N) > 1e-6 ||
		math.Abs(enu2.U-want.U) > 1e-6 {
		t.Errorf("Rebase gave %v, want %v", enu2, want)
	}
}

func TestGeodeticFromENU_RecoversPoint(t *testing.T) {
	base := GeoCoords{Lon: -0.1276, Lat: 51.5074, Hgt: 11}
	point := GeoCoords{Lon: -0.0754, Lat: 51.5055, Hgt: 35}

	back := point.ENU(base).Geodetic(base)
	if math.Abs(back.Lon-point.Lon) > 1e-7 ||
		math.Abs(back.Lat-point.Lat) > 1e-7 ||
		math.Abs(back.Hgt-point.Hgt) > 1e-3 {
		t.Errorf("ENU -> geodetic gave %v, want %v", back, point)
	}
}
