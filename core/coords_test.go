package core

import (
	"errors"
	"math"
	"testing"
)

func TestString_CanonicalFormats(t *testing.T) {
	geo := GeoCoords{Lon: 2.3522, Lat: 48.8566, Hgt: 35.0}
	if got, want := geo.String(), "[lon= 2.352200000, lat=48.856600000, hgt= 35.000]"; got != want {
		t.Errorf("GeoCoords.String() = %q, want %q", got, want)
	}

	ecef := ECEFCoords{X: 4201000.5, Y: 172460.25, Z: 4780100.0}
	if got, want := ecef.String(), "[X= 4201000.500, Y=  172460.250, Z= 4780100.000]"; got != want {
		t.Errorf("ECEFCoords.String() = %q, want %q", got, want)
	}

	enu := ENUCoords{E: -12.5, N: 830.125, U: 3.0}
	if got, want := enu.String(), "[E=     -12.500, N=     830.125, U=       3.000]"; got != want {
		t.Errorf("ENUCoords.String() = %q, want %q", got, want)
	}
}

func TestParseKind_TokensAreCaseInsensitive(t *testing.T) {
	cases := []struct {
		token string
		want  Kind
	}{
		{"GEO", KindGeodetic},
		{"GeoCoords", KindGeodetic},
		{"ecef", KindECEF},
		{"ECEFCOORDS", KindECEF},
		{"enu", KindENU},
		{"EnuCoords", KindENU},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.token)
		if err != nil {
			t.Errorf("ParseKind(%q) returned error: %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestParseKind_UnknownToken(t *testing.T) {
	if _, err := ParseKind("WGS84"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(WGS84) error = %v, want ErrUnknownKind", err)
	}
}

func TestMakeCoords_ConstructsRequestedType(t *testing.T) {
	c, err := MakeCoords("geo", 2.35, 48.85, 35)
	if err != nil {
		t.Fatalf("MakeCoords: %v", err)
	}
	geo, ok := c.(GeoCoords)
	if !ok {
		t.Fatalf("MakeCoords(geo) returned %T, want GeoCoords", c)
	}
	if geo.Lon != 2.35 || geo.Lat != 48.85 || geo.Hgt != 35 {
		t.Errorf("MakeCoords(geo) = %v", geo)
	}

	if _, err := MakeCoords("mercator", 0, 0, 0); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("MakeCoords(mercator) error = %v, want ErrUnknownKind", err)
	}
}

func TestENUVectorOps(t *testing.T) {
	a := ENUCoords{E: 3, N: 4, U: 12}
	if got := a.Norm(); got != 13 {
		t.Errorf("Norm() = %v, want 13", got)
	}
	if got := a.Norm2D(); got != 5 {
		t.Errorf("Norm2D() = %v, want 5", got)
	}

	b := ENUCoords{E: 1, N: -1, U: 2}
	if got := a.Dot(b); got != 3-4+24 {
		t.Errorf("Dot() = %v, want 23", got)
	}

	sum := a.Add(b)
	if sum != (ENUCoords{E: 4, N: 3, U: 14}) {
		t.Errorf("Add() = %v", sum)
	}
	diff := a.Sub(b)
	if diff != (ENUCoords{E: 2, N: 5, U: 10}) {
		t.Errorf("Sub() = %v", diff)
	}
}

func TestENURotate_QuarterTurn(t *testing.T) {
	v := ENUCoords{E: 1, N: 0, U: 7}
	r := v.Rotate(math.Pi / 2)
	if math.Abs(r.E) > 1e-12 || math.Abs(r.N-1) > 1e-12 {
		t.Errorf("Rotate(pi/2) = %v, want (0, 1)", r)
	}
	if r.U != 7 {
		t.Errorf("Rotate changed Up: %v", r.U)
	}
}

func TestENUScaleTranslate(t *testing.T) {
	v := ENUCoords{E: 2, N: -3, U: 5}
	s := v.Scale(2)
	if s != (ENUCoords{E: 4, N: -6, U: 5}) {
		t.Errorf("Scale(2) = %v", s)
	}
	tr := v.Translate(1, 1, -5)
	if tr != (ENUCoords{E: 3, N: -2, U: 0}) {
		t.Errorf("Translate = %v", tr)
	}
}

func TestECEFVectorOps(t *testing.T) {
	a := ECEFCoords{X: 1, Y: 2, Z: 2}
	if got := a.Norm(); got != 3 {
		t.Errorf("Norm() = %v, want 3", got)
	}
	if got := a.Scale(3); got != (ECEFCoords{X: 3, Y: 6, Z: 6}) {
		t.Errorf("Scale(3) = %v", got)
	}
	b := ECEFCoords{X: -1, Y: 0, Z: 4}
	if got := a.Dot(b); got != 7 {
		t.Errorf("Dot() = %v, want 7", got)
	}
	if got := a.Add(b); got != (ECEFCoords{X: 0, Y: 2, Z: 6}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (ECEFCoords{X: 2, Y: 2, Z: -2}) {
		t.Errorf("Sub() = %v", got)
	}
}

func TestNaNPropagates(t *testing.T) {
	g := GeoCoords{Lon: math.NaN(), Lat: 48.85, Hgt: 0}
	ecef := g.ECEF()
	if !math.IsNaN(ecef.X) || !math.IsNaN(ecef.Y) {
		t.Errorf("expected NaN to propagate through ECEF conversion, got %v", ecef)
	}
}
