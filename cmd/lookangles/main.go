// Command lookangles propagates a satellite TLE to a chosen UTC time and
// reports the azimuth, elevation, and range of the satellite as seen from a
// geodetic ground station, using the engine's ECEF -> ENU conversion.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/geodesy/core"
	"github.com/signalsfoundry/geodesy/internal/logging"
)

func main() {
	tlePath := flag.String("tle", "", "Path to a TLE file (two or three lines)")
	lon := flag.Float64("lon", 0, "Ground station longitude in decimal degrees")
	lat := flag.Float64("lat", 0, "Ground station latitude in decimal degrees")
	hgt := flag.Float64("hgt", 0, "Ground station height in metres above the ellipsoid")
	at := flag.String("at", "", "UTC time in RFC 3339 format (default: now)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	if *tlePath == "" {
		log.Error(ctx, "missing required -tle flag")
		os.Exit(2)
	}

	line1, line2, err := readTLE(*tlePath)
	if err != nil {
		log.Error(ctx, "failed to read TLE", logging.String("path", *tlePath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	when := time.Now().UTC()
	if *at != "" {
		when, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			log.Error(ctx, "failed to parse -at time", logging.String("error", err.Error()))
			os.Exit(2)
		}
		when = when.UTC()
	}

	station := core.GeoCoords{Lon: *lon, Lat: *lat, Hgt: *hgt}
	satECEF := propagateECEF(line1, line2, when)
	target := satECEF.ENU(station)

	azimuth := station.ECEF().AzimuthTo(satECEF) * 180.0 / math.Pi
	elevation := station.ECEF().ElevationTo(satECEF) * 180.0 / math.Pi

	log.Info(ctx, "computed look angles",
		logging.String("time", when.Format(time.RFC3339)),
		logging.Float64("station_lon", station.Lon),
		logging.Float64("station_lat", station.Lat),
	)

	fmt.Printf("time       %s\n", when.Format(time.RFC3339))
	fmt.Printf("station    %s\n", station)
	fmt.Printf("satellite  %s\n", satECEF)
	fmt.Printf("azimuth    %9.3f deg\n", azimuth)
	fmt.Printf("elevation  %9.3f deg\n", elevation)
	fmt.Printf("range      %12.1f m\n", target.Norm())
}

// propagateECEF runs SGP4 to the given time and returns the satellite
// position in ECEF metres. go-satellite works in kilometres.
func propagateECEF(line1, line2 string, when time.Time) core.ECEFCoords {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)

	year, month, day := when.Date()
	hour, min, sec := when.Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	const kmToM = 1000.0
	return core.ECEFCoords{
		X: posECEF.X * kmToM,
		Y: posECEF.Y * kmToM,
		Z: posECEF.Z * kmToM,
	}
}

// readTLE returns the two element lines from a TLE file, skipping an
// optional leading name line.
func readTLE(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	switch {
	case len(lines) >= 3:
		return lines[len(lines)-2], lines[len(lines)-1], nil
	case len(lines) == 2:
		return lines[0], lines[1], nil
	default:
		return "", "", fmt.Errorf("TLE file %s has %d non-empty lines, want 2 or 3", path, len(lines))
	}
}
