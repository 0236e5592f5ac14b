package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadius is the equatorial radius of the earth in meters (WGS-84).
const EarthRadius = 6378137

// degreesPerRadian converts an angle in radians to degrees.
const degreesPerRadian = 180 / math.Pi

// Coordinates represents a geographical point defined by its longitude and latitude
// in decimal degrees. It is an immutable value.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
}

// NewCoordinates returns the point at the given longitude and latitude.
func NewCoordinates(longitude, latitude float64) Coordinates {
	return Coordinates{Longitude: longitude, Latitude: latitude}
}

// IsValid reports whether the longitude is within [-180, 180] and the latitude within [-90, 90].
func (c Coordinates) IsValid() bool {
	return c.Longitude >= -180 && c.Longitude <= 180 &&
		c.Latitude >= -90 && c.Latitude <= 90
}

// IsFinite reports whether both components are finite numbers.
func (c Coordinates) IsFinite() bool {
	return isFinite(c.Longitude) && isFinite(c.Latitude)
}

// Offset returns the point displaced by distanceLon meters along the longitude axis and
// distanceLat meters along the latitude axis. When distanceLat is omitted the longitude
// distance is used for both axes.
//
// The longitude displacement is scaled by 1/cos(latitude). At the poles the cosine is
// (close to) zero and the resulting longitude is enormous, infinite or NaN; callers that
// need a usable value must check it.
func (c Coordinates) Offset(distanceLon float64, distanceLat ...float64) Coordinates {
	dLat := distanceLon
	if len(distanceLat) > 0 {
		dLat = distanceLat[0]
	}

	return Coordinates{
		Longitude: c.Longitude + (distanceLon/EarthRadius)*degreesPerRadian/math.Cos(math.Pi*c.Latitude/180),
		Latitude:  c.Latitude + (dLat/EarthRadius)*degreesPerRadian,
	}
}

// DistanceTo returns the great-circle distance in meters to other using the Haversine formula.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	dLon := radians(other.Longitude - c.Longitude)
	dLat := radians(other.Latitude - c.Latitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(radians(c.Latitude))*math.Cos(radians(other.Latitude))*sinLon*sinLon
	arc := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * arc
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(longitude: %s, latitude: %s)", FormatDegrees(c.Longitude), FormatDegrees(c.Latitude))
}

// FormatDegrees prints an angle with the shortest exact representation and at least one
// decimal, so 37 prints as 37.0.
func FormatDegrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if isFinite(v) && !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
