package models

import "fmt"

// Airport is a named location returned by a search.
type Airport struct {
	Name     string      // Name of the airport as reported by the data source.
	Location Coordinates // Location of the airport.
}

// Record is a raw row as delivered by a data source, before it becomes an Airport.
type Record struct {
	Longitude float64
	Latitude  float64
	Name      string
}

// NewAirport creates an Airport at the given longitude and latitude.
func NewAirport(longitude, latitude float64, name string) Airport {
	return Airport{Name: name, Location: NewCoordinates(longitude, latitude)}
}

// ToAirport converts the raw record into an Airport.
func (r Record) ToAirport() Airport {
	return NewAirport(r.Longitude, r.Latitude, r.Name)
}

func (a Airport) String() string {
	return fmt.Sprintf("%s - %s", a.Name, a.Location)
}
