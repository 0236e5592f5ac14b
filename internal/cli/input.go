// Package cli collects the search input from flags or an interactive prompt and prints results.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/airfinder/internal/models"
)

// Field names used in prompts and errors.
const (
	FieldLongitude = "Longitude"
	FieldLatitude  = "Latitude"
	FieldRadius    = "Radius"
)

// ErrNoInput is returned when the prompt input ends before every value was read.
var ErrNoInput = errors.New("input closed before all values were provided")

// Input is the center and radius of one search.
type Input struct {
	Center models.Coordinates
	Radius float64 // Radius in meters.
}

// ParseFloat parses raw as a float64, reporting failures as *models.InvalidInputError.
func ParseFloat(field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &models.InvalidInputError{Field: field, Value: raw, Err: err}
	}

	return value, nil
}

// ParseInput parses the three raw values of a search.
func ParseInput(longitude, latitude, radius string) (Input, error) {
	lon, err := ParseFloat(FieldLongitude, longitude)
	if err != nil {
		return Input{}, err
	}
	lat, err := ParseFloat(FieldLatitude, latitude)
	if err != nil {
		return Input{}, err
	}
	rad, err := ParseFloat(FieldRadius, radius)
	if err != nil {
		return Input{}, err
	}

	return Input{Center: models.NewCoordinates(lon, lat), Radius: rad}, nil
}

// Prompter asks for values on out and reads the answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Float prompts for field until the answer parses as a float.
func (p *Prompter) Float(field string) (float64, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", field)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, fmt.Errorf("failed to read %s: %w", field, err)
			}
			return 0, ErrNoInput
		}

		value, err := ParseFloat(field, p.in.Text())
		if err == nil {
			return value, nil
		}
		fmt.Fprintf(p.out, "%s must be an float value!\n", field)
	}
}

// Input prompts for the longitude, latitude and radius of a search.
func (p *Prompter) Input() (Input, error) {
	fmt.Fprintln(p.out, "Please provide the following information (radius in meters):")

	lon, err := p.Float(FieldLongitude)
	if err != nil {
		return Input{}, err
	}
	lat, err := p.Float(FieldLatitude)
	if err != nil {
		return Input{}, err
	}
	rad, err := p.Float(FieldRadius)
	if err != nil {
		return Input{}, err
	}

	return Input{Center: models.NewCoordinates(lon, lat), Radius: rad}, nil
}
