package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Args holds the parsed command line.
type Args struct {
	Longitude string
	Latitude  string
	Radius    string
	Serve     bool
	Import    bool

	complete bool
}

// ParseArgs parses the command line arguments (without the program name).
func ParseArgs(name string, arguments []string, output io.Writer) (*Args, error) {
	var args Args

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Find the closest airports in a radius of a coordinate.\n\nUsage of %s:\n", name)
		fs.PrintDefaults()
	}
	fs.StringVar(&args.Longitude, "longitude", "", "a float value for the longitudinal part of the coordinate")
	fs.StringVar(&args.Latitude, "latitude", "", "a float value for the latitudinal part of the coordinate")
	fs.StringVar(&args.Radius, "radius", "", "a float value that represents the radius of the search area in meters")
	fs.BoolVar(&args.Serve, "serve", false, "run the HTTP search API instead of a single search")
	fs.BoolVar(&args.Import, "import", false,
		"copy the airports of the Cloudant index into the PostgreSQL store (the whole world, or the search area when all values are given)")

	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}

	// A value given on the command line is never silently replaced by a prompt.
	for _, flag := range []struct {
		name, field, value string
	}{
		{name: "longitude", field: FieldLongitude, value: args.Longitude},
		{name: "latitude", field: FieldLatitude, value: args.Latitude},
		{name: "radius", field: FieldRadius, value: args.Radius},
	} {
		if !fs.Changed(flag.name) {
			continue
		}
		if _, err := ParseFloat(flag.field, flag.value); err != nil {
			return nil, err
		}
	}

	args.complete = fs.Changed("longitude") && fs.Changed("latitude") && fs.Changed("radius")

	return &args, nil
}

// Complete reports whether the longitude, latitude and radius were all given as flags.
// Otherwise the values are collected interactively.
func (a *Args) Complete() bool {
	return a.complete
}

// Input parses the flag values of a complete command line.
func (a *Args) Input() (Input, error) {
	return ParseInput(a.Longitude, a.Latitude, a.Radius)
}
