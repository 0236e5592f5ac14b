package cli

import (
	"io"

	"github.com/UnknownOlympus/airfinder/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer writes search results with thousands separators, rounded to whole meters.
type Printer struct {
	out io.Writer
	p   *message.Printer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, p: message.NewPrinter(language.English)}
}

// Header announces the search about to run.
func (pr *Printer) Header(in Input) {
	pr.p.Fprintf(pr.out,
		"Finding airports sorted by distance in a radius of %.0f meters from the coordinate longitude: %s, latitude: %s\n",
		in.Radius, models.FormatDegrees(in.Center.Longitude), models.FormatDegrees(in.Center.Latitude))
}

// Airport prints one result line with its distance from the center.
func (pr *Printer) Airport(airport models.Airport, distance float64) {
	pr.p.Fprintf(pr.out, "%s: %.0f meter\n", airport.String(), distance)
}
