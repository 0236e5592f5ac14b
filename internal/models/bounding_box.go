package models

import "math"

// BoundingBox is a rectangular longitude/latitude range used to pre-filter candidates
// before they are ranked by distance.
type BoundingBox struct {
	MinLongitude float64
	MaxLongitude float64
	MinLatitude  float64
	MaxLatitude  float64
}

// NewBoundingBox builds the box spanned by two opposite corners. The corners may be given
// in any order; the box is always normalized so that min <= max on both axes.
func NewBoundingBox(a, b Coordinates) BoundingBox {
	return BoundingBox{
		MinLongitude: math.Min(a.Longitude, b.Longitude),
		MaxLongitude: math.Max(a.Longitude, b.Longitude),
		MinLatitude:  math.Min(a.Latitude, b.Latitude),
		MaxLatitude:  math.Max(a.Latitude, b.Latitude),
	}
}

// Contains reports whether c lies inside the box, edges included.
func (bb BoundingBox) Contains(c Coordinates) bool {
	return c.Longitude >= bb.MinLongitude && c.Longitude <= bb.MaxLongitude &&
		c.Latitude >= bb.MinLatitude && c.Latitude <= bb.MaxLatitude
}

// IsFinite reports whether every bound is a finite number.
func (bb BoundingBox) IsFinite() bool {
	return NewCoordinates(bb.MinLongitude, bb.MinLatitude).IsFinite() &&
		NewCoordinates(bb.MaxLongitude, bb.MaxLatitude).IsFinite()
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() Coordinates {
	return Coordinates{
		Longitude: (bb.MinLongitude + bb.MaxLongitude) / 2,
		Latitude:  (bb.MinLatitude + bb.MaxLatitude) / 2,
	}
}
