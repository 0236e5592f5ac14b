package models_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/airfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sanFrancisco = models.NewCoordinates(-122.4194, 37.7749)

func TestCoordinates_DistanceTo(t *testing.T) {
	t.Parallel()

	t.Run("zero distance for identical points", func(t *testing.T) {
		t.Parallel()
		for _, c := range []models.Coordinates{sanFrancisco, {}, {Longitude: 180, Latitude: -90}} {
			assert.Zero(t, c.DistanceTo(c))
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		pairs := [][2]models.Coordinates{
			{sanFrancisco, models.NewCoordinates(-122.375, 37.6213)},
			{models.NewCoordinates(30.52, 50.45), models.NewCoordinates(-0.1278, 51.5074)},
			{models.NewCoordinates(179.9, -45), models.NewCoordinates(-179.9, 45)},
		}
		for _, p := range pairs {
			ab := p[0].DistanceTo(p[1])
			ba := p[1].DistanceTo(p[0])
			assert.InEpsilon(t, ab, ba, 1e-9)
		}
	})

	t.Run("one degree along the equator", func(t *testing.T) {
		t.Parallel()
		origin := models.NewCoordinates(0, 0)
		assert.InDelta(t, 111319.49, origin.DistanceTo(models.NewCoordinates(1, 0)), 0.01)
		assert.InDelta(t, 111319.49, origin.DistanceTo(models.NewCoordinates(0, 1)), 0.01)
	})

	t.Run("bay area airports", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 17540.2, sanFrancisco.DistanceTo(models.NewCoordinates(-122.375, 37.6213)), 0.1)
		assert.InDelta(t, 18559.4, sanFrancisco.DistanceTo(models.NewCoordinates(-122.2197, 37.7214)), 0.1)
		assert.InDelta(t, 55917.3, sanFrancisco.DistanceTo(models.NewCoordinates(-122.0574, 37.3626)), 0.1)
	})
}

func TestCoordinates_Offset(t *testing.T) {
	t.Parallel()

	t.Run("symmetric offset from a single distance", func(t *testing.T) {
		t.Parallel()
		got := models.NewCoordinates(0, 0).Offset(1000)

		assert.InDelta(t, 0.0089831528, got.Longitude, 1e-9)
		assert.InDelta(t, 0.0089831528, got.Latitude, 1e-9)
	})

	t.Run("longitude widens away from the equator", func(t *testing.T) {
		t.Parallel()
		got := sanFrancisco.Offset(50000)

		assert.InDelta(t, -121.8511506, got.Longitude, 1e-6)
		assert.InDelta(t, 38.2240576, got.Latitude, 1e-6)
	})

	t.Run("separate latitude distance", func(t *testing.T) {
		t.Parallel()
		got := sanFrancisco.Offset(0, 1000)

		assert.InDelta(t, sanFrancisco.Longitude, got.Longitude, 1e-12)
		assert.Greater(t, got.Latitude, sanFrancisco.Latitude)
	})

	// The longitude scale depends on the receiver's latitude, so the round trip is
	// exact per axis only.
	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		for _, c := range []models.Coordinates{sanFrancisco, {}, {Longitude: 30.52, Latitude: 50.45}, {Longitude: -70, Latitude: -60}} {
			for _, d := range []float64{1, 1000, 50000, -25000} {
				lon := c.Offset(d, 0).Offset(-d, 0)
				assert.InDelta(t, c.Longitude, lon.Longitude, 1e-9)
				assert.InDelta(t, c.Latitude, lon.Latitude, 1e-12)

				lat := c.Offset(0, d).Offset(0, -d)
				assert.InDelta(t, c.Longitude, lat.Longitude, 1e-12)
				assert.InDelta(t, c.Latitude, lat.Latitude, 1e-9)
			}

			both := c.Offset(1).Offset(-1)
			assert.InDelta(t, c.Longitude, both.Longitude, 1e-6)
			assert.InDelta(t, c.Latitude, both.Latitude, 1e-9)
		}
	})

	t.Run("pole produces unusable longitude", func(t *testing.T) {
		t.Parallel()
		got := models.NewCoordinates(0, 90).Offset(1000)

		assert.Greater(t, math.Abs(got.Longitude), 1e12)
		assert.InDelta(t, 90.0089831528, got.Latitude, 1e-9)
	})
}

func TestCoordinates_IsValid(t *testing.T) {
	t.Parallel()
	assert.True(t, sanFrancisco.IsValid())
	assert.True(t, models.NewCoordinates(-180, 90).IsValid())
	assert.False(t, models.NewCoordinates(181, 0).IsValid())
	assert.False(t, models.NewCoordinates(0, -90.5).IsValid())
}

func TestCoordinates_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "(longitude: -122.4194, latitude: 37.7749)", sanFrancisco.String())
	assert.Equal(t, "(longitude: 0.0, latitude: 37.0)", models.NewCoordinates(0, 37).String())
}

func TestFormatDegrees(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value float64
		want  string
	}{
		{value: 37, want: "37.0"},
		{value: -122, want: "-122.0"},
		{value: 0, want: "0.0"},
		{value: 37.7749, want: "37.7749"},
		{value: 0.5, want: "0.5"},
		{value: 1e21, want: "1000000000000000000000.0"},
		{value: math.Inf(1), want: "+Inf"},
		{value: math.NaN(), want: "NaN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.FormatDegrees(tt.value))
	}
}

func TestCoordinates_IsFinite(t *testing.T) {
	t.Parallel()
	assert.True(t, sanFrancisco.IsFinite())
	assert.False(t, models.NewCoordinates(math.NaN(), 0).IsFinite())
	assert.False(t, models.NewCoordinates(0, math.Inf(-1)).IsFinite())
}

func TestNewBoundingBox(t *testing.T) {
	t.Parallel()

	for _, radius := range []float64{50000, -50000, 0, 1} {
		box := models.NewBoundingBox(sanFrancisco.Offset(radius), sanFrancisco.Offset(-radius))

		require.LessOrEqual(t, box.MinLongitude, box.MaxLongitude)
		require.LessOrEqual(t, box.MinLatitude, box.MaxLatitude)
		assert.True(t, box.Contains(sanFrancisco))
		assert.True(t, box.IsFinite())
	}

	box := models.NewBoundingBox(models.NewCoordinates(10, -5), models.NewCoordinates(-10, 5))
	assert.Equal(t, models.BoundingBox{MinLongitude: -10, MaxLongitude: 10, MinLatitude: -5, MaxLatitude: 5}, box)
	assert.Equal(t, models.NewCoordinates(0, 0), box.Center())
	assert.False(t, box.Contains(models.NewCoordinates(10.1, 0)))
	assert.True(t, box.Contains(models.NewCoordinates(10, 5)))
}

func TestBoundingBox_IsFinite(t *testing.T) {
	t.Parallel()
	assert.False(t, models.BoundingBox{MinLongitude: math.Inf(-1), MaxLongitude: math.Inf(1)}.IsFinite())
	assert.False(t, models.BoundingBox{MinLatitude: math.NaN()}.IsFinite())
}

func TestAirport(t *testing.T) {
	t.Parallel()
	airport := models.Record{Longitude: -122.375, Latitude: 37.6213, Name: "SFO"}.ToAirport()

	assert.Equal(t, "SFO", airport.Name)
	assert.Equal(t, models.NewCoordinates(-122.375, 37.6213), airport.Location)
	assert.Equal(t, "SFO - (longitude: -122.375, latitude: 37.6213)", airport.String())
}
