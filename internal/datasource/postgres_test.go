package datasource_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/airfinder/internal/datasource"
	"github.com/UnknownOlympus/airfinder/internal/models"
	"github.com/UnknownOlympus/airfinder/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProvider_AirportsInBox(t *testing.T) {
	ctx := t.Context()

	t.Run("store returns error", func(t *testing.T) {
		store := mocks.NewAirportStore(t)
		store.On("FetchAirportsInBox", ctx, bayAreaBox).Return(nil, assert.AnError).Once()

		records, err := datasource.NewPostgresProvider(store, slog.Default()).AirportsInBox(ctx, bayAreaBox)

		assert.Nil(t, records)
		require.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "failed to fetch airports")
	})

	t.Run("store returns airports", func(t *testing.T) {
		store := mocks.NewAirportStore(t)
		want := []models.Record{{Longitude: -122.375, Latitude: 37.6213, Name: "SFO"}}
		store.On("FetchAirportsInBox", ctx, bayAreaBox).Return(want, nil).Once()

		records, err := datasource.NewPostgresProvider(store, slog.Default()).AirportsInBox(ctx, bayAreaBox)

		require.NoError(t, err)
		assert.Equal(t, want, records)
	})
}
