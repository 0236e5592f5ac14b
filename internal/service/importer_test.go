package service_test

import (
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/UnknownOlympus/airfinder/internal/models"
	"github.com/UnknownOlympus/airfinder/internal/repository"
	"github.com/UnknownOlympus/airfinder/internal/service"
	"github.com/UnknownOlympus/airfinder/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ service.AirportWriter = (*repository.Repository)(nil)

func TestImporter_Import(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("stores the airports of the source", func(t *testing.T) {
		source := mocks.NewProvider(t)
		store := mocks.NewAirportWriter(t)
		source.On("AirportsInBox", mock.Anything, service.WorldBox).Return(bayAreaRecords, nil).Once()
		store.On("UpsertAirports", mock.Anything, bayAreaRecords).Return(nil).Once()

		count, err := service.NewImporter(logger, source, "cloudant", store).Import(t.Context(), service.WorldBox)

		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("skips records that cannot be searched", func(t *testing.T) {
		source := mocks.NewProvider(t)
		store := mocks.NewAirportWriter(t)
		source.On("AirportsInBox", mock.Anything, mock.Anything).Return([]models.Record{
			{Longitude: -122.375, Latitude: 37.6213, Name: "SFO"},
			{Longitude: math.NaN(), Latitude: 37.6, Name: "XXX"},
			{Longitude: 1, Latitude: 1, Name: ""},
		}, nil).Once()
		store.On("UpsertAirports", mock.Anything, []models.Record{
			{Longitude: -122.375, Latitude: 37.6213, Name: "SFO"},
		}).Return(nil).Once()

		count, err := service.NewImporter(logger, source, "cloudant", store).Import(t.Context(), service.WorldBox)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("source failure stores nothing", func(t *testing.T) {
		source := mocks.NewProvider(t)
		store := mocks.NewAirportWriter(t)
		source.On("AirportsInBox", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		count, err := service.NewImporter(logger, source, "cloudant", store).Import(t.Context(), service.WorldBox)

		assert.Zero(t, count)
		require.ErrorIs(t, err, models.ErrDataSource)
		require.ErrorIs(t, err, assert.AnError)
		store.AssertNotCalled(t, "UpsertAirports", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		source := mocks.NewProvider(t)
		store := mocks.NewAirportWriter(t)
		source.On("AirportsInBox", mock.Anything, mock.Anything).Return(bayAreaRecords, nil).Once()
		store.On("UpsertAirports", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		count, err := service.NewImporter(logger, source, "cloudant", store).Import(t.Context(), service.WorldBox)

		assert.Zero(t, count)
		require.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "failed to store airports")
	})
}
