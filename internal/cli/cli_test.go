package cli_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/UnknownOlympus/airfinder/internal/cli"
	"github.com/UnknownOlympus/airfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	t.Parallel()

	value, err := cli.ParseFloat(cli.FieldRadius, " 50000 ")
	require.NoError(t, err)
	assert.InDelta(t, 50000.0, value, 0)

	_, err = cli.ParseFloat(cli.FieldLongitude, "west")
	require.ErrorIs(t, err, models.ErrInvalidInput)

	var inputErr *models.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, cli.FieldLongitude, inputErr.Field)
	assert.Equal(t, "west", inputErr.Value)
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	t.Run("all values given", func(t *testing.T) {
		t.Parallel()
		args, err := cli.ParseArgs("airfinder",
			[]string{"--longitude", "-122.4194", "--latitude=37.7749", "--radius", "50000"}, io.Discard)
		require.NoError(t, err)
		require.True(t, args.Complete())
		assert.False(t, args.Serve)

		in, err := args.Input()
		require.NoError(t, err)
		assert.Equal(t, cli.Input{Center: models.NewCoordinates(-122.4194, 37.7749), Radius: 50000}, in)
	})

	t.Run("missing radius falls back to prompting", func(t *testing.T) {
		t.Parallel()
		args, err := cli.ParseArgs("airfinder", []string{"--longitude", "1", "--latitude", "2"}, io.Discard)
		require.NoError(t, err)
		assert.False(t, args.Complete())
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		args, err := cli.ParseArgs("airfinder",
			[]string{"--longitude", "1", "--latitude", "north", "--radius", "5"}, io.Discard)

		assert.Nil(t, args)
		require.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Contains(t, err.Error(), "Latitude must be an float value")
	})

	t.Run("invalid number without the other values is not prompted for", func(t *testing.T) {
		t.Parallel()
		args, err := cli.ParseArgs("airfinder", []string{"--longitude", "abc"}, io.Discard)

		assert.Nil(t, args)
		var inputErr *models.InvalidInputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, cli.FieldLongitude, inputErr.Field)
		assert.Equal(t, "abc", inputErr.Value)
	})

	t.Run("import mode", func(t *testing.T) {
		t.Parallel()
		args, err := cli.ParseArgs("airfinder", []string{"--import"}, io.Discard)
		require.NoError(t, err)
		assert.True(t, args.Import)
		assert.False(t, args.Complete())
	})

	t.Run("serve mode", func(t *testing.T) {
		t.Parallel()
		args, err := cli.ParseArgs("airfinder", []string{"--serve"}, io.Discard)
		require.NoError(t, err)
		assert.True(t, args.Serve)
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		_, err := cli.ParseArgs("airfinder", []string{"--altitude", "3"}, io.Discard)
		require.ErrorContains(t, err, "unknown flag: --altitude")
	})
}

func TestPrompter_Input(t *testing.T) {
	t.Parallel()

	t.Run("re-prompts until a float is given", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		prompter := cli.NewPrompter(strings.NewReader("abc\n-122.4194\n37.7749\n\n50000\n"), &out)

		in, err := prompter.Input()

		require.NoError(t, err)
		assert.Equal(t, cli.Input{Center: models.NewCoordinates(-122.4194, 37.7749), Radius: 50000}, in)
		assert.Equal(t,
			"Please provide the following information (radius in meters):\n"+
				"Longitude: Longitude must be an float value!\n"+
				"Longitude: Latitude: Radius: Radius must be an float value!\n"+
				"Radius: ",
			out.String())
	})

	t.Run("input ends early", func(t *testing.T) {
		t.Parallel()
		prompter := cli.NewPrompter(strings.NewReader("1\n"), io.Discard)

		_, err := prompter.Input()

		require.ErrorIs(t, err, cli.ErrNoInput)
	})
}

func TestPrinter(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printer := cli.NewPrinter(&out)

	printer.Header(cli.Input{Center: models.NewCoordinates(-122.4194, 37.7749), Radius: 50000})
	printer.Airport(models.NewAirport(-122.375, 37.6213, "SFO"), 17540.208)
	printer.Airport(models.NewAirport(-122.0574, 37.3626, "SJC"), 1255917.6)

	assert.Equal(t,
		"Finding airports sorted by distance in a radius of 50,000 meters from the coordinate "+
			"longitude: -122.4194, latitude: 37.7749\n"+
			"SFO - (longitude: -122.375, latitude: 37.6213): 17,540 meter\n"+
			"SJC - (longitude: -122.0574, latitude: 37.3626): 1,255,918 meter\n",
		out.String())
}

func TestPrinter_WholeDegrees(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printer := cli.NewPrinter(&out)

	printer.Header(cli.Input{Center: models.NewCoordinates(-122, 37), Radius: 1000})
	printer.Airport(models.NewAirport(10, 0, "ZZZ"), 0.4)

	assert.Equal(t,
		"Finding airports sorted by distance in a radius of 1,000 meters from the coordinate "+
			"longitude: -122.0, latitude: 37.0\n"+
			"ZZZ - (longitude: 10.0, latitude: 0.0): 0 meter\n",
		out.String())
}
