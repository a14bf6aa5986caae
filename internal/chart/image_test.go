package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestParseImageFormat(t *testing.T) {
	f, err := ParseImageFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())

	f, err = ParseImageFormat(" svg ")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseImageFormat("gif")
	assert.Error(t, err)
}

func TestWriteImage(t *testing.T) {
	table := fixtureTable(t)

	t.Run("renders the default selection as png", func(t *testing.T) {
		spec := Render(table, Selection{Countries: []string{"Algeria", "United Kingdom"}, Metric: "oil", Years: YearRange{2010, 2020}})

		var buf bytes.Buffer
		require.NoError(t, WriteImage(&buf, spec, DefaultImageOptions()))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	})

	t.Run("renders svg", func(t *testing.T) {
		spec := Render(table, Selection{Countries: []string{"Germany"}, Metric: "coal", Years: YearRange{2005, 2022}})

		var buf bytes.Buffer
		require.NoError(t, WriteImage(&buf, spec, ImageOptions{Format: FormatSVG, Width: 640, Height: 320}))
		assert.Contains(t, buf.String(), "<svg")
		assert.Contains(t, buf.String(), "Germany")
	})

	t.Run("empty selection still renders a frame", func(t *testing.T) {
		spec := Render(table, Selection{Metric: "oil", Years: YearRange{2010, 2020}})

		var buf bytes.Buffer
		require.NoError(t, WriteImage(&buf, spec, ImageOptions{Format: FormatPNG}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	})

	t.Run("single year and series without points", func(t *testing.T) {
		spec := Render(table, Selection{Countries: []string{"France", "India"}, Metric: "oil", Years: YearRange{2013, 2013}})
		require.Len(t, spec.Series, 2)
		assert.Empty(t, spec.Series[0].Points)

		var buf bytes.Buffer
		require.NoError(t, WriteImage(&buf, spec, DefaultImageOptions()))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	})
}

func TestYBounds(t *testing.T) {
	lo, hi, ok := yBounds(nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi, ok = yBounds([]Series{{Points: []Point{{2010, 5}}}})
	assert.True(t, ok)
	assert.Less(t, lo, 5.0)
	assert.Greater(t, hi, 5.0)

	lo, hi, ok = yBounds([]Series{{Points: []Point{{2010, 1}, {2011, 101}}}})
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 106.0, hi, 1e-9)
}

func TestYearTicks(t *testing.T) {
	ticks := yearTicks(YearRange{2010, 2020})
	require.Len(t, ticks, 11)
	assert.Equal(t, "2010", ticks[0].Label)
	assert.Equal(t, "2020", ticks[10].Label)

	ticks = yearTicks(YearRange{1990, 2022})
	assert.LessOrEqual(t, len(ticks), maxXTicks)
	assert.Equal(t, 1990.0, ticks[0].Value)
}

func TestNumberFormatter(t *testing.T) {
	assert.Equal(t, "1,234,568", NumberFormatter(1e6)(1234567.6))
	assert.Equal(t, "0", NumberFormatter(100)(0.2))
	assert.Equal(t, "text", NumberFormatter(100)("text"))
}
