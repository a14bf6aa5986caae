package emissions

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const fixturePath = "../../testdata/emissions.csv"

func TestLoadFixture(t *testing.T) {
	table, err := Load(fixturePath, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 90, table.Len())
	assert.Equal(t, fixturePath, table.Source())
	assert.Equal(t, []string{"total", "coal", "oil", "gas", "cement", "flaring", "other"}, table.Metrics())
	assert.Equal(t, []string{"Algeria", "United Kingdom", "France", "Germany", "India"}, table.Countries())

	minYear, maxYear := table.YearBounds()
	assert.Equal(t, 2005, minYear)
	assert.Equal(t, 2022, maxYear)

	assert.False(t, table.HasMetric("iso_code"), "text columns are not metrics")
	assert.True(t, table.HasMetric("oil"))
	assert.True(t, table.HasCountry("United Kingdom"))
	assert.False(t, table.HasCountry("Atlantis"))
}

func TestLoadKeepsMissingValuesMissing(t *testing.T) {
	table, err := Load(fixturePath, LoadOptions{})
	require.NoError(t, err)

	var found bool
	table.Each(func(r Row) {
		if r.Country == "France" && r.Year == 2013 {
			found = true
			_, ok := r.Value("oil")
			assert.False(t, ok, "empty cell must stay missing")
			gas, ok := r.Value("gas")
			assert.True(t, ok)
			assert.InDelta(t, 109.864, gas, 1e-9)
		}
		if r.Country == "India" && r.Year == 2006 {
			_, ok := r.Value("flaring")
			assert.False(t, ok, "NA must be missing")
		}
	})
	assert.True(t, found)
}

func TestParse(t *testing.T) {
	t.Run("detects numeric metric columns", func(t *testing.T) {
		csv := "\ufeffCountry , Year,oil,gas,notes\nAlgeria,2010,5,1,x\nAlgeria,2020,9,,y\n"
		table, err := Parse(strings.NewReader(csv), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"oil", "gas"}, table.Metrics())
		assert.Equal(t, 2, table.Len())
	})

	t.Run("explicit metrics restrict the column set", func(t *testing.T) {
		csv := "country,year,oil,gas\nAlgeria,2010,5,1\n"
		table, err := Parse(strings.NewReader(csv), LoadOptions{Metrics: []string{"gas"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"gas"}, table.Metrics())
		_, ok := table.Rows()[0].Value("oil")
		assert.False(t, ok)
	})

	t.Run("accepts integral float years", func(t *testing.T) {
		table, err := Parse(strings.NewReader("country,year,oil\nAlgeria,2010.0,5\n"), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2010, table.Rows()[0].Year)
	})

	t.Run("skips blank lines and tolerates short rows", func(t *testing.T) {
		table, err := Parse(strings.NewReader("country,year,oil,gas\nAlgeria,2010,5\n,,,\nFrance,2015,3,2\n"), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
		_, ok := table.Rows()[0].Value("gas")
		assert.False(t, ok)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		opts    LoadOptions
		wantErr error
	}{
		{"missing country column", "nation,year,oil\nAlgeria,2010,5\n", LoadOptions{}, ErrMissingColumn},
		{"missing year column", "country,date,oil\nAlgeria,2010,5\n", LoadOptions{}, ErrMissingColumn},
		{"no metric columns", "country,year,iso\nAlgeria,2010,DZA\n", LoadOptions{}, ErrNoMetrics},
		{"requested metric absent", "country,year,oil\nAlgeria,2010,5\n", LoadOptions{Metrics: []string{"coal"}}, ErrMissingColumn},
		{"non numeric year", "country,year,oil\nAlgeria,twenty,5\n", LoadOptions{}, ErrInvalidYear},
		{"empty year", "country,year,oil\nAlgeria,,5\n", LoadOptions{}, ErrInvalidYear},
		{"fractional year", "country,year,oil\nAlgeria,2010.5,5\n", LoadOptions{}, ErrInvalidYear},
		{"only rows without country", "country,year,oil\n,2010,5\n", LoadOptions{}, ErrEmptyDataset},
		{"non numeric explicit metric", "country,year,oil\nAlgeria,2010,lots\n", LoadOptions{Metrics: []string{"oil"}}, ErrInvalidValue},
		{"header only", "country,year,oil\n", LoadOptions{}, ErrNoMetrics},
		{"empty input", "", LoadOptions{}, ErrEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv), tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSkipsRowsWithoutCountry(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(previous)

	table, err := Parse(strings.NewReader("country,year,oil\nAlgeria,2010,5\n ,2011,6\nAlgeria,2012,7\n"), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"Algeria"}, table.Countries())
	assert.Contains(t, buf.String(), `"msg":"skipping row without country"`)
	assert.Contains(t, buf.String(), `"line":3`)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), LoadOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
		_, err := Load(path, LoadOptions{})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestLoadGzip(t *testing.T) {
	raw, err := os.ReadFile(fixturePath)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "emissions.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	table, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 90, table.Len())
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"country", "year", "oil", "gas"},
		{"Algeria", 2010, 5, 1.5},
		{"Algeria", 2020, 9},
		{"France", 2015, 3, 2},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	path := filepath.Join(t.TempDir(), "emissions.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"oil", "gas"}, table.Metrics())

	second := table.Rows()[1]
	assert.Equal(t, 2020, second.Year)
	_, ok := second.Value("gas")
	assert.False(t, ok)
}
