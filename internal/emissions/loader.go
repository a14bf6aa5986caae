package emissions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/xuri/excelize/v2"

	"co2dash.ds4003.org/internal/logging"
)

// LoadOptions controls how the header is mapped onto the table.
type LoadOptions struct {
	// Metrics lists the metric columns to load. When empty every column other
	// than country and year whose cells are all numeric is used.
	Metrics []string
}

const (
	countryColumn = "country"
	yearColumn    = "year"
)

var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// Load reads the dataset at path. The format is chosen by extension:
// .csv, .csv.gz (or .gz) and .xlsx are supported.
func Load(path string, opts LoadOptions) (t *Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer logging.HandleDeferredError(&err, f.Close, slog.Default(), "close_dataset")

	var records [][]string
	switch ext := strings.ToLower(path); {
	case strings.HasSuffix(ext, ".gz"):
		zr, zerr := gzip.NewReader(f)
		if zerr != nil {
			return nil, fmt.Errorf("error opening gzip stream: %w", zerr)
		}
		defer logging.SafeCloseWithLogging(zr, slog.Default(), "gzip_stream")
		records, err = readCSV(zr)
	case strings.HasSuffix(ext, ".xlsx"):
		records, err = readXLSX(f)
	case strings.HasSuffix(ext, ".csv"), filepath.Ext(ext) == "":
		records, err = readCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return fromRecords(path, records, opts)
}

// Parse reads a CSV dataset from r.
func Parse(r io.Reader, opts LoadOptions) (*Table, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return fromRecords("reader", records, opts)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening xlsx: %w", err)
	}
	defer logging.SafeCloseWithLogging(f, slog.Default(), "xlsx_workbook")

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptyDataset)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

type header struct {
	country int
	year    int
	metrics []string
	columns []int
}

func fromRecords(source string, records [][]string, opts LoadOptions) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrEmptyDataset)
	}

	h, err := parseHeader(records[0], records[1:], opts)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if isBlank(rec) {
			continue
		}

		country := strings.TrimSpace(cell(rec, h.country))
		if country == "" {
			slog.Default().Warn("skipping row without country",
				slog.String("source", source),
				slog.Int("line", line),
				slog.String("component", "emissions_loader"))
			continue
		}

		year, err := parseYear(cell(rec, h.year))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidYear, line, err)
		}

		values := make(map[string]float64, len(h.metrics))
		for j, metric := range h.metrics {
			v, ok, err := parseValue(cell(rec, h.columns[j]))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", ErrInvalidValue, line, metric, err)
			}
			if ok {
				values[metric] = v
			}
		}

		rows = append(rows, Row{Country: country, Year: year, Values: values})
	}

	return NewTable(source, h.metrics, rows)
}

func parseHeader(names []string, body [][]string, opts LoadOptions) (header, error) {
	h := header{country: -1, year: -1}
	index := make(map[string]int, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		names[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
		switch strings.ToLower(name) {
		case countryColumn:
			if h.country < 0 {
				h.country = i
			}
		case yearColumn:
			if h.year < 0 {
				h.year = i
			}
		}
	}
	if h.country < 0 {
		return h, fmt.Errorf("%w: %s", ErrMissingColumn, countryColumn)
	}
	if h.year < 0 {
		return h, fmt.Errorf("%w: %s", ErrMissingColumn, yearColumn)
	}

	if len(opts.Metrics) > 0 {
		for _, m := range opts.Metrics {
			i, ok := index[m]
			if !ok || i == h.country || i == h.year {
				return h, fmt.Errorf("%w: metric %q", ErrMissingColumn, m)
			}
			h.metrics = append(h.metrics, m)
			h.columns = append(h.columns, i)
		}
		return h, nil
	}

	for i, name := range names {
		if i == h.country || i == h.year || name == "" {
			continue
		}
		if index[name] != i {
			continue
		}
		if numericColumn(body, i) {
			h.metrics = append(h.metrics, name)
			h.columns = append(h.columns, i)
		}
	}
	if len(h.metrics) == 0 {
		return h, ErrNoMetrics
	}
	return h, nil
}

// numericColumn reports whether column i has at least one value and every
// non-missing cell parses as a number.
func numericColumn(body [][]string, i int) bool {
	seen := false
	for _, rec := range body {
		_, ok, err := parseValue(cell(rec, i))
		if err != nil {
			return false
		}
		if ok {
			seen = true
		}
	}
	return seen
}

func parseYear(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty year")
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer year", raw)
	}
	return int(f), nil
}

func parseValue(raw string) (float64, bool, error) {
	s := strings.TrimSpace(raw)
	if _, missing := missingTokens[strings.ToLower(s)]; missing {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%q is not finite", raw)
	}
	return v, true, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
