package emissions

import "errors"

var (
	ErrMissingColumn     = errors.New("missing required column")
	ErrNoMetrics         = errors.New("no metric columns found")
	ErrEmptyDataset      = errors.New("dataset has no rows")
	ErrInvalidYear       = errors.New("invalid year")
	ErrInvalidCountry    = errors.New("invalid country")
	ErrInvalidValue      = errors.New("invalid metric value")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)
