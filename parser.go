package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoValidData is returned when a file was readable but not a single row
// survived parsing.
var ErrNoValidData = errors.New("no valid data found")

var errShortRow = errors.New("need at least 2 columns")

// IOError means the file could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError describes one rejected row. Column is -1 when the row as a
// whole was unusable.
type FormatError struct {
	Row    int
	Column int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %d: %v", e.Row, e.Column, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

type ParseOptions struct {
	Delimiter rune
	Header    bool // skip the first row unconditionally
}

func (o ParseOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return defaultDelimiter
	}
	return o.Delimiter
}

// ParseStats counts what happened to the rows of one file.
type ParseStats struct {
	Rows    int
	Skipped int
}

// LoadSeries reads path and converts it into a Series of the given kind.
// Malformed rows are skipped; the load only fails when the file cannot be
// read or nothing usable is left.
func LoadSeries(path string, kind ChartKind, opts ParseOptions) (Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer file.Close()

	var (
		series Series
		stats  ParseStats
	)
	switch kind {
	case ChartBar:
		var bars []Bar
		bars, stats, err = parseRows(file, opts, parseBar)
		if err == nil {
			series = NewCategorySeries(bars)
		}
	default:
		var points []Point
		points, stats, err = parseRows(file, opts, parsePoint)
		if err == nil {
			series = NewLineSeries(points)
		}
	}
	if err != nil {
		if errors.Is(err, ErrNoValidData) {
			return nil, fmt.Errorf("%w in %s", ErrNoValidData, path)
		}
		return nil, &IOError{Path: path, Err: err}
	}

	log.Printf("loaded %s as %s chart: %d rows, %d skipped", path, kind, stats.Rows, stats.Skipped)
	return series, nil
}

// parseRows runs convert over every row of r in order. Rows that fail are
// counted and skipped. Only a read failure of the underlying reader or an
// empty result is returned as an error.
func parseRows[T any](r io.Reader, opts ParseOptions, convert func(fields []string) (T, error)) ([]T, ParseStats, error) {
	// Spreadsheet "CSV UTF-8" exports start with a byte order mark.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		records []T
		stats   ParseStats
	)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Rows++

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, stats, err
			}
			stats.Skipped++
			log.Printf("skipping %v", &FormatError{Row: stats.Rows, Column: -1, Err: err})
			continue
		}

		if opts.Header && stats.Rows == 1 {
			continue
		}

		record, err := convert(fields)
		if err != nil {
			var formatErr *FormatError
			if errors.As(err, &formatErr) {
				formatErr.Row = stats.Rows
			}
			stats.Skipped++
			log.Printf("skipping %v", err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, stats, ErrNoValidData
	}
	return records, stats, nil
}

func parsePoint(fields []string) (Point, error) {
	if len(fields) < 2 {
		return Point{}, &FormatError{Column: -1, Err: errShortRow}
	}
	x, err := parseFinite(fields[0])
	if err != nil {
		return Point{}, &FormatError{Column: 0, Err: err}
	}
	y, err := parseFinite(fields[1])
	if err != nil {
		return Point{}, &FormatError{Column: 1, Err: err}
	}
	return Point{X: x, Y: y}, nil
}

func parseBar(fields []string) (Bar, error) {
	if len(fields) < 2 {
		return Bar{}, &FormatError{Column: -1, Err: errShortRow}
	}
	value, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return Bar{}, &FormatError{Column: 1, Err: err}
	}
	return Bar{Label: fields[0], Value: value}, nil
}

func parseFinite(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", field)
	}
	return v, nil
}
