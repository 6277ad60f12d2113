package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/costdist/raster"
)

// errEmptyCSV reports a CSV with no data rows.
var errEmptyCSV = errors.New("csv grid has no rows")

// readGrid parses a CSV raster: one row per line, one cell per field.
// Empty fields and fields equal to nodata become NaN; every row must have the
// same number of fields. Lines starting with '#' are comments.
func readGrid(r io.Reader, nodata string) (w, h int, data []float64, err error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 0 // first record fixes the width

	for {
		rec, rerr := cr.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return 0, 0, nil, fmt.Errorf("read csv: %w", rerr)
		}
		for x, field := range rec {
			v, perr := parseCell(field, nodata)
			if perr != nil {
				return 0, 0, nil, fmt.Errorf("row %d col %d: %w", h, x, perr)
			}
			data = append(data, v)
		}
		w = len(rec)
		h++
	}
	if h == 0 {
		return 0, 0, nil, errEmptyCSV
	}

	return w, h, data, nil
}

// parseCell converts one CSV field; missing values are NaN.
func parseCell(field, nodata string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" || (nodata != "" && s == nodata) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}

	return v, nil
}

// loadFriction reads a friction CSV into a grid; missing and non-positive
// cells are impassable.
func loadFriction(path, nodata string) (*raster.Grid[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open friction: %w", err)
	}
	defer f.Close()

	w, h, data, err := readGrid(f, nodata)
	if err != nil {
		return nil, fmt.Errorf("friction %s: %w", path, err)
	}

	return raster.NewFriction(w, h, data, math.NaN())
}

// loadSourceValues reads a CSV of source weights; valid cells > 0 are sources.
func loadSourceValues(path, nodata string) (*raster.Grid[bool], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources: %w", err)
	}
	defer f.Close()

	w, h, data, err := readGrid(f, nodata)
	if err != nil {
		return nil, fmt.Errorf("sources %s: %w", path, err)
	}
	valid := make([]bool, len(data))
	for i, v := range data {
		valid[i] = !math.IsNaN(v)
	}
	g, err := raster.FromSlice(w, h, data, valid)
	if err != nil {
		return nil, err
	}

	return raster.SourcesFromValues(g), nil
}

// writeGrid writes g as CSV with invalid cells left empty.
func writeGrid(wr io.Writer, g *raster.Grid[float64]) error {
	cw := csv.NewWriter(wr)
	rec := make([]string, g.Width())
	for y := 0; y < g.Height(); y++ {
		for x := range rec {
			v, ok := g.At(g.Index(x, y))
			if !ok {
				rec[x] = ""
				continue
			}
			rec[x] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
