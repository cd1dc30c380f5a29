// Package dataset reads host datasets from JSON documents and CSV files.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/uyouii/percentile-chart/common"
	"github.com/uyouii/percentile-chart/model"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 and the common ISO date forms, always UTC
// when no zone is given.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalize converts the values of declared date columns to time.Time.
// Values that do not parse are kept so validation can reject them.
func normalize(c *model.Column) {
	if c == nil || c.Type != model.ColumnDateTime {
		return
	}
	for i, v := range c.Values {
		switch raw := v.(type) {
		case string:
			if t, ok := ParseTime(raw); ok {
				c.Values[i] = t
			}
		case json.Number:
			if ms, err := raw.Int64(); err == nil {
				c.Values[i] = time.UnixMilli(ms).UTC()
			}
		}
	}
}

// ReadJSON decodes a dataset document:
//
//	{"category": {"displayName": "Region", "values": [...]},
//	 "values": {"displayName": "Latency", "format": "0.0", "values": [...]}}
func ReadJSON(r io.Reader) (*model.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	ds := &model.Dataset{}
	if err := dec.Decode(ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	normalize(ds.Category)
	normalize(ds.Values)
	return ds, nil
}

type CSVOptions struct {
	// Value is the header of the sample column, the first column when empty.
	Value string
	// Category is an optional header of the category column.
	Category string
	Format   string
	DateTime bool
}

// ReadCSV reads a CSV file with a header row.
func ReadCSV(r io.Reader, opts CSVOptions) (*model.Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header: %w", common.ErrorEmptyDataset)
	}

	header := records[0]
	index := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
				return i
			}
		}
		return -1
	}

	valueIdx := 0
	if opts.Value != "" {
		if valueIdx = index(opts.Value); valueIdx < 0 {
			return nil, fmt.Errorf("csv column %q not found: %w", opts.Value, common.ErrorInvalidValue)
		}
	}
	values := &model.Column{
		DisplayName: strings.TrimSpace(header[valueIdx]),
		Format:      opts.Format,
		Type:        model.ColumnNumber,
		Values:      []any{},
	}
	if opts.DateTime {
		values.Type = model.ColumnDateTime
	}

	ds := &model.Dataset{Values: values}
	categoryIdx := -1
	if opts.Category != "" {
		if categoryIdx = index(opts.Category); categoryIdx < 0 {
			return nil, fmt.Errorf("csv column %q not found: %w", opts.Category, common.ErrorInvalidValue)
		}
		ds.Category = &model.Column{
			DisplayName: strings.TrimSpace(header[categoryIdx]),
			Type:        model.ColumnText,
			Values:      []any{},
		}
	}

	for _, record := range records[1:] {
		if valueIdx >= len(record) {
			continue
		}
		values.Values = append(values.Values, parseCell(record[valueIdx]))
		if ds.Category != nil && categoryIdx < len(record) {
			ds.Category.Values = append(ds.Category.Values, record[categoryIdx])
		}
	}
	normalize(values)
	return ds, nil
}

func parseCell(cell string) any {
	cell = strings.TrimSpace(cell)
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

// Read picks the reader from the file extension.
func Read(path string, opts CSVOptions) (*model.Dataset, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(r, opts)
	case ".json", "":
		return ReadJSON(r)
	}
	return nil, fmt.Errorf("dataset %s: %w", path, common.ErrorUnsupportedFormat)
}
