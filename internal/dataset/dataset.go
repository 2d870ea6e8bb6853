// Package dataset reads bar chart series from CSV, JSON, YAML and XLSX files.
//
// Tabular formats take the label from the first column and the value from
// the second. A first row whose value does not parse as a number is treated
// as a header. JSON and YAML accept either parallel arrays
//
//	values: [3, 12, 45]
//	labels: [a, b, c]
//
// or a list of records:
//
//	- {label: a, value: 3}
//	- {label: b, value: 12}
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/recera/vangochart/pkg/barchart"
)

// Format identifies a dataset encoding
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatYAML
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// ErrUnknownFormat is returned for files with an unrecognised extension.
var ErrUnknownFormat = errors.New("dataset: unknown format")

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// Series is one bar per position: Values[i] labelled Labels[i].
type Series struct {
	Values []float64 `yaml:"values" json:"values"`
	Labels []string  `yaml:"labels" json:"labels"`
}

// Len returns the number of bars.
func (s *Series) Len() int {
	return len(s.Values)
}

// Total returns the sum of all values.
func (s *Series) Total() float64 {
	return floats.Sum(s.Values)
}

// Validate checks the series against the renderer's preconditions.
func (s *Series) Validate() error {
	return barchart.Validate(s.Values, s.Labels)
}

// Load reads and validates the series stored at path.
func Load(path string) (*Series, error) {
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read decodes and validates a series in the given format.
func Read(r io.Reader, format Format) (*Series, error) {
	var (
		s   *Series
		err error
	)
	switch format {
	case FormatCSV:
		s, err = readCSV(r)
	case FormatJSON, FormatYAML:
		s, err = readYAML(r)
	case FormatXLSX:
		s, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return fromRows(rows)
}

func readXLSX(r io.Reader) (*Series, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Series{Values: []float64{}, Labels: []string{}}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// fromRows converts label,value rows, skipping blank rows and an optional
// header.
func fromRows(rows [][]string) (*Series, error) {
	s := &Series{Values: []float64{}, Labels: []string{}}

	for i, row := range rows {
		if blank(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: want label and value, got %d column(s)", i+1, len(row))
		}

		label := strings.TrimSpace(row[0])
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			if s.Len() == 0 && i == firstNonBlank(rows) {
				continue
			}
			return nil, fmt.Errorf("row %d: invalid value %q", i+1, row[1])
		}

		s.Labels = append(s.Labels, label)
		s.Values = append(s.Values, v)
	}
	return s, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func firstNonBlank(rows [][]string) int {
	for i, row := range rows {
		if !blank(row) {
			return i
		}
	}
	return -1
}

type record struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

func readYAML(r io.Reader) (*Series, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Series{Values: []float64{}, Labels: []string{}}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	s := &Series{Values: []float64{}, Labels: []string{}}
	switch root.Kind {
	case yaml.SequenceNode:
		var recs []record
		if err := root.Decode(&recs); err != nil {
			return nil, fmt.Errorf("failed to decode records: %w", err)
		}
		for _, rec := range recs {
			s.Labels = append(s.Labels, rec.Label)
			s.Values = append(s.Values, rec.Value)
		}
	case yaml.MappingNode:
		if err := root.Decode(s); err != nil {
			return nil, fmt.Errorf("failed to decode series: %w", err)
		}
		if s.Values == nil {
			s.Values = []float64{}
		}
		if s.Labels == nil {
			s.Labels = []string{}
		}
	default:
		return nil, fmt.Errorf("unexpected document shape at line %d", root.Line)
	}
	return s, nil
}
