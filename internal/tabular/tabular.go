// Package tabular reads and writes inventory lines as a flat table with the
// column order id, category, material, color, brand, status, count, notes.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/erazemk/spoolshelf/internal/model"
)

// Columns is the header row, in order.
var Columns = []string{"id", "category", "material", "color", "brand", "status", "count", "notes"}

// DecodeError reports a malformed cell. Row numbers are 1-based and count the header.
type DecodeError struct {
	Row    int
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrBadHeader is returned when the first row does not match Columns.
var ErrBadHeader = errors.New("header does not match id,category,material,color,brand,status,count,notes")

// Encode writes the header row followed by one row per line.
func Encode(w io.Writer, lines []model.Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, l := range lines {
		record := []string{
			strconv.FormatInt(l.ID, 10),
			string(l.Category),
			l.Material,
			l.Color,
			l.Brand,
			string(l.Status),
			strconv.Itoa(l.Count),
			l.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing line %d: %w", l.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses a table written by Encode. An empty input yields no lines.
// A missing or non-integer id or count fails the whole decode.
func Decode(r io.Reader) ([]model.Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &DecodeError{Row: 1, Err: err}
	}
	for i, name := range Columns {
		if header[i] != name {
			return nil, &DecodeError{Row: 1, Column: name, Err: ErrBadHeader}
		}
	}

	var lines []model.Line
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DecodeError{Row: row, Err: err}
		}

		l, err := parseRecord(row, record)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func parseRecord(row int, record []string) (model.Line, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return model.Line{}, &DecodeError{Row: row, Column: "id", Err: err}
	}
	count, err := strconv.Atoi(record[6])
	if err != nil {
		return model.Line{}, &DecodeError{Row: row, Column: "count", Err: err}
	}

	l := model.Line{
		ID:       id,
		Category: model.Category(record[1]),
		Material: record[2],
		Color:    record[3],
		Brand:    record[4],
		Status:   model.Status(record[5]),
		Count:    count,
		Notes:    record[7],
	}
	if !l.Category.Valid() {
		return model.Line{}, &DecodeError{Row: row, Column: "category", Err: fmt.Errorf("unknown category %q", record[1])}
	}
	if !l.Status.Valid() {
		return model.Line{}, &DecodeError{Row: row, Column: "status", Err: fmt.Errorf("unknown status %q", record[5])}
	}
	return l, nil
}
