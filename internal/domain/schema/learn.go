package schema

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// LearnFromCSV derives a registry from the reference dataset: header row gives
// the field order, column content gives the kinds.  A column is numeric iff
// every non-empty cell parses as a float and at least one non-empty cell
// exists; mixed and all-empty columns degrade to categorical.  Distinct labels
// of categorical columns become the vocabulary (NewRegistry sorts them, so the
// result matches the training-side label encoders byte for byte).
//
// A reader with no data rows fails with SchemaUnavailable: a header alone
// cannot tell numeric from categorical.
func LearnFromCSV(r io.Reader) (*Registry, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.SchemaUnavailable("reference dataset is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSchemaLearnFailed, "schema: reading reference dataset header")
	}

	n := len(header)
	numeric := make([]bool, n)
	for i := range numeric {
		numeric[i] = true
	}
	// Labels are collected for every column: a cell late in the file can
	// still flip a column to categorical, so nothing can be discarded early.
	labels := make([]map[string]struct{}, n)
	rows := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSchemaLearnFailed, "schema: reading reference dataset rows")
		}
		rows++
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if numeric[i] {
				if _, perr := strconv.ParseFloat(cell, 64); perr != nil {
					numeric[i] = false
				}
			}
			if labels[i] == nil {
				labels[i] = make(map[string]struct{})
			}
			labels[i][cell] = struct{}{}
		}
	}

	if rows == 0 {
		return nil, errors.SchemaUnavailable("reference dataset has a header but no rows")
	}

	def := make([]Field, n)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if numeric[i] && len(labels[i]) > 0 {
			def[i] = num(name)
			continue
		}
		classes := make([]string, 0, len(labels[i]))
		for l := range labels[i] {
			classes = append(classes, l)
		}
		if len(classes) == 0 {
			// All-empty column: nothing to learn, so the vocabulary
			// degenerates to the sentinel label.
			classes = []string{lca.UnknownLabel}
		}
		def[i] = Field{Name: name, Kind: lca.FieldKindCategorical, Classes: classes}
	}

	return NewRegistry(def)
}

//Personal.AI order the ending
