package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"schooladmin/internal/domain/roster"
)

// Localized header names used by older exports of the school's files.
var headerAliases = map[string]string{
	"паралель":       "parallel",
	"вертикаль":      "vertical",
	"прізвище":       "last_name",
	"ім'я":           "first_name",
	"ім’я":           "first_name",
	"по батькові":    "middle_name",
	"patronymic":     "middle_name",
	"рік народження": "birth_year",
	"стать":          "gender",
	"середня оцінка": "average_grade",
	"клас":           "class",
}

func canonicalHeader(raw string) string {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
	if alias, ok := headerAliases[name]; ok {
		return alias
	}
	return name
}

// headerReader feeds gocsv with a header row rewritten to canonical column names
// and fails early when a required column is missing.
type headerReader struct {
	r        *csv.Reader
	source   string
	required [][]string
	header   bool
}

func newHeaderReader(in io.Reader, source string, required ...[]string) *headerReader {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return &headerReader{r: r, source: source, required: required}
}

func (h *headerReader) Read() ([]string, error) {
	record, err := h.r.Read()
	if err != nil {
		if h.header || !errors.Is(err, io.EOF) {
			return nil, h.wrap(err)
		}
		return nil, &roster.LoadError{Source: h.source, Line: 1, Err: fmt.Errorf("%w: empty file", roster.ErrMissingColumn)}
	}
	if h.header {
		return record, nil
	}
	h.header = true
	for i := range record {
		record[i] = canonicalHeader(record[i])
	}
	if err := h.checkRequired(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (h *headerReader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := h.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// checkRequired passes when, for every group, at least one alternative is fully
// present. An alternative joins several columns with "+".
func (h *headerReader) checkRequired(header []string) error {
	present := map[string]bool{}
	for _, name := range header {
		present[name] = true
	}
	for _, group := range h.required {
		satisfied := false
		for _, alternative := range group {
			ok := true
			for _, column := range strings.Split(alternative, "+") {
				if !present[column] {
					ok = false
					break
				}
			}
			if ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return &roster.LoadError{Source: h.source, Line: 1, Field: strings.Join(group, " or "), Err: roster.ErrMissingColumn}
		}
	}
	return nil
}

func (h *headerReader) wrap(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &roster.LoadError{Source: h.source, Line: parseErr.Line, Err: err}
	}
	return &roster.LoadError{Source: h.source, Err: err}
}
