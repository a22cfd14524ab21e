package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"foodrec/internal/domain"
)

// LoadOptions selects the column layout and, for spreadsheets, the sheet.
type LoadOptions struct {
	Schema Schema
	// Sheet names the XLSX worksheet; empty selects the first one.
	Sheet string
}

// Load reads a catalog from a .csv or .xlsx file.
func Load(path string, opts LoadOptions) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(bytes.NewReader(data), opts)
	case ".csv", "":
		return ReadCSV(bytes.NewReader(data), opts)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// ReadCSV parses a catalog from CSV with a header row.
func ReadCSV(r io.Reader, opts LoadOptions) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCatalog, err)
	}
	return fromRows(rows, opts.Schema)
}

// ReadXLSX parses a catalog from the chosen worksheet of an XLSX workbook.
func ReadXLSX(r io.Reader, opts LoadOptions) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, domain.ErrEmptyCatalog
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}
	return fromRows(rows, opts.Schema)
}

func fromRows(rows [][]string, schema Schema) (*Catalog, error) {
	schema = schema.withDefaults()
	if len(rows) < 2 {
		return nil, domain.ErrEmptyCatalog
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	col := func(name string) (int, error) {
		i, ok := header[name]
		if !ok {
			return 0, fmt.Errorf("%w: missing column %q", domain.ErrMalformedCatalog, name)
		}
		return i, nil
	}
	descCol, err := col(schema.DescriptionColumn)
	if err != nil {
		return nil, err
	}
	catCol, err := col(schema.CategoryColumn)
	if err != nil {
		return nil, err
	}
	idCol, err := col(schema.IDColumn)
	if err != nil {
		return nil, err
	}
	nutCols := make([]int, len(schema.NutrientColumns))
	for i, name := range schema.NutrientColumns {
		if nutCols[i], err = col(name); err != nil {
			return nil, err
		}
	}

	records := make([]domain.FoodRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := n + 2
		id, err := numericCell(row, idCol)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d column %q: %v", domain.ErrMalformedCatalog, line, schema.IDColumn, err)
		}
		rec := domain.FoodRecord{
			ID:          id,
			Description: cell(row, descCol),
			Category:    cell(row, catCol),
			Nutrients:   make(map[string]float64, len(nutCols)),
		}
		for i, c := range nutCols {
			v, err := numericCell(row, c)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", domain.ErrMalformedCatalog, line, schema.NutrientColumns[i], err)
			}
			rec.Nutrients[schema.NutrientColumns[i]] = v
		}
		records = append(records, rec)
	}
	return New(schema.NutrientColumns, records)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// missingTokens are the cell values pandas reads as missing by default.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// numericCell parses a numeric cell. Empty and missing-value cells read as 0.
func numericCell(row []string, i int) (float64, error) {
	s := cell(row, i)
	if s == "" {
		return 0, nil
	}
	if _, ok := missingTokens[s]; ok {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, nil
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
