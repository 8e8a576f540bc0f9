package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultTrueColumn = "y_true"
	DefaultPredColumn = "y_pred"
)

var ErrNoData = errors.New("no data rows found")

type DataParameters struct {
	DataFile   string
	TrueColumn string
	PredColumn string
	// Sheet selects the XLSX worksheet. The first sheet is used when empty.
	Sheet string
}

type DataError struct {
	Line  int
	Error string
}

// Dataset holds the two parallel columns of a prediction file.
type Dataset struct {
	YTrue []float64
	YPred []float64
}

func (d *Dataset) Size() int {
	return len(d.YTrue)
}

// NameMap implements a bidirectional mapping between a column name and its index
type NameMap struct {
	NameToIndex map[string]int
	IndexToName map[int]string
}

func NewNameMap(names []string) NameMap {
	m := NameMap{
		NameToIndex: map[string]int{},
		IndexToName: map[int]string{},
	}
	for i, name := range names {
		m.Set(strings.TrimSpace(name), i)
	}
	return m
}

func (f NameMap) Set(name string, index int) {
	f.NameToIndex[name] = index
	f.IndexToName[index] = name
}

func (f NameMap) Size() int {
	return len(f.IndexToName)
}

func (f NameMap) ContainsName(name string) (int, bool) {
	index, ok := f.NameToIndex[name]
	return index, ok
}

// LoadData reads the true and predicted columns of a CSV or XLSX file. Rows
// that cannot be parsed are skipped and returned as DataErrors.
func LoadData(p DataParameters) (*Dataset, []DataError, error) {
	if p.TrueColumn == "" {
		p.TrueColumn = DefaultTrueColumn
	}
	if p.PredColumn == "" {
		p.PredColumn = DefaultPredColumn
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(p.DataFile)) {
	case ".xlsx", ".xlsm":
		records, err = readExcel(p.DataFile, p.Sheet)
	default:
		records, err = readCSV(p.DataFile)
	}
	if err != nil {
		return nil, nil, err
	}

	//First line is expected to be a header
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("error reading data header: %w", ErrNoData)
	}
	header := NewNameMap(records[0])
	trueIndex, ok := header.ContainsName(p.TrueColumn)
	if !ok {
		return nil, nil, fmt.Errorf("true column %s not found in data header", p.TrueColumn)
	}
	predIndex, ok := header.ContainsName(p.PredColumn)
	if !ok {
		return nil, nil, fmt.Errorf("prediction column %s not found in data header", p.PredColumn)
	}

	var dataErrors []DataError
	data := &Dataset{}
	for i, record := range records[1:] {
		line := i + 2
		yTrue, err := parseValue(record, trueIndex, p.TrueColumn)
		if err != nil {
			dataErrors = append(dataErrors, DataError{Line: line, Error: err.Error()})
			continue
		}
		yPred, err := parseValue(record, predIndex, p.PredColumn)
		if err != nil {
			dataErrors = append(dataErrors, DataError{Line: line, Error: err.Error()})
			continue
		}
		data.YTrue = append(data.YTrue, yTrue)
		data.YPred = append(data.YPred, yPred)
	}

	if data.Size() == 0 {
		return nil, dataErrors, ErrNoData
	}
	return data, dataErrors, nil
}

func parseValue(record []string, index int, column string) (float64, error) {
	if index >= len(record) {
		return 0, fmt.Errorf("missing value for column %s", column)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(record[index]), 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing column %s: %w", column, err)
	}
	return value, nil
}

func readCSV(path string) ([][]string, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer inputFile.Close()

	reader := csv.NewReader(inputFile)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv file: %w", err)
	}
	return records, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheet, err)
	}
	return rows, nil
}
