// Package segio loads unit frames from tabular files. CSV and XLSX files are
// supported; one column may name the units and a set of well-known columns
// carries geometry.
package segio

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"goseg/domain/frame"
	"goseg/ports"
)

// Geometry column names recognized by the reader.
const (
	ColArea      = "area"
	ColPerimeter = "perimeter"
	ColCentroidX = "centroid_x"
	ColCentroidY = "centroid_y"
)

// DataReader reads a unit frame from a CSV or XLSX file. The file type is
// chosen by extension; everything that is not .csv is treated as a workbook.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"

	unitIDColumn string
	sheet        string
}

var _ ports.FrameSource = (*DataReader)(nil)

// NewDataReader creates a reader for the given file. unitIDColumn names the
// column holding unit identifiers; empty means identifiers are generated.
func NewDataReader(filePath, unitIDColumn string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath:     filePath,
		fileType:     fileType,
		unitIDColumn: unitIDColumn,
		sheet:        "Sheet1",
	}
}

// WithSheet selects the workbook sheet to read. CSV readers ignore it.
func (r *DataReader) WithSheet(sheet string) *DataReader {
	r.sheet = sheet
	return r
}

// Load reads the file into a frame.
func (r *DataReader) Load(ctx context.Context) (*frame.Frame, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		err = fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return r.buildFrame(rows)
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	start := time.Now()
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	log.Printf("[DataReader] CSV read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}

	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// buildFrame turns header+data rows into a frame. Geometry columns are split
// out of the attribute set; unparseable numeric cells become NaN so the
// domain layer can decide how to treat them.
func (r *DataReader) buildFrame(rows [][]string) (*frame.Frame, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have at least a header row and one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	idCol := -1
	if r.unitIDColumn != "" {
		for i, h := range headers {
			if h == r.unitIDColumn {
				idCol = i
				break
			}
		}
		if idCol < 0 {
			return nil, fmt.Errorf("unit ID column %q not found in header", r.unitIDColumn)
		}
	}

	n := len(rows) - 1
	var unitIDs []string
	if idCol >= 0 {
		unitIDs = make([]string, n)
	}
	cols := make(map[string][]float64)
	for i, h := range headers {
		if i == idCol || h == "" {
			continue
		}
		cols[h] = make([]float64, n)
	}

	parsed, blank := 0, 0
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx, h := range headers {
			var cell string
			if colIdx < len(row) {
				cell = strings.TrimSpace(row[colIdx])
			}
			if colIdx == idCol {
				unitIDs[rowIdx-1] = cell
				continue
			}
			if h == "" {
				continue
			}
			if cell == "" {
				cols[h][rowIdx-1] = math.NaN()
				blank++
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				cols[h][rowIdx-1] = math.NaN()
				blank++
				continue
			}
			cols[h][rowIdx-1] = v
			parsed++
		}
	}
	if blank > 0 {
		log.Printf("[DataReader] %d cells parsed, %d blank or non-numeric cells set to NaN", parsed, blank)
	}

	geom, attrs := splitGeometry(cols)
	f, err := frame.New(unitIDs, attrs)
	if err != nil {
		return nil, err
	}
	if geom != nil {
		return f.WithGeometry(geom)
	}
	return f, nil
}

// splitGeometry pulls the recognized geometry columns out of the attribute
// map. Geometry is attached only when centroids are complete; area and
// perimeter stay optional.
func splitGeometry(cols map[string][]float64) (*frame.Geometry, map[string][]float64) {
	cx, okX := cols[ColCentroidX]
	cy, okY := cols[ColCentroidY]
	if !okX && !okY && cols[ColArea] == nil && cols[ColPerimeter] == nil {
		return nil, cols
	}

	g := &frame.Geometry{}
	if okX && okY {
		g.CentroidX = cx
		g.CentroidY = cy
	}
	g.Areas = cols[ColArea]
	g.Perimeters = cols[ColPerimeter]

	for _, name := range []string{ColArea, ColPerimeter, ColCentroidX, ColCentroidY} {
		delete(cols, name)
	}
	return g, cols
}
