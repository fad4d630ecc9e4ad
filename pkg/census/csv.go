package census

import (
	"bufio"
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// table reads a census CSV by column name.
type table struct {
	reader *csv.Reader
	cols   map[string]int
}

func openTable(r io.Reader, required ...string) (*table, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(bom)); bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &errors.ParseError{Format: "csv", Message: "empty table"}
	}
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}

	t := &table{reader: cr, cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.Trim(h, ` "`)] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return nil, &errors.ParseError{Format: "csv", Line: 1, Message: fmt.Sprintf("missing column %s", col)}
		}
	}
	return t, nil
}

// next returns the next row and its line number, or io.EOF.
func (t *table) next() ([]string, int, error) {
	rec, err := t.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, err
		}
		return nil, 0, errors.WrapParse("csv", "", err)
	}
	line, _ := t.reader.FieldPos(0)
	return rec, line, nil
}

func (t *table) field(rec []string, col string) string {
	i := t.cols[col]
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func (t *table) integer(rec []string, col string, line int) (int, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(t.field(rec, col)), ",", "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &errors.ParseError{
			Format:  "csv",
			Line:    line,
			Message: fmt.Sprintf("%s %q is not an integer (row %q)", col, raw, t.field(rec, constants.ColumnName)),
			Err:     err,
		}
	}
	return n, nil
}

// ReadPrimary reads the decennial table. The row after the header carries
// column descriptions and is discarded.
func ReadPrimary(r io.Reader) ([]PrimaryRow, error) {
	t, err := openTable(r, constants.ColumnName, constants.ColumnGeoID, constants.ColumnPopulation)
	if err != nil {
		return nil, err
	}

	if _, _, err := t.next(); err != nil && err != io.EOF {
		return nil, err
	}

	var rows []PrimaryRow
	for {
		rec, line, err := t.next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		pop, err := t.integer(rec, constants.ColumnPopulation, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, PrimaryRow{
			Name:       t.field(rec, constants.ColumnName),
			GeoID:      strings.TrimSpace(t.field(rec, constants.ColumnGeoID)),
			Population: pop,
		})
	}
}

// ReadSecondary reads the estimate table. Its population column holds the estimate.
func ReadSecondary(r io.Reader) ([]SecondaryRow, error) {
	t, err := openTable(r, constants.ColumnName, constants.ColumnPopulation)
	if err != nil {
		return nil, err
	}

	var rows []SecondaryRow
	for {
		rec, line, err := t.next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		est, err := t.integer(rec, constants.ColumnPopulation, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, SecondaryRow{Name: t.field(rec, constants.ColumnName), Estimate: est})
	}
}

// LoadFiles reads both tables from disk and builds the index. An empty
// secondaryPath builds an index without estimates.
func LoadFiles(primaryPath, secondaryPath string) (*Index, error) {
	primary, err := readFile(primaryPath, ReadPrimary)
	if err != nil {
		return nil, err
	}

	var secondary []SecondaryRow
	if secondaryPath != "" {
		if secondary, err = readFile(secondaryPath, ReadSecondary); err != nil {
			return nil, err
		}
	}

	return Build(primary, secondary), nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := read(f)
	if err != nil {
		var parseErr *errors.ParseError
		if stderrors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return rows, nil
}
