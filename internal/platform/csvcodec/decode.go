package csvcodec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses quote-aware CSV. Rows may be shorter or longer than the
// header; missing fields become "" and extra fields are dropped. Lines that
// are empty or whitespace-only are skipped, a quoted empty field is a row.
func Decode(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	var (
		table   Table
		haveHdr bool
		offset  int64
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		end := reader.InputOffset()
		raw := data[offset:end]
		offset = end
		if isBlankRecord(record, raw) {
			continue
		}

		line, _ := reader.FieldPos(0)
		if !haveHdr {
			table.Headers = cleanHeaders(record)
			haveHdr = true
			continue
		}

		table.Rows = append(table.Rows, RowFromValues(table.Headers, record))
		table.Lines = append(table.Lines, line)
	}

	if !haveHdr {
		return Table{}, ErrEmpty
	}
	return table, nil
}

func DecodeString(content string) (Table, error) {
	return Decode(strings.NewReader(content))
}

// isBlankRecord reports whether a record came from a line with no content.
// raw is the input consumed for the record; a quote in it means the line
// held an explicit empty field.
func isBlankRecord(record []string, raw []byte) bool {
	if len(record) == 0 {
		return true
	}
	return len(record) == 1 && strings.TrimSpace(record[0]) == "" && !bytes.ContainsRune(raw, '"')
}

func cleanHeaders(record []string) []string {
	headers := make([]string, 0, len(record))
	for _, h := range record {
		headers = append(headers, strings.TrimSpace(h))
	}
	return headers
}
