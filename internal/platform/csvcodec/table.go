// Package csvcodec converts between CSV text and header-keyed rows.
//
// Two decoders exist on purpose. Decode is quote-aware and round-trips with
// Encode. Preview is the quick on-screen splitter used before an upload is
// committed; it splits on bare commas and does not understand quoting.
package csvcodec

import "errors"

// ErrEmpty is returned when the input has no non-blank lines.
var ErrEmpty = errors.New("csv content is empty")

// Field is one header/value pair of a row.
type Field struct {
	Key   string
	Value string
}

// Row keeps fields in header order.
type Row []Field

func NewRow(fields ...Field) Row {
	return append(Row(nil), fields...)
}

// RowFromValues zips headers with values; missing trailing values become "".
func RowFromValues(headers, values []string) Row {
	row := make(Row, 0, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		row = append(row, Field{Key: h, Value: v})
	}
	return row
}

// Get returns the value of the first field named key.
func (r Row) Get(key string) string {
	v, _ := r.Lookup(key)
	return v
}

func (r Row) Lookup(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func (r Row) Keys() []string {
	out := make([]string, 0, len(r))
	for _, f := range r {
		out = append(out, f.Key)
	}
	return out
}

// Values returns the row values ordered by headers.
func (r Row) Values(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		out = append(out, r.Get(h))
	}
	return out
}

// Map copies the row into a map; later duplicate keys lose.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r))
	for _, f := range r {
		if _, ok := out[f.Key]; ok {
			continue
		}
		out[f.Key] = f.Value
	}
	return out
}

// Table is a decoded CSV document. Line numbers are 1-based and count the
// header line, so the first data row is usually line 2.
type Table struct {
	Headers []string
	Rows    []Row
	Lines   []int
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Line returns the source line of row i, or 0 when unknown.
func (t Table) Line(i int) int {
	if i < 0 || i >= len(t.Lines) {
		return 0
	}
	return t.Lines[i]
}

// Normalize rewrites the headers (and every row key) with NormalizeHeader.
func (t Table) Normalize() Table {
	headers := make([]string, 0, len(t.Headers))
	for _, h := range t.Headers {
		headers = append(headers, NormalizeHeader(h))
	}

	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make(Row, 0, len(row))
		for _, f := range row {
			out = append(out, Field{Key: NormalizeHeader(f.Key), Value: f.Value})
		}
		rows = append(rows, out)
	}

	return Table{
		Headers: headers,
		Rows:    rows,
		Lines:   append([]int(nil), t.Lines...),
	}
}
