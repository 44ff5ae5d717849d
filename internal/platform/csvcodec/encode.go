package csvcodec

import (
	"io"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Encode writes headers and rows with every field quoted and inner quotes
// doubled. Records are joined by "\n" with no trailing newline. A nil headers
// slice uses HeadersOf(rows).
func Encode(w io.Writer, headers []string, rows []Row) error {
	if headers == nil {
		headers = HeadersOf(rows)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeRecord(buf, headers)
	for _, row := range rows {
		_ = buf.WriteByte('\n')
		writeRecord(buf, row.Values(headers))
	}

	_, err := w.Write(buf.B)
	return err
}

func EncodeString(headers []string, rows []Row) string {
	var sb strings.Builder
	_ = Encode(&sb, headers, rows)
	return sb.String()
}

// HeadersOf collects row keys in first-seen order.
func HeadersOf(rows []Row) []string {
	seen := make(map[string]struct{})
	var headers []string
	for _, row := range rows {
		for _, f := range row {
			if _, ok := seen[f.Key]; ok {
				continue
			}
			seen[f.Key] = struct{}{}
			headers = append(headers, f.Key)
		}
	}
	return headers
}

// QuoteField applies the always-quote rule to a single value.
func QuoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func writeRecord(buf *bytebufferpool.ByteBuffer, values []string) {
	for i, v := range values {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.WriteString(QuoteField(v))
	}
}
