package csvcodec

import "strings"

const DefaultPreviewRows = 5

// Preview is the quick splitter behind the upload preview. It splits lines on
// "\n" and fields on bare commas, so a quoted field containing a comma spills
// into the next column. Use Decode for anything that is persisted.
func Preview(content string, limit int) (Table, error) {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}

	var (
		table   Table
		haveHdr bool
	)
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		fields := splitTrim(line)
		if !haveHdr {
			if len(fields) > 0 {
				fields[0] = strings.TrimPrefix(fields[0], "\uFEFF")
			}
			table.Headers = fields
			haveHdr = true
			continue
		}

		if len(table.Rows) >= limit {
			break
		}
		table.Rows = append(table.Rows, RowFromValues(table.Headers, fields))
		table.Lines = append(table.Lines, i+1)
	}

	if !haveHdr {
		return Table{}, ErrEmpty
	}
	return table, nil
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
