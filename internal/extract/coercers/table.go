// SPDX-License-Identifier: Apache-2.0

package coercers

import (
	"strings"

	"github.com/issuepage/issuepage/internal/extract"
)

// TableCoercer reads a markdown pipe table. The first row names the columns,
// the second row is the separator, every further row becomes one record.
type TableCoercer struct{}

// NewTable creates a new TableCoercer.
func NewTable() *TableCoercer {
	return &TableCoercer{}
}

func (c *TableCoercer) Type() extract.FieldType {
	return extract.TypeTable
}

func (c *TableCoercer) Coerce(text string, _ extract.FieldHint) (any, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, false
	}

	header := splitRow(lines[0])
	rows := make([]map[string]any, 0, len(lines)-2)
	for _, line := range lines[2:] {
		cells := splitRow(line)
		row := make(map[string]any, len(header))
		for i, name := range header {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			row[name] = extract.Protect(cell)
		}
		rows = append(rows, row)
	}
	return rows, true
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}
