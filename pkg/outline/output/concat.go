package output

import "github.com/ukaji3/outline-go/pkg/outline/models"

// Concat stacks tables vertically. Columns are matched by name in
// first-seen order; cells a table does not have are nil. Nil tables are
// skipped.
func Concat(id string, tables ...*models.Table) *models.Table {
	out := &models.Table{ID: id}
	index := make(map[string]int)

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			if _, ok := index[c]; !ok {
				index[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
	}

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			merged := make([]any, len(out.Columns))
			for i, v := range row {
				if i < len(t.Columns) {
					merged[index[t.Columns[i]]] = v
				}
			}
			out.Rows = append(out.Rows, merged)
		}
	}

	return out
}
