package entity

// Table is the abstract wide table handed to the pipeline by an ingest
// adapter. Rows map source column names to raw cell text; the parser has
// already guaranteed every row carries the same column set.
type Table struct {
	Rows []map[string]string
}

// HasColumn reports whether the table carries the named column.
// A table with no rows cannot prove any column exists.
func (t *Table) HasColumn(name string) bool {
	if len(t.Rows) == 0 {
		return false
	}
	_, ok := t.Rows[0][name]
	return ok
}
