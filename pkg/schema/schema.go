// Package schema defines the relational target of each entity kind: the
// table name and its ordered column list. Specs are immutable metadata,
// declared once and shared by the extractor and the SQL writer.
package schema

// TableSpec describes one destination table.
type TableSpec struct {
	// Table is the destination table name
	Table string
	// Columns is the ordered output column list; row tuples match it
	// position for position
	Columns []string
}

// IDColumn returns the designated identifier column, by convention the
// first column of the spec.
func (s TableSpec) IDColumn() string {
	if len(s.Columns) == 0 {
		return ""
	}
	return s.Columns[0]
}

// Width returns the number of columns.
func (s TableSpec) Width() int {
	return len(s.Columns)
}
