package core

type Column struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Primary bool   `json:"primary"`
	Unique  bool   `json:"unique"`
}

// Indexed reports whether the column is backed by a uniqueness index.
func (column Column) Indexed() bool {
	return column.Primary || column.Unique
}

// TableSnapshot is the serializable form of a table. Indexes are never
// stored; they are rebuilt from Rows on load.
type TableSnapshot struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Snapshot maps table name to table contents.
type Snapshot map[string]TableSnapshot
