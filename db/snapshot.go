package db

import (
	"encoding/json"
	"fmt"

	"github.com/nickyhof/MiniDB/core"
)

// EncodeSnapshot serializes a snapshot to the JSON blob handed to stores:
// an object keyed by table name holding {name, columns, rows}.
func EncodeSnapshot(snapshot core.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (core.Snapshot, error) {
	var snapshot core.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snapshot == nil {
		snapshot = core.Snapshot{}
	}
	return snapshot, nil
}

// restoreTable rebuilds a table from its snapshot, replaying every row
// through the index check so duplicates abort the load.
func restoreTable(name string, tableSnapshot core.TableSnapshot, policy IndexPolicy) (*Table, error) {
	if tableSnapshot.Name != "" {
		name = tableSnapshot.Name
	}

	table := NewTable(name, tableSnapshot.Columns, policy)
	for _, row := range tableSnapshot.Rows {
		if err := table.restore(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}
