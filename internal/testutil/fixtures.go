package testutil

import "github.com/leapstack-labs/rowql/pkg/core"

// StatesTable returns the two-row table used across package tests:
// CA (39,000,000) then OH (11,000,000).
func StatesTable() core.Table {
	return core.Table{
		core.RowOf("state", "CA", "pop", 39000000.0),
		core.RowOf("state", "OH", "pop", 11000000.0),
	}
}

// StatesTableWithTX returns StatesTable plus TX (29,000,000).
func StatesTableWithTX() core.Table {
	return append(StatesTable(), core.RowOf("state", "TX", "pop", 29000000.0))
}
