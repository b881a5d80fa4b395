// Package core provides core types used throughout MiniDB.
//
// The package defines the schema and data types shared by the parser,
// the execution engine and the persistence layer: Column, Value, Row,
// TableSnapshot, Snapshot and Identity.
//
// # Values
//
// A cell holds a number, a string or (only after loading a snapshot that
// contained a non-finite number) null. Equality is strict:
//
//	core.Number(1).Equal(core.Number(1))   // true
//	core.Number(1).Equal(core.String("1")) // false
//
// # Table Definition
//
//	columns := []core.Column{
//	    {Name: "id", Type: "INT", Primary: true},
//	    {Name: "email", Type: "TEXT", Unique: true},
//	    {Name: "name", Type: "TEXT"},
//	}
//
// Column types are labels only; nothing checks values against them.
package core
