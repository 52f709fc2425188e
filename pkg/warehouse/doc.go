// Package warehouse persists generated datasets: CSV export plus bulk
// loading into an analytical store.
//
// # Overview
//
// Every table is written as one CSV file with a fixed column order, and
// optionally loaded into a SQL store (sqlite file or postgres URL, chosen by
// DSN). The load is a full replace: tables are dropped and recreated so the
// store always mirrors exactly one generation run.
//
// # Usage Example
//
//	writer, err := warehouse.NewCSVWriter("./data/raw", logger)
//	if err != nil { ... }
//	counts, err := writer.WriteAll(ctx, dataset)
//
//	db, err := warehouse.Open(dsn)
//	if err != nil { ... }
//	loader := warehouse.NewSQLLoader(db, warehouse.DriverFor(dsn), logger)
//	err = loader.Load(ctx, dataset)
//
// # Wire Format
//
// Dates and timestamps serialize as "2006-01-02 15:04:05", which sorts
// lexicographically; empty CSV fields load as SQL NULL.
package warehouse
