// Package main generates synthetic tables for trying out and benchmarking
// rowql against every supported source format.
//
// Usage:
//
//	go run ./scripts/gentable -rows=100000 -out=testdata/cities.json
//	go run ./scripts/gentable -rows=100000 -out=testdata/cities.db -table=cities
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	_ "github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"
)

var (
	rowsFlag  = flag.Int("rows", 1000, "number of rows to generate")
	outFlag   = flag.String("out", "", "output file; the extension picks the format (required)")
	tableFlag = flag.String("table", "cities", "table name for .db and .duckdb outputs")
	seedFlag  = flag.Uint64("seed", 1, "random seed")
)

var regions = []string{"North", "South", "East", "West", "Central"}

// city is one generated row. Field order is the column order.
type city struct {
	ID      int     `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Region  string  `json:"region" yaml:"region"`
	Pop     int     `json:"pop" yaml:"pop"`
	Area    float64 `json:"area" yaml:"area"`
	Capital bool    `json:"capital" yaml:"capital"`
}

var columns = []string{"id", "name", "region", "pop", "area", "capital"}

func main() {
	flag.Parse()

	if *outFlag == "" {
		log.Fatal("--out flag is required")
	}

	rows := generate(*rowsFlag, *seedFlag)

	var err error
	switch ext := strings.ToLower(filepath.Ext(*outFlag)); ext {
	case ".json":
		err = writeJSON(*outFlag, rows)
	case ".yaml", ".yml":
		err = writeYAML(*outFlag, rows)
	case ".csv":
		err = writeCSV(*outFlag, rows)
	case ".db", ".sqlite", ".sqlite3":
		err = writeDB("sqlite", *outFlag, *tableFlag, rows)
	case ".duckdb":
		err = writeDB("duckdb", *outFlag, *tableFlag, rows)
	default:
		log.Fatalf("unsupported output extension: %s", ext)
	}
	if err != nil {
		log.Fatalf("failed to write %s: %v", *outFlag, err)
	}

	log.Printf("Generated %d rows in %s", len(rows), *outFlag)
}

func generate(n int, seed uint64) []city {
	r := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // synthetic data
	rows := make([]city, n)
	for i := range rows {
		rows[i] = city{
			ID:      i + 1,
			Name:    fmt.Sprintf("city_%06d", i+1),
			Region:  regions[r.IntN(len(regions))],
			Pop:     1000 + r.IntN(5_000_000),
			Area:    float64(r.IntN(100_000)) / 10,
			Capital: r.IntN(50) == 0,
		}
	}
	return rows
}

func writeJSON(path string, rows []city) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func writeYAML(path string, rows []city) error {
	data, err := yaml.Marshal(rows)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func writeCSV(path string, rows []city) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, c := range rows {
		record := []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Region,
			strconv.Itoa(c.Pop),
			strconv.FormatFloat(c.Area, 'f', -1, 64),
			strconv.FormatBool(c.Capital),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeDB(driver, path, table string, rows []city) error {
	ctx := context.Background()

	db, err := sql.Open(driver, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ddl := fmt.Sprintf(`CREATE TABLE %q (id INTEGER, name TEXT, region TEXT, pop INTEGER, area DOUBLE, capital BOOLEAN)`, table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q VALUES (?, ?, ?, ?, ?, ?)`, table))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, c := range rows {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Region, c.Pop, c.Area, c.Capital); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert row %d: %w", c.ID, err)
		}
	}
	_ = stmt.Close()
	return tx.Commit()
}
