// Package main checks the instance store IOPS table before it is embedded.
//
// The table is maintained by hand from the EC2 instance store documentation.
// This tool verifies its structure, flags duplicate or non-positive rows and,
// when a dataset is given, reports reference entries that the dataset does
// not list as instance types.
//
// Usage:
//
//	go run ./tools/check-iops-data [--file PATH] [--dataset PATH] [--min-rows N]
//
// Flags:
//
//	--file      IOPS CSV to check (default: ./internal/iops/data/instance_store_iops.csv)
//	--dataset   Optional data.db to cross-check instance types against
//	--min-rows  Minimum number of valid rows expected
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/ec2-instance-browser/internal/dataset"
)

const (
	colInstanceType = 0
	colReadIOPS     = 1
	colWriteIOPS    = 2

	defaultMinRows = 40
)

var expectedHeader = []string{"instance_type", "random_read_iops", "write_iops"}

// report summarizes a checked table.
type report struct {
	Rows       int
	Valid      int
	Duplicates []string
	Invalid    []string
	Types      []string
}

func main() {
	file := flag.String("file", "./internal/iops/data/instance_store_iops.csv", "IOPS CSV to check")
	datasetPath := flag.String("dataset", "", "Optional data.db to cross-check instance types against")
	minRows := flag.Int("min-rows", defaultMinRows, "Minimum number of valid rows expected")
	flag.Parse()

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", *file, err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	rep, err := checkTable(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("CSV stats: %d rows, %d valid, %d duplicates, %d invalid\n",
		rep.Rows, rep.Valid, len(rep.Duplicates), len(rep.Invalid))

	if err := rep.validate(*minRows); err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(1)
	}

	if *datasetPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		missing, err := crossCheck(ctx, *datasetPath, rep.Types)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking dataset: %v\n", err)
			os.Exit(1)
		}
		for _, t := range missing {
			fmt.Printf("warning: %s is not an instance type in %s\n", t, *datasetPath)
		}
	}

	fmt.Println("Validation passed")
}

// checkTable reads the CSV and classifies every row.
func checkTable(r io.Reader) (report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return report{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < len(expectedHeader) {
		return report{}, fmt.Errorf("CSV has %d columns, expected %d", len(header), len(expectedHeader))
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return report{}, fmt.Errorf("column %d is %q, expected %q", i, header[i], want)
		}
	}

	var rep report
	seen := make(map[string]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report{}, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rep.Rows++

		if len(record) < len(expectedHeader) {
			rep.Invalid = append(rep.Invalid, strings.Join(record, ","))
			continue
		}
		instanceType := strings.TrimSpace(record[colInstanceType])
		read, readErr := strconv.Atoi(strings.TrimSpace(record[colReadIOPS]))
		write, writeErr := strconv.Atoi(strings.TrimSpace(record[colWriteIOPS]))
		if instanceType == "" || readErr != nil || writeErr != nil || read <= 0 || write <= 0 {
			rep.Invalid = append(rep.Invalid, strings.Join(record, ","))
			continue
		}
		if seen[instanceType] {
			rep.Duplicates = append(rep.Duplicates, instanceType)
			continue
		}
		seen[instanceType] = true
		rep.Types = append(rep.Types, instanceType)
		rep.Valid++
	}
	return rep, nil
}

// validate fails on duplicates, invalid rows or too few entries.
func (r report) validate(minRows int) error {
	if len(r.Duplicates) > 0 {
		return fmt.Errorf("duplicate instance types: %s", strings.Join(r.Duplicates, ", "))
	}
	if len(r.Invalid) > 0 {
		return fmt.Errorf("invalid rows: %s", strings.Join(r.Invalid, "; "))
	}
	if r.Valid < minRows {
		return fmt.Errorf("only %d valid rows found, expected at least %d", r.Valid, minRows)
	}
	return nil
}

// crossCheck returns the reference types that the dataset does not list.
func crossCheck(ctx context.Context, path string, types []string) ([]string, error) {
	gw, err := dataset.Open(ctx, path, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	defer func() { _ = gw.Close() }()

	rows, err := gw.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(rows))
	for _, row := range rows {
		known[row.InstanceType] = true
	}

	var missing []string
	for _, t := range types {
		if !known[t] {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
