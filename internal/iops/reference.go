// Package iops exposes the documented instance store IOPS figures for EC2
// instance types and derives throughput estimates from them.
package iops

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// CSV column indices for the instance store IOPS table.
const (
	colInstanceType   = 0 // instance_type
	colRandomReadIOPS = 1 // random_read_iops (4 KiB blocks)
	colWriteIOPS      = 2 // write_iops (4 KiB blocks)
)

// DataVersion identifies the snapshot of the embedded IOPS table.
// Source: https://docs.aws.amazon.com/ec2/latest/instancetypes/ac.html#ac_instance-store
const DataVersion = "2025-04"

//go:embed data/instance_store_iops.csv
var instanceStoreIOPSCSV string

var logger = zerolog.Nop()

// SetLogger sets the logger used to report malformed rows in the embedded table.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Profile is the documented instance store IOPS pair for one instance type.
type Profile struct {
	RandomReadIOPS int `json:"randomReadIOPS" yaml:"randomReadIOPS"`
	WriteIOPS      int `json:"writeIOPS" yaml:"writeIOPS"`
}

// Reference resolves an instance type to its IOPS profile.
// Lookup uses the literal instance type string; there is no prefix or
// wildcard matching.
type Reference interface {
	Lookup(instanceType string) (Profile, bool)
}

// Table is an immutable IOPS reference table.
type Table struct {
	version  string
	profiles map[string]Profile
}

// ErrEmptyTable is returned by Parse when the input has no usable rows.
var ErrEmptyTable = errors.New("iops table has no entries")

// Parse reads a CSV table with a header row followed by
// instance_type,random_read_iops,write_iops rows.
// Rows with an empty type or non-numeric/negative IOPS are skipped.
func Parse(r io.Reader, version string) (*Table, error) {
	reader := csv.NewReader(r)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read iops table header: %w", err)
	}

	profiles := make(map[string]Profile)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Msg("skipping malformed iops table row")
			continue
		}
		if len(record) <= colWriteIOPS {
			continue
		}

		instanceType := strings.TrimSpace(record[colInstanceType])
		if instanceType == "" {
			continue
		}

		read, err := strconv.Atoi(strings.TrimSpace(record[colRandomReadIOPS]))
		if err != nil || read < 0 {
			logger.Warn().Str("instance_type", instanceType).Msg("invalid random read iops, skipping row")
			continue
		}
		write, err := strconv.Atoi(strings.TrimSpace(record[colWriteIOPS]))
		if err != nil || write < 0 {
			logger.Warn().Str("instance_type", instanceType).Msg("invalid write iops, skipping row")
			continue
		}

		profiles[instanceType] = Profile{RandomReadIOPS: read, WriteIOPS: write}
	}

	if len(profiles) == 0 {
		return nil, ErrEmptyTable
	}
	return &Table{version: version, profiles: profiles}, nil
}

// Lookup returns the profile for instanceType and true, or a zero Profile
// and false when the type is not documented.
func (t *Table) Lookup(instanceType string) (Profile, bool) {
	p, ok := t.profiles[instanceType]
	return p, ok
}

// Len reports the number of instance types in the table.
func (t *Table) Len() int {
	return len(t.profiles)
}

// Version returns the data snapshot identifier.
func (t *Table) Version() string {
	return t.version
}

// InstanceTypes returns the documented instance types in ascending order.
func (t *Table) InstanceTypes() []string {
	types := make([]string, 0, len(t.profiles))
	for k := range t.profiles {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

var (
	defaultTable     *Table
	defaultTableErr  error
	defaultTableOnce sync.Once
)

// Default returns the table built from the embedded CSV. The data is parsed
// once on first use; the embedded file is part of the binary so an error here
// means the build itself is broken.
func Default() (*Table, error) {
	defaultTableOnce.Do(func() {
		defaultTable, defaultTableErr = Parse(strings.NewReader(instanceStoreIOPSCSV), DataVersion)
	})
	return defaultTable, defaultTableErr
}
