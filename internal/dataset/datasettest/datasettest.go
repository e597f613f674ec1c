// Package datasettest builds throwaway SQLite datasets for tests.
package datasettest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// Instance is a row of the instance-types table.
type Instance struct {
	InstanceType       string
	VCPUs              int
	MemorySizeInMiB    int64
	Storage            string
	NetworkPerformance string
}

// Price is a row of the instance-shared-prices table.
type Price struct {
	InstanceType string
	Location     string
	Hourly       float64
}

// Disk is a row of the instance-disks table.
type Disk struct {
	InstanceType string
	Count        int
	SizeInGB     int64
	Type         string
}

// Fixture is the content of a test dataset.
type Fixture struct {
	Instances []Instance
	Prices    []Price
	Disks     []Disk
}

const schema = `
CREATE TABLE "instance-types" (
    instanceType TEXT PRIMARY KEY,
    vCpus INTEGER,
    memorySizeInMiB INTEGER,
    storage TEXT,
    networkPerformance TEXT
);
CREATE TABLE "instance-shared-prices" (
    instanceType TEXT,
    location TEXT,
    onDemandLinuxHr REAL
);
CREATE TABLE "instance-disks" (
    instanceType TEXT,
    "count" INTEGER,
    sizeInGB INTEGER,
    "type" TEXT
);
`

// Build writes f to a new data.db under t.TempDir and returns its path.
func Build(t testing.TB, f Fixture) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	_, err = db.Exec(schema)
	require.NoError(t, err)

	for _, i := range f.Instances {
		_, err := db.Exec(`INSERT INTO "instance-types" VALUES (?, ?, ?, ?, ?)`,
			i.InstanceType, i.VCPUs, i.MemorySizeInMiB, i.Storage, i.NetworkPerformance)
		require.NoError(t, err)
	}
	for _, p := range f.Prices {
		_, err := db.Exec(`INSERT INTO "instance-shared-prices" VALUES (?, ?, ?)`,
			p.InstanceType, p.Location, p.Hourly)
		require.NoError(t, err)
	}
	for _, d := range f.Disks {
		_, err := db.Exec(`INSERT INTO "instance-disks" VALUES (?, ?, ?, ?)`,
			d.InstanceType, d.Count, d.SizeInGB, d.Type)
		require.NoError(t, err)
	}

	return path
}

// Sample is a small dataset covering priced, unpriced, zero-priced and
// instance-store-backed instance types.
func Sample() Fixture {
	return Fixture{
		Instances: []Instance{
			{"t3.micro", 2, 1024, "EBS only", "Up to 5 Gigabit"},
			{"m5.large", 2, 8192, "EBS only", "Up to 10 Gigabit"},
			{"g5.xlarge", 4, 16384, "1 x 250 NVMe SSD", "Up to 10 Gigabit"},
			{"c5d.large", 2, 4096, "1 x 50 NVMe SSD", "Up to 10 Gigabit"},
			{"x9.free", 1, 0, "EBS only", "Low"},
		},
		Prices: []Price{
			{"t3.micro", "US East (N. Virginia)", 0.0104},
			{"t3.micro", "EU (Ireland)", 0.0114},
			{"t3.micro", "US East (N. Virginia)", 0.0104},
			{"m5.large", "US West (Oregon)", 0.096},
			{"m5.large", "EU (Frankfurt)", 0.115},
			{"g5.xlarge", "US East (N. Virginia)", 1.006},
			{"x9.free", "US East (Ohio)", 0},
			{"orphan.large", "US East (Ohio)", 0.5},
		},
		Disks: []Disk{
			{"g5.xlarge", 1, 250, "ssd"},
			{"c5d.large", 1, 50, "ssd"},
			{"orphan.large", 2, 100, "hdd"},
		},
	}
}
