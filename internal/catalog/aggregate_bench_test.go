package catalog

import (
	"fmt"
	"testing"

	"github.com/rshade/ec2-instance-browser/internal/dataset"
	"github.com/rshade/ec2-instance-browser/internal/iops"
)

// benchRows builds n instance rows, every third of which has two disk rows.
func benchRows(n int) ([]dataset.InstanceRow, []dataset.DiskRow) {
	instances := make([]dataset.InstanceRow, 0, n)
	var disks []dataset.DiskRow
	for i := 0; i < n; i++ {
		typ := fmt.Sprintf("m%d.%dxlarge", i%9, i)
		instances = append(instances, dataset.InstanceRow{InstanceType: typ, VCPUs: 4, MemorySizeInMiB: 16384})
		if i%3 == 0 {
			disks = append(disks,
				dataset.DiskRow{InstanceType: typ, Count: 1, SizeInGB: 100, Type: "ssd"},
				dataset.DiskRow{InstanceType: typ, Count: 2, SizeInGB: 900, Type: "hdd"},
			)
		}
	}
	return instances, disks
}

// BenchmarkAggregate measures merging a dataset-sized row set with the
// embedded IOPS table.
//
// Run with: go test -bench=BenchmarkAggregate -benchmem ./internal/catalog/...
func BenchmarkAggregate(b *testing.B) {
	ref, err := iops.Default()
	if err != nil {
		b.Fatal(err)
	}
	instances, disks := benchRows(900)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Aggregate(instances, disks, ref)
	}
}

// BenchmarkFilter measures one keystroke of search over a full list.
//
// Run with: go test -bench=BenchmarkFilter -benchmem ./internal/catalog/...
func BenchmarkFilter(b *testing.B) {
	instances, disks := benchRows(900)
	records := Aggregate(instances, disks, mapReference{})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Filter(records, "M5.1")
	}
}
