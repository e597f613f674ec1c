package catalog

import (
	"fmt"
	"math"

	"github.com/rshade/ec2-instance-browser/internal/dataset"
	"github.com/rshade/ec2-instance-browser/internal/iops"
)

// Aggregate joins instance rows with their disk rows and the IOPS reference.
// One record is produced per instance row, in the same order. Disk rows for
// types that have no instance row are ignored. Aggregate does no I/O and
// cannot fail.
func Aggregate(instances []dataset.InstanceRow, disks []dataset.DiskRow, ref iops.Reference) []InstanceRecord {
	byType := groupDisks(disks, ref)

	records := make([]InstanceRecord, 0, len(instances))
	for _, row := range instances {
		group := byType[row.InstanceType]
		if group == nil {
			group = []DiskInfo{}
		}

		records = append(records, InstanceRecord{
			InstanceType:       row.InstanceType,
			VCPUs:              row.VCPUs,
			MemorySizeInGiB:    MiBToGiB(row.MemorySizeInMiB),
			StorageSummary:     StorageSummary(group),
			NetworkPerformance: row.NetworkPerformance,
			SampleHourlyPrice:  copyPrice(row.OnDemandLinuxHourly),
			Disks:              group,
		})
	}
	return records
}

// groupDisks groups disk rows by instance type, keeping dataset order within
// each group, and attaches IOPS and estimated speed where documented.
func groupDisks(disks []dataset.DiskRow, ref iops.Reference) map[string][]DiskInfo {
	byType := make(map[string][]DiskInfo)
	for _, d := range disks {
		info := DiskInfo{
			Count:    d.Count,
			SizeInGB: d.SizeInGB,
			Type:     d.Type,
		}
		if ref != nil {
			if profile, ok := ref.Lookup(d.InstanceType); ok {
				speed := iops.EstimateSpeed(profile)
				info.IOPS = &profile
				info.EstimatedSpeed = &speed
			}
		}
		byType[d.InstanceType] = append(byType[d.InstanceType], info)
	}
	return byType
}

// StorageSummary returns "EBS only" when the disks add up to zero GB and
// "<N> GB" otherwise.
func StorageSummary(disks []DiskInfo) string {
	var total int64
	for _, d := range disks {
		total += int64(d.Count) * d.SizeInGB
	}
	if total == 0 {
		return EBSOnly
	}
	return fmt.Sprintf("%d GB", total)
}

// MiBToGiB converts MiB to GiB rounded to 2 decimal places.
func MiBToGiB(mib int64) float64 {
	return math.Round(float64(mib)/1024*100) / 100
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
