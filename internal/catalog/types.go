// Package catalog turns raw dataset rows into instance records for display.
package catalog

import (
	"fmt"

	"github.com/rshade/ec2-instance-browser/internal/iops"
)

// EBSOnly is the storage summary for instance types without instance store disks.
const EBSOnly = "EBS only"

// DiskInfo is an instance store attachment enriched with documented IOPS and
// the throughput derived from them. IOPS and EstimatedSpeed are either both
// set or both nil.
type DiskInfo struct {
	Count          int           `json:"count" yaml:"count"`
	SizeInGB       int64         `json:"sizeInGB" yaml:"sizeInGB"`
	Type           string        `json:"type" yaml:"type"`
	IOPS           *iops.Profile `json:"iops,omitempty" yaml:"iops,omitempty"`
	EstimatedSpeed *iops.Speed   `json:"estimatedSpeed,omitempty" yaml:"estimatedSpeed,omitempty"`
}

// String renders the attachment as "2 x 100 GB (ssd)".
func (d DiskInfo) String() string {
	return fmt.Sprintf("%d x %d GB (%s)", d.Count, d.SizeInGB, d.Type)
}

// InstanceRecord is the normalized view of one instance type.
type InstanceRecord struct {
	InstanceType       string  `json:"instanceType" yaml:"instanceType"`
	VCPUs              int     `json:"vCpus" yaml:"vCpus"`
	MemorySizeInGiB    float64 `json:"memorySizeInGiB" yaml:"memorySizeInGiB"`
	StorageSummary     string  `json:"storage" yaml:"storage"`
	NetworkPerformance string  `json:"networkPerformance" yaml:"networkPerformance"`

	// SampleHourlyPrice is the minimum on-demand Linux price across regions,
	// or nil when the type has no prices. Zero is a real price.
	SampleHourlyPrice *float64 `json:"onDemandLinuxHr" yaml:"onDemandLinuxHr"`

	Disks []DiskInfo `json:"disks" yaml:"disks"`
}

// Subtitle renders the one-line summary used in list views,
// e.g. "2 vCPU | 8 GiB RAM | EBS only".
func (r InstanceRecord) Subtitle() string {
	return fmt.Sprintf("%d vCPU | %s GiB RAM | %s", r.VCPUs, FormatGiB(r.MemorySizeInGiB), r.StorageSummary)
}
