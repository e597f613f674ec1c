package dataset

// Table names in the bundled dataset.
const (
	TableInstanceTypes = "instance-types"
	TablePrices        = "instance-shared-prices"
	TableDisks         = "instance-disks"
)

// InstanceRow is one row of the list query: an instance type's
// specification together with its cheapest on-demand Linux price.
type InstanceRow struct {
	InstanceType       string
	VCPUs              int
	MemorySizeInMiB    int64
	Storage            string
	NetworkPerformance string

	// OnDemandLinuxHourly is nil when no price rows exist for the type.
	OnDemandLinuxHourly *float64
}

// DiskRow is one instance store attachment.
type DiskRow struct {
	InstanceType string
	Count        int
	SizeInGB     int64
	Type         string
}

// Row is a generic result row keyed by column name.
type Row map[string]any
