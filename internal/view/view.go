// Package view renders instance records as text shared by the command-line
// output and the interactive browser.
package view

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
)

// Fixed texts for empty and error states.
const (
	TitleNoInstances = "No Instances Found"
	TitleNoData      = "No Data"
	TitleLoadError   = "Error Loading Data"
	DescNoData       = "Instance data is empty or could not be loaded from DB."
	NoRegions        = "No specific region data found"
	NoDisks          = "No disk information available."
	LoadingRegions   = "Loading region data..."
	SamplePriceNote  = "(This is a sample price, often the minimum found across regions. Actual price depends on the specific region.)"
)

// Empty returns the title and description shown when no record is visible.
func Empty(search string) (title, description string) {
	if search != "" {
		return TitleNoInstances, fmt.Sprintf("Could not find instances matching %q.", search)
	}
	return TitleNoData, DescNoData
}

// PriceTag renders the hourly price tag, e.g. "$0.0960/hr".
func PriceTag(r catalog.InstanceRecord) string {
	return catalog.FormatPrice(r.SampleHourlyPrice, catalog.DefaultPricePrecision) + "/hr"
}

// Detail renders the detail text for one instance type together with the
// current state of its region fetch.
func Detail(record catalog.InstanceRecord, regions catalog.Result[[]string]) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", record.InstanceType)

	b.WriteString("## Specifications\n")
	fmt.Fprintf(&b, "* vCPUs: %d\n", record.VCPUs)
	fmt.Fprintf(&b, "* Memory: %s GiB\n", catalog.FormatGiB(record.MemorySizeInGiB))
	fmt.Fprintf(&b, "* Storage: %s\n", record.StorageSummary)
	fmt.Fprintf(&b, "* Network: %s\n\n", record.NetworkPerformance)

	b.WriteString("## Disks\n")
	if len(record.Disks) == 0 {
		fmt.Fprintf(&b, "*%s*\n", NoDisks)
	}
	for _, d := range record.Disks {
		fmt.Fprintf(&b, "* %s\n", d)
		if d.IOPS != nil && d.EstimatedSpeed != nil {
			fmt.Fprintf(&b, "* Random Read IOPS: %s (%s)\n", humanize.Comma(int64(d.IOPS.RandomReadIOPS)), d.EstimatedSpeed.ReadString())
			fmt.Fprintf(&b, "* Write IOPS: %s (%s)\n", humanize.Comma(int64(d.IOPS.WriteIOPS)), d.EstimatedSpeed.WriteString())
		}
	}
	b.WriteString("\n")

	b.WriteString("## On-Demand Linux Pricing (Sample)\n")
	fmt.Fprintf(&b, "* Hourly: %s\n", catalog.FormatPrice(record.SampleHourlyPrice, catalog.DefaultPricePrecision))
	fmt.Fprintf(&b, "  %s\n\n", SamplePriceNote)

	switch regions.State() {
	case catalog.StateSucceeded:
		list, _ := regions.Value()
		fmt.Fprintf(&b, "## Available Regions (%d)\n", len(list))
		if len(list) == 0 {
			fmt.Fprintf(&b, "*%s*\n", NoRegions)
		}
		for _, r := range list {
			fmt.Fprintf(&b, "* %s\n", r)
		}
	case catalog.StateFailed:
		b.WriteString("## Available Regions (Error)\n")
		fmt.Fprintf(&b, "*Error loading regions: %v*\n", regions.Err())
	default:
		b.WriteString("## Available Regions (Loading...)\n")
		fmt.Fprintf(&b, "*%s*\n", LoadingRegions)
	}

	return b.String()
}
