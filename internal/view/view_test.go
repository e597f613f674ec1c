package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/iops"
)

func price(v float64) *float64 { return &v }

func g5() catalog.InstanceRecord {
	profile := iops.Profile{RandomReadIOPS: 40625, WriteIOPS: 20313}
	speed := iops.EstimateSpeed(profile)
	return catalog.InstanceRecord{
		InstanceType:       "g5.xlarge",
		VCPUs:              4,
		MemorySizeInGiB:    16,
		StorageSummary:     "250 GB",
		NetworkPerformance: "Up to 10 Gigabit",
		SampleHourlyPrice:  price(1.006),
		Disks: []catalog.DiskInfo{
			{Count: 1, SizeInGB: 250, Type: "ssd", IOPS: &profile, EstimatedSpeed: &speed},
		},
	}
}

func TestEmpty(t *testing.T) {
	title, desc := Empty("")
	assert.Equal(t, TitleNoData, title)
	assert.Equal(t, DescNoData, desc)

	title, desc = Empty("zz")
	assert.Equal(t, TitleNoInstances, title)
	assert.Equal(t, `Could not find instances matching "zz".`, desc)
}

func TestPriceTag(t *testing.T) {
	assert.Equal(t, "$1.0060/hr", PriceTag(g5()))
	assert.Equal(t, "N/A/hr", PriceTag(catalog.InstanceRecord{}))
	assert.Equal(t, "$0.00/hr", PriceTag(catalog.InstanceRecord{SampleHourlyPrice: price(0)}))
}

func TestDetail(t *testing.T) {
	tests := []struct {
		name    string
		record  catalog.InstanceRecord
		regions catalog.Result[[]string]
		want    []string
		absent  []string
	}{
		{
			name:    "loaded",
			record:  g5(),
			regions: catalog.Succeeded([]string{"EU (Ireland)", "US East (N. Virginia)"}),
			want: []string{
				"# g5.xlarge\n",
				"* Memory: 16 GiB\n",
				"* 1 x 250 GB (ssd)\n",
				"* Random Read IOPS: 40,625 (158.69 MiB/s)\n",
				"* Write IOPS: 20,313 (79.35 MiB/s)\n",
				"* Hourly: $1.0060\n",
				SamplePriceNote,
				"## Available Regions (2)\n* EU (Ireland)\n* US East (N. Virginia)\n",
			},
		},
		{
			name:    "loading",
			record:  catalog.InstanceRecord{InstanceType: "t3.micro", StorageSummary: catalog.EBSOnly},
			regions: catalog.Pending[[]string](),
			want:    []string{"## Available Regions (Loading...)", LoadingRegions, NoDisks, "* Hourly: N/A"},
			absent:  []string{"IOPS"},
		},
		{
			name:    "failed",
			record:  catalog.InstanceRecord{InstanceType: "t3.micro"},
			regions: catalog.Failed[[]string](errors.New("disk I/O error")),
			want:    []string{"## Available Regions (Error)", "*Error loading regions: disk I/O error*"},
		},
		{
			name:    "no regions",
			record:  catalog.InstanceRecord{InstanceType: "c5d.large"},
			regions: catalog.Succeeded([]string{}),
			want:    []string{"## Available Regions (0)", NoRegions},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Detail(tt.record, tt.regions)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}
