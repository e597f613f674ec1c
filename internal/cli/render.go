package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/config"
	"github.com/rshade/ec2-instance-browser/internal/iops"
	"github.com/rshade/ec2-instance-browser/internal/view"
)

// encode writes v as JSON or YAML. It reports false for the table format so
// callers fall through to their own table rendering.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatUpper
	return t
}

// emptyList renders the empty state for a list with the given search text.
func emptyList(w io.Writer, search string) error {
	title, desc := view.Empty(search)
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, desc)
	return err
}

func renderInstanceTable(w io.Writer, records []catalog.InstanceRecord) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Instance Type", "vCPU", "Memory (GiB)", "Storage", "Network", "Price/hr"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.InstanceType,
			r.VCPUs,
			catalog.FormatGiB(r.MemorySizeInGiB),
			r.StorageSummary,
			r.NetworkPerformance,
			view.PriceTag(r),
		})
	}
	t.SetCaption("%s instance types", humanize.Comma(int64(len(records))))
	t.Render()
}

// detailView is the structured form of the show command.
type detailView struct {
	catalog.InstanceRecord `yaml:",inline"`

	Regions      []string `json:"regions" yaml:"regions"`
	RegionsError string   `json:"regionsError,omitempty" yaml:"regionsError,omitempty"`
}

func newDetailView(record catalog.InstanceRecord, regions catalog.Result[[]string]) detailView {
	dv := detailView{InstanceRecord: record, Regions: []string{}}
	if v, ok := regions.Value(); ok {
		dv.Regions = v
	} else if err := regions.Err(); err != nil {
		dv.RegionsError = err.Error()
	}
	return dv
}

// renderDetail writes the detail text for one instance type.
func renderDetail(w io.Writer, record catalog.InstanceRecord, regions catalog.Result[[]string]) error {
	_, err := io.WriteString(w, view.Detail(record, regions))
	return err
}

// iopsView is one row of the iops command.
type iopsView struct {
	InstanceType   string       `json:"instanceType" yaml:"instanceType"`
	IOPS           iops.Profile `json:"iops" yaml:"iops"`
	EstimatedSpeed iops.Speed   `json:"estimatedSpeed" yaml:"estimatedSpeed"`
}

func renderIOPSTable(w io.Writer, rows []iopsView, version string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Instance Type", "Random Read IOPS", "Write IOPS", "Read", "Write"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.InstanceType,
			humanize.Comma(int64(r.IOPS.RandomReadIOPS)),
			humanize.Comma(int64(r.IOPS.WriteIOPS)),
			r.EstimatedSpeed.ReadString(),
			r.EstimatedSpeed.WriteString(),
		})
	}
	t.SetCaption("instance store reference %s, %s KiB blocks", version, strconv.Itoa(iops.BlockSizeKiB))
	t.Render()
}
