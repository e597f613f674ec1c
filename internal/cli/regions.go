package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/view"
)

func newRegionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "regions <instance-type>",
		Short:   "List the regions an instance type has on-demand prices in",
		Example: "  ec2-instance-browser regions m5.large",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			defer a.since("regions", time.Now())

			gw, err := a.openGateway(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			regions, err := catalog.NewRegionResolver(gw, a.logger).Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if handled, err := encode(a.stdout, a.cfg.Output, regions); handled {
				return err
			}
			if len(regions) == 0 {
				_, err := fmt.Fprintln(a.stdout, view.NoRegions)
				return err
			}

			t := newTable(a.stdout)
			t.AppendHeader(table.Row{"Region"})
			for _, r := range regions {
				t.AppendRow(table.Row{r})
			}
			t.SetCaption("%d regions offer %s", len(regions), args[0])
			t.Render()
			return nil
		},
	}
}
