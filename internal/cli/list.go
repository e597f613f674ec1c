package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
)

func newListCommand(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instance types with specifications and a sample hourly price",
		Example: `  ec2-instance-browser list
  ec2-instance-browser list --search m5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			defer a.since("list", time.Now())

			gw, err := a.openGateway(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			loader, err := a.newLoader(gw)
			if err != nil {
				return err
			}

			stop := a.startProgress("Loading instance types ...")
			result := loader.LoadInstances(ctx)
			stop()

			records, ok := result.Value()
			if !ok {
				return result.Err()
			}
			visible := catalog.Filter(records, search)
			if visible == nil {
				visible = []catalog.InstanceRecord{}
			}

			if handled, err := encode(a.stdout, a.cfg.Output, visible); handled {
				return err
			}
			if len(visible) == 0 {
				return emptyList(a.stdout, search)
			}
			renderInstanceTable(a.stdout, visible)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive substring of the instance type")
	return cmd
}
