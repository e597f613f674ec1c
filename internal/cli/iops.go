package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ec2-instance-browser/internal/iops"
)

// ErrNoIOPSData is returned when an instance type has no documented instance store IOPS.
var ErrNoIOPSData = errors.New("no instance store IOPS data")

func newIOPSCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "iops [instance-type]",
		Short: "Show documented instance store IOPS and estimated throughput",
		Long: `iops prints the embedded instance store IOPS reference. Throughput is
estimated as IOPS x 4 KiB / 1024 and shown in MiB/s. The dataset is not
needed for this command.`,
		Example: `  ec2-instance-browser iops
  ec2-instance-browser iops g5.xlarge`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := iops.Default()
			if err != nil {
				return err
			}

			types := ref.InstanceTypes()
			if len(args) == 1 {
				if _, ok := ref.Lookup(args[0]); !ok {
					return fmt.Errorf("%w for %q", ErrNoIOPSData, args[0])
				}
				types = args
			}

			rows := make([]iopsView, 0, len(types))
			for _, t := range types {
				profile, _ := ref.Lookup(t)
				rows = append(rows, iopsView{
					InstanceType:   t,
					IOPS:           profile,
					EstimatedSpeed: iops.EstimateSpeed(profile),
				})
			}

			var payload any = rows
			if len(args) == 1 {
				payload = rows[0]
			}
			if handled, err := encode(a.stdout, a.cfg.Output, payload); handled {
				return err
			}
			renderIOPSTable(a.stdout, rows, ref.Version())
			return nil
		},
	}
}
