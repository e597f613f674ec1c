package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
)

// ErrUnknownInstanceType is returned when the dataset has no such instance type.
var ErrUnknownInstanceType = errors.New("unknown instance type")

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <instance-type>",
		Short:   "Show specifications, disks, a sample price and regions for one instance type",
		Example: "  ec2-instance-browser show g5.xlarge",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instanceType := args[0]

			ctx, cancel := a.context(cmd)
			defer cancel()
			defer a.since("show", time.Now())

			gw, err := a.openGateway(ctx)
			if err != nil {
				return err
			}
			defer gw.Close()

			loader, err := a.newLoader(gw)
			if err != nil {
				return err
			}

			browser := catalog.NewBrowser(loader, catalog.NewRegionResolver(gw, a.logger), a.logger)
			defer browser.Close()

			stop := a.startProgress(fmt.Sprintf("Loading %s ...", instanceType))
			browser.Load()
			browser.Select(instanceType)
			err = wait(ctx, browser)
			stop()
			if err != nil {
				return err
			}

			snap := browser.Snapshot()
			records, ok := snap.List.Value()
			if !ok {
				return snap.List.Err()
			}
			record, found := findRecord(records, instanceType)
			if !found {
				return fmt.Errorf("%w: %q", ErrUnknownInstanceType, instanceType)
			}

			if handled, err := encode(a.stdout, a.cfg.Output, newDetailView(record, snap.Regions)); handled {
				return err
			}
			return renderDetail(a.stdout, record, snap.Regions)
		},
	}
}

// wait blocks until the browser's fetches finish or ctx is done.
func wait(ctx context.Context, b *catalog.Browser) error {
	done := make(chan struct{})
	go func() {
		b.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func findRecord(records []catalog.InstanceRecord, instanceType string) (catalog.InstanceRecord, bool) {
	for _, r := range records {
		if r.InstanceType == instanceType {
			return r, true
		}
	}
	return catalog.InstanceRecord{}, false
}
