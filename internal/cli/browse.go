package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/logging"
	"github.com/rshade/ec2-instance-browser/internal/tui"
)

// ErrNotTerminal is returned when browse is started without a terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use list or show instead")

func newBrowseCommand(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search instance types and inspect their details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !logging.IsTerminal(a.stdout) {
				return ErrNotTerminal
			}

			// The timeout bounds opening the dataset only; the session runs
			// until the user quits.
			openCtx, cancel := a.context(cmd)
			gw, err := a.openGateway(openCtx)
			cancel()
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

			return tui.Run(cmd.Context(), browser, search)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Initial search text")
	return cmd
}
