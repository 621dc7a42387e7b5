package main

import (
	"github.com/Bennylang23/autobeluga/internal/app"
	"github.com/Bennylang23/autobeluga/internal/usecase"
	"github.com/spf13/cobra"
)

func newScanCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Process every unscraped match report in the schedule, oldest first",
		Long: `Loads the schedule and the report URLs already stored, then ingests each pending match
in date order. The scan stops at the first placeholder report URL. Failed matches stay unscraped
and are picked up by the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeApp, err := c.openApp(cmd.Context(), app.Options{})
			if err != nil {
				return err
			}
			defer closeApp()

			summary, err := a.Scan.Run(cmd.Context(), usecase.ScanOptions{
				BaseURL: c.cfg.FBrefBaseURL,
				Limit:   limit,
			})
			if printErr := c.printJSON(summary); printErr != nil && err == nil {
				err = printErr
			}
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "process at most this many matches (0 = all)")
	return cmd
}
