package main

import (
	"fmt"

	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/spf13/cobra"
)

func newHaltingCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "halting <url>...",
		Short: "Report which URLs match the placeholder report pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, u := range args {
				verdict := "ok"
				if matchreport.IsHaltingURL(u) {
					verdict = "halting"
				}
				if _, err := fmt.Fprintf(c.out, "%s\t%s\n", verdict, u); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
