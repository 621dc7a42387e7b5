package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Bennylang23/autobeluga/internal/app"
	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/usecase"
	"github.com/spf13/cobra"
)

type matchFlags struct {
	date   string
	home   string
	away   string
	comp   string
	dryRun bool
}

func newMatchCmd(c *cli) *cobra.Command {
	var f matchFlags

	cmd := &cobra.Command{
		Use:   "match <report-url>",
		Short: "Ingest a single match report with explicit schedule context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := f.matchKey(c.cfg.FBrefBaseURL, args[0])
			if err != nil {
				return err
			}

			a, closeApp, err := c.openApp(cmd.Context(), app.Options{InMemory: f.dryRun})
			if err != nil {
				return err
			}
			defer closeApp()

			var result usecase.MatchResult
			if f.dryRun {
				result, err = a.Ingest.Preview(cmd.Context(), key)
			} else {
				result, err = a.Ingest.Ingest(cmd.Context(), key)
			}

			var out any = result
			if f.dryRun && result.Batch != nil {
				out = previewOutput{Result: result, Batch: newBatchView(*result.Batch)}
			}
			if printErr := c.printJSON(out); printErr != nil && err == nil {
				err = printErr
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "match date, YYYY-MM-DD")
	flags.StringVar(&f.home, "home", "", "home team as named in the schedule")
	flags.StringVar(&f.away, "away", "", "away team as named in the schedule")
	flags.StringVar(&f.comp, "comp", "", "competition name")
	flags.BoolVar(&f.dryRun, "dry-run", false, "extract and print the batch without writing it")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("home")
	_ = cmd.MarkFlagRequired("away")
	_ = cmd.MarkFlagRequired("comp")
	return cmd
}

func (f matchFlags) matchKey(baseURL, rawURL string) (matchreport.MatchKey, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(f.date))
	if err != nil {
		return matchreport.MatchKey{}, fmt.Errorf("invalid --date %q: %w", f.date, err)
	}
	return matchreport.MatchKey{
		Date:        date,
		HomeTeam:    strings.TrimSpace(f.home),
		AwayTeam:    strings.TrimSpace(f.away),
		Competition: strings.TrimSpace(f.comp),
		SourceURL:   matchreport.NormalizeReportURL(baseURL, rawURL),
	}, nil
}
