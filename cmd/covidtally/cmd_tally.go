package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronkov/csvcursor"
	"github.com/avoronkov/csvcursor/internal/fetch"
	"github.com/avoronkov/csvcursor/internal/report"
	"github.com/avoronkov/csvcursor/internal/series"
)

const jhuBase = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/"

func newTallyCmd() *cobra.Command {
	var (
		country      string
		state        string
		county       string
		confirmedURL string
		deathsURL    string
		cachePath    string
		maxAge       time.Duration
		format       string
	)

	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "Sum per-date confirmed and death counts for a location",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirmedURL == "" || deathsURL == "" {
				// The county breakdown only exists in the US files.
				suffix := "global.csv"
				if county != "" {
					suffix = "US.csv"
				}
				if confirmedURL == "" {
					confirmedURL = jhuBase + "time_series_covid19_confirmed_" + suffix
				}
				if deathsURL == "" {
					deathsURL = jhuBase + "time_series_covid19_deaths_" + suffix
				}
			}

			if format != "text" && format != "csv" {
				return fmt.Errorf("unknown format %q (want text or csv)", format)
			}

			client := &fetch.Client{MaxAge: maxAge}
			if cachePath != "" {
				cache, err := fetch.OpenCache(cachePath)
				if err != nil {
					return err
				}
				defer cache.Close()
				client.Cache = cache
			}

			filter := series.Filter{Country: country, State: state, County: county}

			confirmed, err := loadSeries(cmd.Context(), client, confirmedURL, filter)
			if err != nil {
				return fmt.Errorf("confirmed: %w", err)
			}
			deaths, err := loadSeries(cmd.Context(), client, deathsURL, filter)
			if err != nil {
				return fmt.Errorf("deaths: %w", err)
			}

			if confirmed.Matched == 0 && deaths.Matched == 0 {
				return fmt.Errorf("no rows matched %s", filter.Country)
			}

			table, err := report.New(
				report.Column{Name: "confirmed", Series: confirmed},
				report.Column{Name: "deaths", Series: deaths},
			)
			if err != nil {
				return err
			}

			if format == "csv" {
				return table.WriteCSV(os.Stdout)
			}
			return table.WriteText(os.Stdout)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "country/region to tally (required)")
	cmd.Flags().StringVar(&state, "state", "", "province/state to tally")
	cmd.Flags().StringVar(&county, "county", "", "US county to tally (requires --state)")
	cmd.Flags().StringVar(&confirmedURL, "confirmed-url", "", "override the confirmed cases CSV URL")
	cmd.Flags().StringVar(&deathsURL, "deaths-url", "", "override the deaths CSV URL")
	cmd.Flags().StringVar(&cachePath, "cache", "", "path to a bolt database for caching downloads")
	cmd.Flags().DurationVar(&maxAge, "max-age", 6*time.Hour, "how stale a cached download may be")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or csv")
	cmd.MarkFlagRequired("country")

	return cmd
}

func loadSeries(ctx context.Context, client *fetch.Client, url string, filter series.Filter) (*series.Series, error) {
	body, err := client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	r := csvcursor.NewReader(csvcursor.NewScanSource(bytes.NewReader(body)))
	defer r.Close()

	return series.Accumulate(r, filter)
}
