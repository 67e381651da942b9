package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget/store"
	"github.com/MrJamesThe3rd/pocketplan/internal/export"
)

const localUser = "local"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "budgetctl",
		Short:        "Project and compare a budget snapshot file",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("file", "budget.json", "snapshot JSON file")
	root.PersistentFlags().String("tz", "UTC", "timezone calendar days are taken in")

	root.AddCommand(newProjectCmd(), newSeriesCmd())

	return root
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print planned and actual totals as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, loc, err := loadService(cmd)
			if err != nil {
				return err
			}

			asOf := time.Now().In(loc)

			if raw, _ := cmd.Flags().GetString("as-of"); raw != "" {
				asOf, err = parseDay(raw, loc)
				if err != nil {
					return err
				}
			}

			text := export.NewService(svc).SummaryText(cmd.Context(), localUser, asOf)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)

			return nil
		},
	}

	cmd.Flags().String("as-of", "", "projection date (YYYY-MM-DD), defaults to today")

	return cmd
}

func newSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the day-by-day planned and actual series as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, loc, err := loadService(cmd)
			if err != nil {
				return err
			}

			rawStart, _ := cmd.Flags().GetString("start")
			rawEnd, _ := cmd.Flags().GetString("end")

			start, err := parseDay(rawStart, loc)
			if err != nil {
				return err
			}

			end, err := parseDay(rawEnd, loc)
			if err != nil {
				return err
			}

			return export.NewService(svc).SeriesCSV(cmd.Context(), localUser, start, end, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// loadService reads the snapshot file into an in-memory store so the
// commands go through the same service the API uses.
func loadService(cmd *cobra.Command) (*budget.Service, *time.Location, error) {
	path, _ := cmd.Flags().GetString("file")
	tz, _ := cmd.Flags().GetString("tz")

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, nil, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap budget.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	mem := store.NewMemory()
	if err := mem.Write(ctx, localUser, &snap); err != nil {
		return nil, nil, err
	}

	return budget.NewService(mem, loc, 0), loc, nil
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}

	return t, nil
}
