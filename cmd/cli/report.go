package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/barberledger/internal/adapter/exchangerate"
	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/report"
)

func newReportCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Ledger and revenue reports",
	}

	cmd.AddCommand(
		newReportLedgerCmd(rc),
		newReportRevenueCmd(rc),
	)

	return cmd
}

// rangeFlags resolves --start/--end, filling an omitted bound from def.
func rangeFlags(start, end string, loc *time.Location, def domain.DateRange) (domain.DateRange, error) {
	r := def
	if start != "" {
		s, err := domain.ParseBound(start, loc, false)
		if err != nil {
			return domain.DateRange{}, err
		}
		r.Start = s
	}
	if end != "" {
		e, err := domain.ParseBound(end, loc, true)
		if err != nil {
			return domain.DateRange{}, err
		}
		r.End = e
	}
	return r, nil
}

func newReportLedgerCmd(rc *rootConfig) *cobra.Command {
	var start, end, search string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger entries with incoming, outgoing and net totals",
		Long: `Lists register entries for a date range (two days back through tomorrow
by default) or, with --search, every entry whose description contains the text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := rc.location()
			if err != nil {
				return err
			}

			ctx := rc.context(cmd)
			session := report.NewLedgerSession(ctx, rc.client())
			defer session.Close()

			if cmd.Flags().Changed("search") {
				session.Search(search)
			} else {
				r, err := rangeFlags(start, end, loc, domain.DefaultLedgerRange(rc.now(), loc))
				if err != nil {
					return err
				}
				session.SelectRange(r)
			}
			session.Wait()

			snap := session.Snapshot()
			if err := report.NewRenderer(rc.out, rc.language(), loc).Ledger(snap); err != nil {
				return err
			}
			if snap.Status == report.StatusError {
				return fmt.Errorf("ledger query failed: %s", snap.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "Last day, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&search, "search", "", "Description substring, case-insensitive")

	return cmd
}

func newReportRevenueCmd(rc *rootConfig) *cobra.Command {
	var start, end, customer string

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Service revenue in BRL with the USD equivalent",
		Long: `Lists services by customer name and date range (one week back through
tomorrow by default). The exchange rate is fetched while the services load;
when it cannot be obtained the USD total reads n/a.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := rc.location()
			if err != nil {
				return err
			}
			r, err := rangeFlags(start, end, loc, domain.DefaultRevenueRange(rc.now(), loc))
			if err != nil {
				return err
			}

			rates := exchangerate.NewClient(rc.fxURL, exchangerate.WithTimeout(rc.timeout))

			ctx := rc.context(cmd)
			session := report.NewRevenueSession(ctx, rc.client(), rates)
			defer session.Close()

			session.Filter(domain.ServiceFilter{CustomerName: customer, Range: r})
			session.Wait(ctx)

			snap := session.Snapshot()
			if err := report.NewRenderer(rc.out, rc.language(), loc).Revenue(snap); err != nil {
				return err
			}
			if snap.Status == report.StatusError {
				return fmt.Errorf("service query failed: %s", snap.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "Last day, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name substring, case-insensitive")

	return cmd
}
