package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/usecase"
)

// entryFlags are the editable fields of a register entry.
type entryFlags struct {
	description string
	value       string
	date        string
	incoming    bool
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Entry description")
	cmd.Flags().StringVar(&f.value, "value", "", "Amount in BRL, e.g. 45.50")
	cmd.Flags().StringVar(&f.date, "date", "", "Entry date (YYYY-MM-DD or RFC3339); defaults to now on create")
	cmd.Flags().BoolVar(&f.incoming, "incoming", false, "Record money coming in (default is outgoing)")
}

func (f *entryFlags) parse(loc *time.Location) (decimal.Decimal, *time.Time, error) {
	value, err := decimal.NewFromString(f.value)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("invalid --value %q: %w", f.value, err)
	}

	if f.date == "" {
		return value, nil, nil
	}
	date, err := domain.ParseBound(f.date, loc, false)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return value, &date, nil
}

func newRegisterCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cash register entries",
	}

	cmd.AddCommand(
		newRegisterCreateCmd(rc),
		newRegisterShowCmd(rc),
		newRegisterEditCmd(rc),
		newRegisterDeleteCmd(rc),
		newRegisterListCmd(rc),
		newRegisterRangeCmd(rc),
	)

	return cmd
}

func newRegisterCreateCmd(rc *rootConfig) *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := rc.location()
			if err != nil {
				return err
			}
			value, date, err := f.parse(loc)
			if err != nil {
				return err
			}

			entry, err := rc.client().CreateRegister(rc.context(cmd), usecase.CreateRegisterInput{
				Description: f.description,
				Value:       value,
				IsIncoming:  f.incoming,
				Date:        date,
			})
			if err != nil {
				return err
			}
			return printJSON(rc.out, dto.RegisterFromDomain(entry))
		},
	}
	f.bind(cmd)

	return cmd
}

func newRegisterShowCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := rc.client().GetRegister(rc.context(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(rc.out, dto.RegisterFromDomain(entry))
		},
	}
}

func newRegisterEditCmd(rc *rootConfig) *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing entry",
		Long: `Loads the entry and overwrites only the fields given as flags. The
stored entry is replaced as a whole, so the last edit wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := rc.location()
			if err != nil {
				return err
			}

			ctx := rc.context(cmd)
			api := rc.client()

			current, err := api.GetRegister(ctx, args[0])
			if err != nil {
				return err
			}

			in := usecase.UpdateRegisterInput{
				ID:          current.ID,
				Description: current.Description,
				Value:       current.Value,
				IsIncoming:  current.IsIncoming,
				Date:        &current.Date,
			}

			flags := cmd.Flags()
			if flags.Changed("description") {
				in.Description = f.description
			}
			if flags.Changed("value") {
				if in.Value, err = decimal.NewFromString(f.value); err != nil {
					return fmt.Errorf("invalid --value %q: %w", f.value, err)
				}
			}
			if flags.Changed("incoming") {
				in.IsIncoming = f.incoming
			}
			if flags.Changed("date") {
				date, err := domain.ParseBound(f.date, loc, false)
				if err != nil {
					return err
				}
				in.Date = &date
			}

			entry, err := api.UpdateRegister(ctx, in)
			if err != nil {
				return err
			}
			return printJSON(rc.out, dto.RegisterFromDomain(entry))
		},
	}
	f.bind(cmd)

	return cmd
}

func newRegisterDeleteCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rc.client().DeleteRegister(rc.context(cmd), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(rc.out, "deleted %s\n", args[0])
			return err
		},
	}
}

func newRegisterListCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list [substring]",
		Short: "List entries whose description contains substring (all when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var substr string
			if len(args) == 1 {
				substr = args[0]
			}

			entries, err := rc.client().ListByDescription(rc.context(cmd), substr)
			if err != nil {
				return err
			}
			return printJSON(rc.out, dto.RegistersFromDomain(entries))
		},
	}
}

func newRegisterRangeCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List entries dated within [start, end]",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := rc.location()
			if err != nil {
				return err
			}
			r, err := domain.ParseDateRange(args[0], args[1], loc)
			if err != nil {
				return err
			}

			entries, err := rc.client().ListByDateRange(rc.context(cmd), r)
			if err != nil {
				return err
			}
			return printJSON(rc.out, dto.RegistersFromDomain(entries))
		},
	}
}
