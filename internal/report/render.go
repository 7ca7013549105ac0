package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iho/barberledger/internal/domain"
)

// DisplayDateLayout is how dates are shown in reports.
const DisplayDateLayout = "02/01/2006"

// Labels used by the renderer.
const (
	LabelIncoming = "IN"
	LabelOutgoing = "OUT"
	NoRecords     = "no records"
	NotAvailable  = "n/a"
)

// Renderer writes reports as aligned text.
type Renderer struct {
	w       io.Writer
	printer *message.Printer
	loc     *time.Location
}

// NewRenderer creates a renderer. Amounts are formatted for tag and dates
// are shown in loc.
func NewRenderer(w io.Writer, tag language.Tag, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{
		w:       w,
		printer: message.NewPrinter(tag),
		loc:     loc,
	}
}

// Ledger renders a ledger snapshot.
func (r *Renderer) Ledger(s LedgerSnapshot) error {
	var b strings.Builder

	r.header(&b, "Ledger", r.ledgerTitle(s.Query))
	r.status(&b, s.Status, s.Err, s.Loaded())

	if s.Loaded() || s.Status == StatusReady {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		if len(s.Data) == 0 {
			fmt.Fprintln(tw, NoRecords)
		} else {
			fmt.Fprintln(tw, "DATE\tTYPE\tDESCRIPTION\tAMOUNT")
			for _, e := range s.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					r.date(e.Date), categoryLabel(e), e.Description, r.brl(e.Value))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(&b, "\nIncoming: %s\n", r.brl(s.Totals.Incoming))
		fmt.Fprintf(&b, "Outgoing: %s\n", r.brl(s.Totals.Outgoing))
		fmt.Fprintf(&b, "Net:      %s\n", r.brl(s.Totals.Net()))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Revenue renders a revenue snapshot.
func (r *Renderer) Revenue(s RevenueSnapshot) error {
	var b strings.Builder

	var parts []string
	if t := r.rangeTitle(s.Query.Range); t != "" {
		parts = append(parts, t)
	}
	if s.Query.CustomerName != "" {
		parts = append(parts, fmt.Sprintf("customer %q", s.Query.CustomerName))
	}
	r.header(&b, "Revenue", strings.Join(parts, " "))
	r.status(&b, s.Status, s.Err, s.Loaded())

	if s.Loaded() || s.Status == StatusReady {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		if len(s.Data) == 0 {
			fmt.Fprintln(tw, NoRecords)
		} else {
			fmt.Fprintln(tw, "DATE\tCUSTOMER\tTYPE\tPAYMENT\tAMOUNT")
			for _, svc := range s.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.date(svc.Date), svc.CustomerName,
					strings.Join(svc.Types, ", "), strings.Join(svc.Payments, ", "),
					r.brl(svc.Value))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	total := NotAvailable
	if s.Total != nil {
		total = r.brl(*s.Total)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", total)
	fmt.Fprintf(&b, "Total %s: %s\n", currency.USD, usdFigure(s))

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (*Renderer) header(b *strings.Builder, name, title string) {
	if title == "" {
		fmt.Fprintln(b, name)
	} else {
		fmt.Fprintf(b, "%s %s\n", name, title)
	}
	fmt.Fprintln(b)
}

func (*Renderer) status(b *strings.Builder, status Status, errMsg string, loaded bool) {
	switch status {
	case StatusIdle:
		fmt.Fprintln(b, "no query yet")
	case StatusLoading:
		if !loaded {
			fmt.Fprintln(b, "loading...")
		}
	case StatusError:
		fmt.Fprintf(b, "error: %s\n", errMsg)
	}
}

func (r *Renderer) date(t time.Time) string {
	return t.In(r.loc).Format(DisplayDateLayout)
}

func (r *Renderer) rangeTitle(dr domain.DateRange) string {
	if dr.Start.IsZero() && dr.End.IsZero() {
		return ""
	}
	return r.date(dr.Start) + " - " + r.date(dr.End)
}

func (r *Renderer) brl(v decimal.Decimal) string {
	// Round in decimal; the printer only groups digits.
	return r.printer.Sprintf("%v %.2f", currency.BRL, v.Round(2).InexactFloat64())
}

func (r *Renderer) ledgerTitle(q LedgerQuery) string {
	if q.ByRange {
		return r.rangeTitle(q.Range)
	}
	if q.Description != "" {
		return fmt.Sprintf("matching %q", q.Description)
	}
	return ""
}

func categoryLabel(e *domain.RegisterEntry) string {
	if e.IsIncoming {
		return LabelIncoming
	}
	return LabelOutgoing
}

func usdFigure(s RevenueSnapshot) string {
	switch {
	case s.ConvertedTotal != nil:
		return s.ConvertedTotal.StringFixed(2)
	case s.RateStatus == RateUnavailable:
		return NotAvailable
	default:
		return RatePending
	}
}
