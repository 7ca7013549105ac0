package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/iho/barberledger/internal/client"
	applogger "github.com/iho/barberledger/internal/infrastructure/logger"
)

const (
	defaultBaseURL  = "http://localhost:8080"
	defaultTimezone = "America/Sao_Paulo"
)

// rootConfig carries the persistent flags shared by every command.
type rootConfig struct {
	baseURL  string
	fxURL    string
	timeout  time.Duration
	timezone string
	lang     string
	verbose  bool

	out io.Writer
	err io.Writer
	now func() time.Time
}

func main() {
	if err := newRootCmd(&rootConfig{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(rc *rootConfig) *cobra.Command {
	if rc.now == nil {
		rc.now = time.Now
	}

	cmd := &cobra.Command{
		Use:           "barberledger",
		Short:         "Barbershop ledger CLI",
		Long:          `A command line interface for recording cash register entries and rendering ledger and revenue reports.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if rc.out == nil {
				rc.out = cmd.OutOrStdout()
			}
			if rc.err == nil {
				rc.err = cmd.ErrOrStderr()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&rc.baseURL, "url", envOr("BARBERLEDGER_URL", defaultBaseURL), "Base URL of the ledger API")
	cmd.PersistentFlags().StringVar(&rc.fxURL, "fx-url", envOr("FX_URL", ""), "Exchange rate endpoint (defaults to open.er-api.com)")
	cmd.PersistentFlags().DurationVar(&rc.timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.PersistentFlags().StringVar(&rc.timezone, "timezone", envOr("REPORT_TIMEZONE", defaultTimezone), "Timezone for day-only dates")
	cmd.PersistentFlags().StringVar(&rc.lang, "lang", "pt-BR", "Language used to format amounts")
	cmd.PersistentFlags().BoolVarP(&rc.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newRegisterCmd(rc),
		newReportCmd(rc),
	)

	return cmd
}

func (rc *rootConfig) client() *client.Client {
	return client.New(rc.baseURL, client.WithHTTPClient(&http.Client{Timeout: rc.timeout}))
}

func (rc *rootConfig) location() (*time.Location, error) {
	loc, err := time.LoadLocation(rc.timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid --timezone %q: %w", rc.timezone, err)
	}
	return loc, nil
}

func (rc *rootConfig) language() language.Tag {
	tag, err := language.Parse(rc.lang)
	if err != nil {
		return language.English
	}
	return tag
}

// context attaches a stderr logger to the command context.
func (rc *rootConfig) context(cmd *cobra.Command) context.Context {
	level := "warn"
	if rc.verbose {
		level = "debug"
	}
	logger := applogger.New(applogger.Config{Level: level, Format: "console", Output: rc.err})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
