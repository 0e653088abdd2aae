package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/sheetmail/internal/app"
	"github.com/bft-labs/sheetmail/internal/cliconfig"
	"github.com/bft-labs/sheetmail/pkg/log"
)

var errPartial = errors.New("not all emails were sent")

func newSendCommand(cfg *cliconfig.Config) *cobra.Command {
	var failuresCSV bool

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the emails without opening the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*cfg)
			logger.Info("configuration", log.Any("config", cfg.Masked()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runHeadless(ctx, newController(logger, *cfg), cmd.OutOrStdout(), failuresCSV)
		},
	}

	cmd.Flags().StringVar(&cfg.Password, "password", cfg.Password, "sender password (prefer SHEETMAIL_PASSWORD)")
	cmd.Flags().BoolVar(&failuresCSV, "failures-csv", false, "print failed rows as CSV after the summary")
	return cmd
}

// runHeadless drives one run and prints every log line to out.
// It returns the load error, or errPartial when some rows failed.
func runHeadless(ctx context.Context, ctrl *app.Controller, out io.Writer, failuresCSV bool) error {
	events, err := ctrl.Start(ctx)
	if err != nil {
		return err
	}

	var final app.Event
	for ev := range events {
		if ev.Kind == app.EventLog {
			fmt.Fprintln(out, ev.Line)
			continue
		}
		final = ev
	}

	if final.Kind == app.EventAborted {
		return final.Err
	}

	outcome := final.Result.Outcome()
	fmt.Fprintf(out, "\n%s: %s\n", outcome.Title, outcome.Message)
	if outcome.Success {
		return nil
	}

	if failuresCSV {
		text, err := app.FailuresCSV(final.Result)
		if err != nil {
			return fmt.Errorf("render failures: %w", err)
		}
		fmt.Fprint(out, "\n"+text)
	}
	return errPartial
}
