package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/sheetmail/internal/adapters/sheet"
	"github.com/bft-labs/sheetmail/internal/adapters/smtp"
	"github.com/bft-labs/sheetmail/internal/app"
	"github.com/bft-labs/sheetmail/internal/cliconfig"
	"github.com/bft-labs/sheetmail/pkg/log"
)

const helpDescription = `
Send one personalized email per spreadsheet row through Gmail's SMTP relay.

The input file needs the columns RecipientEmail, Name and Message (exact,
case-sensitive); other columns are ignored. Each row gets the subject
"Hello, <Name>!" and a short letter wrapping <Message>.

Without a subcommand the desktop window opens. Use "send" to run headless.
The password is never read from the config file: type it into the window,
or pass SHEETMAIL_PASSWORD / --password to "send".
`

var exampleUsage = strings.TrimSpace(`
  sheetmail --file ~/contacts.xlsx --from me@gmail.com
  SHEETMAIL_PASSWORD=<app-password> sheetmail send --file contacts.xlsx --from me@gmail.com
  sheetmail send --file contacts.csv --from me@gmail.com --failures-csv > retry.csv
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:          "sheetmail",
		Short:        "Send personalized emails to every row of a spreadsheet",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliconfig.Load(&cfg, cfgPath, cmd.Flags()); err != nil {
				return err
			}
			return checkInputFile(cfg.FilePath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cfg)
			logger.Info("configuration", log.Any("config", cfg.Masked()))
			return runGUI(cfg, logger)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sheetmail/config.toml)")
	root.PersistentFlags().StringVar(&cfg.FilePath, "file", cfg.FilePath, "spreadsheet with RecipientEmail, Name and Message columns")
	root.PersistentFlags().StringVar(&cfg.From, "from", cfg.From, "sender email address")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	root.Flags().BoolVar(&cfg.WatchInput, "watch", cfg.WatchInput, "refresh the row preview when the input file changes")

	root.AddCommand(newSendCommand(&cfg))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sheetmail:", err)
		os.Exit(1)
	}
}

// checkInputFile rejects a prefilled input whose format cannot be read.
func checkInputFile(path string) error {
	if path == "" || sheet.Supported(path) {
		return nil
	}
	return fmt.Errorf("unsupported input file %q: want one of %s", path, strings.Join(sheet.Extensions, ", "))
}

func newLogger(cfg cliconfig.Config) *log.ZerologLogger {
	return log.NewZerologLogger(log.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

func newController(logger log.Logger, cfg cliconfig.Config) *app.Controller {
	ctrl := app.NewController(sheet.NewLoader(logger), smtp.NewSender(logger), logger, nil)
	ctrl.SetForm(app.Form{FilePath: cfg.FilePath, Address: cfg.From, Secret: cfg.Password})
	return ctrl
}
