package main

import (
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/bft-labs/sheetmail/internal/cliconfig"
	"github.com/bft-labs/sheetmail/internal/gui"
	"github.com/bft-labs/sheetmail/pkg/log"
)

const appID = "io.bftlabs.sheetmail"

func runGUI(cfg cliconfig.Config, logger log.Logger) error {
	a := fyneapp.NewWithID(appID)
	gui.New(a, newController(logger, cfg), logger, cfg.WatchInput).ShowAndRun()
	return nil
}
