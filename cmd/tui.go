package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/config"
	"github.com/ecoskun/newsdeck/internal/logging"
	"github.com/ecoskun/newsdeck/internal/session"
	"github.com/ecoskun/newsdeck/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; diagnostics go to a log file.
	log, err := logging.Open(config.LogPath(), cfg.LogLevel)
	if err != nil {
		log = logging.Discard()
	}
	defer log.Sync()

	store, err := session.Open(config.SessionPath())
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer store.Close()

	client := api.New(cfg.ServerURL, cfg.Timeout(), store)

	return tui.Run(tui.RunOpts{
		Cfg:    cfg,
		Client: client,
		Store:  store,
		Log:    log,
	})
}
