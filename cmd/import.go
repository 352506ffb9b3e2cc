package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/config"
	"github.com/ecoskun/newsdeck/internal/feedscan"
	"github.com/ecoskun/newsdeck/internal/session"
)

var (
	flagImportFeed   string
	flagImportLimit  int
	flagImportMaxAge string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Submit every link in an RSS/Atom feed for extraction",
	Long: `Fetch a feed, collect its item links, and submit each one to the
extraction endpoint. Failures on individual links are reported and do
not stop the rest of the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := feedscan.Options{Limit: flagImportLimit}
		if flagImportMaxAge != "" {
			d, err := parseAge(flagImportMaxAge)
			if err != nil {
				return fmt.Errorf("invalid --max-age value: %w", err)
			}
			opts.MaxAge = d
		}

		store, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer store.Close()

		client := api.New(cfg.ServerURL, cfg.Timeout(), store)

		fmt.Printf("Fetching feed %s...\n", flagImportFeed)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		candidates, err := feedscan.Scan(ctx, flagImportFeed, opts)
		cancel()
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("Nothing to import.")
			return nil
		}

		imported := 0
		for _, c := range candidates {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			_, err := client.ExtractArticle(ctx, c.Link)
			cancel()
			if err != nil {
				fmt.Printf("  [fail] %s: %s\n", c.Link, api.UserMessage(err))
				continue
			}
			fmt.Printf("  [ok]   %s\n", c.Link)
			imported++
		}

		fmt.Printf("Imported %d of %d link(s).\n", imported, len(candidates))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&flagImportFeed, "feed", "", "feed URL to import from (required)")
	importCmd.Flags().IntVar(&flagImportLimit, "limit", 10, "maximum links to submit (0 = no limit)")
	importCmd.Flags().StringVar(&flagImportMaxAge, "max-age", "", "skip items older than this (e.g., 7d, 24h)")
	importCmd.MarkFlagRequired("feed")
}

// parseAge accepts Go durations plus a day suffix (e.g. 7d).
func parseAge(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
