package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/config"
	"github.com/ecoskun/newsdeck/internal/session"
	"github.com/ecoskun/newsdeck/internal/view"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show extraction statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := session.Open(config.SessionPath())
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer store.Close()

		client := api.New(cfg.ServerURL, cfg.Timeout(), store)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()

		stats, err := client.OverviewStats(ctx)
		if err != nil {
			return fmt.Errorf("%s", api.UserMessage(err))
		}

		latest := "none"
		if stats.LatestArticleDate != nil && !stats.LatestArticleDate.IsZero() {
			latest = view.FormatDate(stats.LatestArticleDate.Time)
		}

		fmt.Printf("Server: %s\n", cfg.ServerURL)
		fmt.Printf("Articles: %d\n", stats.TotalArticles)
		fmt.Printf("Last 30 days: %d\n", stats.RecentArticles)
		fmt.Printf("With images: %d\n", stats.ArticlesWithImages)
		fmt.Printf("Latest addition: %s\n", latest)
		return nil
	},
}
