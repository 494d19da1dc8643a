package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pagescan",
	Short: "Sales-page scraping and marketing-content extraction pipeline",
	Long:  "Scrapes marketing/sales pages via remote back-ends with retry and fallback, extracts persuasion elements into a canonical schema, and scores the result for completeness and confidence.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
