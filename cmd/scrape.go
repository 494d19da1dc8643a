package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/model"
)

var scrapeBackend string

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape and score a single sales page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		backend := model.ParseBackend(scrapeBackend)

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Service.Run(ctx, args[0], backend)
		if err != nil {
			return eris.Wrap(err, "scrape")
		}

		if result.Success {
			zap.L().Info("scrape complete",
				zap.String("url", args[0]),
				zap.String("backend", result.Data.BackendUsed),
				zap.Float64("quality", result.Data.Quality.QualityScore),
			)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeBackend, "backend", "auto", "back-end selection: auto, fast, or deep")
	rootCmd.AddCommand(scrapeCmd)
}
