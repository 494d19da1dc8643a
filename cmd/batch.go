package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/input"
	"github.com/sells-group/pagescan/internal/model"
)

var (
	batchFile    string
	batchBackend string
	batchOutput  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scrape a list of URLs sequentially",
	Long:  "Reads URLs from a txt, csv, or xlsx file and processes them one at a time with fixed pacing between requests.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		urls, err := input.ReadURLs(batchFile)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			zap.L().Warn("batch: no urls in input file", zap.String("file", batchFile))
			return nil
		}

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		zap.L().Info("batch: starting", zap.Int("urls", len(urls)))

		results, err := env.Service.RunBatch(ctx, urls, model.ParseBackend(batchBackend))
		if err != nil {
			return err
		}

		succeeded := 0
		for _, r := range results {
			if r.Success {
				succeeded++
			}
		}
		zap.L().Info("batch: complete",
			zap.Int("total", len(results)),
			zap.Int("succeeded", succeeded),
			zap.Int("failed", len(results)-succeeded),
		)

		out := os.Stdout
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "input file with URLs (txt, csv, or xlsx)")
	batchCmd.Flags().StringVar(&batchBackend, "backend", "auto", "back-end selection: auto, fast, or deep")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write results JSON to file instead of stdout")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}
