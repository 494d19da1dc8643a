package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		shown.Firecrawl.Key = redact(shown.Firecrawl.Key)
		shown.Apify.Key = redact(shown.Apify.Key)
		shown.Anthropic.Key = redact(shown.Anthropic.Key)
		shown.Perplexity.Key = redact(shown.Perplexity.Key)

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(shown); err != nil {
			return eris.Wrap(err, "encode config")
		}
		return enc.Close()
	},
}

func redact(key string) string {
	if key == "" {
		return ""
	}
	return "[set]"
}

func init() {
	rootCmd.AddCommand(configCmd)
}
