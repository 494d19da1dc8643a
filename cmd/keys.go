package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/pagescan/internal/creds"
)

// probeTimeout bounds the lightweight connectivity checks in `keys test`.
const probeTimeout = 5 * time.Second

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show which back-end credentials are configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := credsFromConfig()
		for _, p := range []creds.Provider{
			creds.ProviderFirecrawl,
			creds.ProviderApify,
			creds.ProviderAnthropic,
			creds.ProviderPerplexity,
		} {
			state := "missing"
			if cs.Has(p) {
				state = "configured"
			}
			fmt.Printf("%-12s %s\n", p, state)
		}
		return nil
	},
}

var keysTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Probe connectivity to each configured back-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := credsFromConfig()
		probes := map[creds.Provider]string{
			creds.ProviderFirecrawl:  cfg.Firecrawl.BaseURL,
			creds.ProviderApify:      cfg.Apify.BaseURL,
			creds.ProviderPerplexity: cfg.Perplexity.BaseURL,
			creds.ProviderAnthropic:  "https://api.anthropic.com",
		}
		for _, p := range []creds.Provider{
			creds.ProviderFirecrawl,
			creds.ProviderApify,
			creds.ProviderAnthropic,
			creds.ProviderPerplexity,
		} {
			if !cs.Has(p) {
				fmt.Printf("%-12s skipped (no credential)\n", p)
				continue
			}
			if err := probe(cmd.Context(), probes[p]); err != nil {
				fmt.Printf("%-12s unreachable: %v\n", p, err)
				continue
			}
			fmt.Printf("%-12s reachable\n", p)
		}
		return nil
	},
}

// probe checks that the back-end host answers at all; it does not validate
// the credential.
func probe(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func init() {
	keysCmd.AddCommand(keysTestCmd)
	rootCmd.AddCommand(keysCmd)
}
