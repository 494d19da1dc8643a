// Package classify routes URLs to a scraping back-end based on fixed
// affiliate-network and page-builder platform lists. Pure string matching,
// no I/O; the orchestrator still falls back when the recommendation proves
// wrong.
package classify

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pagescan/internal/model"
)

// ErrInvalidURL is returned for input that does not parse as an absolute
// http(s) URL.
var ErrInvalidURL = eris.New("classify: invalid url")

// Classification is the routing decision for one URL.
type Classification struct {
	IsAffiliate        bool          `json:"is_affiliate"`
	IsComplexPlatform  bool          `json:"is_complex_platform"`
	Platform           string        `json:"platform"`
	RecommendedBackend model.Backend `json:"recommended_backend"`
	Reasoning          string        `json:"reasoning"`
}

// affiliateDomains are hosts of affiliate networks and link cloakers whose
// landing pages typically sit behind redirects and need headless rendering.
var affiliateDomains = []string{
	"clickbank.net",
	"hop.clickbank.net",
	"digistore24.com",
	"jvzoo.com",
	"warriorplus.com",
	"buygoods.com",
	"clkbank.com",
	"shareasale.com",
	"cj.com",
	"awin1.com",
	"redirectingat.com",
	"linksynergy.com",
}

// affiliateParams are query-string markers of affiliate tracking links.
var affiliateParams = []string{
	"hopid",
	"affiliate",
	"aff_id",
	"affid",
	"cbpage",
	"hop=",
	"vendor",
	"tid=",
}

// complexPlatforms maps page-builder and e-commerce hosts to a platform
// label. These render most content client-side, so the deep back-end is
// recommended.
var complexPlatforms = map[string]string{
	"clickfunnels.com":  "clickfunnels",
	"myclickfunnels":    "clickfunnels",
	"leadpages.net":     "leadpages",
	"lpages.co":         "leadpages",
	"unbounce.com":      "unbounce",
	"instapage.com":     "instapage",
	"kajabi.com":        "kajabi",
	"mykajabi.com":      "kajabi",
	"samcart.com":       "samcart",
	"kartra.com":        "kartra",
	"shopify.com":       "shopify",
	"myshopify.com":     "shopify",
	"squarespace.com":   "squarespace",
	"wixsite.com":       "wix",
	"webflow.io":        "webflow",
	"systeme.io":        "systeme",
	"gumroad.com":       "gumroad",
	"teachable.com":     "teachable",
	"thinkific.com":     "thinkific",
	"podia.com":         "podia",
	"convertri.com":     "convertri",
	"groovepages.com":   "groovepages",
	"builderall.com":    "builderall",
}

// Classify inspects a URL and recommends a scrape back-end. Deterministic,
// no failure mode beyond a malformed URL.
func Classify(rawURL string) (*Classification, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, eris.Wrapf(ErrInvalidURL, "%q", rawURL)
	}

	host := strings.ToLower(u.Host)
	query := strings.ToLower(u.RawQuery)

	c := &Classification{
		Platform:           "generic",
		RecommendedBackend: model.BackendFast,
		Reasoning:          "no affiliate or platform markers; fast render is sufficient",
	}

	for _, d := range affiliateDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			c.IsAffiliate = true
			c.Platform = d
			break
		}
	}
	if !c.IsAffiliate {
		for _, p := range affiliateParams {
			if strings.Contains(query, p) {
				c.IsAffiliate = true
				break
			}
		}
	}

	for marker, platform := range complexPlatforms {
		if strings.Contains(host, marker) {
			c.IsComplexPlatform = true
			c.Platform = platform
			break
		}
	}

	switch {
	case c.IsAffiliate:
		c.RecommendedBackend = model.BackendDeep
		c.Reasoning = "affiliate network link; redirects and cloaking need headless rendering"
	case c.IsComplexPlatform:
		c.RecommendedBackend = model.BackendDeep
		c.Reasoning = "page-builder platform " + c.Platform + " renders client-side"
	}

	return c, nil
}
