package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/pagescan/internal/model"
)

var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?\s*([a-z0-9_\-]+)`)

// domSelectors maps each evidence list to the CSS selectors mined for it.
var domSelectors = struct {
	headlines    string
	testimonials string
	pricing      string
	benefits     string
	ctas         string
	guarantees   string
}{
	headlines:    "h1, h2, h3",
	testimonials: `blockquote, .testimonial, [class*="testimonial"], [class*="review-text"]`,
	pricing:      `[class*="price"], [class*="pricing"], .amount`,
	benefits:     "ul li, ol li",
	ctas:         `button, a.btn, a.button, [class*="cta"], input[type="submit"]`,
	guarantees:   `[class*="guarantee"], [class*="refund"]`,
}

// domExtract runs DOM-selector extraction over raw HTML. Used as the merge
// pass when the primary strategy's result is incomplete. Best-effort: any
// parse failure yields an empty record.
func domExtract(html string) *model.MarketingData {
	data := model.NewMarketingData()
	html = decodeCharset(html)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return data
	}

	collect := func(selector string, min, max int) []string {
		var out []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(strings.Join(strings.Fields(sel.Text()), " "))
			if len(text) >= min && len(text) <= max && !isBoilerplate(text) {
				out = append(out, text)
			}
		})
		return out
	}

	if title := doc.Find("title").First().Text(); title != "" {
		if name := cleanTitle(title); name != "" {
			data.ProductName = name
		}
	}

	data.Headlines = collect(domSelectors.headlines, 3, 200)
	data.Testimonials = collect(domSelectors.testimonials, testimonialMinLen, testimonialMaxLen)
	data.Pricing = collect(domSelectors.pricing, 1, 120)
	data.Benefits = collect(domSelectors.benefits, benefitMinLen, benefitMaxLen+50)
	data.CTAs = collect(domSelectors.ctas, ctaMinLen, ctaMaxLen)
	data.Guarantees = collect(domSelectors.guarantees, 5, 200)

	data.Normalize()
	return data
}

// decodeCharset converts HTML declared in a non-UTF-8 charset to UTF-8 so
// the DOM parser and length bands behave. Unknown charsets pass through.
func decodeCharset(html string) string {
	m := metaCharsetRe.FindStringSubmatch(html)
	if m == nil {
		return html
	}
	name := strings.ToLower(m[1])
	if name == "utf-8" || name == "utf8" {
		return html
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return html
	}
	decoded, err := enc.NewDecoder().String(html)
	if err != nil {
		return html
	}
	return decoded
}

// mergeDOM unions the DOM extraction's lists into the primary result,
// de-duplicated and re-capped, and fills the product name when the primary
// only has the placeholder.
func mergeDOM(primary, dom *model.MarketingData) {
	if primary.ProductName == model.UnknownProduct && dom.ProductName != model.UnknownProduct {
		primary.ProductName = dom.ProductName
	}
	primary.Headlines = model.CleanList(append(primary.Headlines, dom.Headlines...), model.MaxHeadlines)
	primary.Testimonials = model.CleanList(append(primary.Testimonials, dom.Testimonials...), model.MaxTestimonials)
	primary.Pricing = model.CleanList(append(primary.Pricing, dom.Pricing...), model.MaxPricing)
	primary.Benefits = model.CleanList(append(primary.Benefits, dom.Benefits...), model.MaxBenefits)
	primary.CTAs = model.CleanList(append(primary.CTAs, dom.CTAs...), model.MaxCTAs)
	primary.Guarantees = model.CleanList(append(primary.Guarantees, dom.Guarantees...), model.MaxGuarantees)
}
