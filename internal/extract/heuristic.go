package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/pagescan/internal/model"
)

// Heuristic thresholds. Empirically tuned; tunable, not load-bearing.
const (
	benefitMinLen     = 15
	benefitMaxLen     = 150
	testimonialMinLen = 20
	testimonialMaxLen = 300
	ctaMinLen         = 3
	ctaMaxLen         = 100
	headingBenefitLen = 20
	productNameMaxLen = 80

	categoryVoteThreshold = 2

	premiumPriceFloor = 1000.0
	highPriceFloor    = 200.0
	mediumPriceFloor  = 50.0
)

// boilerplateTerms disqualify a span from being treated as sales copy.
var boilerplateTerms = []string{"cookie", "privacy", "terms", "copyright", "javascript", "disclaimer"}

// transactionalTerms disqualify a quoted span from being a testimonial.
var transactionalTerms = []string{"click", "order", "buy", "checkout", "cart", "add to"}

var (
	headingRe   = regexp.MustCompile(`(?m)^#{1,3}\s+(.+?)\s*$`)
	boldRe      = regexp.MustCompile(`\*\*([^*\n]{3,120})\*\*`)
	titleSplitRe = regexp.MustCompile(`\s+[|\-–—·»]\s+`)

	benefitRe = regexp.MustCompile(`(?i)\b(get|achieve|improve|eliminate|discover|unlock|boost|transform|learn|build|lose|gain|save|enjoy)\b[^.!?\n]*`)

	audienceIntroRe = regexp.MustCompile(`(?i)\b(?:designed for|perfect for|ideal for|made for|built for|created for)\s+([^.!?\n]{5,80})`)
	audienceIfRe    = regexp.MustCompile(`(?i)\b(?:if you(?:'re| are)|are you)\s+([^.!?\n]{5,80})`)
	audienceDemoRe  = regexp.MustCompile(`(?i)\b((?:men|women|moms|dads|adults|seniors|students|professionals|entrepreneurs|parents)(?:\s+(?:over|under|aged)\s+\d{1,2})?)\b`)

	doubleQuoteRe = regexp.MustCompile(fmt.Sprintf(`"([^"\n]{%d,%d})"`, testimonialMinLen, testimonialMaxLen))
	singleQuoteRe = regexp.MustCompile(fmt.Sprintf(`(?m)(?:^|\s)'([^'\n]{%d,%d})'`, testimonialMinLen, testimonialMaxLen))
	blockquoteRe  = regexp.MustCompile(fmt.Sprintf(`(?m)^>\s*(.{%d,%d})\s*$`, testimonialMinLen, testimonialMaxLen))

	currencyRe    = regexp.MustCompile(`[$€£]\s?\d{1,6}(?:[.,]\d{1,3})?`)
	priceLineRe   = regexp.MustCompile(`(?im)^.{0,80}?(?:[$€£]\s?\d|(?:price|cost|only|just|today|save|discount|% off)\b.{0,40}\d).{0,80}$`)
	currencyAmtRe = regexp.MustCompile(`[$€£]\s?(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)`)

	listItemRe = regexp.MustCompile(`(?m)^\s*(?:[-*•✓✔+]|\d+\.)\s+(.{10,200}?)\s*$`)
	benefitKeywordRe = regexp.MustCompile(`(?i)\b(benefit|help[s]? you|improve|boost|increase|reduce|support[s]?|includes|feature|proven|faster|easier)\b`)

	ctaPhraseRe = regexp.MustCompile(`(?i)\b(buy now|order now|order today|get started|get instant access|get access now|sign up(?: free| now)?|start (?:your )?(?:free )?trial|add to cart|shop now|claim your[^.!\n]{0,40}|try it (?:free|now)|download now|join now|subscribe now|book a (?:call|demo)|get your[^.!\n]{0,40})\b`)
	ctaButtonRe = regexp.MustCompile(`\[([^\]\n]{3,100})\]\((?:[^)\n]*)\)`)
	ctaVerbRe   = regexp.MustCompile(`(?i)^(buy|order|get|start|join|claim|grab|try|download|sign|shop|book|subscribe|reserve|unlock)\b`)

	guaranteeDayRe  = regexp.MustCompile(`(?i)\b\d{1,3}[- ]day[s]?[^.!?\n]{0,60}\bguarantee\b`)
	guaranteeRe     = regexp.MustCompile(`(?i)\b(?:money[- ]back guarantee|risk[- ]free|satisfaction guaranteed?|(?:full|100%)\s+refund|no questions asked)[^.!?\n]{0,40}`)

	socialCountRe   = regexp.MustCompile(`(?i)\b(?:over|more than|join(?:ed)?(?: by)?|trusted by)?\s*[\d,.]{2,12}\+?\s*(?:happy |satisfied )?(?:customers|users|members|students|clients|subscribers|people)\b`)
	socialPercentRe = regexp.MustCompile(`(?i)\b\d{1,3}%\s+(?:of\s+(?:our\s+)?(?:customers|users|clients)|satisfaction|satisfied|success)\b[^.!?\n]{0,40}`)
	socialReviewRe  = regexp.MustCompile(`(?i)\b[\d,.]{1,10}\+?\s*(?:5[- ]star\s+)?(?:reviews|ratings)\b|\b[45](?:\.\d)?\s*(?:out of 5|/5|star[s]?)\b`)

	timeframeRe = regexp.MustCompile(`(?i)\b(?:in|within|after|just)\s+\d{1,3}\s+(?:minute|hour|day|week|month)s?\b|\b\d{1,3}[- ]day[s]?\b`)

	markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	inlineNoiseRe  = regexp.MustCompile("[#*_`>]+")
)

// categoryKeywords drives keyword-frequency voting for the product category.
var categoryKeywords = map[model.Category][]string{
	model.CategorySoftware: {"software", "app", "platform", "saas", "dashboard", "login", "api", "integration", "subscription", "cloud"},
	model.CategoryPhysical: {"shipping", "delivery", "bottle", "device", "in stock", "warehouse", "ships", "packaging", "material"},
	model.CategoryService:  {"consultation", "appointment", "booking", "agency", "done for you", "our team", "session", "strategy call"},
	model.CategoryInfo:     {"course", "ebook", "guide", "training", "program", "masterclass", "module", "lesson", "blueprint", "video series"},
	model.CategoryHealth:   {"health", "supplement", "weight", "energy", "immune", "pain", "sleep", "metabolism", "doctor", "clinical"},
}

// categoryIndustry supplies the free-text industry label per category.
var categoryIndustry = map[model.Category]string{
	model.CategorySoftware: "Software & Technology",
	model.CategoryPhysical: "Consumer Products",
	model.CategoryService:  "Professional Services",
	model.CategoryInfo:     "Education & Information Products",
	model.CategoryHealth:   "Health & Wellness",
}

// audienceDefaults maps domain keywords to a fallback audience when no
// audience-introducing pattern matches.
var audienceDefaults = []struct {
	keywords []string
	audience string
}{
	{[]string{"dental", "teeth", "oral"}, "adults concerned about oral and dental health"},
	{[]string{"weight", "fat", "diet", "metabolism"}, "people looking to lose weight"},
	{[]string{"business", "marketing", "sales", "agency"}, "business owners and marketers"},
	{[]string{"invest", "trading", "crypto", "stock"}, "retail investors"},
	{[]string{"skin", "wrinkle", "beauty"}, "adults interested in skincare"},
	{[]string{"fitness", "muscle", "workout"}, "fitness enthusiasts"},
}

// heuristicExtract runs the regex battery over the page body. Always
// returns a schema-complete record; never fails. Sub-extractions are
// independent, best-effort, and order-stable.
func heuristicExtract(page *model.RawPage) *model.MarketingData {
	data := model.NewMarketingData()
	if page == nil || page.IsEmpty() || page.Markdown == model.PlaceholderMarkdown {
		return data
	}

	body := page.Body()
	lower := strings.ToLower(body)

	data.ProductName = extractProductName(page.Metadata.Title, body)
	data.Headlines = extractHeadlines(body)
	data.MainBenefit = extractMainBenefit(body, data.Headlines)
	data.TargetAudience = extractAudience(body, lower)
	data.Testimonials = extractTestimonials(body)
	data.Pricing = extractPricing(body)
	data.Benefits = extractBenefits(body)
	data.CTAs = extractCTAs(body)
	data.Guarantees = extractGuarantees(body)
	data.SocialProof = extractSocialProof(body)
	data.Timeframes = extractTimeframes(body)
	data.Category, data.Industry = classifyCategory(lower)
	data.PricePoint = classifyPricePoint(body, lower)

	data.Normalize()
	return data
}

// extractProductName tries, in priority order: page title with trailing
// " | site name"-style suffix stripped, the first heading, the first bold
// span, then the first content-bearing line.
func extractProductName(title, body string) string {
	if name := cleanTitle(title); name != "" {
		return name
	}
	if m := headingRe.FindStringSubmatch(body); m != nil {
		if name := cleanSpan(m[1]); len(name) >= 3 && len(name) <= productNameMaxLen {
			return name
		}
	}
	if m := boldRe.FindStringSubmatch(body); m != nil {
		if name := cleanSpan(m[1]); len(name) >= 3 && len(name) <= productNameMaxLen {
			return name
		}
	}
	for _, line := range strings.Split(body, "\n") {
		line = cleanSpan(line)
		if len(line) >= 3 && len(line) <= productNameMaxLen && !isBoilerplate(line) {
			return line
		}
	}
	return model.UnknownProduct
}

func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	parts := titleSplitRe.Split(title, -1)
	if len(parts) > 0 && len(strings.TrimSpace(parts[0])) >= 3 {
		title = strings.TrimSpace(parts[0])
	}
	if len(title) > productNameMaxLen {
		title = strings.TrimSpace(title[:productNameMaxLen])
	}
	return title
}

func extractHeadlines(body string) []string {
	var out []string
	for _, m := range headingRe.FindAllStringSubmatch(body, -1) {
		if h := cleanSpan(m[1]); h != "" && !isBoilerplate(h) {
			out = append(out, h)
		}
	}
	return out
}

// extractMainBenefit scans for benefit-trigger verb phrases, falls back to
// the first sufficiently long heading, then the first qualifying sentence.
func extractMainBenefit(body string, headlines []string) string {
	for _, m := range benefitRe.FindAllString(body, 20) {
		span := cleanSpan(m)
		if len(span) >= benefitMinLen && len(span) <= benefitMaxLen && !isBoilerplate(span) {
			return span
		}
	}
	for _, h := range headlines {
		if len(h) >= headingBenefitLen && !isBoilerplate(h) {
			return h
		}
	}
	for _, s := range strings.FieldsFunc(body, func(r rune) bool { return r == '.' || r == '!' || r == '?' || r == '\n' }) {
		s = cleanSpan(s)
		if len(s) >= headingBenefitLen && len(s) <= benefitMaxLen && !isBoilerplate(s) {
			return s
		}
	}
	return model.MissingText
}

func extractAudience(body, lower string) string {
	if m := audienceIntroRe.FindStringSubmatch(body); m != nil {
		return cleanSpan(m[1])
	}
	if m := audienceIfRe.FindStringSubmatch(body); m != nil {
		return cleanSpan(m[1])
	}
	if m := audienceDemoRe.FindStringSubmatch(body); m != nil {
		return strings.ToLower(cleanSpan(m[1]))
	}
	for _, d := range audienceDefaults {
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				return d.audience
			}
		}
	}
	return model.MissingText
}

func extractTestimonials(body string) []string {
	var out []string
	collect := func(matches [][]string) {
		for _, m := range matches {
			span := cleanSpan(m[1])
			if len(span) < testimonialMinLen || len(span) > testimonialMaxLen {
				continue
			}
			if containsAny(strings.ToLower(span), transactionalTerms) {
				continue
			}
			out = append(out, span)
		}
	}
	collect(doubleQuoteRe.FindAllStringSubmatch(body, -1))
	collect(singleQuoteRe.FindAllStringSubmatch(body, -1))
	collect(blockquoteRe.FindAllStringSubmatch(body, -1))
	return out
}

func extractPricing(body string) []string {
	var out []string
	for _, m := range priceLineRe.FindAllString(body, -1) {
		if span := cleanSpan(m); span != "" && !isBoilerplate(span) {
			out = append(out, span)
		}
	}
	// Bare currency mentions not already captured by a price line.
	for _, m := range currencyRe.FindAllString(body, -1) {
		out = append(out, strings.TrimSpace(m))
	}
	return out
}

func extractBenefits(body string) []string {
	var out []string
	for _, m := range listItemRe.FindAllStringSubmatch(body, -1) {
		span := cleanSpan(m[1])
		if span == "" || isBoilerplate(span) {
			continue
		}
		if ctaPhraseRe.MatchString(span) {
			continue
		}
		out = append(out, span)
	}
	for _, line := range strings.Split(body, "\n") {
		span := cleanSpan(line)
		if len(span) < benefitMinLen || len(span) > benefitMaxLen+50 {
			continue
		}
		if !benefitKeywordRe.MatchString(span) || isBoilerplate(span) || ctaPhraseRe.MatchString(span) {
			continue
		}
		out = append(out, span)
	}
	return out
}

func extractCTAs(body string) []string {
	var out []string
	for _, m := range ctaPhraseRe.FindAllString(body, -1) {
		span := cleanSpan(m)
		if len(span) >= ctaMinLen && len(span) <= ctaMaxLen {
			out = append(out, span)
		}
	}
	// Markdown links styled as buttons.
	for _, m := range ctaButtonRe.FindAllStringSubmatch(body, -1) {
		span := cleanSpan(m[1])
		if len(span) >= ctaMinLen && len(span) <= ctaMaxLen && ctaVerbRe.MatchString(span) {
			out = append(out, span)
		}
	}
	return out
}

func extractGuarantees(body string) []string {
	var out []string
	for _, m := range guaranteeDayRe.FindAllString(body, -1) {
		out = append(out, cleanSpan(m))
	}
	for _, m := range guaranteeRe.FindAllString(body, -1) {
		out = append(out, cleanSpan(m))
	}
	return out
}

func extractSocialProof(body string) []string {
	var out []string
	for _, re := range []*regexp.Regexp{socialCountRe, socialPercentRe, socialReviewRe} {
		for _, m := range re.FindAllString(body, -1) {
			span := cleanSpan(m)
			// Count matchers require at least one digit to avoid bare
			// "customers" hits from the optional prefix.
			if span == "" || !strings.ContainsAny(span, "0123456789") {
				continue
			}
			out = append(out, span)
		}
	}
	return out
}

func extractTimeframes(body string) []string {
	var out []string
	for _, m := range timeframeRe.FindAllString(body, -1) {
		out = append(out, cleanSpan(m))
	}
	return out
}

// classifyCategory votes category keywords against the page text; a
// category needs at least categoryVoteThreshold hits to win.
func classifyCategory(lower string) (model.Category, string) {
	best := model.DefaultCategory
	bestVotes := 0
	for _, cat := range []model.Category{model.CategoryHealth, model.CategorySoftware, model.CategoryInfo, model.CategoryService, model.CategoryPhysical} {
		votes := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				votes++
			}
		}
		if votes > bestVotes {
			best = cat
			bestVotes = votes
		}
	}
	if bestVotes < categoryVoteThreshold {
		return model.DefaultCategory, "General"
	}
	return best, categoryIndustry[best]
}

// classifyPricePoint derives the price point from the maximum detected
// currency amount, falling back to tier-signalling keywords.
func classifyPricePoint(body, lower string) model.PricePoint {
	maxAmount := 0.0
	for _, m := range currencyAmtRe.FindAllStringSubmatch(body, -1) {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil && v > maxAmount {
			maxAmount = v
		}
	}
	if maxAmount > 0 {
		switch {
		case maxAmount > premiumPriceFloor:
			return model.PricePremium
		case maxAmount > highPriceFloor:
			return model.PriceHigh
		case maxAmount > mediumPriceFloor:
			return model.PriceMedium
		default:
			return model.PriceLow
		}
	}
	if strings.Contains(lower, "premium") || strings.Contains(lower, "exclusive") || strings.Contains(lower, "luxury") {
		return model.PricePremium
	}
	if strings.Contains(lower, "professional") || strings.Contains(lower, "advanced") || strings.Contains(lower, "enterprise") {
		return model.PriceHigh
	}
	return model.DefaultPricePoint
}

// cleanSpan strips markdown syntax and collapses whitespace.
func cleanSpan(s string) string {
	s = markdownLinkRe.ReplaceAllString(s, "$1")
	s = inlineNoiseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

func isBoilerplate(s string) bool {
	return containsAny(strings.ToLower(s), boilerplateTerms)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
