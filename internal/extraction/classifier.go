package extraction

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"slidepulse/pkg/contracts/domain"
)

// defaultHeaderKeywords mark slide chrome. A fragment containing two or
// more of these is title/footer text, not post content.
var defaultHeaderKeywords = []string{
	"performance", "report", "insights", "target", "results", "schedule",
	"kpi", "page", "social", "media", "value", "mart",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// labeledMetricOrder is the scan order for label-prefixed metric patterns;
// the first label that matches a fragment wins.
var labeledMetricOrder = []domain.MetricName{
	domain.MetricReach,
	domain.MetricEngagement,
	domain.MetricLikes,
	domain.MetricShares,
	domain.MetricComments,
	domain.MetricSaved,
}

var (
	linkPattern             = regexp.MustCompile(`https?://\S+`)
	standaloneNumberPattern = regexp.MustCompile(`^\d[\d,]*$`)
)

// Classifier decides per spatial column whether it is a genuine post, and
// if so extracts its title and metrics.
type Classifier struct {
	headerKeywords map[string]struct{}
	labeled        map[domain.MetricName]*regexp.Regexp
	logger         *slog.Logger
}

// NewClassifier builds a classifier. headerKeywords may be nil to use the
// built-in set; passing an explicit set lets tests and deck-specific
// configs substitute their own chrome vocabulary.
func NewClassifier(logger *slog.Logger, headerKeywords []string) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if headerKeywords == nil {
		headerKeywords = defaultHeaderKeywords
	}

	keywordSet := make(map[string]struct{}, len(headerKeywords))
	for _, kw := range headerKeywords {
		keywordSet[strings.ToLower(kw)] = struct{}{}
	}

	labeled := make(map[domain.MetricName]*regexp.Regexp, len(labeledMetricOrder))
	for _, name := range labeledMetricOrder {
		labeled[name] = regexp.MustCompile(`(?i)\b` + string(name) + `[:\s]*([\d,]+)`)
	}

	return &Classifier{
		headerKeywords: keywordSet,
		labeled:        labeled,
		logger:         logger.With(slog.String("component", "extraction.classifier")),
	}
}

// ClassifyColumn scans a column's fragments top to bottom and returns the
// post record it describes. ok is false when the acceptance heuristic
// rejects the column; such columns produce no record at all.
//
// A fragment carrying a bracketed title or a parsable metric is never
// treated as chrome, so short metric lines like "Reach: 1,200" survive the
// word-count check that filters slide titles.
func (c *Classifier) ClassifyColumn(column domain.Column) (domain.PostRecord, bool) {
	var record domain.PostRecord
	var bracketedTitle, fallbackTitle string
	metricsFound := 0

	for _, item := range column.Items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}

		if isBracketedTitle(text) {
			// A dated bracket title is definitive and overwrites any
			// earlier candidate. A metric riding on the same fragment
			// still counts.
			bracketedTitle = text
			if c.extractMetric(text, &record) {
				metricsFound++
			}
			continue
		}

		if c.extractMetric(text, &record) {
			metricsFound++
			continue
		}

		if record.Link == "" {
			if link := linkPattern.FindString(text); link != "" {
				record.Link = link
				continue
			}
		}

		if c.isHeader(text) {
			continue
		}

		if fallbackTitle == "" && len(text) >= 10 && len(text) <= 200 {
			fallbackTitle = text
		}
	}

	title := bracketedTitle
	if title == "" {
		title = fallbackTitle
	}

	accepted := bracketedTitle != "" ||
		metricsFound >= 2 ||
		(title != "" && metricsFound >= 1)
	if !accepted {
		return domain.PostRecord{}, false
	}

	record.Title = title
	record.Type = domain.PostTypePost
	return record, true
}

// isHeader applies the chrome heuristics: very short text, header keyword
// density, or shouting case.
func (c *Classifier) isHeader(text string) bool {
	if len(strings.Fields(text)) <= 3 {
		return true
	}

	lower := strings.ToLower(text)
	hits := 0
	for kw := range c.headerKeywords {
		if strings.Contains(lower, kw) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}

	letters, upperLetters, upperChars := 0, 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upperLetters++
			}
		}
		if unicode.IsUpper(r) {
			upperChars++
		}
	}
	if letters > 0 && upperLetters == letters {
		return true
	}
	if len(text) > 10 && float64(upperChars) > 0.8*float64(len(text)) {
		return true
	}

	return false
}

// extractMetric attempts metric extraction on one fragment. Labeled
// patterns are tried first in fixed order; failing that, a fragment that
// is entirely one number is assigned to the first still-empty field in
// priority order. Unparsable numerics are silently no matches.
func (c *Classifier) extractMetric(text string, record *domain.PostRecord) bool {
	for _, name := range labeledMetricOrder {
		m := c.labeled[name].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err != nil {
			continue
		}
		record.SetMetric(name, value)
		return true
	}

	trimmed := strings.TrimSpace(text)
	if !standaloneNumberPattern.MatchString(trimmed) {
		return false
	}
	value, err := strconv.ParseInt(strings.ReplaceAll(trimmed, ",", ""), 10, 64)
	if err != nil {
		return false
	}
	for _, name := range domain.MetricPriority {
		if _, ok := record.Metric(name); !ok {
			record.SetMetric(name, value)
			return true
		}
	}
	return false
}

func isBracketedTitle(text string) bool {
	return strings.Contains(text, "[") && strings.Contains(text, "]") && len(text) < 100
}
