package extraction

import (
	"regexp"
	"strings"

	"slidepulse/pkg/contracts/domain"
)

// KeywordSet holds the title keywords for one post type and the evidence
// weight each hit contributes.
type KeywordSet struct {
	Keywords []string `yaml:"keywords"`
	Weight   int      `yaml:"weight"`
}

// DetectorConfig is the injectable keyword/weight table for type
// detection. Zero-value fields fall back to the built-in defaults, so a
// config file only needs to override what differs.
type DetectorConfig struct {
	Keywords map[domain.PostType]KeywordSet `yaml:"keywords"`
}

// DefaultDetectorConfig returns the built-in keyword table.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Keywords: map[domain.PostType]KeywordSet{
			domain.PostTypeVideo: {
				Keywords: []string{"video", "reel", "tiktok", "views", "watch", "clip"},
				Weight:   2,
			},
			domain.PostTypePost: {
				Keywords: []string{"post", "wallpost", "photo", "album", "caption", "status"},
				Weight:   2,
			},
			domain.PostTypeAd: {
				Keywords: []string{"ad", "ads", "campaign", "boost", "sponsored", "promotion"},
				Weight:   2,
			},
			domain.PostTypeCommunity: {
				Keywords: []string{"community", "group", "hive", "member", "forum"},
				Weight:   2,
			},
		},
	}
}

// typePriority breaks evidence ties. The source of this heuristic left the
// tie-break to hash iteration order; an explicit priority list replaces
// that so results are reproducible.
var typePriority = []domain.PostType{
	domain.PostTypeVideo,
	domain.PostTypePost,
	domain.PostTypeAd,
	domain.PostTypeCommunity,
}

// strongTokens override generic keyword evidence with a +5 hit.
var strongTokens = map[string]domain.PostType{
	"tiktok":   domain.PostTypeVideo,
	"wallpost": domain.PostTypePost,
	"hive":     domain.PostTypeCommunity,
}

var (
	viewsEvidencePattern = regexp.MustCompile(`(?i)\bviews\s*:`)
	reachEvidencePattern = regexp.MustCompile(`(?i)\breach\s*:`)
	adEvidencePattern    = regexp.MustCompile(`(?i)\b(cpc|cpm|ctr|roas)\b`)
)

const (
	keywordWeightDefault = 2
	metricEvidenceWeight = 3
	strongTokenWeight    = 5
)

// Detector assigns a post type from weighted keyword evidence.
type Detector struct {
	keywords map[domain.PostType]KeywordSet
}

// NewDetector builds a detector from cfg, falling back to defaults for
// anything unset.
func NewDetector(cfg DetectorConfig) *Detector {
	keywords := DefaultDetectorConfig().Keywords
	for postType, set := range cfg.Keywords {
		if len(set.Keywords) == 0 {
			continue
		}
		if set.Weight == 0 {
			set.Weight = keywordWeightDefault
		}
		keywords[postType] = set
	}
	return &Detector{keywords: keywords}
}

// Detect scores each candidate type against the title and raw metric text
// and returns the winner with a confidence in [0, 1]. With no evidence at
// all the type defaults to "post" at confidence 0.
func (d *Detector) Detect(title, metricsText string) (domain.PostType, float64) {
	titleLower := strings.ToLower(title)

	scores := make(map[domain.PostType]int, len(typePriority))

	for postType, set := range d.keywords {
		for _, kw := range set.Keywords {
			if strings.Contains(titleLower, strings.ToLower(kw)) {
				scores[postType] += set.Weight
			}
		}
	}

	if viewsEvidencePattern.MatchString(metricsText) {
		scores[domain.PostTypeVideo] += metricEvidenceWeight
	}
	if reachEvidencePattern.MatchString(metricsText) {
		scores[domain.PostTypePost] += metricEvidenceWeight
	}
	if adEvidencePattern.MatchString(metricsText) {
		scores[domain.PostTypeAd] += metricEvidenceWeight
	}

	for token, postType := range strongTokens {
		if strings.Contains(titleLower, token) {
			scores[postType] += strongTokenWeight
		}
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return domain.PostTypePost, 0
	}

	winner := typePriority[0]
	best := -1
	for _, postType := range typePriority {
		if scores[postType] > best {
			winner = postType
			best = scores[postType]
		}
	}

	return winner, float64(best) / float64(total)
}
