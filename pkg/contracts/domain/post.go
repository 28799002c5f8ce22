package domain

// PostType classifies the kind of social-media content a record describes.
type PostType string

const (
	PostTypeVideo     PostType = "video"
	PostTypePost      PostType = "post"
	PostTypeAd        PostType = "ad"
	PostTypeCommunity PostType = "community"
)

// MetricName identifies one numeric performance field on a PostRecord.
type MetricName string

const (
	MetricReach      MetricName = "reach"
	MetricEngagement MetricName = "engagement"
	MetricLikes      MetricName = "likes"
	MetricShares     MetricName = "shares"
	MetricComments   MetricName = "comments"
	MetricSaved      MetricName = "saved"
	MetricViews      MetricName = "views"
)

// MetricPriority is the fixed order in which an unlabeled standalone number
// is assigned to the first still-empty metric field.
var MetricPriority = []MetricName{
	MetricReach,
	MetricEngagement,
	MetricLikes,
	MetricShares,
	MetricComments,
	MetricSaved,
}

// PostRecord is one extracted social-media post with its performance
// metrics. Metric fields are pointers so that "not present in the deck" is
// distinguishable from a legitimate zero value.
type PostRecord struct {
	SlideNumber int      `json:"slide_number"`
	PostIndex   int      `json:"post_index"`
	Title       string   `json:"title,omitempty"`
	Type        PostType `json:"type"`
	Confidence  float64  `json:"confidence"`

	Reach      *int64 `json:"reach,omitempty"`
	Engagement *int64 `json:"engagement,omitempty"`
	Likes      *int64 `json:"likes,omitempty"`
	Shares     *int64 `json:"shares,omitempty"`
	Comments   *int64 `json:"comments,omitempty"`
	Saved      *int64 `json:"saved,omitempty"`
	Views      *int64 `json:"views,omitempty"`

	SourceFile string `json:"source_file,omitempty"`
	Link       string `json:"link,omitempty"`
}

// Metric returns the value of the named metric field and whether it is set.
func (p *PostRecord) Metric(name MetricName) (int64, bool) {
	v := p.metricField(name)
	if v == nil || *v == nil {
		return 0, false
	}
	return **v, true
}

// SetMetric assigns the named metric field. Unknown names are ignored.
func (p *PostRecord) SetMetric(name MetricName, value int64) {
	if v := p.metricField(name); v != nil {
		*v = &value
	}
}

// MetricCount reports how many metric fields are set.
func (p *PostRecord) MetricCount() int {
	n := 0
	for _, name := range []MetricName{
		MetricReach, MetricEngagement, MetricLikes, MetricShares,
		MetricComments, MetricSaved, MetricViews,
	} {
		if _, ok := p.Metric(name); ok {
			n++
		}
	}
	return n
}

func (p *PostRecord) metricField(name MetricName) **int64 {
	switch name {
	case MetricReach:
		return &p.Reach
	case MetricEngagement:
		return &p.Engagement
	case MetricLikes:
		return &p.Likes
	case MetricShares:
		return &p.Shares
	case MetricComments:
		return &p.Comments
	case MetricSaved:
		return &p.Saved
	case MetricViews:
		return &p.Views
	}
	return nil
}
