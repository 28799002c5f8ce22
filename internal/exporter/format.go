package exporter

import (
	"strconv"

	"slidepulse/pkg/contracts/domain"
)

// postHeaders is the column layout shared by the CSV and Excel exporters.
var postHeaders = []string{
	"Post Index", "Source File", "Slide", "Title", "Type", "Confidence",
	"Reach", "Engagement", "Likes", "Shares", "Comments", "Saved", "Views",
	"Link",
}

// formatMetric renders an optional metric; absent metrics stay blank
// rather than becoming a misleading zero.
func formatMetric(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// postRow renders one record in postHeaders order.
func postRow(record domain.PostRecord) []string {
	return []string{
		strconv.Itoa(record.PostIndex),
		record.SourceFile,
		strconv.Itoa(record.SlideNumber),
		record.Title,
		string(record.Type),
		strconv.FormatFloat(record.Confidence, 'f', 2, 64),
		formatMetric(record.Reach),
		formatMetric(record.Engagement),
		formatMetric(record.Likes),
		formatMetric(record.Shares),
		formatMetric(record.Comments),
		formatMetric(record.Saved),
		formatMetric(record.Views),
		record.Link,
	}
}
