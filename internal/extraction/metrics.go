package extraction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slidepulse_files_processed_total",
		Help: "Presentation files extracted successfully.",
	})
	filesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slidepulse_files_failed_total",
		Help: "Presentation files that could not be read or decoded.",
	})
	postsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slidepulse_posts_extracted_total",
		Help: "Accepted post records produced across all batches.",
	})
)
