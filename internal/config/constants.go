package config

// DefaultConfigFile is the YAML config looked up in the working directory
// when SLIDEPULSE_CONFIG is unset.
const DefaultConfigFile = "slidepulse.yaml"

// Presentation file extensions accepted by input discovery.
var PresentationExtensions = []string{".pptx"}

// Report file names written by the exporters.
const (
	PostsCSVName    = "posts.csv"
	PostsWorkbook   = "posts.xlsx"
	FailuresCSVName = "failures.csv"
)
