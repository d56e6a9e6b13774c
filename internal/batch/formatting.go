package batch

import (
	"github.com/MeKo-Tech/langdetect/internal/pipeline"
)

// Format renders batch detection results in the given output format:
// "json", "csv", or plain text (the default).
func Format(results []pipeline.Result, format string) (string, error) {
	switch format {
	case "json":
		return pipeline.ToJSONMany(results)
	case "csv":
		return pipeline.ToCSV(results)
	default:
		return pipeline.ToPlainText(results), nil
	}
}
