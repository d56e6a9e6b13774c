package pipeline

import (
	"time"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
)

// Job is one unit of detection work: a caller-supplied ID (a file path, a
// request ID, a batch index) paired with the text to detect.
type Job struct {
	ID   string
	Text string
}

// Result is the outcome of running one Job through a Detector. Err is set
// instead of Languages when detection fails (e.g. the text carried no
// recognized n-grams); the two are never both meaningfully populated.
type Result struct {
	ID        string
	Languages []langdetect.LanguageProbability
	Err       error
	Duration  time.Duration
}

// Top returns the highest-probability language, or UnknownLanguage if the
// result carries no ranked languages.
func (r Result) Top() string {
	if len(r.Languages) == 0 {
		return langdetect.UnknownLanguage
	}
	return r.Languages[0].Lang
}
