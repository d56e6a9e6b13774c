package langdetect

import (
	"fmt"
	"strings"
)

// formatTrialTrace renders one convergence checkpoint within a single
// Monte-Carlo trial, grounded on the reference implementation's verbose
// mode (spec.md section 9 design notes: a callback replaces the original's
// direct stdout writes).
func formatTrialTrace(trial, step int, prob []float64, langs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "trial=%d step=%d", trial, step)
	for i, lang := range langs {
		if prob[i] <= probThreshold {
			continue
		}
		fmt.Fprintf(&b, " %s=%.4f", lang, prob[i])
	}
	return b.String()
}

// formatResultTrace renders the trial-averaged probability vector once
// detectBlock has finished all trials.
func formatResultTrace(prob []float64, langs []string) string {
	var b strings.Builder
	b.WriteString("result")
	for i, lang := range langs {
		if prob[i] <= probThreshold {
			continue
		}
		fmt.Fprintf(&b, " %s=%.4f", lang, prob[i])
	}
	return b.String()
}
