package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// resultDTO is the JSON-friendly projection of a Result: time.Duration and
// error values don't round-trip through encoding/json the way callers
// expect, so detect/batch/server responses marshal this instead.
type resultDTO struct {
	ID         string  `json:"id"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence,omitempty"`
	Languages  []struct {
		Lang string  `json:"lang"`
		Prob float64 `json:"prob"`
	} `json:"languages,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

func toDTO(r Result) resultDTO {
	dto := resultDTO{ID: r.ID, Language: r.Top(), DurationMs: r.Duration.Milliseconds()}
	if r.Err != nil {
		dto.Error = r.Err.Error()
		return dto
	}
	if len(r.Languages) > 0 {
		dto.Confidence = r.Languages[0].Prob
	}
	dto.Languages = make([]struct {
		Lang string  `json:"lang"`
		Prob float64 `json:"prob"`
	}, len(r.Languages))
	for i, lp := range r.Languages {
		dto.Languages[i].Lang = lp.Lang
		dto.Languages[i].Prob = lp.Prob
	}
	return dto
}

// ToJSON serializes a single Result to pretty JSON.
func ToJSON(res Result) (string, error) {
	b, err := json.MarshalIndent(toDTO(res), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToJSONMany serializes multiple Results to pretty JSON, preserving order.
func ToJSONMany(results []Result) (string, error) {
	dtos := make([]resultDTO, len(results))
	for i, r := range results {
		dtos[i] = toDTO(r)
	}
	b, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToPlainText renders one line per result: "id\tlanguage\tconfidence".
func ToPlainText(results []Result) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			lines = append(lines, fmt.Sprintf("%s\terror: %v", r.ID, r.Err))
			continue
		}
		conf := 0.0
		if len(r.Languages) > 0 {
			conf = r.Languages[0].Prob
		}
		lines = append(lines, fmt.Sprintf("%s\t%s\t%.4f", r.ID, r.Top(), conf))
	}
	return strings.Join(lines, "\n")
}

// ToCSV exports results as CSV with a header row: id,language,confidence,error.
func ToCSV(results []Result) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "language", "confidence", "error"}); err != nil {
		return "", err
	}
	for _, r := range results {
		conf := ""
		if len(r.Languages) > 0 {
			conf = fmt.Sprintf("%.4f", r.Languages[0].Prob)
		}
		errStr := ""
		if r.Err != nil {
			errStr = r.Err.Error()
		}
		if err := w.Write([]string{r.ID, r.Top(), conf, errStr}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SortByConfidenceDescending sorts results by top-language confidence,
// highest first; results with errors sort last.
func SortByConfidenceDescending(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Err != nil {
			return false
		}
		if results[j].Err != nil {
			return true
		}
		ci, cj := 0.0, 0.0
		if len(results[i].Languages) > 0 {
			ci = results[i].Languages[0].Prob
		}
		if len(results[j].Languages) > 0 {
			cj = results[j].Languages[0].Prob
		}
		return ci > cj
	})
}

// Validate performs simple consistency checks on a Result.
func Validate(r Result) error {
	if r.ID == "" {
		return errors.New("result has empty id")
	}
	for i, lp := range r.Languages {
		if lp.Prob < 0 || lp.Prob > 1 {
			return fmt.Errorf("language %d (%s) has out-of-range probability %f", i, lp.Lang, lp.Prob)
		}
	}
	return nil
}
