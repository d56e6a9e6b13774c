package pipeline

import (
	"errors"
	"testing"

	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []Result {
	return []Result{
		{ID: "a", Languages: []langdetect.LanguageProbability{{Lang: "en", Prob: 0.9}}},
		{ID: "b", Err: errors.New("no recognized n-grams")},
		{ID: "c", Languages: []langdetect.LanguageProbability{{Lang: "fr", Prob: 0.6}}},
	}
}

func TestToJSON_SingleResult(t *testing.T) {
	out, err := ToJSON(sampleResults()[0])
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "a"`)
	assert.Contains(t, out, `"language": "en"`)
}

func TestToJSONMany_IncludesErrors(t *testing.T) {
	out, err := ToJSONMany(sampleResults())
	require.NoError(t, err)
	assert.Contains(t, out, `"error": "no recognized n-grams"`)
}

func TestToPlainText(t *testing.T) {
	out := ToPlainText(sampleResults())
	assert.Contains(t, out, "a\ten\t0.9000")
	assert.Contains(t, out, "b\terror: no recognized n-grams")
}

func TestToCSV_HasHeaderAndRows(t *testing.T) {
	out, err := ToCSV(sampleResults())
	require.NoError(t, err)
	lines := splitLines(out)
	assert.Equal(t, "id,language,confidence,error", lines[0])
	assert.Contains(t, out, "a,en,0.9000,")
	assert.Contains(t, out, "b,unknown,,no recognized n-grams")
}

func TestSortByConfidenceDescending_ErrorsSortLast(t *testing.T) {
	results := sampleResults()
	SortByConfidenceDescending(results)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "c", results[1].ID)
	assert.Equal(t, "b", results[2].ID)
}

func TestValidate_RejectsEmptyID(t *testing.T) {
	err := Validate(Result{})
	assert.Error(t, err)
}

func TestValidate_RejectsOutOfRangeProbability(t *testing.T) {
	err := Validate(Result{ID: "x", Languages: []langdetect.LanguageProbability{{Lang: "en", Prob: 1.5}}})
	assert.Error(t, err)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
