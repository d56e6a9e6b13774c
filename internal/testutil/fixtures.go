package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DetectionFixture represents a test fixture pairing input text with the
// language it is expected to be detected as.
type DetectionFixture struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Text             string  `json:"text"`
	ExpectedLanguage string  `json:"expected_language"`
	MinConfidence    float64 `json:"min_confidence"`
}

// SampleText pairs a language code with a short sample sentence in that
// language, long enough for the n-gram detector to separate it reliably
// from the other loaded languages.
type SampleText struct {
	Lang string
	Text string
}

// SampleTexts returns one representative sentence per language shipped in
// data/profiles, for use by the bench command and by detector tests that
// want realistic (rather than synthetic repeated-character) input.
func SampleTexts() []SampleText {
	return []SampleText{
		{Lang: "en", Text: "The quick brown fox jumps over the lazy dog near the riverbank."},
		{Lang: "fr", Text: "Le vif renard brun sautait par-dessus le chien paresseux près de la rivière."},
		{Lang: "ja", Text: "速い茶色の狐が川岸の近くで怠け者の犬を飛び越えました。"},
		{Lang: "zh-cn", Text: "敏捷的棕色狐狸跳过了河岸附近那只懒惰的狗。"},
	}
}

// LoadFixture loads a detection fixture from JSON file.
func LoadFixture(t *testing.T, name string) DetectionFixture {
	t.Helper()

	fixturesDir := GetFixturesDir(t)
	fixturePath := filepath.Join(fixturesDir, name+".json")

	data, err := os.ReadFile(fixturePath) //nolint:gosec // G304: Reading test fixture files with controlled paths
	require.NoError(t, err, "Failed to read fixture file: %s", fixturePath)

	var fixture DetectionFixture
	err = json.Unmarshal(data, &fixture)
	require.NoError(t, err, "Failed to unmarshal fixture JSON")

	return fixture
}

// SaveFixture saves a detection fixture to JSON file.
func SaveFixture(t *testing.T, fixture DetectionFixture) {
	t.Helper()

	fixturesDir := GetFixturesDir(t)
	require.NoError(t, EnsureDir(fixturesDir))

	fixturePath := filepath.Join(fixturesDir, fixture.Name+".json")

	data, err := json.MarshalIndent(fixture, "", "  ")
	require.NoError(t, err, "Failed to marshal fixture to JSON")

	err = os.WriteFile(fixturePath, data, 0o600)
	require.NoError(t, err, "Failed to write fixture file: %s", fixturePath)
}

// CreateSampleFixtures creates one detection fixture per entry returned by
// SampleTexts, saved under the fixtures directory.
func CreateSampleFixtures(t *testing.T) {
	t.Helper()

	for _, s := range SampleTexts() {
		SaveFixture(t, DetectionFixture{
			Name:             "sample_" + s.Lang,
			Description:      "representative sentence in " + s.Lang,
			Text:             s.Text,
			ExpectedLanguage: s.Lang,
			MinConfidence:    0.5,
		})
	}
}
