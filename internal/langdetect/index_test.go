package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfiles() []LanguageProfile {
	return []LanguageProfile{
		{
			Name:   "en",
			Freq:   map[string]int{"a": 10, "th": 5, "the": 2},
			NWords: [3]int{100, 50, 20},
		},
		{
			Name:   "fr",
			Freq:   map[string]int{"a": 4, "le": 6, "les": 3},
			NWords: [3]int{80, 40, 15},
		},
	}
}

func TestBuildIndex_Languages(t *testing.T) {
	idx, err := buildIndex(testProfiles())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, idx.Languages())
}

func TestBuildIndex_ComputesProbabilities(t *testing.T) {
	idx, err := buildIndex(testProfiles())
	require.NoError(t, err)

	vec, ok := idx.table["a"]
	require.True(t, ok)
	assert.InDelta(t, 10.0/100.0, vec[0], 1e-9)
	assert.InDelta(t, 4.0/80.0, vec[1], 1e-9)

	vec, ok = idx.table["th"]
	require.True(t, ok)
	assert.InDelta(t, 5.0/50.0, vec[0], 1e-9)
	assert.Zero(t, vec[1])
}

func TestBuildIndex_RejectsDuplicates(t *testing.T) {
	profiles := append(testProfiles(), LanguageProfile{Name: "en"})
	_, err := buildIndex(profiles)
	assert.Error(t, err)
}

func TestFactory_LoadAndClear(t *testing.T) {
	f := NewFactory()
	assert.Nil(t, f.LoadedLanguages())

	require.NoError(t, f.LoadProfiles(testProfiles()))
	assert.Equal(t, []string{"en", "fr"}, f.LoadedLanguages())

	d, err := f.NewDetector()
	require.NoError(t, err)
	assert.NotNil(t, d)

	f.ClearProfiles()
	assert.Nil(t, f.LoadedLanguages())

	// NewDetector itself still succeeds once profiles are cleared; the
	// spec's failure-mode table defers the CantDetectError to Detect()/
	// Probabilities() time, not construction.
	d2, err := f.NewDetector()
	require.NoError(t, err)
	require.NoError(t, d2.Append("some text"))
	_, err = d2.Detect()
	assert.Error(t, err)
}

func TestFactory_NewDetectorWithAlpha(t *testing.T) {
	f := NewFactory()
	require.NoError(t, f.LoadProfiles(testProfiles()))

	d, err := f.NewDetectorWithAlpha(0.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, d.alpha, 1e-9)
}
