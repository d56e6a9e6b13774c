package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSampleFixtures(t *testing.T) {
	CreateSampleFixtures(t)

	fixturesDir := GetFixturesDir(t)
	assert.True(t, DirExists(fixturesDir))

	for _, s := range SampleTexts() {
		path := fixturesDir + "/sample_" + s.Lang + ".json"
		assert.True(t, FileExists(path), path)
	}
}

func TestLoadFixture(t *testing.T) {
	CreateSampleFixtures(t)

	fixture := LoadFixture(t, "sample_en")
	assert.Equal(t, "sample_en", fixture.Name)
	assert.Equal(t, "en", fixture.ExpectedLanguage)
	assert.NotEmpty(t, fixture.Text)
}

func TestSaveAndLoadFixture(t *testing.T) {
	fixture := DetectionFixture{
		Name:             "test_fixture",
		Description:      "Test fixture for unit testing",
		Text:             "This is a short test sentence.",
		ExpectedLanguage: "en",
		MinConfidence:    0.5,
	}

	SaveFixture(t, fixture)

	loadedFixture := LoadFixture(t, "test_fixture")
	assert.Equal(t, fixture.Name, loadedFixture.Name)
	assert.Equal(t, fixture.Description, loadedFixture.Description)
	assert.Equal(t, fixture.ExpectedLanguage, loadedFixture.ExpectedLanguage)
}

func TestSampleTexts(t *testing.T) {
	samples := SampleTexts()
	require.NotEmpty(t, samples)

	seen := make(map[string]bool)
	for _, s := range samples {
		assert.NotEmpty(t, s.Lang)
		assert.NotEmpty(t, s.Text)
		seen[s.Lang] = true
	}
	assert.True(t, seen["en"])
}
