package langdetect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableProfiles returns two profiles whose n-gram distributions barely
// overlap, so Monte-Carlo detection converges reliably in a test without
// depending on a large real corpus.
func separableProfiles() []LanguageProfile {
	return []LanguageProfile{
		{
			Name: "xx",
			Freq: map[string]int{
				"x": 90, "xx": 80, "xxx": 70, " x": 10, "x ": 10,
			},
			NWords: [3]int{90, 100, 70},
		},
		{
			Name: "yy",
			Freq: map[string]int{
				"y": 90, "yy": 80, "yyy": 70, " y": 10, "y ": 10,
			},
			NWords: [3]int{90, 100, 70},
		},
	}
}

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	f := NewFactory()
	require.NoError(t, f.LoadProfiles(separableProfiles()))
	return f
}

func TestDetector_DetectsDominantLanguage(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetSeed(42)

	require.NoError(t, d.Append(strings.Repeat("xxx ", 50)))

	lang, err := d.Detect()
	require.NoError(t, err)
	assert.Equal(t, "xx", lang)
}

func TestDetector_DetectsOtherLanguage(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetSeed(7)

	require.NoError(t, d.Append(strings.Repeat("yyy ", 50)))

	lang, err := d.Detect()
	require.NoError(t, err)
	assert.Equal(t, "yy", lang)
}

func TestDetector_ProbabilitiesSortedDescending(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetSeed(1)

	require.NoError(t, d.Append(strings.Repeat("xxx ", 50)))

	probs, err := d.Probabilities()
	require.NoError(t, err)
	require.NotEmpty(t, probs)
	for i := 1; i < len(probs); i++ {
		assert.GreaterOrEqual(t, probs[i-1].Prob, probs[i].Prob)
	}
}

func TestDetector_ResultIsCachedUntilAppendOrClear(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetSeed(3)
	require.NoError(t, d.Append(strings.Repeat("xxx ", 50)))

	first, err := d.Probabilities()
	require.NoError(t, err)
	second, err := d.Probabilities()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	d.Clear()
	assert.Equal(t, stateFresh, d.state)
	assert.Empty(t, d.buf)
}

func TestDetector_CantDetectWithoutRecognizedNGrams(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)

	require.NoError(t, d.Append("123 456 789"))
	_, err = d.Detect()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCantDetect)
}

func TestDetector_SetPriorMap_RejectsNegative(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)

	err = d.SetPriorMap(map[string]float64{"xx": -0.1, "yy": 1.0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitParam)
}

func TestDetector_SetPriorMap_RejectsAllZero(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)

	err = d.SetPriorMap(map[string]float64{"xx": 0, "yy": 0})
	require.Error(t, err)
}

func TestDetector_SetPriorMap_Normalizes(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)

	require.NoError(t, d.SetPriorMap(map[string]float64{"xx": 3, "yy": 1}))
	assert.InDelta(t, 0.75, d.priorMap[0], 1e-9)
	assert.InDelta(t, 0.25, d.priorMap[1], 1e-9)
}

func TestDetector_MaxTextLengthTruncates(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetMaxTextLength(5)

	require.NoError(t, d.Append("xxxxxxxxxxxxxxxxxxxx"))
	assert.Len(t, d.buf, 5)
}

func TestDetector_AppendReader(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetSeed(9)

	require.NoError(t, d.AppendReader(strings.NewReader(strings.Repeat("xxx ", 50))))
	lang, err := d.Detect()
	require.NoError(t, err)
	assert.Equal(t, "xx", lang)
}

func TestDetector_CollapsesConsecutiveSpaces(t *testing.T) {
	f := newTestFactory(t)
	d, err := f.NewDetector()
	require.NoError(t, err)

	require.NoError(t, d.Append("x     x"))
	for i, c := range d.buf {
		if c == ' ' && i > 0 {
			assert.NotEqual(t, rune(' '), d.buf[i-1])
		}
	}
}

func TestDetector_UnknownWhenBelowThreshold(t *testing.T) {
	// With enough equally-likely languages, none can clear probThreshold
	// (0.1) once probability mass is split roughly evenly among them.
	profiles := make([]LanguageProfile, 0, 12)
	for i := 0; i < 12; i++ {
		profiles = append(profiles, LanguageProfile{
			Name:   string(rune('a' + i)),
			Freq:   map[string]int{"x": 1},
			NWords: [3]int{1, 0, 0},
		})
	}
	f := NewFactory()
	require.NoError(t, f.LoadProfiles(profiles))

	d, err := f.NewDetector()
	require.NoError(t, err)
	d.SetSeed(11)
	require.NoError(t, d.Append("x x x x x x"))

	lang, err := d.Detect()
	require.NoError(t, err)
	assert.Equal(t, UnknownLanguage, lang)
}
