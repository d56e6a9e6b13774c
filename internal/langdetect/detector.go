package langdetect

import (
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/MeKo-Tech/langdetect/internal/mempool"
)

// Tunables from spec.md section 4.4, carried over unchanged from the
// reference Monte-Carlo detection loop.
const (
	// AlphaDefault is the smoothing parameter used when a Detector is built
	// without an explicit alpha.
	AlphaDefault = 0.5

	alphaWidth           = 0.05
	iterationLimit       = 1000
	probThreshold        = 0.1
	convThreshold        = 0.99999
	baseFreq             = 10000.0
	nTrial               = 7
	DefaultMaxTextLength = 10000

	// UnknownLanguage is returned by Detect when no language clears
	// probThreshold.
	UnknownLanguage = "unknown"
)

type detectorState int

const (
	stateFresh detectorState = iota
	stateAppended
	stateDetected
)

// TraceFunc receives one human-readable line per sampled convergence check,
// replacing the reference implementation's direct stdout writes (spec.md
// section 9 design notes).
type TraceFunc func(line string)

// LanguageProbability pairs a language code with its estimated probability.
type LanguageProbability struct {
	Lang string
	Prob float64
}

// Detector accumulates text and estimates its language via the Monte-Carlo
// Bayesian procedure in spec.md section 4.4. A Detector is built from a
// Factory and is not safe for concurrent use by multiple goroutines — build
// one Detector per concurrent caller, sharing the underlying
// ProbabilityIndex (spec.md section 5).
type Detector struct {
	index         *ProbabilityIndex
	alpha         float64
	maxTextLength int
	priorMap      []float64
	seed          *int64
	rng           *rand.Rand
	trace         TraceFunc

	buf           []rune
	state         detectorState
	langprob      []float64
	lastNGramHits int
}

// NGramCount returns how many recognized n-grams were sampled from during
// the most recent detection, or 0 if Probabilities/Detect has not run yet.
// Exposed for callers (e.g. the pipeline's Profiler) that track throughput
// independent of the cached probability result.
func (d *Detector) NGramCount() int {
	return d.lastNGramHits
}

// SetAlpha overrides the smoothing parameter.
func (d *Detector) SetAlpha(alpha float64) {
	d.alpha = alpha
}

// SetMaxTextLength overrides the accumulated-text cap. Text appended beyond
// this many characters is discarded.
func (d *Detector) SetMaxTextLength(n int) {
	if n > 0 {
		d.maxTextLength = n
	}
}

// SetSeed fixes the RNG used for this Detector's Monte-Carlo sampling,
// making Detect deterministic for a given buffer and parameter set.
func (d *Detector) SetSeed(seed int64) {
	d.seed = &seed
	d.rng = nil
}

// SetTrace installs a callback invoked once per convergence check during
// detection, and once more with the final averaged result. Passing nil
// disables tracing.
func (d *Detector) SetTrace(fn TraceFunc) {
	d.trace = fn
}

// SetPriorMap installs a prior distribution over languages, keyed by
// language code. Every value must be non-negative and at least one must be
// positive; the map need not cover every loaded language, and entries for
// unknown languages are ignored. Per spec.md section 4.4, the map is
// normalized to sum to one before use.
func (d *Detector) SetPriorMap(priors map[string]float64) error {
	if d.index == nil {
		return newCantDetectError("no language profiles loaded")
	}
	langs := d.index.languages
	prob := make([]float64, len(langs))
	sum := 0.0
	for i, lang := range langs {
		v, ok := priors[lang]
		if !ok {
			continue
		}
		if v < 0 {
			return newInitParamError("prior probability must not be negative: " + lang)
		}
		prob[i] = v
		sum += v
	}
	if sum <= 0 {
		return newInitParamError("prior map has no positive entries")
	}
	for i := range prob {
		prob[i] /= sum
	}
	d.priorMap = prob
	return nil
}

// Append feeds text into the accumulation buffer: URLs and e-mail addresses
// are stripped, Vietnamese diacritic sequences are composed, and a space
// that directly follows another space is dropped (tabs and newlines are
// kept as they are), per spec.md section 4.1. Text
// beyond the configured max length is silently dropped. Appending clears
// any cached detection result.
func (d *Detector) Append(text string) error {
	text = stripURLsAndEmails(text)
	text = normalizeVietnamese(text)
	d.appendNormalized(text)
	d.state = stateAppended
	d.langprob = nil
	return nil
}

// AppendReader drains r and appends its contents as if passed to Append.
func (d *Detector) AppendReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Append(string(data))
}

func (d *Detector) appendNormalized(text string) {
	if d.maxTextLength <= 0 {
		d.maxTextLength = DefaultMaxTextLength
	}
	prevSpace := len(d.buf) > 0 && d.buf[len(d.buf)-1] == ' '
	for _, c := range text {
		if len(d.buf) >= d.maxTextLength {
			break
		}
		if c == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		d.buf = append(d.buf, c)
	}
}

// Clear discards the accumulated buffer and any cached result, returning
// the Detector to its fresh state.
func (d *Detector) Clear() {
	d.buf = d.buf[:0]
	d.state = stateFresh
	d.langprob = nil
}

// Detect returns the single most probable language, or UnknownLanguage if
// no language's estimated probability clears probThreshold. It returns an
// error only when detection cannot proceed at all (no profiles loaded, or
// no recognized n-grams in the accumulated text).
func (d *Detector) Detect() (string, error) {
	probs, err := d.Probabilities()
	if err != nil {
		return "", err
	}
	if len(probs) > 0 {
		return probs[0].Lang, nil
	}
	return UnknownLanguage, nil
}

// Probabilities returns every language whose estimated probability clears
// probThreshold, sorted most probable first. The underlying Monte-Carlo
// estimate runs at most once per accumulated buffer; repeated calls reuse
// the cached result until the next Append or Clear.
func (d *Detector) Probabilities() ([]LanguageProbability, error) {
	if d.langprob == nil {
		prob, err := d.detectBlock()
		if err != nil {
			return nil, err
		}
		d.langprob = prob
		d.state = stateDetected
	}
	return d.sortProbability(d.langprob), nil
}

func (d *Detector) detectBlock() ([]float64, error) {
	if d.index == nil {
		return nil, newCantDetectError("no language profiles loaded")
	}

	cleaned := cleanLatin(d.buf)
	ngrams := d.extractNGrams(cleaned)
	d.lastNGramHits = len(ngrams)
	if len(ngrams) == 0 {
		return nil, newCantDetectError("no recognized n-grams in accumulated text")
	}

	rng := d.rngSource()
	langsize := d.index.languageCount()
	langprob := make([]float64, langsize)

	for t := 0; t < nTrial; t++ {
		prob := mempool.GetProbVector(langsize)
		d.initProbability(prob)
		alpha := d.alpha + rng.NormFloat64()*alphaWidth

		for i := 0; ; i++ {
			word := ngrams[rng.Intn(len(ngrams))]
			updateLangProb(prob, d.index.table[word], alpha)
			if i%5 == 0 {
				maxp := normalizeProb(prob)
				if d.trace != nil {
					d.trace(formatTrialTrace(t, i, prob, d.index.languages))
				}
				if maxp > convThreshold || i >= iterationLimit {
					break
				}
			}
		}

		for j := range langprob {
			langprob[j] += prob[j] / nTrial
		}
		mempool.PutProbVector(prob)
	}

	if d.trace != nil {
		d.trace(formatResultTrace(langprob, d.index.languages))
	}

	return langprob, nil
}

func (d *Detector) initProbability(prob []float64) {
	langsize := len(prob)
	if d.priorMap != nil {
		copy(prob, d.priorMap)
		return
	}
	uniform := 1.0 / float64(langsize)
	for i := range prob {
		prob[i] = uniform
	}
}

func (d *Detector) extractNGrams(buf []rune) []string {
	var result []string
	ext := newNGramExtractor()
	for _, c := range buf {
		ext.addChar(c)
		for n := 1; n <= 3; n++ {
			word, ok := ext.get(n)
			if !ok {
				continue
			}
			if _, exists := d.index.table[word]; exists {
				result = append(result, word)
			}
		}
	}
	return result
}

func (d *Detector) sortProbability(prob []float64) []LanguageProbability {
	langs := d.index.languages
	result := make([]LanguageProbability, 0, len(prob))
	for i, p := range prob {
		if p > probThreshold {
			result = append(result, LanguageProbability{Lang: langs[i], Prob: p})
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Prob > result[j].Prob })
	return result
}

func (d *Detector) rngSource() *rand.Rand {
	if d.rng == nil {
		seed := time.Now().UnixNano()
		if d.seed != nil {
			seed = *d.seed
		}
		d.rng = rand.New(rand.NewSource(seed))
	}
	return d.rng
}

// updateLangProb applies one n-gram observation to prob in place, per
// spec.md section 4.4. vec is nil-safe: an n-gram absent from the index is
// a no-op, though extractNGrams never produces one.
func updateLangProb(prob []float64, vec []float64, alpha float64) {
	if vec == nil {
		return
	}
	weight := alpha / baseFreq
	for i, p := range vec {
		prob[i] *= weight + p
	}
}

// normalizeProb rescales prob to sum to one and returns the resulting
// maximum entry, used as the convergence signal.
func normalizeProb(prob []float64) float64 {
	sum := 0.0
	for _, p := range prob {
		sum += p
	}
	maxp := 0.0
	for i := range prob {
		if sum > 0 {
			prob[i] /= sum
		}
		if prob[i] > maxp {
			maxp = prob[i]
		}
	}
	return maxp
}

// latinExtendedAdditionalStart and latinExtendedAdditionalEnd bound the
// Unicode block (U+1E00..U+1EFF) that cleanLatin excludes from the
// non-Latin count: precomposed Vietnamese and other Latin diacritics live
// here and must not be treated as foreign script.
const (
	latinExtendedAdditionalStart = 0x1E00
	latinExtendedAdditionalEnd   = 0x1EFF
	nonLatinThreshold            = 0x300
)

// cleanLatin implements the mixed-script cleanup in spec.md section 4.1:
// when Latin letters are a small minority of the buffer, they are most
// likely incidental (URLs, product names) rather than signal, so they are
// dropped before n-gram extraction.
func cleanLatin(buf []rune) []rune {
	var latinCount, nonLatinCount int
	for _, c := range buf {
		switch {
		case c <= 'z' && c >= 'A':
			latinCount++
		case c >= nonLatinThreshold && !(c >= latinExtendedAdditionalStart && c <= latinExtendedAdditionalEnd):
			nonLatinCount++
		}
	}
	if latinCount*2 >= nonLatinCount {
		return buf
	}
	cleaned := make([]rune, 0, len(buf))
	for _, c := range buf {
		if c > 'z' || c < 'A' {
			cleaned = append(cleaned, c)
		}
	}
	return cleaned
}
