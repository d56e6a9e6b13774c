package langdetect

import "sync"

// ProbabilityIndex is the immutable lookup from n-gram to per-language
// probability vector, per spec.md section 3. Once built it is never
// mutated; many Detectors may hold a reference to the same index and run
// concurrently, per spec.md section 5.
type ProbabilityIndex struct {
	languages []string
	table     map[string][]float64
}

// Languages returns the ordered language list in load order. The index of
// a language in this slice is its canonical position in every probability
// vector this index produces.
func (idx *ProbabilityIndex) Languages() []string {
	out := make([]string, len(idx.languages))
	copy(out, idx.languages)
	return out
}

func (idx *ProbabilityIndex) languageCount() int { return len(idx.languages) }

// buildIndex implements the ProfileLoader described in spec.md section 4.3:
// it iterates the profile list in load order, assigning each profile a
// dense column in every n-gram's probability vector.
func buildIndex(profiles []LanguageProfile) (*ProbabilityIndex, error) {
	if err := validateProfiles(profiles); err != nil {
		return nil, err
	}

	langsize := len(profiles)
	idx := &ProbabilityIndex{
		languages: make([]string, 0, langsize),
		table:     make(map[string][]float64),
	}

	for i, profile := range profiles {
		idx.languages = append(idx.languages, profile.Name)
		for ngram, count := range profile.Freq {
			n := len([]rune(ngram))
			if n < 1 || n > 3 {
				continue
			}
			vec, ok := idx.table[ngram]
			if !ok {
				vec = make([]float64, langsize)
				idx.table[ngram] = vec
			}
			denom := profile.NWords[n-1]
			if denom > 0 {
				vec[i] = float64(count) / float64(denom)
			}
		}
	}

	return idx, nil
}

// Factory is the explicit, non-singleton replacement for the original
// implementation's process-wide mutable static state (spec.md section 9
// design notes): it owns one ProbabilityIndex and a factory-level RNG seed,
// and is passed around by applications instead of being read from package
// globals. LoadProfiles/ClearProfiles mutate the held index and must not
// run concurrently with detection (spec.md section 5); NewDetector and
// friends only ever read a consistent snapshot of it.
type Factory struct {
	mu    sync.RWMutex
	index *ProbabilityIndex
	seed  *int64
}

// NewFactory returns an empty Factory. Detectors can be constructed before
// LoadProfiles is called, but they fail with a CantDetectError on their
// first Detect/Probabilities call.
func NewFactory() *Factory {
	return &Factory{}
}

// LoadProfiles builds a new ProbabilityIndex from profiles and replaces any
// previously loaded index. Detectors already constructed from this
// Factory keep using the index snapshot they were built with.
func (f *Factory) LoadProfiles(profiles []LanguageProfile) error {
	idx, err := buildIndex(profiles)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.index = idx
	f.mu.Unlock()
	return nil
}

// ClearProfiles discards the loaded index. Detectors already constructed
// from this Factory keep the index snapshot they were built with and are
// unaffected; Detectors built after this call hold no index and fail with
// a CantDetectError on their first Detect/Probabilities call until
// LoadProfiles is called again.
func (f *Factory) ClearProfiles() {
	f.mu.Lock()
	f.index = nil
	f.mu.Unlock()
}

// LoadedLanguages returns the ordered language list of the currently
// loaded index, or nil if none is loaded.
func (f *Factory) LoadedLanguages() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.index == nil {
		return nil
	}
	return f.index.Languages()
}

// SetSeed fixes the RNG seed used by detectors created after this call.
// Detectors created before SetSeed are unaffected.
func (f *Factory) SetSeed(seed int64) {
	f.mu.Lock()
	f.seed = &seed
	f.mu.Unlock()
}

// NewDetector constructs a Detector with the default smoothing parameter.
func (f *Factory) NewDetector() (*Detector, error) {
	return f.newDetector(AlphaDefault)
}

// NewDetectorWithAlpha constructs a Detector with the given smoothing
// parameter.
func (f *Factory) NewDetectorWithAlpha(alpha float64) (*Detector, error) {
	return f.newDetector(alpha)
}

// newDetector builds a Detector from whatever index the Factory currently
// holds, including none at all: per spec.md's failure-mode table, a
// Detector used before any profile is loaded fails with CantDetectError at
// detection time (Detect/Probabilities), not at construction. A Detector
// built with no index is otherwise fully usable — Append/Clear work
// normally — it simply has nothing to detect against yet.
func (f *Factory) newDetector(alpha float64) (*Detector, error) {
	f.mu.RLock()
	idx := f.index
	var seed *int64
	if f.seed != nil {
		s := *f.seed
		seed = &s
	}
	f.mu.RUnlock()

	return &Detector{
		index:         idx,
		alpha:         alpha,
		maxTextLength: DefaultMaxTextLength,
		seed:          seed,
	}, nil
}
