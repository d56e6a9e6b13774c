package langdetect

// ngramExtractor is a small state machine holding the rolling window of the
// last three folded characters, per spec.md section 4.2. It is grounded on
// the character n-gram idiom in the teacher pack's
// tokenizer.CharNGramTokenizer (sliding window over runes), specialized
// here to the fixed 1..3 window the core algorithm needs and to the
// block-folding normalizer instead of plain lowercase/whitespace handling.
type ngramExtractor struct {
	window   [3]rune
	filled   [3]bool // whether window[i] has ever been assigned
	sawSpace bool     // whether a space has been seen since construction
}

// newNGramExtractor returns an extractor with its window initialized to a
// sentinel leading space, so the first real character participates in
// bigrams with a leading-space context.
func newNGramExtractor() *ngramExtractor {
	e := &ngramExtractor{}
	e.window[2] = ' '
	e.filled[2] = true
	return e
}

// addChar feeds one raw character into the extractor.
func (e *ngramExtractor) addChar(c rune) {
	folded := normalizeRune(c)
	if folded == ' ' && e.filled[2] && e.window[2] == ' ' {
		return
	}
	e.window[0], e.filled[0] = e.window[1], e.filled[1]
	e.window[1], e.filled[1] = e.window[2], e.filled[2]
	e.window[2], e.filled[2] = folded, true
	if folded == ' ' {
		e.sawSpace = true
	}
}

// get returns the n-character n-gram ending at the current window position,
// or ("", false) if the window does not yet hold a valid n-gram of that
// length per spec.md section 4.2.
func (e *ngramExtractor) get(n int) (string, bool) {
	switch n {
	case 1:
		if !e.filled[2] || e.window[2] == ' ' || !e.sawSpace {
			return "", false
		}
		return string(e.window[2]), true
	case 2:
		if !e.filled[1] || !e.filled[2] {
			return "", false
		}
		if e.window[1] == ' ' && e.window[2] == ' ' {
			return "", false
		}
		return string([]rune{e.window[1], e.window[2]}), true
	case 3:
		if !e.filled[0] || !e.filled[1] || !e.filled[2] {
			return "", false
		}
		if e.window[0] == ' ' && e.window[1] == ' ' && e.window[2] == ' ' {
			return "", false
		}
		return string([]rune{e.window[0], e.window[1], e.window[2]}), true
	default:
		return "", false
	}
}
