package langdetect

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Block tags: single representative runes standing in for an entire Unicode
// block once folded. Chosen from the Private Use Area so that folding is
// idempotent — a tag can never itself be re-folded into something else by a
// second pass over already-normalized text.
const (
	tagArabic             rune = 0xE000
	tagDevanagari         rune = 0xE001
	tagHebrew             rune = 0xE002
	tagCyrillicSupplement rune = 0xE003
	tagThai               rune = 0xE004
	tagLao                rune = 0xE005
	tagTibetan            rune = 0xE006
	tagMyanmar            rune = 0xE007
	tagGeorgian           rune = 0xE008
	tagEthiopic           rune = 0xE009
	tagHangul             rune = 0xE00A
	tagCJK                rune = 0xE00B
	tagHiragana           rune = 0xE00C
	tagKatakana           rune = 0xE00D
)

// blockRange is an inclusive [lo, hi] range of code points that fold to a
// single tag rune.
type blockRange struct {
	lo, hi rune
	tag    rune
}

// foldedBlocks lists every Unicode block collapsed to a single representative
// character. Basic Latin, Latin-1 Supplement, and plain Cyrillic are handled
// separately in normalizeRune — they are not collapsed to a single tag, only
// selectively blanked or passed through.
//
// Ranges are grounded in the standard Unicode block boundaries; Hiragana,
// Katakana, and Hangul Compatibility Jamo are carved out of the broader
// "CJK Radicals .. CJK Unified Ideographs Extension-B" span so each keeps
// its own tag as spec.md requires.
var foldedBlocks = []blockRange{
	{0x0590, 0x05FF, tagHebrew},             // Hebrew
	{0x0600, 0x06FF, tagArabic},             // Arabic
	{0x0500, 0x052F, tagCyrillicSupplement}, // Cyrillic Supplementary
	{0x0900, 0x097F, tagDevanagari},         // Devanagari
	{0x0E00, 0x0E7F, tagThai},               // Thai
	{0x0E80, 0x0EFF, tagLao},                // Lao
	{0x0F00, 0x0FFF, tagTibetan},            // Tibetan
	{0x1000, 0x109F, tagMyanmar},            // Myanmar
	{0x10A0, 0x10FF, tagGeorgian},           // Georgian
	{0x1100, 0x11FF, tagHangul},             // Hangul Jamo
	{0x1200, 0x137F, tagEthiopic},           // Ethiopic
	{0x2E80, 0x2FDF, tagCJK},                // CJK Radicals Supplement, Kangxi Radicals
	{0x2FF0, 0x2FFF, tagCJK},                // Ideographic Description Characters
	{0x3000, 0x303F, tagCJK},                // CJK Symbols and Punctuation
	{0x3040, 0x309F, tagHiragana},           // Hiragana
	{0x30A0, 0x30FF, tagKatakana},           // Katakana
	{0x3100, 0x312F, tagCJK},                // Bopomofo
	{0x3130, 0x318F, tagHangul},             // Hangul Compatibility Jamo
	{0x3190, 0x31EF, tagCJK},                // Kanbun, Bopomofo Extended, CJK Strokes
	{0x31F0, 0x31FF, tagKatakana},           // Katakana Phonetic Extensions
	{0x3200, 0x4DBF, tagCJK},                // Enclosed CJK Letters/Months .. CJK Unified Ideographs Ext-A
	{0x4E00, 0x9FFF, tagCJK},                // CJK Unified Ideographs
	{0xAC00, 0xD7AF, tagHangul},             // Hangul Syllables
	{0xF900, 0xFAFF, tagCJK},                // CJK Compatibility Ideographs
	{0x20000, 0x2A6DF, tagCJK},              // CJK Unified Ideographs Extension B
}

// normalizeRune folds a single code point into the module's reduced
// alphabet, per spec.md section 4.1.
func normalizeRune(c rune) rune {
	switch {
	case c <= 0x007F: // Basic Latin
		if c <= 0x0040 || c > 0x007A {
			return ' '
		}
		return c
	case c <= 0x00FF: // Latin-1 Supplement
		if (c >= 0x00A0 && c <= 0x00BF) || c == 0x00D7 || c == 0x00F7 {
			return ' '
		}
		return c
	}

	for _, b := range foldedBlocks {
		if c >= b.lo && c <= b.hi {
			return b.tag
		}
	}
	return c
}

var (
	urlPattern   = regexp.MustCompile(`https?://[-_.?&~;+=/#0-9A-Za-z]{1,2076}`)
	emailPattern = regexp.MustCompile(`[-_.0-9A-Za-z]{1,64}@[-_0-9A-Za-z]{1,255}[-_.0-9A-Za-z]{1,255}`)
)

// normalizeVietnamese canonically composes Vietnamese diacritic sequences,
// such as a base letter followed by a circumflex and a tone mark, into
// their single precomposed character, per spec.md section 4.1. Unicode
// canonical composition (NFC) performs exactly this fold, including chains
// of two combining marks, which is why the original tool's fixed table of
// (base character, combining mark) to precomposed character is realized
// here as a single call into golang.org/x/text/unicode/norm rather than a
// hand-maintained table.
func normalizeVietnamese(text string) string {
	return norm.NFC.String(text)
}

// stripURLsAndEmails replaces URL and e-mail matches with a single space,
// per spec.md section 4.1.
func stripURLsAndEmails(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	return text
}
