package extract

import (
	"unicode"
	"unicode/utf8"
)

// contextWindow returns the text from radius runes before byte offset start
// to radius runes after byte offset end. Offsets are clamped to the text.
func contextWindow(text string, start, end, radius int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}

	lo := start
	for i := 0; i < radius && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}

	hi := end
	for i := 0; i < radius && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}

	return text[lo:hi]
}

// runeOffset converts a byte offset into a rune offset
func runeOffset(text string, byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	if byteOff > len(text) {
		byteOff = len(text)
	}
	return utf8.RuneCountInString(text[:byteOff])
}

// runeBefore returns the rune ending at byte offset off
func runeBefore(text string, off int) (rune, bool) {
	if off <= 0 || off > len(text) {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:off])
	return r, true
}

// runeAfter returns the rune starting at byte offset off
func runeAfter(text string, off int) (rune, bool) {
	if off < 0 || off >= len(text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(text[off:])
	return r, true
}

// isScriptLetter reports whether r is a letter of the Arabic script,
// which covers Persian.
func isScriptLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.Is(unicode.Arabic, r)
}

// standalone reports whether text[start:end] is not glued to a script
// letter on either side.
func standalone(text string, start, end int) bool {
	if r, ok := runeBefore(text, start); ok && isScriptLetter(r) {
		return false
	}
	if r, ok := runeAfter(text, end); ok && isScriptLetter(r) {
		return false
	}
	return true
}

// wordStart reports whether text[start:] begins a new word
func wordStart(text string, start int) bool {
	r, ok := runeBefore(text, start)
	if !ok {
		return true
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
