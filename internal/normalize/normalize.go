// Package normalize canonicalizes court document text before extraction.
//
// Persian and Eastern Arabic-Indic digits become ASCII, zero-width joiners
// and word joiners are removed, and whitespace runs collapse to one space.
// String is idempotent and safe for concurrent use.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/rangetable"
)

const (
	persianZero = '۰'
	arabicZero  = '٠'
)

// invisible holds ZWNJ, ZWJ and WORD JOINER
var invisible = rangetable.New('\u200c', '\u200d', '\u2060')

// digitTable maps both native digit alphabets onto ASCII
var digitTable = func() map[rune]rune {
	table := make(map[rune]rune, 20)
	for i := rune(0); i < 10; i++ {
		table[persianZero+i] = '0' + i
		table[arabicZero+i] = '0' + i
	}
	return table
}()

// DigitTable returns a copy of the digit translation table
func DigitTable() map[rune]rune {
	out := make(map[rune]rune, len(digitTable))
	for k, v := range digitTable {
		out[k] = v
	}
	return out
}

func mapDigit(r rune) rune {
	if ascii, ok := digitTable[r]; ok {
		return ascii
	}
	return r
}

// newTransformer builds a fresh chain; transformers carry state and are
// not shared between goroutines.
func newTransformer() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.In(invisible)),
		runes.Map(mapDigit),
	)
}

// String normalizes s
func String(s string) string {
	out, _, err := transform.String(newTransformer(), s)
	if err != nil {
		out = strings.Map(func(r rune) rune {
			if unicode.Is(invisible, r) {
				return -1
			}
			return mapDigit(r)
		}, s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Normalizer adapts String to the interface used by pipeline components
type Normalizer struct{}

// New returns a Normalizer
func New() Normalizer {
	return Normalizer{}
}

// Normalize normalizes s
func (Normalizer) Normalize(s string) string {
	return String(s)
}
