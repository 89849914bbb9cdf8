package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	addressKeywordRe = regexp.MustCompile(`کد پستی|شهرستان|استان|شهر|بخش|منطقه|محله|بلوار|خیابان|کوچه|بن بست|میدان|ساختمان|مجتمع|پلاک|طبقه|واحد`)

	// addressValueRe is the free text after a keyword: up to three tokens
	addressValueRe = regexp.MustCompile(`^[\s:]*[` + letterClass + `\d/\-]+(?:\s[` + letterClass + `\d/\-]+){0,2}`)

	addressTokenRe = regexp.MustCompile(`[` + letterClass + `\d/\-]+`)

	// addressGapRe is what may separate one component from the next keyword
	addressGapRe = regexp.MustCompile(`^[\s,،\-]*$`)
)

type addressComponent struct {
	start, end int // keyword start, value end (byte offsets)
	next       int // start of the following keyword, or len(text)
}

// addressStopWords open a law citation or an amount and end a component value
var addressStopWords = map[string]bool{
	"ماده": true, "مواد": true, "قانون": true, "تبصره": true,
	"ریال": true, "تومان": true, "دلار": true, "یورو": true, "درهم": true,
}

// addressValueEnd returns the byte length of the component value at the
// head of s. A value that starts with a number is that number alone.
func addressValueEnd(s string) int {
	loc := addressValueRe.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	end := 0
	for i, tok := range addressTokenRe.FindAllStringIndex(s[:loc[1]], -1) {
		word := s[tok[0]:tok[1]]
		if addressStopWords[word] {
			break
		}
		end = tok[1]
		if i == 0 && numeric(word) {
			break
		}
	}
	return end
}

func numeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) && r != '/' && r != '-' {
			return false
		}
	}
	return true
}

// findAddresses reports runs of two or more chained address components.
// A component is a standalone keyword followed by up to three tokens of
// free text, bounded by the next keyword.
func findAddresses(text string) [][4]int {
	var keywords [][]int
	for _, loc := range addressKeywordRe.FindAllStringIndex(text, -1) {
		if !wordStart(text, loc[0]) {
			continue
		}
		if r, ok := runeAfter(text, loc[1]); ok && unicode.IsLetter(r) {
			continue
		}
		keywords = append(keywords, loc)
	}
	if len(keywords) < 2 {
		return nil
	}

	components := make([]addressComponent, len(keywords))
	for i, kw := range keywords {
		limit := len(text)
		if i+1 < len(keywords) {
			limit = keywords[i+1][0]
		}
		end := kw[1]
		end += addressValueEnd(text[kw[1]:limit])
		components[i] = addressComponent{start: kw[0], end: end, next: limit}
	}

	var hits [][4]int
	runStart := 0
	flush := func(last int) {
		if last-runStart+1 >= 2 {
			start := components[runStart].start
			end := components[last].end
			end = start + len(strings.TrimRight(text[start:end], valueCutset))
			hits = append(hits, [4]int{start, end, start, end})
		}
	}
	for i := 0; i < len(components)-1; i++ {
		gap := text[components[i].end:components[i].next]
		if !addressGapRe.MatchString(gap) {
			flush(i)
			runStart = i + 1
		}
	}
	flush(len(components) - 1)

	return hits
}
