package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

var (
	caseNumberRe      = regexp.MustCompile(`شماره\s+پرونده\s*[:؛]?\s*([\w\x{0600}-\x{06FF}/\-]+)`)
	executiveNumberRe = regexp.MustCompile(`اجراییه\s+شماره\s*[:؛]?\s*([\w\x{0600}-\x{06FF}/\-]+)`)
	archiveNumberRe   = regexp.MustCompile(`بایگانی\s*[:؛]?\s*(\d+|\*+)`)
)

// CaseFieldParser reads case identifiers from the full document text and
// locates the ruling section.
type CaseFieldParser struct{}

// NewCaseFieldParser creates a parser
func NewCaseFieldParser() *CaseFieldParser {
	return &CaseFieldParser{}
}

// Parse extracts the three case identifiers. Missing ones are UnknownMark.
func (p *CaseFieldParser) Parse(text string) model.CaseFields {
	return model.CaseFields{
		CaseNumber:      firstCapture(caseNumberRe, text),
		ExecutiveNumber: firstCapture(executiveNumberRe, text),
		ArchiveNumber:   firstCapture(archiveNumberRe, text),
	}
}

// RulingText returns the suffix of text starting at the ruling marker, or
// the whole text when the marker is absent.
func (p *CaseFieldParser) RulingText(text string) string {
	if idx := strings.Index(text, model.RulingMarker); idx >= 0 {
		return text[idx:]
	}
	return text
}

func firstCapture(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return model.UnknownMark
	}
	return m[1]
}
