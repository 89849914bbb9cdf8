package model

const (
	// UnknownMark stands in for any field that could not be extracted
	UnknownMark = "نامشخص"

	// RedactedMark replaces a value the source document withheld
	RedactedMark = "[REDACTED]"

	// MaskMarker is the literal symbol court publishers use to mask values
	MaskMarker = "*"

	// RulingMarker opens the judgment section of a case document
	RulingMarker = "رای دادگاه"
)

// RoleLabel is the procedural role of a person in a case
type RoleLabel string

const (
	RolePlaintiff RoleLabel = "PLAINTIFF"
	RoleDefendant RoleLabel = "DEFENDANT"
	RoleJudge     RoleLabel = "JUDGE"
	RoleUnknown   RoleLabel = "UNKNOWN"
)

// Document is one plain-text case document ready for extraction
type Document struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"` // File path or URL it came from
}

// PersonMention is a deduplicated person with its inferred role
type PersonMention struct {
	Name string    `json:"name" yaml:"name"`
	Role RoleLabel `json:"role" yaml:"role"`
}

// CourtInfo summarizes the court branch and the judges
type CourtInfo struct {
	Branch string   `json:"branch" yaml:"branch"`
	Judges []string `json:"judges" yaml:"judges"`
}

// CaseFields holds the case identifiers found anywhere in the document
type CaseFields struct {
	CaseNumber      string `json:"case_number" yaml:"case_number"`
	ExecutiveNumber string `json:"executive_number" yaml:"executive_number"`
	ArchiveNumber   string `json:"archive_number" yaml:"archive_number"`
}

// CaseRecord is the complete extraction output for one document
type CaseRecord struct {
	ID            string          `json:"id" yaml:"id"`
	CaseInfo      CaseFields      `json:"case_info" yaml:"case_info"`
	CourtInfo     CourtInfo       `json:"court_info" yaml:"court_info"`
	Persons       []PersonMention `json:"persons" yaml:"persons"`
	Dates         []string        `json:"dates" yaml:"dates"`
	Amounts       []string        `json:"amounts" yaml:"amounts"`
	LawReferences []string        `json:"law_references" yaml:"law_references"`
	Places        []string        `json:"places" yaml:"places"`
	Addresses     []string        `json:"addresses" yaml:"addresses"`
	Redacted      []string        `json:"redacted" yaml:"redacted"`
	RulingText    string          `json:"ruling_text" yaml:"ruling_text"`
}
