package extract

import (
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

// RoleWindowRadius is the number of runes inspected on each side of a
// person mention when looking for role vocabulary.
const RoleWindowRadius = 40

type roleFamily struct {
	role     model.RoleLabel
	keywords []string
}

// roleFamilies is ordered by priority; the first family with a keyword in
// the window wins. Keywords are in normalized form (no zero-width marks).
var roleFamilies = []roleFamily{
	{
		role: model.RolePlaintiff,
		keywords: []string{
			"خواهان", "شاکی", "دادخواست", "به خواسته",
			"محکوم له", "محکومله", "تجدیدنظرخواه", "تجدید نظرخواه",
		},
	},
	{
		role: model.RoleDefendant,
		keywords: []string{
			"خوانده", "به طرفیت", "متهم", "مشتکی عنه",
			"محکوم علیه", "محکومعلیه",
		},
	},
	{
		role: model.RoleJudge,
		keywords: []string{
			"قاضی", "دادرس", "رییس شعبه", "رئیس شعبه", "مستشار", "رییس دادگاه",
		},
	},
}

// RoleKeywords returns a copy of the keyword table
func RoleKeywords() map[model.RoleLabel][]string {
	out := make(map[model.RoleLabel][]string, len(roleFamilies))
	for _, f := range roleFamilies {
		out[f.role] = append([]string(nil), f.keywords...)
	}
	return out
}

// classifyWindow returns the highest-priority role with a keyword in window
func classifyWindow(window string) model.RoleLabel {
	for _, f := range roleFamilies {
		for _, kw := range f.keywords {
			if strings.Contains(window, kw) {
				return f.role
			}
		}
	}
	return model.RoleUnknown
}

// hasRoleKeyword reports whether any role family has a keyword in window
func hasRoleKeyword(window string) bool {
	return classifyWindow(window) != model.RoleUnknown
}

// RoleClassifier labels persons by the role vocabulary around their first
// occurrence in the ruling text.
type RoleClassifier struct {
	radius int
}

// NewRoleClassifier creates a classifier with the standard window radius
func NewRoleClassifier() *RoleClassifier {
	return &RoleClassifier{radius: RoleWindowRadius}
}

// Classify returns the role of name within text
func (c *RoleClassifier) Classify(text, name string) model.RoleLabel {
	if name == "" {
		return model.RoleUnknown
	}
	idx := strings.Index(text, name)
	if idx < 0 {
		return model.RoleUnknown
	}
	return classifyWindow(contextWindow(text, idx, idx+len(name), c.radius))
}

// ClassifyAll labels each name once, preserving order
func (c *RoleClassifier) ClassifyAll(text string, names []string) []model.PersonMention {
	persons := make([]model.PersonMention, 0, len(names))
	for _, name := range names {
		persons = append(persons, model.PersonMention{
			Name: name,
			Role: c.Classify(text, name),
		})
	}
	return persons
}
