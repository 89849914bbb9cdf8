package extract

import (
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

// ResolveCourtInfo summarizes the branch and judges. rawBranches are the
// untrimmed COURT_BRANCH matches; a masking marker in any of them redacts
// the branch.
func ResolveCourtInfo(rawBranches, branches, judges []string) model.CourtInfo {
	info := model.CourtInfo{Branch: model.UnknownMark}

	redacted := false
	for _, raw := range rawBranches {
		if strings.Contains(raw, model.MaskMarker) {
			redacted = true
			break
		}
	}
	switch {
	case redacted:
		info.Branch = model.RedactedMark
	case len(branches) > 0:
		info.Branch = branches[0]
	}

	info.Judges = Dedupe(judges)
	if len(info.Judges) == 0 {
		info.Judges = []string{model.UnknownMark}
	}
	return info
}
