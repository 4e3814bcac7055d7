package checklist

import (
	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

// RequiredForIncorporation is the fixed required set for the Company
// Incorporation process, shared by both review flows.
var RequiredForIncorporation = []reviewModel.DocumentType{
	reviewModel.ArticlesOfAssociation,
	reviewModel.MemorandumOfAssociation,
	reviewModel.IncorporationApp,
	reviewModel.UBODeclaration,
	reviewModel.RegisterMembersDirs,
}

// strongSignals are the types whose presence alone classifies the batch as an
// incorporation filing. A coarse heuristic inherited from the checklist's
// regulatory source; kept behind this single table on purpose.
var strongSignals = map[reviewModel.DocumentType]bool{
	reviewModel.ArticlesOfAssociation: true,
	reviewModel.IncorporationApp:      true,
	reviewModel.UBODeclaration:        true,
}

const (
	ProcessIncorporation = "Company Incorporation"
	ProcessUnknown       = "Unknown"
)

// Evaluate compares the detected types of a batch against the required set.
// Duplicate detections of the same type count once; missing documents come
// back in required-list order. With no strong incorporation signal the
// process is Unknown and nothing is required.
func Evaluate(detected []reviewModel.DocumentType) reviewModel.ChecklistResult {
	distinct := distinctTypes(detected)

	incorporation := false
	for _, t := range distinct {
		if strongSignals[t] {
			incorporation = true
			break
		}
	}

	if !incorporation {
		return reviewModel.ChecklistResult{
			Process:       ProcessUnknown,
			Required:      []reviewModel.DocumentType{},
			Found:         len(distinct),
			Missing:       []reviewModel.DocumentType{},
			DetectedTypes: detected,
		}
	}

	present := make(map[reviewModel.DocumentType]bool, len(distinct))
	for _, t := range distinct {
		present[t] = true
	}

	found := 0
	missing := []reviewModel.DocumentType{}
	for _, required := range RequiredForIncorporation {
		if present[required] {
			found++
		} else {
			missing = append(missing, required)
		}
	}

	return reviewModel.ChecklistResult{
		Process:       ProcessIncorporation,
		Required:      RequiredForIncorporation,
		Found:         found,
		Missing:       missing,
		DetectedTypes: detected,
	}
}

// distinctTypes keeps first-seen order.
func distinctTypes(detected []reviewModel.DocumentType) []reviewModel.DocumentType {
	seen := make(map[reviewModel.DocumentType]bool, len(detected))
	var out []reviewModel.DocumentType
	for _, t := range detected {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
