package classify

import (
	"strings"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

// Detect scores text against every catalog entry's keyword set and returns
// the strictly highest scorer. Ties go to the type declared first in the
// catalog; no keyword hit at all means Unknown. Pure function, never fails.
func Detect(text string) reviewModel.DocumentType {
	t := strings.ToLower(text)

	best := reviewModel.UnknownType
	bestScore := 0
	for _, entry := range reviewModel.Catalog {
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(t, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.Type
			bestScore = score
		}
	}
	return best
}

// DetectSample classifies on at most limit leading characters. Large
// documents rarely bury their title past the first page.
func DetectSample(text string, limit int) reviewModel.DocumentType {
	if limit > 0 && len(text) > limit {
		text = text[:limit]
	}
	return Detect(text)
}
