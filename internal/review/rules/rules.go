package rules

import (
	"regexp"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

// jurisdictionPatterns is an ordered allow/deny table. An empty issue string
// marks an allow-list entry: the marker is recognized but never flagged.
var jurisdictionPatterns = []struct {
	re    *regexp.Regexp
	issue string
}{
	{regexp.MustCompile(`(?i)\bADGM\b`), ""},
	{regexp.MustCompile(`(?i)\bUAE Federal Court(s)?\b|\bDubai Courts\b|\bAbu Dhabi Courts\b`), "Incorrect jurisdiction reference"},
}

var signatureIndicator = regexp.MustCompile(`(?i)\bsignature\b|\bsigned\b|\bfor and on behalf\b`)

var ambiguousWords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmay\b`),
	regexp.MustCompile(`(?i)\bshould\b`),
}

const (
	missingSignatureIssue  = "Missing signatory block"
	ambiguousLanguageIssue = "Ambiguous language (use shall instead of may/should)"
)

// Scan runs every rule over the segments and returns issues in rule order:
// jurisdiction hits across all segments first, then the single document-level
// signature issue if nothing signature-like exists anywhere, then one
// ambiguous-language issue per offending segment. Rules are additive and
// independent; a clean document returns nil.
func Scan(segments []reviewModel.Segment, fullText string) []reviewModel.Issue {
	var issues []reviewModel.Issue

	for _, pattern := range jurisdictionPatterns {
		if pattern.issue == "" {
			continue
		}
		for _, seg := range segments {
			if pattern.re.MatchString(seg.Text) {
				issues = append(issues, segmentIssue(seg, pattern.issue, reviewModel.SeverityHigh))
			}
		}
	}

	if !signatureIndicator.MatchString(fullText) {
		issues = append(issues, reviewModel.Issue{
			Document:  "(current)",
			Text:      "No signature block detected",
			Issue:     missingSignatureIssue,
			Severity:  reviewModel.SeverityHigh,
			ParaIndex: -1,
		})
	}

	for _, seg := range segments {
		for _, word := range ambiguousWords {
			if word.MatchString(seg.Text) {
				issues = append(issues, segmentIssue(seg, ambiguousLanguageIssue, reviewModel.SeverityMedium))
				break //at most one per segment, first match wins
			}
		}
	}

	return issues
}

func segmentIssue(seg reviewModel.Segment, issue string, severity reviewModel.Severity) reviewModel.Issue {
	paraIndex := seg.ParaIndex
	if !seg.HasHandle {
		paraIndex = -1
	}
	return reviewModel.Issue{
		Document:  "(current)",
		Text:      seg.Text,
		Issue:     issue,
		Severity:  severity,
		ParaIndex: paraIndex,
	}
}
