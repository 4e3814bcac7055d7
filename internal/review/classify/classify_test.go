package classify

import (
	"strings"
	"testing"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

func TestDetect_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected reviewModel.DocumentType
	}{
		{
			name:     "Articles_By_Full_Phrase",
			text:     "These Articles of Association govern the company.",
			expected: reviewModel.ArticlesOfAssociation,
		},
		{
			name:     "Memorandum_By_Full_Phrase",
			text:     "Memorandum of Association of Example Ltd, listing the subscribers.",
			expected: reviewModel.MemorandumOfAssociation,
		},
		{
			name:     "Incorporation_Application",
			text:     "Application for incorporation submitted to the registrar.",
			expected: reviewModel.IncorporationApp,
		},
		{
			name:     "UBO_Declaration",
			text:     "Declaration of the ultimate beneficial owner of the entity.",
			expected: reviewModel.UBODeclaration,
		},
		{
			name:     "Register_Of_Members",
			text:     "The register of members shall be kept at the registered office.",
			expected: reviewModel.RegisterMembersDirs,
		},
		{
			name:     "Case_Insensitive",
			text:     "ARTICLES OF ASSOCIATION",
			expected: reviewModel.ArticlesOfAssociation,
		},
		{
			name:     "No_Keywords",
			text:     "An unrelated commercial agreement between two parties.",
			expected: reviewModel.UnknownType,
		},
		{
			name:     "Empty_Text",
			text:     "",
			expected: reviewModel.UnknownType,
		},
		{
			name: "Highest_Score_Wins",
			// two articles keywords beat one memorandum keyword
			text:     "Articles of Association describing the share capital, with a nod to the memorandum of association.",
			expected: reviewModel.ArticlesOfAssociation,
		},
		{
			name: "Tie_Keeps_Catalog_Order",
			// one keyword each for articles and memorandum
			text:     "articles of association and memorandum of association",
			expected: reviewModel.ArticlesOfAssociation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			if got != tt.expected {
				t.Errorf("Detect got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDetectSample_TruncatesBeforeMatching(t *testing.T) {
	padding := strings.Repeat("lorem ipsum ", 100) //1200 chars of noise
	text := padding + "articles of association"

	if got := DetectSample(text, 1000); got != reviewModel.UnknownType {
		t.Errorf("keyword beyond the sample limit should not match, got %q", got)
	}

	if got := DetectSample(text, len(text)); got != reviewModel.ArticlesOfAssociation {
		t.Errorf("full sample should match, got %q", got)
	}
}
